package services

import (
	"context"
	"fmt"
	"time"

	"ridersafe/pkg/logger"
)

type CacheService interface {
	// Basic cache operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)

	// One-shot token storage for email verification and password reset
	StoreVerifyToken(ctx context.Context, token string, userID string, ttl time.Duration) error
	ConsumeVerifyToken(ctx context.Context, token string) (string, error)
	StoreResetToken(ctx context.Context, token string, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)

	// Rate limiting
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisClient is the slice of pkg/cache.RedisCache the service depends on.
type RedisClient interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	IncrementBy(ctx context.Context, key string, value int64) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	keyPrefix   string
	defaultTTL  time.Duration
}

func NewCacheService(redisClient RedisClient, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      log,
		keyPrefix:   keyPrefix,
		defaultTTL:  defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if err := s.redisClient.Get(ctx, s.buildKey(key), dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redisClient.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.redisClient.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redisClient.Exists(ctx, s.buildKey(key))
}

func (s *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if expiration == 0 {
		expiration = s.defaultTTL
	}
	return s.redisClient.SetNX(ctx, s.buildKey(key), value, expiration)
}

func (s *cacheService) StoreVerifyToken(ctx context.Context, token string, userID string, ttl time.Duration) error {
	return s.Set(ctx, "verify_token:"+token, userID, ttl)
}

func (s *cacheService) ConsumeVerifyToken(ctx context.Context, token string) (string, error) {
	return s.consumeToken(ctx, "verify_token:"+token)
}

func (s *cacheService) StoreResetToken(ctx context.Context, token string, userID string, ttl time.Duration) error {
	return s.Set(ctx, "reset_token:"+token, userID, ttl)
}

func (s *cacheService) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	return s.consumeToken(ctx, "reset_token:"+token)
}

// consumeToken reads and deletes in sequence. A token observed once is never
// honored twice.
func (s *cacheService) consumeToken(ctx context.Context, key string) (string, error) {
	var userID string
	if err := s.Get(ctx, key, &userID); err != nil {
		return "", fmt.Errorf("token not found or expired: %w", err)
	}

	if err := s.Delete(ctx, key); err != nil {
		s.logger.WithError(err).Warn("Failed to delete consumed token")
	}

	return userID, nil
}

func (s *cacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error) {
	rateLimitKey := s.buildKey("rate_limit:" + key)

	count, err := s.redisClient.IncrementBy(ctx, rateLimitKey, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		s.redisClient.SetExpire(ctx, rateLimitKey, window)
	}

	return count, nil
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix != "" {
		return s.keyPrefix + ":" + key
	}
	return key
}
