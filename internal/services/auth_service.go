package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"ridersafe/internal/config"
	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/email"
	"ridersafe/pkg/logger"
)

var (
	ErrBadCredentials  = errors.New("bad credentials")
	ErrEmailInUse      = errors.New("email already registered")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrWeakPassword    = errors.New("password too short")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrNotVerified     = errors.New("account not verified")
	ErrInvalidToken    = errors.New("token is invalid or expired")
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateFCMToken(ctx context.Context, userID primitive.ObjectID, token string) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

type authService struct {
	userRepo    interfaces.UserRepository
	cache       CacheService
	emailSender *email.Sender
	appConfig   *config.AppConfig
	security    *config.SecurityConfig
	logger      *logger.Logger
	audit       *logger.AuditLogger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	cache CacheService,
	emailSender *email.Sender,
	appConfig *config.AppConfig,
	security *config.SecurityConfig,
	log *logger.Logger,
	audit *logger.AuditLogger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		cache:       cache,
		emailSender: emailSender,
		appConfig:   appConfig,
		security:    security,
		logger:      log,
		audit:       audit,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*models.User, error) {
	if !utils.IsValidEmail(request.Email) {
		return nil, ErrInvalidEmail
	}
	if len(request.Password) < s.security.PasswordMinLength {
		return nil, ErrWeakPassword
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	emailAddr := utils.NormalizeEmail(request.Email)

	if _, err := s.userRepo.GetByEmail(ctx, emailAddr); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName: request.FullName,
		Email:    emailAddr,
		Password: string(hashed),
		Status:   "active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Error("Failed to send verification email")
	}

	s.logger.WithUserID(user.ID).Info("User registered")
	s.auditAuth("register", &user.ID, user.Email, true)
	return user, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, ErrBadCredentials
	}

	emailAddr := utils.NormalizeEmail(request.Email)

	attempts, err := s.cache.IncrementRateLimit(ctx, "login:"+emailAddr, s.security.LoginLockoutTime)
	if err != nil {
		s.logger.WithError(err).Warn("Login attempt counter unavailable")
	} else if attempts > int64(s.security.MaxLoginAttempts) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		s.auditAuth("login", &user.ID, emailAddr, false)
		return nil, ErrBadCredentials
	}
	if !user.IsEmailVerified {
		return nil, ErrNotVerified
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email, s.security.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("Failed to record login time")
	}

	s.logger.WithUserID(user.ID).Info("User logged in")
	s.auditAuth("login", &user.ID, emailAddr, true)

	return &LoginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.cache.ConsumeVerifyToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, objectID, true); err != nil {
		return err
	}

	s.logger.WithUserID(objectID).Info("Email verified")
	return nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to probe which emails are registered.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	if !utils.IsValidEmail(emailAddr) {
		return ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil
		}
		return err
	}

	token := utils.GenerateOpaqueToken()
	if err := s.cache.StoreResetToken(ctx, token, user.ID.Hex(), s.security.ResetTokenTTL); err != nil {
		return err
	}

	if s.emailSender != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appConfig.BaseURL, token)
		if err := s.emailSender.SendPasswordReset(user.Email, email.PasswordResetData{
			FullName:  user.FullName,
			ResetURL:  resetURL,
			ExpiresIn: formatTTL(s.security.ResetTokenTTL),
		}); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Error("Failed to send password reset email")
		}
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < s.security.PasswordMinLength {
		return ErrWeakPassword
	}

	userID, err := s.cache.ConsumeResetToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Update(ctx, objectID, map[string]interface{}{
		"password": string(hashed),
	}); err != nil {
		return err
	}

	s.logger.WithUserID(objectID).Info("Password reset")
	return nil
}

func (s *authService) UpdateFCMToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	return s.userRepo.UpdateFCMToken(ctx, userID, token)
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) sendVerification(ctx context.Context, user *models.User) error {
	token := utils.GenerateOpaqueToken()
	if err := s.cache.StoreVerifyToken(ctx, token, user.ID.Hex(), s.security.VerifyTokenTTL); err != nil {
		return err
	}
	if s.emailSender == nil {
		return nil
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.appConfig.BaseURL, token)
	return s.emailSender.SendVerification(user.Email, email.VerificationData{
		FullName:  user.FullName,
		VerifyURL: verifyURL,
		ExpiresIn: formatTTL(s.security.VerifyTokenTTL),
	})
}

func (s *authService) auditAuth(event string, userID *primitive.ObjectID, email string, success bool) {
	if s.audit == nil {
		return
	}
	s.audit.LogAuthEvent(event, userID, email, success)
}

func formatTTL(ttl time.Duration) string {
	if ttl >= time.Hour {
		return fmt.Sprintf("%d horas", int(ttl.Hours()))
	}
	return fmt.Sprintf("%d minutos", int(ttl.Minutes()))
}

// UserMessage maps service errors to the fixed Spanish messages the site
// shows. Anything unmapped reads as the generic failure.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrBadCredentials):
		return utils.ErrMsgBadCredentials
	case errors.Is(err, ErrInvalidEmail):
		return utils.ErrMsgInvalidEmail
	case errors.Is(err, ErrEmailInUse):
		return utils.ErrMsgEmailInUse
	case errors.Is(err, ErrWeakPassword):
		return utils.ErrMsgWeakPassword
	case errors.Is(err, ErrTooManyAttempts):
		return utils.ErrMsgTooManyAttempts
	case errors.Is(err, ErrNotVerified):
		return utils.ErrMsgNotVerified
	default:
		return utils.ErrMsgGeneric
	}
}
