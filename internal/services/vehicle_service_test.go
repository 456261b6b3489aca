package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ridersafe/internal/utils"
)

func TestIsFresh(t *testing.T) {
	t.Run("nil timestamp reads as stale", func(t *testing.T) {
		assert.False(t, isFresh(nil))
	})

	t.Run("recent ping is fresh", func(t *testing.T) {
		ts := time.Now().Add(-time.Second)
		assert.True(t, isFresh(&ts))
	})

	t.Run("past the liveness window is stale", func(t *testing.T) {
		ts := time.Now().Add(-utils.LivenessTimeout - time.Second)
		assert.False(t, isFresh(&ts))
	})
}
