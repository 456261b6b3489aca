package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ridersafe/internal/utils"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", ErrBadCredentials, utils.ErrMsgBadCredentials},
		{"invalid email", ErrInvalidEmail, utils.ErrMsgInvalidEmail},
		{"email in use", ErrEmailInUse, utils.ErrMsgEmailInUse},
		{"weak password", ErrWeakPassword, utils.ErrMsgWeakPassword},
		{"too many attempts", ErrTooManyAttempts, utils.ErrMsgTooManyAttempts},
		{"not verified", ErrNotVerified, utils.ErrMsgNotVerified},
		{"wrapped errors still map", fmt.Errorf("login: %w", ErrBadCredentials), utils.ErrMsgBadCredentials},
		{"unknown errors stay generic", errors.New("database down"), utils.ErrMsgGeneric},
		{"nil stays generic", nil, utils.ErrMsgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "24 horas", formatTTL(utils.VerifyTokenTTL))
	assert.Equal(t, "45 minutos", formatTTL(45*time.Minute))
}
