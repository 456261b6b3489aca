package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ridersafe/internal/models"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want string
	}{
		{"first name plus last initial", models.User{FullName: "María García"}, "María G."},
		{"middle names dropped", models.User{FullName: "Juan Carlos Pérez"}, "Juan P."},
		{"single name kept whole", models.User{FullName: "Alejandra"}, "Alejandra"},
		{"blank name masks the email", models.User{FullName: "  ", Email: "rider@example.com"}, "r***r@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(&tt.user))
		})
	}
}
