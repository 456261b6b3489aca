package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"nombre.apellido@empresa.mx",
		"user+tag@sub.domain.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"user@",
		"user@domain",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"5512345678",
		"55 1234 5678",
		"55-1234-5678",
	}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{
		"",
		"12345",
		"555-123",
		"phone number",
		"+525512345678", // plus sign not accepted
	}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}

func TestValidateStructCustomTags(t *testing.T) {
	type subject struct {
		Rating int     `validate:"required,rating"`
		Radius float64 `validate:"required,geofence_radius"`
		Plan   string  `validate:"required,plan"`
	}

	assert.NoError(t, ValidateStruct(&subject{Rating: 5, Radius: 50, Plan: "basic"}))
	assert.NoError(t, ValidateStruct(&subject{Rating: 1, Radius: 200, Plan: "plus"}))

	assert.Error(t, ValidateStruct(&subject{Rating: 6, Radius: 50, Plan: "basic"}))
	assert.Error(t, ValidateStruct(&subject{Rating: 5, Radius: 49, Plan: "basic"}))
	assert.Error(t, ValidateStruct(&subject{Rating: 5, Radius: 50, Plan: "premium"}))
}
