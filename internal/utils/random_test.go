package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLicenseCode(t *testing.T) {
	codePattern := regexp.MustCompile(`^[0-9A-Z]{4}-[0-9A-Z]{4}-[0-9A-Z]{4}-[0-9A-Z]{4}$`)

	for i := 0; i < 20; i++ {
		code := GenerateLicenseCode(LicenseCodeLength)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateLicenseCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateLicenseCode(LicenseCodeLength)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestGenerateOpaqueToken(t *testing.T) {
	token := GenerateOpaqueToken()
	assert.Len(t, token, 64)
	assert.Regexp(t, `^[0-9a-f]+$`, token)
	assert.NotEqual(t, token, GenerateOpaqueToken())
}
