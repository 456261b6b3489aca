package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
)

// License codes use the uppercase alphabet the activation cards are
// printed with.
const licenseCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateLicenseCode produces a code like "X7KQ-2MNP-0RST-9ABC": length
// random characters grouped by dashes every LicenseCodeGroup characters.
func GenerateLicenseCode(length int) string {
	raw := generateRandom(length, licenseCharset)

	var groups []string
	for i := 0; i < len(raw); i += LicenseCodeGroup {
		end := i + LicenseCodeGroup
		if end > len(raw) {
			end = len(raw)
		}
		groups = append(groups, raw[i:end])
	}
	return strings.Join(groups, "-")
}

// GenerateOpaqueToken returns a URL-safe random token for email
// verification and password reset links.
func GenerateOpaqueToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
