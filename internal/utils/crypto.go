// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateOtpCode returns a 6-character uppercase hex one-time code
// (3 random bytes, hex-encoded).
func GenerateOtpCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
