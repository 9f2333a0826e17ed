// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var otpPattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

func TestGenerateOtpCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOtpCode()
		require.NoError(t, err)
		assert.Regexp(t, otpPattern, code)
	}
}

func TestGenerateOtpCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateOtpCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 draws from a 16.7M space should not collapse to one value
	assert.Greater(t, len(seen), 1)
}
