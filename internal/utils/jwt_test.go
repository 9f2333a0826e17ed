// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	userID := uuid.New()
	token, err := GenerateAdminJWT(userID, "admin@example.com", "ADMIN", 1)
	require.NoError(t, err)

	claims, err := ValidateAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAdminJWTRejectsTamperedToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminJWT(uuid.New(), "admin@example.com", "ADMIN", 1)
	require.NoError(t, err)

	_, err = ValidateAdminJWT(token + "x")
	assert.Error(t, err)
}

func TestAdminJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateAdminJWT(uuid.New(), "admin@example.com", "ADMIN", 1)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	defer SetJWTSecret("test-secret")

	_, err = ValidateAdminJWT(token)
	assert.Error(t, err)
}

func TestAdminJWTRejectsExpiredToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminJWT(uuid.New(), "admin@example.com", "ADMIN", -1)
	require.NoError(t, err)

	_, err = ValidateAdminJWT(token)
	assert.Error(t, err)
}

func TestClientJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	clientID := uuid.New()
	token, err := GenerateClientJWT(clientID, 30)
	require.NoError(t, err)

	parsed, err := ValidateClientJWT(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, parsed)
}

func TestClientJWTRejectsAdminValidator(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateClientJWT(uuid.New(), 30)
	require.NoError(t, err)

	// a client token carries no client_id claim an admin validator accepts,
	// and vice versa: an admin token must not pass client validation
	adminToken, err := GenerateAdminJWT(uuid.New(), "admin@example.com", "ADMIN", 1)
	require.NoError(t, err)

	_, err = ValidateClientJWT(adminToken)
	assert.Error(t, err)

	_, err = ValidateClientJWT(token)
	assert.NoError(t, err)
}
