package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(userID, "admin@logitrack.com", "admin", "secret", 1, 24)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ValidateToken(pair.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@logitrack.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "a@b.com", "driver", "secret", 1, 24)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "a@b.com", "driver", "secret", -1, 24)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateToken("", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerateOpaqueTokenIsUnique(t *testing.T) {
	a, err := GenerateOpaqueToken()
	require.NoError(t, err)
	b, err := GenerateOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
