package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyAccessToken(t *testing.T) {
	const secret = "test-secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "a@b.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := VerifyAccessToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	signed := signTestToken(t, "right-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := VerifyAccessToken(signed, "wrong-secret")
	assert.Error(t, err)
}

func TestVerifyAccessTokenMissingSubject(t *testing.T) {
	const secret = "test-secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := VerifyAccessToken(signed, secret)
	assert.Error(t, err)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	const secret = "test-secret"
	signed := signTestToken(t, secret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := VerifyAccessToken(signed, secret)
	assert.Error(t, err)
}
