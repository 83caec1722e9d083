package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("test-secret", "dinefinder", "dinefinder", time.Hour)
}

func TestIdentifyRoundTrip(t *testing.T) {
	a := newTestAuthenticator()

	token, err := a.GenerateToken(42, TokenTypeOwner)
	require.NoError(t, err)

	id, err := a.Identify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.Subject)
	assert.Equal(t, TokenTypeOwner, id.TokenType)
}

func TestIdentifyRejectsWrongSecret(t *testing.T) {
	token, err := newTestAuthenticator().GenerateToken(1, TokenTypeUser)
	require.NoError(t, err)

	other := NewJWTAuthenticator("another-secret", "dinefinder", "dinefinder", time.Hour)
	_, err = other.Identify(token)
	assert.Error(t, err)
}

func TestIdentifyRejectsWrongAudience(t *testing.T) {
	token, err := newTestAuthenticator().GenerateToken(1, TokenTypeUser)
	require.NoError(t, err)

	other := NewJWTAuthenticator("test-secret", "someone-else", "dinefinder", time.Hour)
	_, err = other.Identify(token)
	assert.Error(t, err)
}

func TestIdentifyNumericSubject(t *testing.T) {
	a := newTestAuthenticator()
	claims := jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Minute).Unix(),
		"iss": "dinefinder",
		"aud": "dinefinder",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	id, err := a.Identify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.Subject)
	assert.Equal(t, TokenTypeUser, id.TokenType)
}

func TestIdentifyRejectsUnknownTokenType(t *testing.T) {
	token, err := newTestAuthenticator().GenerateToken(3, "admin")
	require.NoError(t, err)

	_, err = newTestAuthenticator().Identify(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestIdentifyRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Minute).Unix(),
		"iss": "dinefinder",
		"aud": "dinefinder",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestAuthenticator().Identify(token)
	assert.Error(t, err)
}
