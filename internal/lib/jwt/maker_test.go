package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-1", "user@example.com", "buyer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserUID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.Role)
}

func TestMaker_ParseExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("uid-1", "user@example.com", "buyer")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseWrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	other := NewJWTMaker("other-secret", time.Hour)

	token, err := maker.GenerateToken("uid-1", "user@example.com", "seller")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseGarbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
