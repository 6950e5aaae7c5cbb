package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	assert.NoError(t, CompareHash(hash, "secret123"))
	assert.Error(t, CompareHash(hash, "wrong"))
}

func TestGetHash_Salted(t *testing.T) {
	first, err := GetHash("secret123")
	require.NoError(t, err)
	second, err := GetHash("secret123")
	require.NoError(t, err)

	// bcrypt подсаливает хэши, одинаковые пароли дают разные строки.
	assert.NotEqual(t, first, second)
}
