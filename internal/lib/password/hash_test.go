package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("s3cret-pass!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pass!", hash)

	assert.NoError(t, CompareHash(hash, "s3cret-pass!"))
}

func TestCompareHash_WrongPassword(t *testing.T) {
	hash, err := GetHash("correct-password1!")
	require.NoError(t, err)

	assert.Error(t, CompareHash(hash, "wrong-password"))
}

func TestCompareHash_NotAHash(t *testing.T) {
	assert.Error(t, CompareHash("plain-text", "plain-text"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := GetHash("same-password1!")
	require.NoError(t, err)
	second, err := GetHash("same-password1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
