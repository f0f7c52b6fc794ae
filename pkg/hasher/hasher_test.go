package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD5Hash(t *testing.T) {
	assert.Equal(t, "e16b2ab8d12314bf4efbd6203906ea6c", MD5Hash("testpassword"))
	// deterministic
	assert.Equal(t, MD5Hash("testpassword"), MD5Hash("testpassword"))
	// empty input is valid
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", MD5Hash(""))
	assert.Len(t, MD5Hash("anything"), 32)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword([]byte("s3cret"))
	require.NoError(t, err)
	assert.True(t, PasswordCorrect("s3cret", hash))
	assert.False(t, PasswordCorrect("wrong", hash))
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
