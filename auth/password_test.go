package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("mypass456")
	require.NoError(t, err)
	assert.NotEqual(t, "mypass456", hash)

	assert.True(t, CheckPassword(hash, "mypass456"))
	assert.False(t, CheckPassword(hash, "mypass457"))
	assert.False(t, CheckPassword("", "mypass456"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "mypass456"))
}
