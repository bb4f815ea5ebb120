package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyHash("hunter2hunter2", hash))
	assert.False(t, VerifyHash("hunter3hunter3", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyHashMalformed(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2id$v=19$garbage"} {
		assert.False(t, VerifyHash("anything", hash), "hash %q", hash)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	message := []byte("inkwell")

	decoded, err := DecodeBase64(EncodeBase64(message))
	require.NoError(t, err)
	assert.Equal(t, message, decoded[:len(message)])
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{user.name}}, code {{code}}", map[string]string{
		"{{user.name}}": "Ada",
		"{{code}}":      "1234",
	})

	assert.Equal(t, "Hello Ada, code 1234", out)
}

func TestIsInList(t *testing.T) {
	list := []string{"basic", "advanced"}

	assert.Equal(t, 0, IsInList("basic", &list))
	assert.Equal(t, -1, IsInList("admin", &list))
}
