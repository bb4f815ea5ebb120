package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key *rsa.PrivateKey, class string, expireIn time.Duration) string {
	t.Helper()

	token, err := CreateJwt(JwtConfig{
		User:       "42",
		ExpireIn:   expireIn,
		Scope:      "basic",
		Subject:    class,
		Data:       map[string]string{},
		PrivateKey: key,
	})
	require.NoError(t, err)
	return token
}

func TestVerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	claims, err := VerifyToken(signToken(t, key, "access", time.Minute), "access")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserId)
	assert.Equal(t, "access", claims.Class)
	assert.Contains(t, claims.Scopes, "basic")
}

func TestVerifyTokenWrongClass(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	// A refresh token presented where access is required is just invalid,
	// not a claim-shape error.
	_, err = VerifyToken(signToken(t, key, "refresh", time.Minute), "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	_, err = VerifyToken(signToken(t, key, "access", -time.Minute), "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	_, err = VerifyToken(signToken(t, otherKey, "access", time.Minute), "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestOAuthJwtPair(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	pair, err := OAuthJwt("42", "basic", key)
	require.NoError(t, err)

	access, err := VerifyToken(pair.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, int64(42), access.UserId)

	refresh, err := VerifyToken(pair.RefreshToken, "refresh")
	require.NoError(t, err)
	assert.Equal(t, int64(42), refresh.UserId)

	// Neither token can stand in for the other.
	_, err = VerifyToken(pair.AccessToken, "refresh")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = VerifyToken(pair.RefreshToken, "access")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	InitSharedConstants(key.PublicKey)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := VerifyToken(raw, "access")
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}
