package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"
)

// ErrInvalidToken is the single failure mode of VerifyToken. Signature,
// expiry, claim-shape and token-class problems all collapse into it so the
// caller cannot tell which validation step failed.
var ErrInvalidToken = errors.New("invalid token")

var publicKey rsa.PublicKey

func InitSharedConstants(pubKey rsa.PublicKey) {
	publicKey = pubKey
}

type TokenClaims struct {
	UserId int64
	Class  string
	Scopes []string
}

// VerifyToken checks the bearer credential against the shared public key and
// the required token class ("access" or "refresh", carried in sub).
func VerifyToken(rawToken, class string) (*TokenClaims, error) {
	tok, err := jwt.Parse(rawToken, func(jwtToken *jwt.Token) (interface{}, error) {
		if _, ok := jwtToken.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected method: %s", jwtToken.Header["alg"])
		}
		return &publicKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub != class {
		return nil, ErrInvalidToken
	}

	rawUser, _ := claims["user"].(string)
	id, err := strconv.ParseInt(rawUser, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	scope, _ := claims["scope"].(string)

	return &TokenClaims{
		UserId: id,
		Class:  sub,
		Scopes: strings.Split(scope, " "),
	}, nil
}

func ParsePublicKey(key string) *rsa.PublicKey {
	tempJwtPublicKey, err := DecodeBase64([]byte(key))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt public key")
	}
	jwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(tempJwtPublicKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt public key")
	}
	return jwtPublicKey
}

func ParsePrivateKey(key string) *rsa.PrivateKey {
	tempJwtPrivateKey, err := DecodeBase64([]byte(key))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt private key")
	}
	jwtPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEM(tempJwtPrivateKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt private key")
	}
	return jwtPrivateKey
}
