package main

import (
	"crypto/rsa"
	"database/sql"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt"
	"github.com/inkwell/inkwell-server/server-go"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Config struct {
	server.Config
	RedirectUri string  `env:"REDIRECT_URI"`
	ApiService  string  `env:"API_SERVICE_URL" envDefault:"http://localhost:3000"`
	Clients     Client  `envPrefix:"CLIENT_"`
	JwtKeys     JwtKeys `envPrefix:"JWT_"`
}

type Client struct {
	Id     string `env:"ID"`
	Secret string `env:"SECRET"`
}

type JwtKeys struct {
	PrivateKey string `env:"PRIVATE_KEY"`
	PublicKey  string `env:"PUBLIC_KEY"`
}

func Parse() (*Config, error) {
	cfg := Config{}
	cfg.IsProduction = utils.ParseFlags()

	if err := env.Parse(&cfg); err != nil {
		log.Panic().Err(err).Msg("Failed to parse env config")
	}

	return &cfg, nil
}

type OAuthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func getDbConnection(dsn string) *sql.DB {
	parsed, err := pq.ParseURL(dsn)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse DSN")
	}

	db, err := sql.Open("postgres", parsed)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to open database connection")
	}

	return db
}

func parseKeys(c *Config) (rsa.PublicKey, rsa.PrivateKey) {
	tempJwtPrivateKey, err := utils.DecodeBase64([]byte(c.JwtKeys.PrivateKey))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt private key")
	}
	newJwtPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEM(tempJwtPrivateKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt private key")
	}

	tempJwtPublicKey, err := utils.DecodeBase64([]byte(c.JwtKeys.PublicKey))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt public key")
	}
	newJwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(tempJwtPublicKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt public key")
	}

	return *newJwtPublicKey, *newJwtPrivateKey
}
