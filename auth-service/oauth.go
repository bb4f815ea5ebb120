package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/inkwell/inkwell-server/utils-go"
)

func authorize(c *fiber.Ctx) error {
	var (
		responseType   = c.Query("response_type")
		clientId       = c.Query("client_id")
		state          = c.Query("state")
		redirectUri    = c.Query("redirect_uri", defaultRedirectUri)
		scope          = c.Query("scope", "basic")
		username       = c.Query("username")
		password       = c.Query("password")
		responseMethod = c.Query("response_method", "redirect")
	)

	if responseType != "code" {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid response_type",
		})
	}

	if clientId != client.Id {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid client_id",
		})
	}

	if len(username) == 0 || len(password) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid request parameters",
		})
	}

	user := user{}
	rows := db.QueryRow("SELECT id, name, password, provider, is_active FROM userdata.users WHERE email = $1", username)

	err := rows.Scan(&user.Id, &user.Name, &user.Password, &user.Provider, &user.IsActive)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid username or password",
		})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "access_denied",
			ErrorDescription: "invalid username or password",
		})
	}

	if user.Provider != "email" && !user.Password.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "user exists with another provider",
		})
	}

	if !utils.VerifyHash(password, user.Password.String) {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "access_denied",
			ErrorDescription: "invalid username or password",
		})
	}

	genJwt, err := utils.CreateJwt(utils.JwtConfig{
		User:       user.Id,
		ExpireIn:   time.Minute * 1,
		Scope:      scope,
		Subject:    "authorize",
		Data:       map[string]string{},
		PrivateKey: &jwtPrivateKey,
	})
	if err != nil {
		return jwtCreateError(c)
	}

	if responseMethod == "redirect" {
		return c.Redirect(fmt.Sprintf("%s?code=%s&state=%s", redirectUri, genJwt, state), fiber.StatusTemporaryRedirect)
	}

	return c.Status(fiber.StatusOK).JSON(codeToken{Code: genJwt})
}

func getToken(c *fiber.Ctx) error {
	req := new(tokenRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid request parameters",
		})
	}

	if err := checkClient(req.ClientId, req.ClientSecret); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*err)
	}

	if len(req.Code) == 0 || len(req.Code) >= 1024 {
		return badCode(c)
	}

	claims, ok := parseClassedToken(req.Code, "authorize")
	if !ok {
		return badCode(c)
	}

	tokens, err := utils.OAuthJwt(claims["user"].(string), claims["scope"].(string), &jwtPrivateKey)
	if err != nil {
		return jwtCreateError(c)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func refresh(c *fiber.Ctx) error {
	req := new(refreshRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid request parameters",
		})
	}

	if err := checkClient(req.ClientId, req.ClientSecret); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*err)
	}

	if len(req.RefreshToken) == 0 || len(req.RefreshToken) >= 1024 {
		return badCode(c)
	}

	claims, ok := parseClassedToken(req.RefreshToken, "refresh")
	if !ok {
		return badCode(c)
	}

	tokens, err := utils.OAuthJwt(claims["user"].(string), claims["scope"].(string), &jwtPrivateKey)
	if err != nil {
		return jwtCreateError(c)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func checkClient(id, secret string) *OAuthError {
	if len(id) == 0 || len(secret) == 0 {
		return &OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid request parameters",
		}
	}

	if id != client.Id || secret != client.Secret {
		return &OAuthError{
			Error:            "invalid_request",
			ErrorDescription: "invalid client_id or client_secret",
		}
	}

	return nil
}

// parseClassedToken verifies the signature and that the token was minted for
// the given lifecycle stage, so an access token can never stand in for an
// authorization code or a refresh token.
func parseClassedToken(raw, class string) (jwt.MapClaims, bool) {
	tok, err := jwt.Parse(raw, func(jwtToken *jwt.Token) (interface{}, error) {
		if _, ok := jwtToken.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected method: %s", jwtToken.Header["alg"])
		}
		return &jwtPublicKey, nil
	})
	if err != nil {
		return nil, false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, false
	}

	if claims.Valid() != nil {
		return nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub != class {
		return nil, false
	}

	if _, ok := claims["user"].(string); !ok {
		return nil, false
	}
	if _, ok := claims["scope"].(string); !ok {
		return nil, false
	}

	return claims, true
}
