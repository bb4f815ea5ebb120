package controllers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/api-service/providers"
	"github.com/inkwell/inkwell-server/utils-go"

	"go.uber.org/fx"
)

type AuthController struct {
	fx.In
	Providers map[string]providers.Provider
}

var (
	redirectUri string
)

func RegisterAuthController(r *utils.Router, config *config.Config, c AuthController) {
	redirectUri = config.RedirectUri

	r.Get("/auth/:provider/login", c.login)
	r.Get("/auth/:provider/callback", c.callback)
}

func (c *AuthController) login(ctx *fiber.Ctx) error {
	provider, ok := c.Providers[ctx.Params("provider")]
	if !ok {
		return utils.NotFound(ctx, "Unknown provider")
	}

	provider.Login(ctx)
	return nil
}

func (c *AuthController) callback(ctx *fiber.Ctx) error {
	provider, ok := c.Providers[ctx.Params("provider")]
	if !ok {
		return utils.NotFound(ctx, "Unknown provider")
	}

	res, err := provider.Callback(ctx)
	if err != nil {
		return nil
	}

	currentRedirectUri := func() string {
		if ctx.Query("redirect_uri") == "" {
			return redirectUri
		} else {
			_, err := url.Parse(ctx.Query("redirect_uri"))
			if err != nil {
				return redirectUri
			}
			return ctx.Query("redirect_uri")
		}
	}()

	values := url.Values{}
	values.Set("access_token", res.Tokens.AccessToken)
	values.Set("refresh_token", res.Tokens.RefreshToken)
	values.Set("user", res.Details)

	if strings.LastIndex(currentRedirectUri, "?") == -1 {
		currentRedirectUri = fmt.Sprintf("%s?%s", currentRedirectUri, values.Encode())
	} else {
		currentRedirectUri = fmt.Sprintf("%s&%s", currentRedirectUri, values.Encode())
	}

	return ctx.Redirect(currentRedirectUri, fiber.StatusTemporaryRedirect)
}
