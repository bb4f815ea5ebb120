package providers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/api-service/models"
	"github.com/inkwell/inkwell-server/api-service/providers/email"
	"github.com/inkwell/inkwell-server/api-service/providers/google"
	"github.com/inkwell/inkwell-server/api-service/repos"
)

type Provider interface {
	Login(c *fiber.Ctx)
	Callback(c *fiber.Ctx) (models.OAuthUser, error)
	GetUserInfo(state, code, authState string) (models.OAuthUser, error)
}

func GetProviders(c *config.Config, users *repos.UserRepo) map[string]Provider {
	googleProvider := google.NewGoogleProvider(c, users)
	emailProvider := email.NewEmailProvider(c)

	return map[string]Provider{
		"google": &googleProvider,
		"email":  &emailProvider,
	}
}
