package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/api-service/controllers"
	"github.com/inkwell/inkwell-server/api-service/providers"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/http-go"
	"github.com/inkwell/inkwell-server/utils-go"
	"go.uber.org/fx"
)

func main() {

	opts := []fx.Option{}
	opts = append(opts, provideOptions()...)
	opts = append(opts, fx.Invoke(run))

	app := fx.New(opts...)

	app.Run()
}

func provideOptions() []fx.Option {
	return []fx.Option{
		fx.Invoke(utils.ConfigureLogger),
		fx.Provide(config.Parse),
		fx.Invoke(func(config *config.Config) {
			utils.InitSharedConstants(*utils.ParsePublicKey(config.JwtPublicKey))
		}),
		fx.Provide(config.ProvidePostgres),
		fx.Provide(config.ProvideSmtp),
		fx.Provide(config.ProvideRedis),
		fx.Provide(http.CreateServer),
		fx.Provide(utils.GetDefaultRouter),
		fx.Provide(repos.NewUserRepo),
		fx.Provide(repos.NewOrganizationRepo),
		fx.Provide(repos.NewMemberRepo),
		fx.Provide(repos.NewDocumentRepo),
		fx.Provide(repos.NewUsageRepo),
		fx.Provide(repos.NewVerifyEmailRepo),
		fx.Provide(providers.GetProviders),
		fx.Invoke(controllers.RegisterUserController),
		fx.Invoke(controllers.RegisterAuthController),
		fx.Invoke(controllers.RegisterEmailController),
		fx.Invoke(controllers.RegisterOrganizationController),
		fx.Invoke(controllers.RegisterMemberController),
		fx.Invoke(controllers.RegisterContentController),
		fx.Invoke(controllers.RegisterAnalyticsController),
		fx.Invoke(controllers.RegisterHealthController),
	}
}

func run(app *fiber.App, config *config.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errChan := make(chan error)

			go func() {
				errChan <- app.Listen(config.Port)
			}()

			select {
			case err := <-errChan:
				return err
			case <-time.After(100 * time.Millisecond):
				return nil
			}
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}
