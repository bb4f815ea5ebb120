package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/uptrace/bun"

	"go.uber.org/fx"
)

type UserController struct {
	fx.In

	Repo            *repos.UserRepo
	VerifyEmailRepo *repos.VerifyEmailRepo
}

var (
	oAuthService string
	validate     = validator.New()
)

func RegisterUserController(r *utils.Router, config *config.Config, db *bun.DB, c UserController) {
	oAuthService = config.OAuthService

	users := r.Group("/users")

	users.Get("/profile", utils.Protected(accessRoute(db)), c.userProfile)
	users.Put("/profile", utils.Protected(accessRoute(db)), c.updateProfile)
	users.Post("/password", utils.Protected(accessRoute(db)), c.changePassword)
	users.Delete("/profile", utils.Protected(accessRoute(db)), c.deactivate)
	users.Get("/verify", c.verifyEmail)

	users.Post("/create", c.createUser)
}

func (r *UserController) userProfile(c *fiber.Ctx) error {
	user, err := r.Repo.UserProfile(c.Context(), c.Locals("user").(int64))
	if err != nil {
		return err
	}

	return c.JSON(user)
}

type updateProfileConfig struct {
	Name     string `json:"name" validate:"required,min=3,max=128"`
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
}

func (r *UserController) updateProfile(c *fiber.Ctx) error {
	config := new(updateProfileConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	err := r.Repo.UpdateProfile(c.Context(), c.Locals("user").(int64), config.Name, config.Username)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated",
	})
}

type changePasswordConfig struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=64"`
}

func (r *UserController) changePassword(c *fiber.Ctx) error {
	config := new(changePasswordConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	credentials, err := r.Repo.GetCredentials(c.Context(), c.Locals("user").(int64))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	// OAuth-only accounts have no password and may set one directly.
	if credentials.Valid && !utils.VerifyHash(config.OldPassword, credentials.String) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid current password",
		})
	}

	hash, err := utils.HashPassword(config.NewPassword)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	if err := r.Repo.SetPassword(c.Context(), c.Locals("user").(int64), hash); err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password changed",
	})
}

func (r *UserController) deactivate(c *fiber.Ctx) error {
	if err := r.Repo.Deactivate(c.Context(), c.Locals("user").(int64)); err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deactivated",
	})
}

func (r *UserController) createUser(c *fiber.Ctx) error {
	a := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(a)

	res := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(res)

	a.Reuse()
	req := a.Request()
	req.Header.SetMethod(fiber.MethodPost)
	uri := oAuthService + "/create"
	req.SetRequestURI(uri)
	req.Header.Set("Content-Type", "application/json")
	req.SetBody(c.Body())

	if err := a.Parse(); err != nil {
		return utils.StandardInternalError(c, err)
	}

	code, body, err := a.SetResponse(res).Timeout(5 * time.Second).Bytes()
	if err != nil || len(err) != 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"errors": func() []string {
				errs := make([]string, len(err))
				for i, a := range err {
					errs[i] = a.Error()
				}
				return errs
			}(),
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Status(code).Send(body)
}

func (r *UserController) verifyEmail(c *fiber.Ctx) error {
	if len(c.Query("code")) != 64 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid code",
		})
	}

	status, err := r.VerifyEmailRepo.VerifyEmail(c.Context(), c.Query("code"))
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	if status {
		id, err := r.VerifyEmailRepo.RemoveCode(c.Context(), c.Query("code"))
		if err != nil {
			return utils.StandardInternalError(c, err)
		}

		err = r.Repo.SetEmailVerified(c.Context(), id)
		if err != nil {
			return utils.StandardInternalError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Email verified",
		})
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired code",
		})
	}
}
