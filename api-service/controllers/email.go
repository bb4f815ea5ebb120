package controllers

import (
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/api-service/models"
	"github.com/inkwell/inkwell-server/api-service/models/system"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/utils-go"
	mail "github.com/xhit/go-simple-mail/v2"
	"go.uber.org/fx"
	"golang.org/x/net/context"
)

type sendEmailResponse struct {
	Status string   `json:"status,omitempty"`
	Failed []failed `json:"failed,omitempty"`
}

type failed struct {
	Email string `json:"email,omitempty"`
	Error string `json:"error,omitempty"`
}

type EmailController struct {
	fx.In

	UserRepo        *repos.UserRepo
	VerifyEmailRepo *repos.VerifyEmailRepo
	SmtpClient      *mail.SMTPClient
}

var from string

func RegisterEmailController(r *utils.Router, config *config.Config, c EmailController) {
	from = config.EmailConfig.SmtpUser

	r.Post("/email/send", c.sendEmailList)
}

// sendEmailList is the internal delivery endpoint the auth service calls
// after registration. Placeholders {{user.*}} and {{code}} are replaced per
// recipient; {{code}} also stores a verification row valid for a day.
func (r *EmailController) sendEmailList(c *fiber.Ctx) error {
	config := new(models.SendEmailConfig)

	if err := c.BodyParser(config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(sendEmailResponse{
			Status: "failed: could not parse request",
		})
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	res := r.sendEmails(config)

	return c.Status(fiber.StatusOK).JSON(sendEmailResponse{
		Status: func() string {
			if len(res) > 0 {
				return "failed"
			}

			return "success"
		}(),
		Failed: res,
	})
}

func (r *EmailController) sendEmails(config *models.SendEmailConfig) []failed {
	res := make([]failed, 0)

	for _, to := range config.To {
		body := config.Body
		subject := config.Subject

		user, err := r.UserRepo.GetUserByEmail(context.Background(), to)
		if err != nil {
			res = append(res, failed{
				Email: to,
				Error: "failed: could not fetch user from db",
			})
			continue
		}

		userMap := user.ToMap()
		body = utils.Format(body, userMap)
		subject = utils.Format(subject, userMap)

		if config.WithVerifyCode {
			code := hex.EncodeToString(utils.GenerateRandomBytes(32))

			err := r.VerifyEmailRepo.Add(context.Background(), system.VerifyEmail{
				UserId: user.Id,
				Code:   code,
				Expiry: time.Now().Add(time.Hour * 24),
			})
			if err != nil {
				res = append(res, failed{
					Email: to,
					Error: "failed: could not add verify email",
				})
				continue
			}

			body = utils.Format(body, map[string]string{"{{code}}": code})
			subject = utils.Format(subject, map[string]string{"{{code}}": code})
		}

		if err := utils.SendMail(r.SmtpClient, from, to, subject, body); err != nil {
			res = append(res, failed{
				Email: to,
				Error: err.Error(),
			})
		}
	}

	return res
}
