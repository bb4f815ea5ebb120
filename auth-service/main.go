package main

import (
	"crypto/rsa"
	"database/sql"
	"encoding/json"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/models"
	"github.com/inkwell/inkwell-server/server-go"
	"github.com/inkwell/inkwell-server/utils-go"
	_ "github.com/lib/pq"
)

var (
	defaultRedirectUri string
	client             Client
	db                 *sql.DB
	jwtPrivateKey      rsa.PrivateKey
	jwtPublicKey       rsa.PublicKey
	apiService         string
	validate           *validator.Validate
	passwordRegexes    []*regexp.Regexp
)

type user struct {
	Id       string
	Name     string
	Password sql.NullString
	Provider string
	IsActive bool
}

type codeToken struct {
	Code string `json:"code"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type tokenRequest struct {
	ClientId     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
	Code         string `json:"code" form:"code"`
}

type refreshRequest struct {
	ClientId     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type userDetails struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Provider   string `json:"provider"`
	IsVerified bool   `json:"is_verified"`
}

type createUser struct {
	Name     string `json:"name" validate:"required,min=3,max=128"`
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64,password"`
}

func main() {
	utils.ConfigureLogger()
	c, _ := Parse()

	jwtPublicKey, jwtPrivateKey = parseKeys(c)
	utils.InitSharedConstants(jwtPublicKey)

	defaultRedirectUri = c.RedirectUri
	client = c.Clients
	apiService = c.ApiService

	validate = validator.New()
	validate.RegisterValidation("password", validPassword)

	passwordRegexes = append(passwordRegexes, regexp.MustCompile(`[^A-Z\n]*[A-Z]`))
	passwordRegexes = append(passwordRegexes, regexp.MustCompile(`[^a-z\n]*[a-z]`))
	passwordRegexes = append(passwordRegexes, regexp.MustCompile(`[^0-9\n]*[0-9]`))
	passwordRegexes = append(passwordRegexes, regexp.MustCompile(`[^#?!@$%^&*\n-]*[#?!@$%^&*-]`))

	db = getDbConnection(c.Dsn)

	app := server.CreateServer(&c.Config)

	app.Get("/oauth2/authorize", authorize)

	app.Post("/oauth2/token", getToken)

	app.Get("/oauth2/token", getToken)

	app.Post("/oauth2/refresh", refresh)

	app.Get("/oauth2/userinfo", utils.Protected(utils.JwtMiddlewareConfig{
		ReadFrom: "header",
		Class:    "access",
		Scopes:   []string{"basic"},
	}), userInfo)

	app.Post("/oauth2/create", createAccount)

	app.Listen(c.Port)
}

func validPassword(f1 validator.FieldLevel) bool {
	val := []byte(f1.Field().String())
	for _, regex := range passwordRegexes {
		if !regex.Match(val) {
			return false
		}
	}

	return true
}

func badCode(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(OAuthError{
		Error:            "access_denied",
		ErrorDescription: "invalid code",
	})
}

func jwtCreateError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(OAuthError{
		Error:            "server_error",
		ErrorDescription: "could not create jwt",
	})
}

func userInfo(c *fiber.Ctx) error {
	user := new(userDetails)
	err := db.QueryRow("SELECT name, username, email, provider, is_verified FROM userdata.users WHERE id = $1", c.Locals("user").(int64)).Scan(&user.Name, &user.Username, &user.Email, &user.Provider, &user.IsVerified)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(OAuthError{
			Error:            "server_error",
			ErrorDescription: "could not get user info",
		})
	}

	return c.JSON(user)
}

// createAccount registers an email/password user and their default
// organization in one transaction, then hands the welcome mail off to the
// api service so the verification code is stored alongside the user.
func createAccount(c *fiber.Ctx) error {
	user := new(createUser)

	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if errors := utils.ValidateStruct(validate.Struct(user)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	var userId int64
	err = tx.QueryRow("INSERT INTO userdata.users (name, username, email, provider, password, is_active) VALUES ($1, $2, $3, $4, $5, true) RETURNING id", user.Name, user.Username, user.Email, "email", hashedPassword).Scan(&userId)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email or username already registered",
		})
	}

	_, err = tx.Exec("INSERT INTO userdata.organizations (name, owner_id, plan) VALUES ($1, $2, 'free')", user.Name+"'s workspace", userId)
	if err != nil {
		tx.Rollback()
		return utils.StandardInternalError(c, err)
	}

	if err := tx.Commit(); err != nil {
		return utils.StandardInternalError(c, err)
	}

	a := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(a)

	res := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(res)

	a.Reuse()
	req := a.Request()
	req.Header.SetMethod(fiber.MethodPost)
	req.SetRequestURI(apiService + "/email/send")
	req.Header.Set("Content-Type", "application/json")

	body, err := json.Marshal(models.SendEmailConfig{
		To:             []string{user.Email},
		Subject:        "Welcome to Inkwell, {{user.name}}",
		Body:           "Hi {{user.name}},\n\nYour workspace is ready. Confirm your address with this code: {{code}}",
		WithVerifyCode: true,
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	req.SetBody(body)
	if err := a.Parse(); err != nil {
		return utils.StandardInternalError(c, err)
	}

	code, _, errArr := a.SetResponse(res).Timeout(5 * time.Second).Bytes()
	if errArr != nil && len(errArr) != 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"errors": func() []string {
				errs := make([]string, len(errArr))
				for i, a := range errArr {
					errs[i] = a.Error()
				}
				return errs
			}(),
		})
	}

	if code != fiber.StatusOK && code != fiber.StatusCreated {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "unable to send verification email",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "created",
	})
}
