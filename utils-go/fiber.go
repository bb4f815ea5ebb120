package utils

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/uptrace/bun"
)

const authScheme = "Bearer"

type Router struct {
	fiber.Router
}

func GetDefaultRouter(app *fiber.App) *Router {
	temp := app.Group("")
	return &Router{Router: temp}
}

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// JwtMiddlewareConfig drives Protected. Class is the required token class
// ("access" or "refresh"). With a Db set the subject is resolved to a user
// row and unknown or deactivated users are rejected the same way a bad token
// is. RequireVerified and RequireSuperuser narrow the accepted identity set
// on top of the base active check.
type JwtMiddlewareConfig struct {
	ReadFrom         string
	Class            string
	Scopes           []string
	RequireVerified  bool
	RequireSuperuser bool
	Db               *bun.DB
}

func Protected(config JwtMiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawToken, err := readToken(c, config.ReadFrom)
		if err != nil {
			return Unauthenticated(c, "Missing or malformed JWT")
		}

		claims, err := VerifyToken(rawToken, config.Class)
		if err != nil {
			return Unauthenticated(c, "Invalid JWT")
		}

		for _, scope := range config.Scopes {
			if IsInList(scope, &claims.Scopes) == -1 {
				return Forbidden(c, "invalid_scope")
			}
		}

		c.Locals("user", claims.UserId)

		if config.Db != nil {
			user := new(userdata.User)
			err := config.Db.NewSelect().Model(user).
				Column("id", "name", "username", "email", "is_active", "is_verified", "is_superuser").
				Where(`"user"."id" = ?`, claims.UserId).
				Scan(c.Context())
			if err != nil || !user.IsActive {
				// Unknown and deactivated users are indistinguishable from a
				// bad token on purpose.
				return Unauthenticated(c, "Invalid JWT")
			}

			if config.RequireVerified && !user.IsVerified {
				return Forbidden(c, "not_verified")
			}

			if config.RequireSuperuser && !user.IsSuperuser {
				return Forbidden(c, "not_superuser")
			}

			c.Locals("currentUser", user)
		}

		return c.Next()
	}
}

// OrgGuardConfig attaches an rbac guard to an organization-scoped route.
// Protected must run first so c.Locals("user") is set.
type OrgGuardConfig struct {
	Param string
	Guard rbac.Guard
	Db    *bun.DB
}

// OrgProtected resolves the organization (404 when missing), then the
// caller's membership row, and runs the guard. On success the organization
// and parsed membership are stored in locals "org" and "member".
func OrgProtected(config OrgGuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgId, err := strconv.ParseInt(c.Params(config.Param), 10, 64)
		if err != nil {
			return NotFound(c, "Organization not found")
		}

		org := new(userdata.Organization)
		err = config.Db.NewSelect().Model(org).
			Where(`"organization"."id" = ?`, orgId).
			Scan(c.Context())
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFound(c, "Organization not found")
			}
			return StandardInternalError(c, err)
		}

		userId, ok := c.Locals("user").(int64)
		if !ok {
			return Unauthenticated(c, "Invalid JWT")
		}

		member, err := resolveMember(c, config.Db, orgId, userId)
		if err != nil {
			return StandardInternalError(c, err)
		}

		if err := config.Guard(org.OwnerId, userId, member); err != nil {
			var forbidden *rbac.ForbiddenError
			if errors.As(err, &forbidden) {
				return Forbidden(c, forbidden.Reason)
			}
			return Unauthenticated(c, "Invalid JWT")
		}

		c.Locals("org", org)
		if member != nil {
			c.Locals("member", member)
		}

		return c.Next()
	}
}

func resolveMember(c *fiber.Ctx, db *bun.DB, orgId, userId int64) (*rbac.Member, error) {
	row := new(userdata.OrganizationMember)
	err := db.NewSelect().Model(row).
		Where("organization_id = ? AND user_id = ?", orgId, userId).
		Scan(c.Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	role, err := rbac.ParseRole(row.Role)
	if err != nil {
		// A row with a role outside the enum grants nothing.
		return nil, nil
	}

	return &rbac.Member{
		UserId: row.UserId,
		Role:   role,
		Status: rbac.ParseMemberStatus(row.Status),
	}, nil
}

func readToken(c *fiber.Ctx, readFrom string) (string, error) {
	if readFrom == "header" {
		auth := c.Get("Authorization")
		l := len(authScheme)
		if len(auth) > l+1 && strings.EqualFold(auth[:l], authScheme) {
			return auth[l+1:], nil
		}

		return "", errors.New("Missing or malformed JWT")
	} else if readFrom == "cookie" {
		token := c.Cookies("accessToken")
		if token == "" {
			return "", errors.New("Missing or malformed JWT")
		}

		return token, nil
	}
	return "", errors.New("Invalid token read location")
}

func Unauthenticated(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":             "access_denied",
		"error_description": description,
	})
}

func Forbidden(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":             "access_denied",
		"error_description": reason,
	})
}

func NotFound(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":             "not_found",
		"error_description": description,
	})
}

func SetStateCookie(state string, c *fiber.Ctx) {
	c.ClearCookie("authstate")
	c.Cookie(&fiber.Cookie{
		Name:     "authstate",
		Secure:   false,
		HTTPOnly: false,
		Value:    state,
		MaxAge:   60,
	})
}

func StandardInternalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func StandardCouldNotParse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Could not parse request",
	})
}
