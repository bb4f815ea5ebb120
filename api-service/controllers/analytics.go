package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
)

type AnalyticsController struct {
	fx.In

	Repo *repos.UsageRepo
}

func RegisterAnalyticsController(r *utils.Router, config *config.Config, db *bun.DB, c AnalyticsController) {
	r.Get("/organizations/:orgId/usage", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.AdminOrOwner,
		Db:    db,
	}), c.usageSummary)
}

func (r *AnalyticsController) usageSummary(c *fiber.Ctx) error {
	org := c.Locals("org").(*models.Organization)

	summary, err := r.Repo.Summary(c.Context(), org.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"organization": org.Id,
		"usage":        summary,
	})
}
