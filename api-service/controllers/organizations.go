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

type OrganizationController struct {
	fx.In

	Repo     *repos.OrganizationRepo
	UserRepo *repos.UserRepo
}

func RegisterOrganizationController(r *utils.Router, config *config.Config, db *bun.DB, c OrganizationController) {
	orgs := r.Group("/organizations")

	orgs.Get("/:orgId", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.getOrganization)

	orgs.Put("/:orgId", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.AdminOrOwner,
		Db:    db,
	}), c.updateOrganization)

	orgs.Put("/:orgId/settings", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.AdminOrOwner,
		Db:    db,
	}), c.updateSettings)

	orgs.Post("/:orgId/transfer", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.OwnerOnly,
		Db:    db,
	}), c.transferOwnership)

	r.Get("/admin/organizations", utils.Protected(superuserRoute(db)), c.listOrganizations)
}

func (r *OrganizationController) getOrganization(c *fiber.Ctx) error {
	return c.JSON(c.Locals("org").(*models.Organization))
}

type updateOrgConfig struct {
	Name       string `json:"name" validate:"omitempty,min=1,max=128"`
	Plan       string `json:"plan" validate:"omitempty,oneof=free starter growth enterprise"`
	PlanStatus string `json:"plan_status" validate:"omitempty,oneof=trialing active past_due cancelled"`
}

func (r *OrganizationController) updateOrganization(c *fiber.Ctx) error {
	config := new(updateOrgConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	org := c.Locals("org").(*models.Organization)

	err := r.Repo.UpdateOrganization(c.Context(), org.Id, config.Name, config.Plan, config.PlanStatus)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Organization updated",
	})
}

type updateSettingsConfig struct {
	Settings map[string]interface{} `json:"settings" validate:"required"`
}

func (r *OrganizationController) updateSettings(c *fiber.Ctx) error {
	config := new(updateSettingsConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	org := c.Locals("org").(*models.Organization)

	err := r.Repo.UpdateSettings(c.Context(), org.Id, config.Settings)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Settings updated",
	})
}

type transferConfig struct {
	NewOwnerId int64 `json:"new_owner_id" validate:"required,gt=0"`
}

func (r *OrganizationController) transferOwnership(c *fiber.Ctx) error {
	config := new(transferConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	org := c.Locals("org").(*models.Organization)

	newOwner, err := r.UserRepo.UserProfile(c.Context(), config.NewOwnerId)
	if err != nil || !newOwner.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "New owner must be an active user",
		})
	}

	err = r.Repo.TransferOwnership(c.Context(), org.Id, org.OwnerId, config.NewOwnerId)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Ownership transferred",
	})
}

func (r *OrganizationController) listOrganizations(c *fiber.Ctx) error {
	orgs, err := r.Repo.ListOrganizations(c.Context(), 100)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(orgs)
}
