package controllers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	content "github.com/inkwell/inkwell-server/api-service/models/content"
	"github.com/inkwell/inkwell-server/api-service/models/system"
	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
)

type ContentController struct {
	fx.In

	Repo      *repos.DocumentRepo
	UsageRepo *repos.UsageRepo
}

func RegisterContentController(r *utils.Router, config *config.Config, db *bun.DB, c ContentController) {
	docs := r.Group("/organizations/:orgId/documents")

	docs.Post("/", utils.Protected(verifiedRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.EditorOrHigher,
		Db:    db,
	}), c.createDocument)

	docs.Put("/:docId", utils.Protected(verifiedRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.EditorOrHigher,
		Db:    db,
	}), c.updateDocument)

	docs.Get("/", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.listDocuments)

	docs.Get("/:docId", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.getDocument)
}

type createDocumentConfig struct {
	Title  string `json:"title" validate:"required,min=1,max=256"`
	Body   string `json:"body"`
	Prompt string `json:"prompt" validate:"max=4096"`
}

func (r *ContentController) createDocument(c *fiber.Ctx) error {
	config := new(createDocumentConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	org := c.Locals("org").(*models.Organization)
	userId := c.Locals("user").(int64)

	id, err := r.Repo.AddDocument(c.Context(), content.Document{
		OrganizationId: org.Id,
		AuthorId:       userId,
		Title:          config.Title,
		Body:           config.Body,
		Prompt:         config.Prompt,
		Status:         "draft",
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	r.recordUsage(org.Id, userId, "document_created", strconv.FormatInt(id, 10))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Document created",
		"id":      id,
	})
}

type updateDocumentConfig struct {
	Title  string `json:"title" validate:"omitempty,min=1,max=256"`
	Body   string `json:"body"`
	Status string `json:"status" validate:"omitempty,oneof=draft review published archived"`
}

func (r *ContentController) updateDocument(c *fiber.Ctx) error {
	config := new(updateDocumentConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	docId, err := strconv.ParseInt(c.Params("docId"), 10, 64)
	if err != nil {
		return utils.NotFound(c, "Document not found")
	}

	org := c.Locals("org").(*models.Organization)

	found, err := r.Repo.UpdateDocument(c.Context(), org.Id, docId, config.Title, config.Body, config.Status)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}
	if !found {
		return utils.NotFound(c, "Document not found")
	}

	r.recordUsage(org.Id, c.Locals("user").(int64), "document_updated", c.Params("docId"))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Document updated",
	})
}

func (r *ContentController) listDocuments(c *fiber.Ctx) error {
	org := c.Locals("org").(*models.Organization)

	docs, err := r.Repo.ListDocuments(c.Context(), org.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(docs)
}

func (r *ContentController) getDocument(c *fiber.Ctx) error {
	docId, err := strconv.ParseInt(c.Params("docId"), 10, 64)
	if err != nil {
		return utils.NotFound(c, "Document not found")
	}

	org := c.Locals("org").(*models.Organization)

	doc, err := r.Repo.GetDocument(c.Context(), org.Id, docId)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}
	if doc == nil {
		return utils.NotFound(c, "Document not found")
	}

	r.recordUsage(org.Id, c.Locals("user").(int64), "document_viewed", c.Params("docId"))

	return c.JSON(doc)
}

// Usage accounting must never fail a content request.
func (r *ContentController) recordUsage(orgId, userId int64, action, resource string) {
	err := r.UsageRepo.AddEvent(context.Background(), system.UsageEvent{
		OrganizationId: orgId,
		UserId:         userId,
		Action:         action,
		Resource:       resource,
	})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Could not record usage event")
	}
}
