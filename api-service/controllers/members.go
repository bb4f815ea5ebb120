package controllers

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/api-service/repos"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	mail "github.com/xhit/go-simple-mail/v2"
	"go.uber.org/fx"
)

type MemberController struct {
	fx.In

	Repo       *repos.MemberRepo
	UserRepo   *repos.UserRepo
	SmtpClient *mail.SMTPClient
}

var (
	inviteExpiry time.Duration
	inviteFrom   string
	redirectBase string
)

func RegisterMemberController(r *utils.Router, config *config.Config, db *bun.DB, c MemberController) {
	inviteExpiry = time.Hour * 24 * time.Duration(config.InviteExpiryDays)
	inviteFrom = config.EmailConfig.SmtpUser
	redirectBase = config.RedirectUri

	members := r.Group("/organizations/:orgId/members")

	members.Get("/", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.listMembers)

	members.Post("/invite", utils.Protected(verifiedRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.inviteMember)

	members.Delete("/:memberId", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.removeMember)

	members.Put("/:memberId/role", utils.Protected(accessRoute(db)), utils.OrgProtected(utils.OrgGuardConfig{
		Param: "orgId",
		Guard: rbac.MemberOrHigher,
		Db:    db,
	}), c.changeRole)

	r.Post("/organizations/members/accept", utils.Protected(accessRoute(db)), c.acceptInvite)
}

func (r *MemberController) listMembers(c *fiber.Ctx) error {
	org := c.Locals("org").(*models.Organization)

	members, err := r.Repo.ListActiveMembers(c.Context(), org.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.JSON(members)
}

type inviteConfig struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

func (r *MemberController) inviteMember(c *fiber.Ctx) error {
	config := new(inviteConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	org := c.Locals("org").(*models.Organization)
	userId := c.Locals("user").(int64)
	member, _ := c.Locals("member").(*rbac.Member)

	if !rbac.Can(org.OwnerId, userId, member, rbac.InviteMembers) {
		return utils.Forbidden(c, "insufficient_role")
	}

	role, err := rbac.ParseRole(config.Role)
	if err != nil || role == rbac.RoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	target, err := r.UserRepo.GetUserByEmail(c.Context(), config.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No account with that email",
		})
	}

	if target.Id == org.OwnerId {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User already owns this organization",
		})
	}

	existing, err := r.Repo.GetMember(c.Context(), org.Id, target.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}
	if existing != nil && rbac.ParseMemberStatus(existing.Status) == rbac.StatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User is already a member",
		})
	}

	token := hex.EncodeToString(utils.GenerateRandomBytes(32))

	err = r.Repo.Invite(c.Context(), models.OrganizationMember{
		OrganizationId: org.Id,
		UserId:         target.Id,
		Role:           string(role),
		Status:         string(rbac.StatusInactive),
		InvitedBy:      sql.NullInt64{Int64: userId, Valid: true},
		InviteToken:    sql.NullString{String: token, Valid: true},
		InviteExpiry:   time.Now().Add(inviteExpiry),
	})
	if err != nil {
		return utils.StandardInternalError(c, err)
	}

	body := fmt.Sprintf(
		"You have been invited to join <b>%s</b> as %s.<br>Accept here: %s/invitations?token=%s",
		org.Name, string(role), redirectBase, token,
	)
	if err := utils.SendMail(r.SmtpClient, inviteFrom, target.Email, "Invitation to "+org.Name, body); err != nil {
		log.Error().Err(err).Str("email", target.Email).Msg("Could not send invitation email")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Invitation sent",
	})
}

type acceptConfig struct {
	Token string `json:"token" validate:"required,len=64"`
}

func (r *MemberController) acceptInvite(c *fiber.Ctx) error {
	config := new(acceptConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	if errors := utils.ValidateStruct(validate.Struct(config)); len(errors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errors)
	}

	member, err := r.Repo.Accept(c.Context(), config.Token, c.Locals("user").(int64))
	if err != nil {
		if err == repos.ErrInviteInvalid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid or expired invitation",
			})
		}
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(member)
}

func (r *MemberController) removeMember(c *fiber.Ctx) error {
	org := c.Locals("org").(*models.Organization)
	userId := c.Locals("user").(int64)
	member, _ := c.Locals("member").(*rbac.Member)

	target, err := r.targetMember(c, org.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}
	if target == nil {
		return utils.NotFound(c, "Member not found")
	}

	if !rbac.CanRemoveMember(org.OwnerId, userId, member, targetView(target)) {
		return utils.Forbidden(c, "insufficient_role")
	}

	if err := r.Repo.SetStatus(c.Context(), target.Id, rbac.StatusInactive); err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Member removed",
	})
}

type changeRoleConfig struct {
	Role string `json:"role" validate:"required"`
}

func (r *MemberController) changeRole(c *fiber.Ctx) error {
	config := new(changeRoleConfig)
	if err := c.BodyParser(config); err != nil {
		return utils.StandardCouldNotParse(c)
	}

	newRole, err := rbac.ParseRole(config.Role)
	if err != nil || newRole == rbac.RoleOwner {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	org := c.Locals("org").(*models.Organization)
	userId := c.Locals("user").(int64)
	member, _ := c.Locals("member").(*rbac.Member)

	target, err := r.targetMember(c, org.Id)
	if err != nil {
		return utils.StandardInternalError(c, err)
	}
	if target == nil {
		return utils.NotFound(c, "Member not found")
	}

	if !rbac.CanChangeRole(org.OwnerId, userId, member, targetView(target), newRole) {
		return utils.Forbidden(c, "insufficient_role")
	}

	if err := r.Repo.SetRole(c.Context(), target.Id, newRole); err != nil {
		return utils.StandardInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Role changed",
	})
}

// targetMember loads the active membership row addressed by :memberId. Nil
// with no error means the row is absent or inactive; removal and role
// changes only apply to active members.
func (r *MemberController) targetMember(c *fiber.Ctx, orgId int64) (*models.OrganizationMember, error) {
	memberId, err := strconv.ParseInt(c.Params("memberId"), 10, 64)
	if err != nil {
		return nil, nil
	}

	target, err := r.Repo.GetMemberById(c.Context(), orgId, memberId)
	if err != nil {
		return nil, err
	}
	if target == nil || rbac.ParseMemberStatus(target.Status) != rbac.StatusActive {
		return nil, nil
	}

	return target, nil
}

func targetView(target *models.OrganizationMember) *rbac.Member {
	role, err := rbac.ParseRole(target.Role)
	if err != nil {
		return nil
	}

	return &rbac.Member{
		UserId: target.UserId,
		Role:   role,
		Status: rbac.ParseMemberStatus(target.Status),
	}
}
