package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/uptrace/bun"
)

var ErrInviteInvalid = errors.New("invitation invalid or expired")

type MemberRepo struct {
	db *bun.DB
}

func NewMemberRepo(db *bun.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

// GetMember returns the row for the (organization, user) pair regardless of
// status, or nil when none exists. Status interpretation belongs to rbac.
func (c *MemberRepo) GetMember(ctx context.Context, orgId, userId int64) (*models.OrganizationMember, error) {
	member := new(models.OrganizationMember)

	err := c.db.NewSelect().Model(member).
		Where("organization_id = ? AND user_id = ?", orgId, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return member, nil
}

func (c *MemberRepo) GetMemberById(ctx context.Context, orgId, memberId int64) (*models.OrganizationMember, error) {
	member := new(models.OrganizationMember)

	err := c.db.NewSelect().Model(member).
		Where(`"organization_member"."id" = ? AND organization_id = ?`, memberId, orgId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return member, nil
}

func (c *MemberRepo) ListActiveMembers(ctx context.Context, orgId int64) ([]models.OrganizationMember, error) {
	members := make([]models.OrganizationMember, 0)

	err := c.db.NewSelect().Model(&members).
		Relation("User", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.ExcludeColumn("password", "provider_details")
		}).
		Where("organization_id = ? AND status = ?", orgId, string(rbac.StatusActive)).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return members, nil
}

// Invite writes a pending row: status inactive, token and expiry set. An
// earlier inactive row for the same pair is reused so the unique
// (organization, user) constraint holds and history is kept.
func (c *MemberRepo) Invite(ctx context.Context, member models.OrganizationMember) error {
	_, err := c.db.NewInsert().Model(&member).
		Column("organization_id", "user_id", "role", "status", "invited_by", "invite_token", "invite_expiry").
		On("CONFLICT (organization_id, user_id) DO UPDATE").
		Set("role = EXCLUDED.role, invited_by = EXCLUDED.invited_by, invite_token = EXCLUDED.invite_token, invite_expiry = EXCLUDED.invite_expiry, updated_at = now()").
		Exec(ctx)
	return err
}

// Accept activates the pending row matching the token. Expired or unknown
// tokens yield ErrInviteInvalid.
func (c *MemberRepo) Accept(ctx context.Context, token string, userId int64) (*models.OrganizationMember, error) {
	member := new(models.OrganizationMember)

	res, err := c.db.NewUpdate().Model(member).
		Set("status = ?", string(rbac.StatusActive)).
		Set("accepted_at = now()").
		Set("invite_token = NULL").
		Set("updated_at = now()").
		Where("invite_token = ? AND user_id = ? AND invite_expiry >= ?", token, userId, time.Now()).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInviteInvalid
	}

	return member, nil
}

func (c *MemberRepo) SetStatus(ctx context.Context, memberId int64, status rbac.MemberStatus) error {
	_, err := c.db.NewUpdate().Model((*models.OrganizationMember)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = now()").
		Where("id = ?", memberId).
		Exec(ctx)
	return err
}

func (c *MemberRepo) SetRole(ctx context.Context, memberId int64, role rbac.Role) error {
	_, err := c.db.NewUpdate().Model((*models.OrganizationMember)(nil)).
		Set("role = ?", string(role)).
		Set("updated_at = now()").
		Where("id = ?", memberId).
		Exec(ctx)
	return err
}
