package repos

import (
	"context"

	models "github.com/inkwell/inkwell-server/api-service/models/userdata"
	"github.com/inkwell/inkwell-server/rbac"
	"github.com/uptrace/bun"
)

type OrganizationRepo struct {
	db *bun.DB
}

func NewOrganizationRepo(db *bun.DB) *OrganizationRepo {
	return &OrganizationRepo{db: db}
}

func (c *OrganizationRepo) GetOrganization(ctx context.Context, id int64) (*models.Organization, error) {
	org := new(models.Organization)

	err := c.db.NewSelect().Model(org).Where(`"organization"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return org, nil
}

func (c *OrganizationRepo) ListOrganizations(ctx context.Context, limit int) ([]models.Organization, error) {
	orgs := make([]models.Organization, 0)

	err := c.db.NewSelect().Model(&orgs).Order("id ASC").Limit(limit).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return orgs, nil
}

func (c *OrganizationRepo) UpdateOrganization(ctx context.Context, id int64, name, plan, planStatus string) error {
	q := c.db.NewUpdate().Model((*models.Organization)(nil)).
		Set("updated_at = now()").
		Where("id = ?", id)

	if len(name) > 0 {
		q = q.Set("name = ?", name)
	}
	if len(plan) > 0 {
		q = q.Set("plan = ?", plan)
	}
	if len(planStatus) > 0 {
		q = q.Set("plan_status = ?", planStatus)
	}

	_, err := q.Exec(ctx)
	return err
}

func (c *OrganizationRepo) UpdateSettings(ctx context.Context, id int64, settings map[string]interface{}) error {
	_, err := c.db.NewUpdate().Model((*models.Organization)(nil)).
		Set("settings = ?", settings).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// TransferOwnership moves the owner field to another user. The new owner's
// membership row, if any, goes inactive since ownership is never represented
// as a row, and the previous owner is written back as an active admin.
func (c *OrganizationRepo) TransferOwnership(ctx context.Context, orgId, oldOwnerId, newOwnerId int64) error {
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*models.Organization)(nil)).
			Set("owner_id = ?", newOwnerId).
			Set("updated_at = now()").
			Where("id = ?", orgId).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewUpdate().Model((*models.OrganizationMember)(nil)).
			Set("status = ?", string(rbac.StatusInactive)).
			Set("updated_at = now()").
			Where("organization_id = ? AND user_id = ?", orgId, newOwnerId).
			Exec(ctx)
		if err != nil {
			return err
		}

		member := &models.OrganizationMember{
			OrganizationId: orgId,
			UserId:         oldOwnerId,
			Role:           string(rbac.RoleAdmin),
			Status:         string(rbac.StatusActive),
		}
		_, err = tx.NewInsert().Model(member).
			Column("organization_id", "user_id", "role", "status").
			On("CONFLICT (organization_id, user_id) DO UPDATE").
			Set("role = EXCLUDED.role, status = EXCLUDED.status, updated_at = now()").
			Exec(ctx)
		return err
	})
}
