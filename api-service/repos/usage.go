package repos

import (
	"context"

	models "github.com/inkwell/inkwell-server/api-service/models/system"
	"github.com/uptrace/bun"
)

type UsageRepo struct {
	db *bun.DB
}

func NewUsageRepo(db *bun.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

func (c *UsageRepo) AddEvent(ctx context.Context, event models.UsageEvent) error {
	_, err := c.db.NewInsert().Model(&event).
		Column("organization_id", "user_id", "action", "resource").
		Exec(ctx)
	return err
}

func (c *UsageRepo) Summary(ctx context.Context, orgId int64) ([]models.UsageSummary, error) {
	summary := make([]models.UsageSummary, 0)

	err := c.db.NewSelect().Model((*models.UsageEvent)(nil)).
		ColumnExpr("action").
		ColumnExpr("count(*) AS count").
		Where("organization_id = ?", orgId).
		Group("action").
		Order("count DESC").
		Scan(ctx, &summary)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
