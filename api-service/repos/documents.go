package repos

import (
	"context"
	"database/sql"
	"errors"

	models "github.com/inkwell/inkwell-server/api-service/models/content"
	"github.com/uptrace/bun"
)

type DocumentRepo struct {
	db *bun.DB
}

func NewDocumentRepo(db *bun.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (c *DocumentRepo) AddDocument(ctx context.Context, doc models.Document) (int64, error) {
	_, err := c.db.NewInsert().Model(&doc).
		Column("organization_id", "author_id", "title", "body", "prompt", "status").
		Returning("id").
		Exec(ctx)
	return doc.Id, err
}

func (c *DocumentRepo) UpdateDocument(ctx context.Context, orgId, docId int64, title, body, status string) (bool, error) {
	q := c.db.NewUpdate().Model((*models.Document)(nil)).
		Set("updated_at = now()").
		Where("id = ? AND organization_id = ?", docId, orgId)

	if len(title) > 0 {
		q = q.Set("title = ?", title)
	}
	if len(body) > 0 {
		q = q.Set("body = ?", body)
	}
	if len(status) > 0 {
		q = q.Set("status = ?", status)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (c *DocumentRepo) GetDocument(ctx context.Context, orgId, docId int64) (*models.Document, error) {
	doc := new(models.Document)

	err := c.db.NewSelect().Model(doc).
		Where("id = ? AND organization_id = ?", docId, orgId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return doc, nil
}

func (c *DocumentRepo) ListDocuments(ctx context.Context, orgId int64) ([]models.Document, error) {
	docs := make([]models.Document, 0)

	err := c.db.NewSelect().Model(&docs).
		Where("organization_id = ?", orgId).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return docs, nil
}
