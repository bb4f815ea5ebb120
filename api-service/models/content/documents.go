package content

import (
	"time"

	"github.com/uptrace/bun"
)

type Document struct {
	bun.BaseModel `bun:"content.documents"`

	Id             int64     `bun:",pk,autoincrement" json:"id,omitempty"`
	OrganizationId int64     `json:"organization_id,omitempty"`
	AuthorId       int64     `json:"author_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Body           string    `json:"body,omitempty"`
	Prompt         string    `json:"prompt,omitempty"`
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `bun:",nullzero,default:now()" json:"created_at,omitempty"`
	UpdatedAt      time.Time `bun:",nullzero,default:now()" json:"updated_at,omitempty"`
}
