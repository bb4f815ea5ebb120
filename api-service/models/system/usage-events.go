package system

import (
	"time"

	"github.com/uptrace/bun"
)

type UsageEvent struct {
	bun.BaseModel `bun:"system.usage_events"`

	Id             int64     `bun:",pk,autoincrement" json:"id,omitempty"`
	OrganizationId int64     `json:"organization_id,omitempty"`
	UserId         int64     `json:"user_id,omitempty"`
	Action         string    `json:"action,omitempty"`
	Resource       string    `json:"resource,omitempty"`
	CreatedAt      time.Time `bun:",nullzero,default:now()" json:"created_at,omitempty"`
}

type UsageSummary struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
