package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

// Organization is owned by exactly one user. The owner is a full-access
// member without a membership row.
type Organization struct {
	bun.BaseModel `bun:"userdata.organizations"`

	Id         int64                  `bun:",pk,autoincrement" json:"id,omitempty"`
	Name       string                 `json:"name,omitempty"`
	OwnerId    int64                  `json:"owner_id,omitempty"`
	Plan       string                 `json:"plan,omitempty"`
	PlanStatus string                 `json:"plan_status,omitempty"`
	Settings   map[string]interface{} `bun:",json_use_number" json:"settings,omitempty"`
	CreatedAt  time.Time              `bun:",nullzero,default:now()" json:"created_at,omitempty"`
	UpdatedAt  time.Time              `bun:",nullzero,default:now()" json:"updated_at,omitempty"`

	Owner   *User                `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`
	Members []OrganizationMember `bun:"rel:has-many,join:id=organization_id" json:"members,omitempty"`
}
