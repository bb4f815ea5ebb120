package userdata

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// OrganizationMember links one user to one organization with a role and an
// active/inactive status. Rows are never deleted: removal sets the status to
// inactive so invitation history survives. Unique on (organization, user).
type OrganizationMember struct {
	bun.BaseModel `bun:"userdata.organization_members"`

	Id             int64          `bun:",pk,autoincrement" json:"id,omitempty"`
	OrganizationId int64          `json:"organization_id,omitempty"`
	UserId         int64          `json:"user_id,omitempty"`
	Role           string         `json:"role,omitempty"`
	Status         string         `json:"status,omitempty"`
	InvitedBy      sql.NullInt64  `json:"invited_by,omitempty"`
	InviteToken    sql.NullString `json:"-"`
	InviteExpiry   time.Time      `bun:",nullzero" json:"invite_expiry,omitempty"`
	AcceptedAt     time.Time      `bun:",nullzero" json:"accepted_at,omitempty"`
	CreatedAt      time.Time      `bun:",nullzero,default:now()" json:"created_at,omitempty"`
	UpdatedAt      time.Time      `bun:",nullzero,default:now()" json:"updated_at,omitempty"`

	Organization *Organization `bun:"rel:belongs-to,join:organization_id=id" json:"organization,omitempty"`
	User         *User         `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Inviter      *User         `bun:"rel:belongs-to,join:invited_by=id" json:"inviter,omitempty"`
}
