package userdata

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"userdata.users"`

	Id              int64                  `bun:",pk,autoincrement" json:"id,omitempty"`
	Name            string                 `json:"name,omitempty"`
	Username        string                 `json:"username,omitempty"`
	Email           string                 `json:"email,omitempty"`
	Provider        string                 `json:"provider,omitempty"`
	ProviderDetails map[string]interface{} `bun:",json_use_number" json:"provider_details,omitempty"`
	Password        sql.NullString         `json:"-"`
	IsActive        bool                   `json:"is_active,omitempty"`
	IsVerified      bool                   `json:"is_verified,omitempty"`
	IsSuperuser     bool                   `json:"is_superuser,omitempty"`
	CreatedAt       time.Time              `bun:",nullzero,default:now()" json:"created_at,omitempty"`
	UpdatedAt       time.Time              `bun:",nullzero,default:now()" json:"updated_at,omitempty"`

	Organizations []Organization `bun:"rel:has-many,join:id=owner_id" json:"organizations,omitempty"`
}

func (user *User) ToMap() map[string]string {
	return map[string]string{
		"{{user.id}}":    strconv.FormatInt(user.Id, 10),
		"{{user.name}}":  user.Name,
		"{{user.email}}": user.Email,
	}
}
