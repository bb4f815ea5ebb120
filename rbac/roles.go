package rbac

import "errors"

var ErrUnknownRole = errors.New("unknown role")

// Role is the position of a member inside an organization. Roles form a
// total order: owner > admin > editor > viewer. "owner" is never stored on a
// membership row, it is derived from the organization's owner field.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var roleRanks = map[Role]int{
	RoleOwner:  4,
	RoleAdmin:  3,
	RoleEditor: 2,
	RoleViewer: 1,
}

func (r Role) Rank() int {
	return roleRanks[r]
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r sits at or above min in the role order. Unknown
// roles rank zero and never satisfy anything.
func (r Role) AtLeast(min Role) bool {
	rank := r.Rank()
	return rank > 0 && rank >= min.Rank()
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// AssignableRoles lists the roles a membership row may carry. Ownership is
// not assignable, it moves only by transferring the organization.
func AssignableRoles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

// MemberStatus is the closed membership state set. Removal flips a row to
// inactive instead of deleting it so invitation history survives.
type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
)

// ParseMemberStatus maps the stored status string to the closed enum. Any
// value other than the literal "active", including legacy strings, counts as
// inactive.
func ParseMemberStatus(s string) MemberStatus {
	if s == string(StatusActive) {
		return StatusActive
	}
	return StatusInactive
}
