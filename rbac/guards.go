package rbac

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated covers every identity failure: missing, malformed,
// expired or wrong-class token, unknown user, deactivated user. Callers must
// not be able to tell which one happened.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrOrganizationNotFound is checked before membership, so a request against
// a missing organization surfaces as 404 rather than 403.
var ErrOrganizationNotFound = errors.New("organization not found")

// ForbiddenError carries a reason string describing the caller's own
// insufficiency. It never references other users' data.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

func Forbidden(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// Guard is a precondition on an organization-scoped operation. A nil return
// admits the caller; otherwise the error is ErrUnauthenticated, a
// *ForbiddenError or ErrOrganizationNotFound, nothing else.
type Guard func(ownerId, userId int64, m *Member) error

// RequireRole builds a guard from an explicit role set. The owner always
// passes, before the set is consulted. An empty set admits nobody but the
// owner. Non-owners need an active membership whose role is in the set.
func RequireRole(roles ...Role) Guard {
	return func(ownerId, userId int64, m *Member) error {
		if userId == ownerId {
			return nil
		}

		if len(roles) == 0 {
			return Forbidden("owner_only")
		}

		if !m.active() {
			return Forbidden("not_a_member")
		}

		for _, r := range roles {
			if m.Role == r {
				return nil
			}
		}

		return Forbidden("insufficient_role")
	}
}

// The named guards are plain applications of RequireRole.
var (
	MemberOrHigher = RequireRole(RoleAdmin, RoleEditor, RoleViewer)
	EditorOrHigher = RequireRole(RoleAdmin, RoleEditor)
	AdminOrOwner   = RequireRole(RoleAdmin)
	OwnerOnly      = RequireRole()
)
