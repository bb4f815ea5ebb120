package rbac

// Capability is a named permission gated by a minimum role.
type Capability string

const (
	ManageOrganization Capability = "manage_organization"
	ManageMembers      Capability = "manage_members"
	InviteMembers      Capability = "invite_members"
	EditContent        Capability = "edit_content"
	ViewContent        Capability = "view_content"
)

var minimumRole = map[Capability]Role{
	ManageOrganization: RoleAdmin,
	ManageMembers:      RoleAdmin,
	InviteMembers:      RoleAdmin,
	EditContent:        RoleEditor,
	ViewContent:        RoleViewer,
}

// Member is the resolved membership state the evaluator works on. A nil
// *Member means no row exists for the (user, organization) pair.
type Member struct {
	UserId int64
	Role   Role
	Status MemberStatus
}

func (m *Member) active() bool {
	return m != nil && m.Status == StatusActive
}

// Can decides a plain capability check. The organization owner passes
// unconditionally, before any role is looked at. Everyone else needs an
// active membership at or above the capability's minimum role.
func Can(ownerId, userId int64, m *Member, capability Capability) bool {
	if userId == ownerId {
		return true
	}

	min, ok := minimumRole[capability]
	if !ok {
		return false
	}

	return m.active() && m.Role.AtLeast(min)
}

// CanRemoveMember applies the asymmetric removal rule: the owner removes
// anyone, an admin removes only editor or viewer targets. Admins cannot
// remove other admins, and the owner has no row to remove.
func CanRemoveMember(ownerId, callerId int64, caller, target *Member) bool {
	if callerId == ownerId {
		return true
	}

	if !caller.active() || caller.Role != RoleAdmin {
		return false
	}

	return target != nil && withinBand(target.Role)
}

// CanChangeRole applies the asymmetric role-change rule: the owner sets any
// assignable role on any member, an admin may only move a target whose
// current role is editor or viewer to another role in that same band. This
// keeps an admin from creating, promoting or demoting a peer admin.
func CanChangeRole(ownerId, callerId int64, caller, target *Member, newRole Role) bool {
	if target == nil || !newRole.Valid() || newRole == RoleOwner {
		return false
	}

	if callerId == ownerId {
		return true
	}

	if !caller.active() || caller.Role != RoleAdmin {
		return false
	}

	return withinBand(target.Role) && withinBand(newRole)
}

func withinBand(r Role) bool {
	return r == RoleEditor || r == RoleViewer
}
