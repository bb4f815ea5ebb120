package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	ownerId  = int64(1)
	adminId  = int64(2)
	editorId = int64(3)
	viewerId = int64(4)
)

func member(id int64, role Role, status MemberStatus) *Member {
	return &Member{UserId: id, Role: role, Status: status}
}

func TestOwnerSatisfiesEveryCapability(t *testing.T) {
	capabilities := []Capability{
		ManageOrganization, ManageMembers, InviteMembers, EditContent, ViewContent,
	}

	// The owner has no membership row at all.
	for _, capability := range capabilities {
		assert.True(t, Can(ownerId, ownerId, nil, capability), string(capability))
	}
}

func TestCapabilityMinimumRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Capability
		want       bool
	}{
		{"admin manages org", RoleAdmin, ManageOrganization, true},
		{"admin manages members", RoleAdmin, ManageMembers, true},
		{"admin invites", RoleAdmin, InviteMembers, true},
		{"admin edits", RoleAdmin, EditContent, true},
		{"admin views", RoleAdmin, ViewContent, true},
		{"editor cannot manage org", RoleEditor, ManageOrganization, false},
		{"editor cannot manage members", RoleEditor, ManageMembers, false},
		{"editor cannot invite", RoleEditor, InviteMembers, false},
		{"editor edits", RoleEditor, EditContent, true},
		{"editor views", RoleEditor, ViewContent, true},
		{"viewer cannot edit", RoleViewer, EditContent, false},
		{"viewer views", RoleViewer, ViewContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member(adminId, tt.role, StatusActive)
			assert.Equal(t, tt.want, Can(ownerId, adminId, m, tt.capability))
		})
	}
}

func TestInactiveMembershipRevokesEverything(t *testing.T) {
	capabilities := []Capability{
		ManageOrganization, ManageMembers, InviteMembers, EditContent, ViewContent,
	}

	inactiveAdmin := member(adminId, RoleAdmin, StatusInactive)
	for _, capability := range capabilities {
		assert.False(t, Can(ownerId, adminId, inactiveAdmin, capability), string(capability))
		assert.False(t, Can(ownerId, adminId, nil, capability), string(capability))
	}
}

func TestUnknownCapabilityDenied(t *testing.T) {
	assert.False(t, Can(ownerId, adminId, member(adminId, RoleAdmin, StatusActive), Capability("delete_everything")))
}

func TestOwnerAndEditorScenario(t *testing.T) {
	// A owns org X with no membership row. B is an active editor in X.
	editor := member(editorId, RoleEditor, StatusActive)

	assert.True(t, Can(ownerId, ownerId, nil, EditContent))
	assert.True(t, Can(ownerId, editorId, editor, EditContent))
	assert.False(t, Can(ownerId, editorId, editor, ManageMembers))
}

func TestCanRemoveMember(t *testing.T) {
	admin := member(adminId, RoleAdmin, StatusActive)
	otherAdmin := member(int64(9), RoleAdmin, StatusActive)
	editor := member(editorId, RoleEditor, StatusActive)
	viewer := member(viewerId, RoleViewer, StatusActive)

	tests := []struct {
		name     string
		callerId int64
		caller   *Member
		target   *Member
		want     bool
	}{
		{"owner removes admin", ownerId, nil, otherAdmin, true},
		{"owner removes viewer", ownerId, nil, viewer, true},
		{"admin removes editor", adminId, admin, editor, true},
		{"admin removes viewer", adminId, admin, viewer, true},
		{"admin cannot remove admin", adminId, admin, otherAdmin, false},
		{"editor cannot remove anyone", editorId, editor, viewer, false},
		{"viewer cannot remove anyone", viewerId, viewer, editor, false},
		{"inactive admin cannot remove", adminId, member(adminId, RoleAdmin, StatusInactive), viewer, false},
		{"admin without target row", adminId, admin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRemoveMember(ownerId, tt.callerId, tt.caller, tt.target))
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	admin := member(adminId, RoleAdmin, StatusActive)
	otherAdmin := member(int64(9), RoleAdmin, StatusActive)
	editor := member(editorId, RoleEditor, StatusActive)
	viewer := member(viewerId, RoleViewer, StatusActive)

	tests := []struct {
		name     string
		callerId int64
		caller   *Member
		target   *Member
		newRole  Role
		want     bool
	}{
		{"owner promotes editor to admin", ownerId, nil, editor, RoleAdmin, true},
		{"owner demotes admin", ownerId, nil, otherAdmin, RoleViewer, true},
		{"admin demotes editor to viewer", adminId, admin, editor, RoleViewer, true},
		{"admin promotes viewer to editor", adminId, admin, viewer, RoleEditor, true},
		{"admin cannot promote editor to admin", adminId, admin, editor, RoleAdmin, false},
		{"admin cannot touch another admin", adminId, admin, otherAdmin, RoleViewer, false},
		{"editor cannot change roles", editorId, editor, viewer, RoleEditor, false},
		{"nobody assigns owner", ownerId, nil, editor, RoleOwner, false},
		{"unknown role rejected", ownerId, nil, editor, Role("manager"), false},
		{"missing target rejected", adminId, admin, nil, RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanChangeRole(ownerId, tt.callerId, tt.caller, tt.target, tt.newRole))
		})
	}
}
