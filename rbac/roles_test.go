package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.Greater(t, RoleOwner.Rank(), RoleAdmin.Rank())
	assert.Greater(t, RoleAdmin.Rank(), RoleEditor.Rank())
	assert.Greater(t, RoleEditor.Rank(), RoleViewer.Rank())
	assert.Greater(t, RoleViewer.Rank(), 0)
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleOwner, RoleViewer, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleOwner, false},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleAdmin, false},
		{RoleViewer, RoleEditor, false},
		{Role("manager"), RoleViewer, false},
		{Role(""), RoleViewer, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.AtLeast(tt.min), "%s >= %s", tt.role, tt.min)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"owner", "admin", "editor", "viewer"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), r)
	}

	for _, s := range []string{"", "Admin", "superuser", "member"} {
		_, err := ParseRole(s)
		assert.ErrorIs(t, err, ErrUnknownRole, "role %q", s)
	}
}

func TestAssignableRolesExcludeOwner(t *testing.T) {
	for _, r := range AssignableRoles() {
		assert.NotEqual(t, RoleOwner, r)
		assert.True(t, r.Valid())
	}
}

func TestParseMemberStatus(t *testing.T) {
	assert.Equal(t, StatusActive, ParseMemberStatus("active"))
	assert.Equal(t, StatusInactive, ParseMemberStatus("inactive"))

	// Legacy or unexpected values must never count as active.
	for _, s := range []string{"", "Active", "ACTIVE", "pending", "revoked", "true"} {
		assert.Equal(t, StatusInactive, ParseMemberStatus(s), "status %q", s)
	}
}
