package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardsAdmitOwnerWithoutMembership(t *testing.T) {
	for name, guard := range namedGuards() {
		assert.NoError(t, guard(ownerId, ownerId, nil), name)
	}
}

func TestMemberOrHigher(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleEditor, RoleViewer} {
		assert.NoError(t, MemberOrHigher(ownerId, adminId, member(adminId, role, StatusActive)), string(role))
	}

	assertForbidden(t, MemberOrHigher(ownerId, adminId, nil), "not_a_member")
	assertForbidden(t, MemberOrHigher(ownerId, adminId, member(adminId, RoleAdmin, StatusInactive)), "not_a_member")
}

func TestEditorOrHigherExcludesViewer(t *testing.T) {
	assert.NoError(t, EditorOrHigher(ownerId, adminId, member(adminId, RoleAdmin, StatusActive)))
	assert.NoError(t, EditorOrHigher(ownerId, editorId, member(editorId, RoleEditor, StatusActive)))

	assertForbidden(t, EditorOrHigher(ownerId, viewerId, member(viewerId, RoleViewer, StatusActive)), "insufficient_role")
}

func TestAdminOrOwner(t *testing.T) {
	assert.NoError(t, AdminOrOwner(ownerId, adminId, member(adminId, RoleAdmin, StatusActive)))

	assertForbidden(t, AdminOrOwner(ownerId, editorId, member(editorId, RoleEditor, StatusActive)), "insufficient_role")
	assertForbidden(t, AdminOrOwner(ownerId, adminId, member(adminId, RoleAdmin, StatusInactive)), "not_a_member")
}

func TestOwnerOnlyIgnoresRoles(t *testing.T) {
	assert.NoError(t, OwnerOnly(ownerId, ownerId, nil))

	// Even an active admin is rejected; the role is irrelevant here.
	assertForbidden(t, OwnerOnly(ownerId, adminId, member(adminId, RoleAdmin, StatusActive)), "owner_only")
}

func TestInactiveEqualsNoRow(t *testing.T) {
	inactive := member(adminId, RoleAdmin, StatusInactive)

	for name, guard := range namedGuards() {
		errInactive := guard(ownerId, adminId, inactive)
		errMissing := guard(ownerId, adminId, nil)

		require.Error(t, errInactive, name)
		require.Error(t, errMissing, name)
		assert.Equal(t, errMissing.Error(), errInactive.Error(), name)
	}
}

func namedGuards() map[string]Guard {
	return map[string]Guard{
		"member_or_higher": MemberOrHigher,
		"editor_or_higher": EditorOrHigher,
		"admin_or_owner":   AdminOrOwner,
		"owner_only":       OwnerOnly,
	}
}

func assertForbidden(t *testing.T, err error, reason string) {
	t.Helper()

	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, reason, forbidden.Reason)
}
