package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRolePermissionsDefaults(t *testing.T) {
	require.Equal(t, []string{
		ClientsView, ClientsCreate,
		AppointmentsView, AppointmentsCreate, AppointmentsEdit,
		DashboardView,
	}, GetRolePermissions(RoleStaff))

	require.Equal(t, []string{ClientsView, AppointmentsView, DashboardView}, GetRolePermissions(RoleViewer))
	require.Contains(t, GetRolePermissions(RoleManager), ReportsExport)
	require.NotContains(t, GetRolePermissions(RoleManager), SettingsEdit)
}

func TestOwnerDefaultsCoverWholeVocabulary(t *testing.T) {
	require.Equal(t, GetAllPermissions(), GetRolePermissions(RoleOwner))

	id := "test:owner_extension"
	require.NoError(t, Register(&Permission{ID: id}))
	t.Cleanup(func() { Unregister(id) })

	require.Contains(t, GetRolePermissions(RoleOwner), id)
}

func TestAdminDefaultsExcludeTenantLifecycle(t *testing.T) {
	admin := GetRolePermissions(RoleAdmin)
	require.NotContains(t, admin, AdminTenantsCreate)
	require.NotContains(t, admin, AdminTenantsDelete)
	require.Contains(t, admin, AdminTenantsEdit)
	require.Contains(t, admin, UsersEdit)
	require.Len(t, admin, len(GetAllPermissions())-2)
}

func TestUnknownRoleFallbacks(t *testing.T) {
	perms := GetRolePermissions(Role("superuser"))
	require.NotNil(t, perms)
	require.Empty(t, perms)
	require.Equal(t, "No description available", GetRoleDescription(Role("superuser")))

	_, ok := GetRolePermissionSet(Role("superuser"))
	require.False(t, ok)
}

func TestGetRolePermissionsReturnsCopies(t *testing.T) {
	perms := GetRolePermissions(RoleStaff)
	perms[0] = "tampered:value"
	require.Equal(t, ClientsView, GetRolePermissions(RoleStaff)[0])
}

func TestRoleOrdering(t *testing.T) {
	require.Equal(t, []Role{RoleOwner, RoleAdmin, RoleManager, RoleStaff, RoleViewer}, GetAllRoles())

	require.True(t, RoleOwner.AtLeast(RoleAdmin))
	require.True(t, RoleAdmin.AtLeast(RoleAdmin))
	require.False(t, RoleStaff.AtLeast(RoleManager))
	require.True(t, RoleViewer.AtLeast(RoleViewer))
	require.False(t, Role("owners").AtLeast(RoleViewer))
	require.False(t, RoleOwner.AtLeast(Role("")))
	require.Zero(t, Role("ghost").Rank())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("  Manager ")
	require.NoError(t, err)
	require.Equal(t, RoleManager, role)

	_, err = ParseRole("janitor")
	require.Error(t, err)
}

func TestCatalogListsEveryRole(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 5)
	for i, entry := range catalog {
		require.Equal(t, GetAllRoles()[i], entry.Role)
		require.NotEqual(t, "No description available", entry.Description)
		require.NotEmpty(t, entry.Permissions)
	}
}
