package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/schedulr/internal/database/testutil"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	"github.com/charlesng35/schedulr/internal/store"
)

func TestTenantOwnerAndStaffScenario(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	records, err := store.NewGormPermissionStore(db)
	require.NoError(t, err)
	members, err := store.NewGormTenantUserStore(db)
	require.NoError(t, err)
	svc, err := services.NewPermissionService(records, services.WithTenantUserStore(members))
	require.NoError(t, err)
	initializer, err := services.NewPermissionInitializer(svc, nil)
	require.NoError(t, err)
	tenants, err := services.NewTenantUserService(db, members, nil)
	require.NoError(t, err)

	// U1 creates T1 and becomes its owner with a wildcard membership.
	tenant, ownerMember, err := tenants.CreateTenant(ctx, "T1", "U1")
	require.NoError(t, err)

	owner, err := NewSession(svc, initializer)
	require.NoError(t, err)
	require.Equal(t, StateLoaded, owner.SetIdentity(ctx, "U1", tenant.ID, ownerMember))
	require.Equal(t, []string{permissions.Wildcard}, []string(owner.Snapshot().Permissions))

	for _, p := range permissions.GetAllPermissions() {
		require.True(t, owner.HasPermission(p), p)
	}

	// Permissions registered after the record was created are still covered.
	require.NoError(t, permissions.Register(&permissions.Permission{
		ID:          "billing:invoices:view",
		Description: "View invoices",
	}))
	t.Cleanup(func() { permissions.Unregister("billing:invoices:view") })
	require.True(t, owner.HasPermission("billing:invoices:view"))
	require.True(t, owner.CheckPermission(ctx, "billing:invoices:view"))

	// U2 joins as staff; the owner grants the role defaults.
	staffMember, err := tenants.AddTenantUser(ctx, services.CreateTenantUserInput{
		TenantID: tenant.ID,
		UserID:   "U2",
		Role:     permissions.RoleStaff,
	})
	require.NoError(t, err)

	// Staff cannot self-provision.
	staff, err := NewSession(svc, initializer)
	require.NoError(t, err)
	require.Equal(t, StateErrored, staff.SetIdentity(ctx, "U2", tenant.ID, staffMember))

	_, err = owner.CreatePermissions(ctx, "U2", permissions.RoleStaff, nil)
	require.NoError(t, err)

	record, err := svc.GetUserPermissions(ctx, "U2", tenant.ID)
	require.NoError(t, err)
	require.Equal(t, []string{
		"clients:view", "clients:create",
		"appointments:view", "appointments:create", "appointments:edit",
		"dashboard:view",
	}, []string(record.Permissions))

	require.Equal(t, StateLoaded, staff.SetIdentity(ctx, "U2", tenant.ID, staffMember))
	require.False(t, staff.HasPermission(permissions.AdminTenantsEdit))
	require.True(t, staff.HasPermission(permissions.ClientsView))

	allowed, err := svc.CheckUserPermission(ctx, "U2", tenant.ID, permissions.ClientsView)
	require.NoError(t, err)
	require.True(t, allowed)

	// Promotion through the owner session updates the staff member's live record and membership.
	manager := permissions.RoleManager
	_, err = owner.UpdatePermissions(ctx, "U2", &manager, nil)
	require.NoError(t, err)
	require.True(t, staff.CheckPermission(ctx, permissions.ReportsExport))
	require.False(t, staff.HasPermission(permissions.ReportsExport))

	refreshed, err := tenants.GetTenantUser(ctx, "U2", tenant.ID)
	require.NoError(t, err)
	require.Equal(t, "manager", refreshed.Role)
}
