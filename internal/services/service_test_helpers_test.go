package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/database/testutil"
	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/store"
)

type permissionFixture struct {
	db          *gorm.DB
	svc         *PermissionService
	records     *store.GormPermissionStore
	tenantUsers *store.GormTenantUserStore
	audit       *AuditService
}

func newPermissionFixture(t *testing.T, opts ...PermissionServiceOption) permissionFixture {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	records, err := store.NewGormPermissionStore(db)
	require.NoError(t, err)
	tenantUsers, err := store.NewGormTenantUserStore(db)
	require.NoError(t, err)
	audit, err := NewAuditService(db)
	require.NoError(t, err)

	opts = append([]PermissionServiceOption{
		WithTenantUserStore(tenantUsers),
		WithAuditService(audit),
	}, opts...)
	svc, err := NewPermissionService(records, opts...)
	require.NoError(t, err)

	return permissionFixture{db: db, svc: svc, records: records, tenantUsers: tenantUsers, audit: audit}
}

func (f permissionFixture) deactivate(t *testing.T, userID, tenantID string) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.UserPermissions{}).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Update("is_active", false).Error)
}

var errStoreDown = errors.New("connection refused")

// failingPermissionStore simulates an unreachable backend.
type failingPermissionStore struct{}

func (failingPermissionStore) FindOne(context.Context, string, string) (*models.UserPermissions, error) {
	return nil, errStoreDown
}

func (failingPermissionStore) Insert(context.Context, *models.UserPermissions) (string, error) {
	return "", errStoreDown
}

func (failingPermissionStore) FindAndUpdate(context.Context, string, string, store.Patch) (*models.UserPermissions, error) {
	return nil, errStoreDown
}

func (failingPermissionStore) FindAndDelete(context.Context, string, string) error {
	return errStoreDown
}

func (failingPermissionStore) FindAll(context.Context, string) ([]models.UserPermissions, error) {
	return nil, errStoreDown
}

// vanishingPermissionStore accepts inserts but never finds them again.
type vanishingPermissionStore struct {
	failingPermissionStore
}

func (vanishingPermissionStore) Insert(context.Context, *models.UserPermissions) (string, error) {
	return "id-1", nil
}

func (vanishingPermissionStore) FindOne(context.Context, string, string) (*models.UserPermissions, error) {
	return nil, nil
}
