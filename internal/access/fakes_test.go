package access

import (
	"context"
	"sync"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
)

// fakeService is an in-memory PermissionService. Loads for a user listed in gates block until
// the gate channel is closed; started receives the user id when such a load begins.
type fakeService struct {
	mu       sync.Mutex
	records  map[string]*models.UserPermissions
	getErr   error
	checkErr error
	gates    map[string]chan struct{}
	started  chan string
	gets     int
}

func newFakeService() *fakeService {
	return &fakeService{
		records: map[string]*models.UserPermissions{},
		gates:   map[string]chan struct{}{},
		started: make(chan string, 4),
	}
}

func key(userID, tenantID string) string { return userID + "|" + tenantID }

func (f *fakeService) put(userID, tenantID, role string, active bool, perms ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key(userID, tenantID)] = &models.UserPermissions{
		UserID:      userID,
		TenantID:    tenantID,
		Role:        role,
		Permissions: perms,
		IsActive:    active,
	}
}

func (f *fakeService) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func (f *fakeService) GetUserPermissions(_ context.Context, userID, tenantID string) (*models.UserPermissions, error) {
	f.mu.Lock()
	f.gets++
	gate := f.gates[userID]
	f.mu.Unlock()

	if gate != nil {
		f.started <- userID
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[key(userID, tenantID)].Clone(), nil
}

func (f *fakeService) CreateUserPermissions(_ context.Context, input services.CreateUserPermissionsInput) (*models.UserPermissions, error) {
	perms := input.Permissions
	if perms == nil {
		perms = permissions.GetRolePermissions(input.Role)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[key(input.UserID, input.TenantID)]; exists {
		return nil, services.ErrPermissionsExist
	}
	record := &models.UserPermissions{
		UserID:      input.UserID,
		TenantID:    input.TenantID,
		Role:        input.Role.String(),
		Permissions: perms,
		IsActive:    true,
	}
	f.records[key(input.UserID, input.TenantID)] = record
	return record.Clone(), nil
}

func (f *fakeService) UpdateUserPermissions(_ context.Context, userID, tenantID string, input services.UpdateUserPermissionsInput) (*models.UserPermissions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[key(userID, tenantID)]
	if !ok {
		return nil, services.ErrPermissionsNotFound
	}
	if input.Role != nil {
		record.Role = input.Role.String()
		if input.Permissions == nil {
			record.Permissions = permissions.GetRolePermissions(*input.Role)
		}
	}
	if input.Permissions != nil {
		record.Permissions = input.Permissions
	}
	return record.Clone(), nil
}

func (f *fakeService) live(userID, tenantID string) (*models.UserPermissions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	record := f.records[key(userID, tenantID)]
	if record == nil || !record.IsActive {
		return nil, nil
	}
	return record.Clone(), nil
}

func (f *fakeService) CheckUserPermission(_ context.Context, userID, tenantID, permission string) (bool, error) {
	record, err := f.live(userID, tenantID)
	if err != nil || record == nil {
		return false, err
	}
	return permissions.HasPermission(record.Permissions, permission), nil
}

func (f *fakeService) CheckUserAnyPermission(_ context.Context, userID, tenantID string, required []string) (bool, error) {
	record, err := f.live(userID, tenantID)
	if err != nil || record == nil {
		return false, err
	}
	return permissions.HasAnyPermission(record.Permissions, required), nil
}

func (f *fakeService) CheckUserAllPermissions(_ context.Context, userID, tenantID string, required []string) (bool, error) {
	record, err := f.live(userID, tenantID)
	if err != nil || record == nil {
		return false, err
	}
	return permissions.HasAllPermissions(record.Permissions, required), nil
}

// fakeInitializer provisions through the fake service unless fail is set. skipCreate reports
// success without creating anything.
type fakeInitializer struct {
	svc        *fakeService
	fail       bool
	skipCreate bool
	calls      []*models.TenantUser
}

func (i *fakeInitializer) InitializeUserPermissions(ctx context.Context, userID string, tenantUser *models.TenantUser) bool {
	i.calls = append(i.calls, tenantUser)
	if i.fail {
		return false
	}
	if i.skipCreate {
		return true
	}
	var explicit []string
	if len(tenantUser.Permissions) > 0 {
		explicit = tenantUser.Permissions
	}
	_, err := i.svc.CreateUserPermissions(ctx, services.CreateUserPermissionsInput{
		UserID:      userID,
		TenantID:    tenantUser.TenantID,
		Role:        permissions.Role(tenantUser.Role),
		Permissions: explicit,
	})
	return err == nil
}

var errBackend = apperrors.ErrInternalServer.WithInternal(context.DeadlineExceeded)
