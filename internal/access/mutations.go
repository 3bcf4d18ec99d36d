package access

import (
	"context"
	"strings"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
)

// CreatePermissions creates a permission record for userID in the session tenant. A nil
// customPermissions applies the role defaults. When userID is the session user the snapshot is
// replaced with the created record.
func (s *Session) CreatePermissions(ctx context.Context, userID string, role permissions.Role, customPermissions []string) (*models.UserPermissions, error) {
	gen, tenantID, err := s.mutationTarget()
	if err != nil {
		return nil, err
	}

	record, err := s.svc.CreateUserPermissions(ensureContext(ctx), services.CreateUserPermissionsInput{
		UserID:      userID,
		TenantID:    tenantID,
		Role:        role,
		Permissions: customPermissions,
	})
	if err != nil {
		return nil, err
	}

	s.refreshIfSelf(gen, userID, record)
	return record, nil
}

// UpdatePermissions updates the record of userID in the session tenant, refreshing the snapshot
// when userID is the session user.
func (s *Session) UpdatePermissions(ctx context.Context, userID string, role *permissions.Role, perms []string) (*models.UserPermissions, error) {
	gen, tenantID, err := s.mutationTarget()
	if err != nil {
		return nil, err
	}

	record, err := s.svc.UpdateUserPermissions(ensureContext(ctx), userID, tenantID, services.UpdateUserPermissionsInput{
		Role:        role,
		Permissions: perms,
	})
	if err != nil {
		return nil, err
	}

	s.refreshIfSelf(gen, userID, record)
	return record, nil
}

func (s *Session) mutationTarget() (uint64, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tenantID == "" {
		return 0, "", ErrNoIdentity
	}
	return s.generation, s.tenantID, nil
}

func (s *Session) refreshIfSelf(gen uint64, userID string, record *models.UserPermissions) {
	if record == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || strings.TrimSpace(userID) != s.userID {
		return
	}
	s.snapshot = record.Clone()
	s.state = StateLoaded
	s.err = nil
}
