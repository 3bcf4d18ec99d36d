package access

import (
	"context"

	"go.uber.org/zap"

	"github.com/charlesng35/schedulr/internal/permissions"
)

// grants returns the snapshot permissions when the session may answer checks locally.
func (s *Session) grants() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateLoaded || s.snapshot == nil || !s.snapshot.IsActive {
		return nil, false
	}
	return s.snapshot.Permissions, true
}

// HasPermission checks the snapshot for permission.
func (s *Session) HasPermission(permission string) bool {
	granted, ok := s.grants()
	return ok && permissions.HasPermission(granted, permission)
}

// HasAnyPermission checks the snapshot for at least one of required.
func (s *Session) HasAnyPermission(required ...string) bool {
	granted, ok := s.grants()
	return ok && permissions.HasAnyPermission(granted, required)
}

// HasAllPermissions checks the snapshot for every element of required.
func (s *Session) HasAllPermissions(required ...string) bool {
	granted, ok := s.grants()
	return ok && permissions.HasAllPermissions(granted, required)
}

// CheckPermission asks the permission service, ignoring the snapshot.
func (s *Session) CheckPermission(ctx context.Context, permission string) bool {
	return s.serverCheck(ctx, func(ctx context.Context, userID, tenantID string) (bool, error) {
		return s.svc.CheckUserPermission(ctx, userID, tenantID, permission)
	})
}

// CheckAnyPermission asks the permission service whether any of required is granted.
func (s *Session) CheckAnyPermission(ctx context.Context, required ...string) bool {
	return s.serverCheck(ctx, func(ctx context.Context, userID, tenantID string) (bool, error) {
		return s.svc.CheckUserAnyPermission(ctx, userID, tenantID, required)
	})
}

// CheckAllPermissions asks the permission service whether every element of required is granted.
func (s *Session) CheckAllPermissions(ctx context.Context, required ...string) bool {
	return s.serverCheck(ctx, func(ctx context.Context, userID, tenantID string) (bool, error) {
		return s.svc.CheckUserAllPermissions(ctx, userID, tenantID, required)
	})
}

func (s *Session) serverCheck(ctx context.Context, check func(context.Context, string, string) (bool, error)) bool {
	userID, tenantID := s.Identity()
	if userID == "" || tenantID == "" {
		return false
	}

	allowed, err := check(ensureContext(ctx), userID, tenantID)
	if err != nil {
		s.log.Warn("server permission check failed",
			zap.String("user_id", userID),
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return false
	}
	return allowed
}

// Role returns the snapshot role when a record is loaded.
func (s *Session) Role() (permissions.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateLoaded || s.snapshot == nil {
		return "", false
	}
	return permissions.Role(s.snapshot.Role), true
}

// Active reports whether a loaded record is marked active.
func (s *Session) Active() bool {
	_, ok := s.grants()
	return ok
}

// AtLeast reports whether the snapshot role ranks at or above min.
func (s *Session) AtLeast(min permissions.Role) bool {
	role, ok := s.Role()
	return ok && role.AtLeast(min)
}

// IsOwner reports whether the snapshot role is owner.
func (s *Session) IsOwner() bool {
	return s.AtLeast(permissions.RoleOwner)
}

// IsAdmin reports whether the snapshot role is admin or owner.
func (s *Session) IsAdmin() bool {
	return s.AtLeast(permissions.RoleAdmin)
}

// IsManagerOrHigher reports whether the snapshot role is manager, admin or owner.
func (s *Session) IsManagerOrHigher() bool {
	return s.AtLeast(permissions.RoleManager)
}

// IsStaffOrHigher reports whether the snapshot role is staff or above.
func (s *Session) IsStaffOrHigher() bool {
	return s.AtLeast(permissions.RoleStaff)
}
