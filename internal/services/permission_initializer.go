package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/pkg/logger"
	"github.com/charlesng35/schedulr/pkg/metrics"
)

// PermissionCreator is the subset of PermissionService used to provision records.
type PermissionCreator interface {
	CreateUserPermissions(ctx context.Context, input CreateUserPermissionsInput) (*models.UserPermissions, error)
}

// PermissionInitializer repairs missing permission records from tenant membership.
type PermissionInitializer struct {
	creator PermissionCreator
	log     *zap.Logger
}

// NewPermissionInitializer constructs an initializer that provisions records through creator.
func NewPermissionInitializer(creator PermissionCreator, log *zap.Logger) (*PermissionInitializer, error) {
	if creator == nil {
		return nil, errors.New("permission initializer: creator is required")
	}
	if log == nil {
		log = logger.WithModule("permissions.init")
	}
	return &PermissionInitializer{creator: creator, log: log}, nil
}

// ShouldInitializePermissions reports whether role may provision its own permission record.
// Lower roles must be granted access explicitly.
func ShouldInitializePermissions(role permissions.Role) bool {
	return role == permissions.RoleOwner || role == permissions.RoleAdmin
}

// InitializeUserPermissions creates the permission record for userID from tenantUser. Explicit
// membership permissions win over role defaults. Failures are logged and reported as false.
func (i *PermissionInitializer) InitializeUserPermissions(ctx context.Context, userID string, tenantUser *models.TenantUser) bool {
	if tenantUser == nil {
		i.log.Warn("permission initialization skipped: no tenant membership", zap.String("user_id", userID))
		return false
	}

	var explicit []string
	if len(tenantUser.Permissions) > 0 {
		explicit = append([]string(nil), tenantUser.Permissions...)
	}

	role := permissions.Role(tenantUser.Role)
	_, err := i.creator.CreateUserPermissions(ctx, CreateUserPermissionsInput{
		UserID:      userID,
		TenantID:    tenantUser.TenantID,
		Role:        role,
		Permissions: explicit,
	})

	// A concurrent session may have provisioned the record first.
	if err != nil && !errors.Is(err, ErrPermissionsExist) {
		metrics.PermissionInitializations.WithLabelValues(roleLabel(role), "failure").Inc()
		i.log.Warn("permission initialization failed",
			zap.String("user_id", userID),
			zap.String("tenant_id", tenantUser.TenantID),
			zap.String("role", tenantUser.Role),
			zap.Error(err),
		)
		return false
	}

	metrics.PermissionInitializations.WithLabelValues(roleLabel(role), "success").Inc()
	i.log.Info("permission record initialized",
		zap.String("user_id", userID),
		zap.String("tenant_id", tenantUser.TenantID),
		zap.String("role", tenantUser.Role),
	)
	return true
}

func roleLabel(role permissions.Role) string {
	if role.IsValid() {
		return role.String()
	}
	return "unknown"
}
