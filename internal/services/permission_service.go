package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/store"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/logger"
	"github.com/charlesng35/schedulr/pkg/metrics"
)

// PermissionService manages per-tenant permission records and answers authoritative checks
// against the live store.
type PermissionService struct {
	records      store.PermissionStore
	tenantUsers  store.TenantUserStore
	auditService *AuditService
	log          *zap.Logger
	now          func() time.Time
}

// PermissionServiceOption customises a PermissionService.
type PermissionServiceOption func(*PermissionService)

// WithTenantUserStore enables mirroring permission updates onto the membership record.
func WithTenantUserStore(tenantUsers store.TenantUserStore) PermissionServiceOption {
	return func(s *PermissionService) {
		s.tenantUsers = tenantUsers
	}
}

// WithAuditService records permission mutations in the audit log.
func WithAuditService(audit *AuditService) PermissionServiceOption {
	return func(s *PermissionService) {
		s.auditService = audit
	}
}

// WithPermissionLogger overrides the service logger.
func WithPermissionLogger(log *zap.Logger) PermissionServiceOption {
	return func(s *PermissionService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) PermissionServiceOption {
	return func(s *PermissionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPermissionService constructs a PermissionService backed by records.
func NewPermissionService(records store.PermissionStore, opts ...PermissionServiceOption) (*PermissionService, error) {
	if records == nil {
		return nil, errors.New("permission service: permission store is required")
	}
	svc := &PermissionService{
		records: records,
		log:     logger.WithModule("permissions"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateUserPermissionsInput describes the payload accepted by CreateUserPermissions.
// A nil Permissions slice means the role defaults apply; a non-nil slice is stored verbatim.
type CreateUserPermissionsInput struct {
	UserID      string
	TenantID    string
	Role        permissions.Role
	Permissions []string
}

// UpdateUserPermissionsInput describes the mutable fields of a permission record.
type UpdateUserPermissionsInput struct {
	Role        *permissions.Role
	Permissions []string
}

// GetUserPermissions returns the record for the pair, or nil without error when none exists.
func (s *PermissionService) GetUserPermissions(ctx context.Context, userID, tenantID string) (*models.UserPermissions, error) {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(userID, tenantID)
	if err != nil {
		return nil, err
	}

	record, err := s.records.FindOne(ctx, userID, tenantID)
	if err != nil {
		return nil, internalError("permission service: load permissions", err)
	}
	return record, nil
}

// CreateUserPermissions inserts a new permission record and returns it as persisted.
func (s *PermissionService) CreateUserPermissions(ctx context.Context, input CreateUserPermissionsInput) (*models.UserPermissions, error) {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(input.UserID, input.TenantID)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(string(input.Role))
	if err != nil {
		return nil, err
	}

	granted := copyPermissions(input.Permissions)
	if granted == nil {
		granted = permissions.GetRolePermissions(role)
	}

	now := s.now().UTC()
	record := &models.UserPermissions{
		UserID:      userID,
		TenantID:    tenantID,
		Role:        role.String(),
		Permissions: datatypes.JSONSlice[string](granted),
		IsActive:    true,
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrPermissionsExist
		}
		return nil, internalError("permission service: create permissions", err)
	}

	created, err := s.records.FindOne(ctx, userID, tenantID)
	if err != nil {
		return nil, internalError("permission service: reload permissions", err)
	}
	if created == nil {
		return nil, ErrPermissionsNotFound.WithMessage("permission record missing after creation")
	}

	recordAudit(s.auditService, s.log, ctx, AuditEntry{
		TenantID: tenantID,
		Action:   "permissions.create",
		Resource: userID,
		Result:   "success",
		Metadata: map[string]any{
			"role":        created.Role,
			"permissions": []string(created.Permissions),
		},
	})

	return created, nil
}

// UpdateUserPermissions patches an existing record. A role change without explicit permissions
// resets the permissions to the new role's defaults. The matching TenantUser, when present, is
// updated as well.
func (s *PermissionService) UpdateUserPermissions(ctx context.Context, userID, tenantID string, input UpdateUserPermissionsInput) (*models.UserPermissions, error) {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(userID, tenantID)
	if err != nil {
		return nil, err
	}

	var (
		patch = store.Patch{UpdatedAt: s.now().UTC()}
		role  permissions.Role
	)
	if input.Role != nil {
		role, err = parseRole(string(*input.Role))
		if err != nil {
			return nil, err
		}
		name := role.String()
		patch.Role = &name
	}

	switch {
	case input.Permissions != nil:
		patch.Permissions = copyPermissions(input.Permissions)
	case input.Role != nil:
		patch.Permissions = permissions.GetRolePermissions(role)
	}

	updated, err := s.records.FindAndUpdate(ctx, userID, tenantID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPermissionsNotFound
		}
		return nil, internalError("permission service: update permissions", err)
	}

	if patch.Role != nil || input.Permissions != nil {
		s.mirrorMembership(ctx, userID, tenantID, patch.Role, input.Permissions)
	}

	recordAudit(s.auditService, s.log, ctx, AuditEntry{
		TenantID: tenantID,
		Action:   "permissions.update",
		Resource: userID,
		Result:   "success",
		Metadata: map[string]any{
			"role":        updated.Role,
			"permissions": []string(updated.Permissions),
		},
	})

	return updated, nil
}

// DeleteUserPermissions removes the record, revoking all access without touching membership.
func (s *PermissionService) DeleteUserPermissions(ctx context.Context, userID, tenantID string) error {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(userID, tenantID)
	if err != nil {
		return err
	}

	if err := s.records.FindAndDelete(ctx, userID, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPermissionsNotFound
		}
		return internalError("permission service: delete permissions", err)
	}

	recordAudit(s.auditService, s.log, ctx, AuditEntry{
		TenantID: tenantID,
		Action:   "permissions.delete",
		Resource: userID,
		Result:   "success",
	})

	return nil
}

// GetTenantUsers lists every permission record of a tenant, newest first.
func (s *PermissionService) GetTenantUsers(ctx context.Context, tenantID string) ([]models.UserPermissions, error) {
	ctx = ensureContext(ctx)

	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, apperrors.NewBadRequest("tenant id is required")
	}

	records, err := s.records.FindAll(ctx, tenantID)
	if err != nil {
		return nil, internalError("permission service: list permissions", err)
	}
	if records == nil {
		records = []models.UserPermissions{}
	}
	return records, nil
}

// CheckUserPermission evaluates permission against the live record. A missing record is denied.
func (s *PermissionService) CheckUserPermission(ctx context.Context, userID, tenantID, permission string) (bool, error) {
	return s.check(ctx, userID, tenantID, permissionLabel(permission), func(granted []string) bool {
		return permissions.HasPermission(granted, permission)
	})
}

// CheckUserAnyPermission reports whether the live record grants at least one of required.
func (s *PermissionService) CheckUserAnyPermission(ctx context.Context, userID, tenantID string, required []string) (bool, error) {
	return s.check(ctx, userID, tenantID, "any", func(granted []string) bool {
		return permissions.HasAnyPermission(granted, required)
	})
}

// CheckUserAllPermissions reports whether the live record grants every element of required.
func (s *PermissionService) CheckUserAllPermissions(ctx context.Context, userID, tenantID string, required []string) (bool, error) {
	return s.check(ctx, userID, tenantID, "all", func(granted []string) bool {
		return permissions.HasAllPermissions(granted, required)
	})
}

func (s *PermissionService) check(ctx context.Context, userID, tenantID, label string, evaluate func([]string) bool) (bool, error) {
	record, err := s.GetUserPermissions(ctx, userID, tenantID)
	if err != nil {
		metrics.PermissionChecks.WithLabelValues(label, "server", "error").Inc()
		if apperrors.IsInternal(err) {
			s.log.Warn("permission check failed",
				zap.String("user_id", userID),
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		}
		return false, err
	}

	allowed := record != nil && record.IsActive && evaluate(record.Permissions)
	metrics.PermissionChecks.WithLabelValues(label, "server", checkResult(allowed)).Inc()
	return allowed, nil
}

// mirrorMembership keeps the TenantUser in step with the permission record. Explicit permissions
// are copied; a role change without them clears the membership grant so the new role's defaults
// apply if the record is ever re-provisioned.
func (s *PermissionService) mirrorMembership(ctx context.Context, userID, tenantID string, role *string, granted []string) {
	if s.tenantUsers == nil {
		return
	}

	patch := store.Patch{Role: role, UpdatedAt: s.now().UTC()}
	if granted != nil {
		patch.Permissions = copyPermissions(granted)
	} else {
		patch.Permissions = []string{}
	}

	err := s.tenantUsers.Update(ctx, userID, tenantID, patch)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fields := []zap.Field{
			zap.String("user_id", userID),
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		}
		if role != nil {
			fields = append(fields, zap.String("role", *role))
		}
		s.log.Warn("mirror permissions onto tenant membership", fields...)
	}
}

func checkResult(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}
