package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/store"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/logger"
)

// TenantUserService manages tenants and their membership records.
type TenantUserService struct {
	db           *gorm.DB
	members      store.TenantUserStore
	auditService *AuditService
	log          *zap.Logger
}

// NewTenantUserService constructs a TenantUserService.
func NewTenantUserService(db *gorm.DB, members store.TenantUserStore, audit *AuditService) (*TenantUserService, error) {
	if db == nil {
		return nil, errors.New("tenant user service: db is required")
	}
	if members == nil {
		return nil, errors.New("tenant user service: tenant user store is required")
	}
	return &TenantUserService{
		db:           db,
		members:      members,
		auditService: audit,
		log:          logger.WithModule("tenants"),
	}, nil
}

// CreateTenantUserInput describes a new membership. Empty Permissions defer to role defaults.
type CreateTenantUserInput struct {
	TenantID    string
	UserID      string
	Role        permissions.Role
	Permissions []string
}

// CreateTenant creates a tenant owned by ownerID together with the owner's wildcard membership.
// The owner's permission record is provisioned lazily on first access.
func (s *TenantUserService) CreateTenant(ctx context.Context, name, ownerID string) (*models.Tenant, *models.TenantUser, error) {
	ctx = ensureContext(ctx)

	name = strings.TrimSpace(name)
	ownerID = strings.TrimSpace(ownerID)
	if name == "" {
		return nil, nil, apperrors.NewBadRequest("tenant name is required")
	}
	if ownerID == "" {
		return nil, nil, apperrors.NewBadRequest("owner id is required")
	}

	tenant := &models.Tenant{Name: name, OwnerID: ownerID}
	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, nil, internalError("tenant user service: create tenant", err)
	}

	member, err := s.AddTenantUser(ctx, CreateTenantUserInput{
		TenantID:    tenant.ID,
		UserID:      ownerID,
		Role:        permissions.RoleOwner,
		Permissions: []string{permissions.Wildcard},
	})
	if err != nil {
		return nil, nil, err
	}

	return tenant, member, nil
}

// GetTenant loads a tenant by id.
func (s *TenantUserService) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	ctx = ensureContext(ctx)

	var tenant models.Tenant
	err := s.db.WithContext(ctx).Take(&tenant, "id = ?", strings.TrimSpace(tenantID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound.WithMessage("tenant not found")
	}
	if err != nil {
		return nil, internalError("tenant user service: load tenant", err)
	}
	return &tenant, nil
}

// AddTenantUser records that a user belongs to a tenant with a role.
func (s *TenantUserService) AddTenantUser(ctx context.Context, input CreateTenantUserInput) (*models.TenantUser, error) {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(input.UserID, input.TenantID)
	if err != nil {
		return nil, err
	}
	role, err := parseRole(string(input.Role))
	if err != nil {
		return nil, err
	}

	member := &models.TenantUser{
		TenantID:    tenantID,
		UserID:      userID,
		Role:        role.String(),
		Permissions: datatypes.JSONSlice[string](normaliseIDs(input.Permissions)),
		IsActive:    true,
	}
	if _, err := s.members.Insert(ctx, member); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrTenantUserExists
		}
		return nil, internalError("tenant user service: add member", err)
	}

	recordAudit(s.auditService, s.log, ctx, AuditEntry{
		TenantID: tenantID,
		Action:   "tenant_user.create",
		Resource: userID,
		Result:   "success",
		Metadata: map[string]any{"role": member.Role},
	})

	return member, nil
}

// GetTenantUser returns the membership for the pair, or nil without error when absent.
func (s *TenantUserService) GetTenantUser(ctx context.Context, userID, tenantID string) (*models.TenantUser, error) {
	ctx = ensureContext(ctx)

	userID, tenantID, err := requireKey(userID, tenantID)
	if err != nil {
		return nil, err
	}

	member, err := s.members.FindOne(ctx, userID, tenantID)
	if err != nil {
		return nil, internalError("tenant user service: load member", err)
	}
	return member, nil
}
