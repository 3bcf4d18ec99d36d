// Package store persists permission and tenant membership records keyed by (user, tenant).
//
// Backend errors are translated here into ErrNotFound and ErrDuplicate so that callers never
// inspect driver specific error values.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/charlesng35/schedulr/internal/models"
)

var (
	// ErrNotFound is returned when a keyed mutation finds no matching record.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when an insert collides with an existing (user, tenant) record.
	ErrDuplicate = errors.New("store: record already exists")
)

// Patch describes a partial update of a permission or membership record. Nil fields are left
// untouched; a non-nil empty Permissions clears the grant. A zero UpdatedAt stamps the current time.
type Patch struct {
	Role        *string
	Permissions []string
	UpdatedAt   time.Time
}

func (p Patch) columns() map[string]any {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	updates := map[string]any{"updated_at": updatedAt.UTC()}
	if p.Role != nil {
		updates["role"] = *p.Role
	}
	if p.Permissions != nil {
		updates["permissions"] = datatypes.JSONSlice[string](p.Permissions)
	}
	return updates
}

// PermissionStore persists UserPermissions records.
type PermissionStore interface {
	// FindOne returns nil, nil when no record exists for the pair.
	FindOne(ctx context.Context, userID, tenantID string) (*models.UserPermissions, error)
	Insert(ctx context.Context, record *models.UserPermissions) (string, error)
	FindAndUpdate(ctx context.Context, userID, tenantID string, patch Patch) (*models.UserPermissions, error)
	FindAndDelete(ctx context.Context, userID, tenantID string) error
	// FindAll orders records by creation time, newest first.
	FindAll(ctx context.Context, tenantID string) ([]models.UserPermissions, error)
}

// TenantUserStore persists tenant membership records.
type TenantUserStore interface {
	FindOne(ctx context.Context, userID, tenantID string) (*models.TenantUser, error)
	Insert(ctx context.Context, record *models.TenantUser) (string, error)
	// Update applies patch to the membership, returning ErrNotFound when none exists.
	Update(ctx context.Context, userID, tenantID string, patch Patch) error
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
