package api

import (
	"errors"

	"gorm.io/gorm"

	iauth "github.com/charlesng35/schedulr/internal/auth"
	"github.com/charlesng35/schedulr/internal/health"
	"github.com/charlesng35/schedulr/internal/services"
	"github.com/charlesng35/schedulr/internal/store"
)

// NewServices wires the gorm-backed stores and the services the router depends on.
func NewServices(db *gorm.DB, jwt *iauth.JWTService) (Services, error) {
	if db == nil {
		return Services{}, errors.New("database handle must be provided")
	}

	records, err := store.NewGormPermissionStore(db)
	if err != nil {
		return Services{}, err
	}
	members, err := store.NewGormTenantUserStore(db)
	if err != nil {
		return Services{}, err
	}

	audit, err := services.NewAuditService(db)
	if err != nil {
		return Services{}, err
	}
	permSvc, err := services.NewPermissionService(records,
		services.WithTenantUserStore(members),
		services.WithAuditService(audit),
	)
	if err != nil {
		return Services{}, err
	}
	initializer, err := services.NewPermissionInitializer(permSvc, nil)
	if err != nil {
		return Services{}, err
	}
	tenants, err := services.NewTenantUserService(db, members, audit)
	if err != nil {
		return Services{}, err
	}

	return Services{
		DB:          db,
		JWT:         jwt,
		Permissions: permSvc,
		Initializer: initializer,
		Tenants:     tenants,
		Audit:       audit,
		Health:      health.NewManager(health.Database(db, 0)),
	}, nil
}
