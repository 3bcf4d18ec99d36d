package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.TenantUser{},
		&models.UserPermissions{},
		&models.RoleDefinition{},
		&models.AuditLog{},
		&models.CacheEntry{},
	)
}

// SeedData mirrors the role catalog into the database.
func SeedData(db *gorm.DB) error {
	return permissions.Sync(context.Background(), db)
}
