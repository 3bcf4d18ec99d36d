package permissions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/schedulr/internal/models"
)

// Sync persists the role catalog to the backing database.
func Sync(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("permission: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx := db.WithContext(ctx)
	for _, entry := range Catalog() {
		record := models.RoleDefinition{
			ID:          entry.Role.String(),
			Description: entry.Description,
			Rank:        entry.Role.Rank(),
			Permissions: datatypes.JSONSlice[string](entry.Permissions),
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "privilege_rank", "permissions", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("permission: sync role %s: %w", entry.Role, err)
		}
	}

	return nil
}
