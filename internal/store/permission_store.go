package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/models"
)

// GormPermissionStore implements PermissionStore on top of gorm.
type GormPermissionStore struct {
	db *gorm.DB
}

var _ PermissionStore = (*GormPermissionStore)(nil)

// NewGormPermissionStore constructs a PermissionStore backed by db.
func NewGormPermissionStore(db *gorm.DB) (*GormPermissionStore, error) {
	if db == nil {
		return nil, errors.New("permission store: db is required")
	}
	return &GormPermissionStore{db: db}, nil
}

func (s *GormPermissionStore) FindOne(ctx context.Context, userID, tenantID string) (*models.UserPermissions, error) {
	var record models.UserPermissions
	err := s.db.WithContext(ensureContext(ctx)).
		Where("user_id = ? AND tenant_id = ?", strings.TrimSpace(userID), strings.TrimSpace(tenantID)).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("permission store: find", err)
	}
	return &record, nil
}

func (s *GormPermissionStore) Insert(ctx context.Context, record *models.UserPermissions) (string, error) {
	if record == nil {
		return "", errors.New("permission store: record is required")
	}
	if err := s.db.WithContext(ensureContext(ctx)).Create(record).Error; err != nil {
		return "", translate("permission store: insert", err)
	}
	return record.ID, nil
}

func (s *GormPermissionStore) FindAndUpdate(ctx context.Context, userID, tenantID string, patch Patch) (*models.UserPermissions, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.UserPermissions{}).
		Where("user_id = ? AND tenant_id = ?", strings.TrimSpace(userID), strings.TrimSpace(tenantID)).
		Updates(patch.columns())
	if result.Error != nil {
		return nil, translate("permission store: update", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	record, err := s.FindOne(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *GormPermissionStore) FindAndDelete(ctx context.Context, userID, tenantID string) error {
	result := s.db.WithContext(ensureContext(ctx)).
		Where("user_id = ? AND tenant_id = ?", strings.TrimSpace(userID), strings.TrimSpace(tenantID)).
		Delete(&models.UserPermissions{})
	if result.Error != nil {
		return translate("permission store: delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPermissionStore) FindAll(ctx context.Context, tenantID string) ([]models.UserPermissions, error) {
	var records []models.UserPermissions
	err := s.db.WithContext(ensureContext(ctx)).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, translate("permission store: list", err)
	}
	return records, nil
}
