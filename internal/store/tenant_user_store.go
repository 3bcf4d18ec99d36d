package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/models"
)

// GormTenantUserStore implements TenantUserStore on top of gorm.
type GormTenantUserStore struct {
	db *gorm.DB
}

var _ TenantUserStore = (*GormTenantUserStore)(nil)

// NewGormTenantUserStore constructs a TenantUserStore backed by db.
func NewGormTenantUserStore(db *gorm.DB) (*GormTenantUserStore, error) {
	if db == nil {
		return nil, errors.New("tenant user store: db is required")
	}
	return &GormTenantUserStore{db: db}, nil
}

func (s *GormTenantUserStore) FindOne(ctx context.Context, userID, tenantID string) (*models.TenantUser, error) {
	var record models.TenantUser
	err := s.db.WithContext(ensureContext(ctx)).
		Where("user_id = ? AND tenant_id = ?", strings.TrimSpace(userID), strings.TrimSpace(tenantID)).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("tenant user store: find", err)
	}
	return &record, nil
}

func (s *GormTenantUserStore) Insert(ctx context.Context, record *models.TenantUser) (string, error) {
	if record == nil {
		return "", errors.New("tenant user store: record is required")
	}
	if err := s.db.WithContext(ensureContext(ctx)).Create(record).Error; err != nil {
		return "", translate("tenant user store: insert", err)
	}
	return record.ID, nil
}

func (s *GormTenantUserStore) Update(ctx context.Context, userID, tenantID string, patch Patch) error {
	result := s.db.WithContext(ensureContext(ctx)).
		Model(&models.TenantUser{}).
		Where("user_id = ? AND tenant_id = ?", strings.TrimSpace(userID), strings.TrimSpace(tenantID)).
		Updates(patch.columns())
	if result.Error != nil {
		return translate("tenant user store: update", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
