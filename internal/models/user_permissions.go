package models

import "gorm.io/datatypes"

// UserPermissions is the materialised permission set consulted at check time for one user in one tenant.
type UserPermissions struct {
	BaseModel

	UserID      string                      `gorm:"size:128;not null;uniqueIndex:idx_user_permissions_user_tenant,priority:1" json:"user_id"`
	TenantID    string                      `gorm:"size:128;not null;index;uniqueIndex:idx_user_permissions_user_tenant,priority:2" json:"tenant_id"`
	Role        string                      `gorm:"size:32;not null" json:"role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	IsActive    bool                        `gorm:"not null;default:true" json:"is_active"`
}

// TableName keeps the plural table name stable regardless of naming strategy.
func (UserPermissions) TableName() string {
	return "user_permissions"
}

// Clone returns a deep copy so callers cannot mutate a shared snapshot.
func (p *UserPermissions) Clone() *UserPermissions {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Permissions != nil {
		cp.Permissions = append(datatypes.JSONSlice[string](nil), p.Permissions...)
	}
	return &cp
}
