package models

import "gorm.io/datatypes"

// TenantUser links a user to a tenant with a role. Permissions is either empty, meaning the role
// defaults apply, or an explicit override such as ["*"] for owners.
type TenantUser struct {
	BaseModel

	TenantID    string                      `gorm:"size:128;not null;uniqueIndex:idx_tenant_users_user_tenant,priority:2" json:"tenant_id"`
	UserID      string                      `gorm:"size:128;not null;uniqueIndex:idx_tenant_users_user_tenant,priority:1" json:"user_id"`
	Role        string                      `gorm:"size:32;not null" json:"role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	IsActive    bool                        `gorm:"not null;default:true" json:"is_active"`
}
