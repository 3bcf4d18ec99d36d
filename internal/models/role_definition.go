package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoleDefinition mirrors the in-process role catalog so it can be queried from SQL.
type RoleDefinition struct {
	ID          string                      `gorm:"primaryKey;size:32" json:"id"`
	Description string                      `json:"description"`
	Rank        int                         `gorm:"column:privilege_rank;not null" json:"rank"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
