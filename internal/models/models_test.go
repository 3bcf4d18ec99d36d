package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	require.NoError(t, base.BeforeCreate(nil))
	require.NotEmpty(t, base.ID)
}

func TestBaseModelBeforeCreateKeepsExplicitID(t *testing.T) {
	base := BaseModel{ID: "fixed"}
	require.NoError(t, base.BeforeCreate(nil))
	require.Equal(t, "fixed", base.ID)
}

func TestAuditLogBeforeCreateGeneratesID(t *testing.T) {
	var entry AuditLog
	require.NoError(t, entry.BeforeCreate(nil))
	require.NotEmpty(t, entry.ID)
}

func TestUserPermissionsCloneIsDeep(t *testing.T) {
	original := &UserPermissions{
		UserID:      "u1",
		TenantID:    "t1",
		Role:        "staff",
		Permissions: datatypes.JSONSlice[string]{"clients:view"},
		IsActive:    true,
	}

	clone := original.Clone()
	clone.Permissions[0] = "clients:delete"
	clone.Role = "owner"

	require.Equal(t, "clients:view", original.Permissions[0])
	require.Equal(t, "staff", original.Role)
	require.Nil(t, (*UserPermissions)(nil).Clone())
}
