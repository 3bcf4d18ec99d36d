package permissions

import (
	"fmt"
	"strings"
)

// Role is a named privilege tier within a tenant.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

const noDescription = "No description available"

// RolePermissions is the immutable default grant for a role.
type RolePermissions struct {
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	Description string   `json:"description"`
}

// roleOrder lists roles from most to least privileged.
var roleOrder = []Role{RoleOwner, RoleAdmin, RoleManager, RoleStaff, RoleViewer}

var roleRank = map[Role]int{
	RoleOwner:   5,
	RoleAdmin:   4,
	RoleManager: 3,
	RoleStaff:   2,
	RoleViewer:  1,
}

var roleDescriptions = map[Role]string{
	RoleOwner:   "Full access to every tenant feature, including tenant administration",
	RoleAdmin:   "Manages users, settings and all tenant data",
	RoleManager: "Manages clients, appointments and reports",
	RoleStaff:   "Day-to-day scheduling and client intake",
	RoleViewer:  "Read-only access",
}

var adminExcluded = map[string]struct{}{
	AdminTenantsCreate: {},
	AdminTenantsDelete: {},
}

var fixedDefaults = map[Role][]string{
	RoleManager: {
		ClientsView, ClientsCreate, ClientsEdit, ClientsDelete,
		AppointmentsView, AppointmentsCreate, AppointmentsEdit, AppointmentsDelete,
		UsersView,
		ReportsView, ReportsExport,
		SettingsView,
		DashboardView,
	},
	RoleStaff: {
		ClientsView, ClientsCreate,
		AppointmentsView, AppointmentsCreate, AppointmentsEdit,
		DashboardView,
	},
	RoleViewer: {
		ClientsView,
		AppointmentsView,
		DashboardView,
	},
}

// ParseRole normalises and validates a role name.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", fmt.Errorf("permission: unknown role %q", value)
	}
	return role, nil
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank orders roles by privilege; unknown roles rank 0.
func (r Role) Rank() int {
	return roleRank[r]
}

// AtLeast reports whether r is a known role at or above min.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && min.IsValid() && r.Rank() >= min.Rank()
}

func (r Role) String() string {
	return string(r)
}

// GetAllRoles enumerates the roles from most to least privileged.
func GetAllRoles() []Role {
	return append([]Role(nil), roleOrder...)
}

// GetRolePermissions returns the default permission list for role, or an empty list when unknown.
func GetRolePermissions(role Role) []string {
	switch role {
	case RoleOwner:
		return GetAllPermissions()
	case RoleAdmin:
		all := GetAllPermissions()
		out := make([]string, 0, len(all))
		for _, id := range all {
			if _, skip := adminExcluded[id]; skip {
				continue
			}
			out = append(out, id)
		}
		return out
	}

	defaults, ok := fixedDefaults[role]
	if !ok {
		return []string{}
	}
	return append([]string(nil), defaults...)
}

// GetRoleDescription returns the human readable description for role.
func GetRoleDescription(role Role) string {
	if desc, ok := roleDescriptions[role]; ok {
		return desc
	}
	return noDescription
}

// GetRolePermissionSet returns the full catalog entry for role.
func GetRolePermissionSet(role Role) (RolePermissions, bool) {
	if !role.IsValid() {
		return RolePermissions{}, false
	}
	return RolePermissions{
		Role:        role,
		Permissions: GetRolePermissions(role),
		Description: GetRoleDescription(role),
	}, true
}

// Catalog returns every role entry in privilege order.
func Catalog() []RolePermissions {
	out := make([]RolePermissions, 0, len(roleOrder))
	for _, role := range roleOrder {
		entry, _ := GetRolePermissionSet(role)
		out = append(out, entry)
	}
	return out
}
