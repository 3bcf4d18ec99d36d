package permissions

// Wildcard grants every permission, including ones registered after a record was written.
const Wildcard = "*"

const (
	ClientsView   = "clients:view"
	ClientsCreate = "clients:create"
	ClientsEdit   = "clients:edit"
	ClientsDelete = "clients:delete"

	AppointmentsView   = "appointments:view"
	AppointmentsCreate = "appointments:create"
	AppointmentsEdit   = "appointments:edit"
	AppointmentsDelete = "appointments:delete"

	UsersView   = "users:view"
	UsersCreate = "users:create"
	UsersEdit   = "users:edit"
	UsersDelete = "users:delete"

	ReportsView   = "reports:view"
	ReportsExport = "reports:export"

	SettingsView = "settings:view"
	SettingsEdit = "settings:edit"

	DashboardView = "dashboard:view"

	AdminTenantsView   = "admin:tenants:view"
	AdminTenantsCreate = "admin:tenants:create"
	AdminTenantsEdit   = "admin:tenants:edit"
	AdminTenantsDelete = "admin:tenants:delete"
	AdminUsersView     = "admin:users:view"
	AdminUsersEdit     = "admin:users:edit"
)

func init() {
	perms := []*Permission{
		{ID: ClientsView, Description: "View clients"},
		{ID: ClientsCreate, Description: "Register new clients"},
		{ID: ClientsEdit, Description: "Edit client records"},
		{ID: ClientsDelete, Description: "Delete client records"},
		{ID: AppointmentsView, Description: "View appointments"},
		{ID: AppointmentsCreate, Description: "Book appointments"},
		{ID: AppointmentsEdit, Description: "Reschedule and edit appointments"},
		{ID: AppointmentsDelete, Description: "Cancel and delete appointments"},
		{ID: UsersView, Description: "View tenant members"},
		{ID: UsersCreate, Description: "Add tenant members"},
		{ID: UsersEdit, Description: "Change member roles and permissions"},
		{ID: UsersDelete, Description: "Remove tenant members"},
		{ID: ReportsView, Description: "View reports"},
		{ID: ReportsExport, Description: "Export reports"},
		{ID: SettingsView, Description: "View tenant settings"},
		{ID: SettingsEdit, Description: "Edit tenant settings"},
		{ID: DashboardView, Description: "View the dashboard"},
		{ID: AdminTenantsView, Description: "View tenant administration"},
		{ID: AdminTenantsCreate, Description: "Create tenants"},
		{ID: AdminTenantsEdit, Description: "Edit tenant details"},
		{ID: AdminTenantsDelete, Description: "Delete tenants"},
		{ID: AdminUsersView, Description: "View users across the tenant"},
		{ID: AdminUsersEdit, Description: "Administer user accounts"},
	}

	for _, perm := range perms {
		if err := Register(perm); err != nil {
			panic(err)
		}
	}
}
