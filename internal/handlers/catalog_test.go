package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/schedulr/internal/handlers/testutil"
	"github.com/charlesng35/schedulr/internal/permissions"
)

func TestCatalogRoles(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/api/catalog/roles", nil, env.Token("anyone"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var roles []permissions.RolePermissions
	testutil.DecodeInto(t, testutil.DecodeResponse(t, resp).Data, &roles)
	require.Len(t, roles, 5)
	require.Equal(t, permissions.RoleOwner, roles[0].Role)
	require.Equal(t, permissions.RoleViewer, roles[4].Role)
	require.Equal(t, permissions.GetRolePermissions(permissions.RoleStaff), roles[3].Permissions)
}

func TestCatalogPermissions(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/api/catalog/permissions", nil, env.Token("anyone"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	payload := testutil.DecodeResponse(t, resp)
	var defs []permissions.Permission
	testutil.DecodeInto(t, payload.Data, &defs)
	require.NotEmpty(t, defs)
	require.Equal(t, len(defs), payload.Meta.Total)

	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	require.Contains(t, ids, permissions.ClientsView)
	require.Contains(t, ids, permissions.AdminUsersEdit)
}

func TestCatalogPermissionsByResource(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/api/catalog/permissions?resource=reports", nil, env.Token("anyone"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	payload := testutil.DecodeResponse(t, resp)
	var defs []permissions.Permission
	testutil.DecodeInto(t, payload.Data, &defs)
	require.Len(t, defs, 2)
	require.Equal(t, 2, payload.Meta.Total)
	for _, def := range defs {
		require.Equal(t, "reports", def.Resource)
	}

	resp = env.Request(http.MethodGet, "/api/catalog/permissions?resource=billing", nil, env.Token("anyone"))
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"success":true,"data":[],"meta":{}}`, resp.Body.String())
}

func TestCatalogRequiresToken(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/api/catalog/roles", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
