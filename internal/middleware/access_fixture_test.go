package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/schedulr/internal/database/testutil"
	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	"github.com/charlesng35/schedulr/internal/store"
)

type accessFixture struct {
	permissions *services.PermissionService
	initializer *services.PermissionInitializer
	tenants     *services.TenantUserService
}

func newAccessFixture(t *testing.T) accessFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	records, err := store.NewGormPermissionStore(db)
	require.NoError(t, err)
	members, err := store.NewGormTenantUserStore(db)
	require.NoError(t, err)

	svc, err := services.NewPermissionService(records, services.WithTenantUserStore(members))
	require.NoError(t, err)
	initializer, err := services.NewPermissionInitializer(svc, nil)
	require.NoError(t, err)
	tenants, err := services.NewTenantUserService(db, members, nil)
	require.NoError(t, err)

	return accessFixture{permissions: svc, initializer: initializer, tenants: tenants}
}

// member adds userID to tenantID with role and, when grant is true, creates its permission record.
func (f accessFixture) member(t *testing.T, tenantID, userID string, role permissions.Role, grant bool) {
	t.Helper()
	ctx := context.Background()
	_, err := f.tenants.AddTenantUser(ctx, services.CreateTenantUserInput{TenantID: tenantID, UserID: userID, Role: role})
	require.NoError(t, err)
	if grant {
		_, err = f.permissions.CreateUserPermissions(ctx, services.CreateUserPermissionsInput{UserID: userID, TenantID: tenantID, Role: role})
		require.NoError(t, err)
	}
}

// router mounts TenantAccess behind a header-driven identity stub, then the supplied guards.
func (f accessFixture) router(guards ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{
		func(c *gin.Context) {
			if userID := c.GetHeader("X-User"); userID != "" {
				c.Set(CtxUserIDKey, userID)
			}
			c.Next()
		},
		TenantAccess(f.permissions, f.initializer, f.tenants),
	}
	chain = append(chain, guards...)
	chain = append(chain, func(c *gin.Context) {
		session, _ := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"state": session.State().String()})
	})
	r.GET("/tenants/:tenantID/resource", chain...)
	return r
}

func do(r http.Handler, userID, tenantID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID+"/resource", nil)
	if userID != "" {
		req.Header.Set("X-User", userID)
	}
	r.ServeHTTP(w, req)
	return w
}

type failingMembership struct{}

func (failingMembership) GetTenantUser(context.Context, string, string) (*models.TenantUser, error) {
	return nil, errors.New("membership backend down")
}
