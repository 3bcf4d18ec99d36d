package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/api"
	"github.com/charlesng35/schedulr/internal/app"
	iauth "github.com/charlesng35/schedulr/internal/auth"
	sharedtestutil "github.com/charlesng35/schedulr/internal/database/testutil"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	"github.com/charlesng35/schedulr/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T        *testing.T
	DB       *gorm.DB
	Router   *gin.Engine
	JWT      *iauth.JWTService
	Services api.Services
}

// NewEnv provisions a fresh handler test environment with migrations and seed data applied.
// Rate limiting is disabled.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithSeedData())

	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret:         "test-suite-super-secret-key-32-bytes!!",
		Issuer:         "test-suite",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	svc, err := api.NewServices(db, jwtSvc)
	require.NoError(t, err)

	cfg := &app.Config{
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		},
	}

	router, err := api.NewRouter(cfg, svc)
	require.NoError(t, err)

	return &Env{
		T:        t,
		DB:       db,
		Router:   router,
		JWT:      jwtSvc,
		Services: svc,
	}
}

// Token issues an access token for userID.
func (e *Env) Token(userID string) string {
	e.T.Helper()
	token, err := e.JWT.GenerateAccessToken(iauth.AccessTokenInput{UserID: userID})
	require.NoError(e.T, err)
	return token
}

// CreateTenant creates a tenant owned by ownerID and returns its id.
func (e *Env) CreateTenant(ownerID string) string {
	e.T.Helper()
	tenant, _, err := e.Services.Tenants.CreateTenant(context.Background(), "tenant-"+uuid.NewString(), ownerID)
	require.NoError(e.T, err)
	return tenant.ID
}

// AddMember adds userID to tenantID with role. When grant is true its permission record is
// created with the role defaults.
func (e *Env) AddMember(tenantID, userID string, role permissions.Role, grant bool) {
	e.T.Helper()
	ctx := context.Background()
	_, err := e.Services.Tenants.AddTenantUser(ctx, services.CreateTenantUserInput{TenantID: tenantID, UserID: userID, Role: role})
	require.NoError(e.T, err)
	if grant {
		_, err = e.Services.Permissions.CreateUserPermissions(ctx, services.CreateUserPermissionsInput{
			UserID:   userID,
			TenantID: tenantID,
			Role:     role,
		})
		require.NoError(e.T, err)
	}
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
