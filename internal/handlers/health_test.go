package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/schedulr/internal/handlers"
	"github.com/charlesng35/schedulr/internal/handlers/testutil"
	"github.com/charlesng35/schedulr/internal/health"
)

func TestHealthAndMetrics(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var report health.Report
	testutil.DecodeInto(t, testutil.DecodeResponse(t, resp).Data, &report)
	require.True(t, report.Success)
	require.Equal(t, health.StatusUp, report.Status)
	require.Len(t, report.Checks, 1)
	require.Equal(t, "database", report.Checks[0].Component)

	resp = env.Request(http.MethodGet, "/health/live", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, resp.Body.String())

	resp = env.Request(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "schedulr_api_latency_seconds")
}

func TestHealthReportsUnavailableDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	probes := health.NewManager(health.Check{Name: "redis", Run: func(context.Context) health.Result {
		return health.FromError(errors.New("connection refused"))
	}})

	r := gin.New()
	r.GET("/health", handlers.Health(probes))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"SERVICE_UNAVAILABLE"`)
	require.Contains(t, rec.Body.String(), "connection refused")
}

func TestUnknownRoute(t *testing.T) {
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/nope", nil, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}
