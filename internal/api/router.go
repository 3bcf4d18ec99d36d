package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/schedulr/internal/app"
	iauth "github.com/charlesng35/schedulr/internal/auth"
	"github.com/charlesng35/schedulr/internal/handlers"
	"github.com/charlesng35/schedulr/internal/health"
	"github.com/charlesng35/schedulr/internal/middleware"
	"github.com/charlesng35/schedulr/internal/services"
)

// Services bundles the dependencies the HTTP surface is built from.
type Services struct {
	DB          *gorm.DB
	JWT         *iauth.JWTService
	Permissions *services.PermissionService
	Initializer *services.PermissionInitializer
	Tenants     *services.TenantUserService
	Audit       *services.AuditService
	// RateStore backs request limiting; nil disables it.
	RateStore middleware.RateStore
	// Health runs readiness probes; nil probes only the database.
	Health *health.Manager
}

// NewRouter builds the Gin engine, wires middleware and registers every route.
func NewRouter(cfg *app.Config, svc Services) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config must be provided")
	}
	if svc.JWT == nil {
		return nil, errors.New("jwt service must be provided")
	}
	if svc.Permissions == nil || svc.Initializer == nil || svc.Tenants == nil || svc.Audit == nil {
		return nil, errors.New("permission, initializer, tenant and audit services must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(svc.RateStore, cfg.RateLimit.Requests, cfg.RateLimit.Window))

	// Public
	probes := svc.Health
	if probes == nil {
		probes = health.NewManager(health.Database(svc.DB, 0))
	}
	r.GET("/health", handlers.Health(probes))
	r.GET("/health/live", handlers.Liveness)
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(svc.JWT))

	registerCatalogRoutes(api)

	tenantHandler, err := handlers.NewTenantHandler(svc.Tenants)
	if err != nil {
		return nil, err
	}
	api.POST("/tenants", tenantHandler.Create)

	tenant := api.Group("/tenants/:tenantID")
	tenant.Use(middleware.TenantAccess(svc.Permissions, svc.Initializer, svc.Tenants))
	tenant.GET("", tenantHandler.Get)

	if err := registerPermissionRoutes(tenant, svc.Permissions); err != nil {
		return nil, err
	}
	if err := registerAuditRoutes(tenant, svc.Audit); err != nil {
		return nil, err
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
