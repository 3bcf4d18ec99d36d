package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/handlers"
	"github.com/charlesng35/schedulr/internal/middleware"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
)

func registerAuditRoutes(tenant *gin.RouterGroup, svc *services.AuditService) error {
	handler, err := handlers.NewAuditHandler(svc)
	if err != nil {
		return err
	}
	tenant.GET("/audit", middleware.RequirePermission(permissions.AdminUsersView), handler.List)
	return nil
}
