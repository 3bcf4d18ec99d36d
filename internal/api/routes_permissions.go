package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/handlers"
	"github.com/charlesng35/schedulr/internal/middleware"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
)

// Mutating routes re-check against the live record so a permission revoked mid-request is honoured.
func registerPermissionRoutes(tenant *gin.RouterGroup, svc *services.PermissionService) error {
	handler, err := handlers.NewPermissionHandler(svc)
	if err != nil {
		return err
	}

	perms := tenant.Group("/permissions")
	{
		perms.GET("/me", handler.Me)
		perms.POST("/check", handler.Check)
		perms.GET("", middleware.RequirePermission(permissions.UsersView), handler.List)
		perms.POST("", middleware.RequireServerPermission(permissions.UsersEdit), handler.Create)
		perms.GET("/:userID", middleware.RequirePermission(permissions.UsersView), handler.Get)
		perms.PATCH("/:userID", middleware.RequireServerPermission(permissions.UsersEdit), handler.Update)
		perms.DELETE("/:userID", middleware.RequireServerPermission(permissions.UsersDelete), handler.Delete)
	}
	return nil
}
