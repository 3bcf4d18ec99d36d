package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/handlers"
)

func registerCatalogRoutes(api *gin.RouterGroup) {
	catalog := api.Group("/catalog")
	{
		catalog.GET("/roles", handlers.ListRoles)
		catalog.GET("/permissions", handlers.ListPermissions)
	}
}
