package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/pkg/response"
)

// GET /api/catalog/roles
func ListRoles(c *gin.Context) {
	response.Success(c, http.StatusOK, permissions.Catalog())
}

// GET /api/catalog/permissions?resource=clients
func ListPermissions(c *gin.Context) {
	var defs []*permissions.Permission
	if resource := strings.TrimSpace(c.Query("resource")); resource != "" {
		defs = permissions.GetByResource(resource)
	} else {
		defs = permissions.GetAll()
	}
	if defs == nil {
		defs = []*permissions.Permission{}
	}
	response.SuccessWithMeta(c, http.StatusOK, defs, &response.Meta{Total: len(defs)})
}
