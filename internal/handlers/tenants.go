package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/middleware"
	"github.com/charlesng35/schedulr/internal/services"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/response"
)

type TenantHandler struct {
	svc *services.TenantUserService
}

func NewTenantHandler(svc *services.TenantUserService) (*TenantHandler, error) {
	if svc == nil {
		return nil, errors.New("tenant handler: service is required")
	}
	return &TenantHandler{svc: svc}, nil
}

type createTenantRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// POST /api/tenants
// The caller becomes the owner; its permission record is provisioned on first tenant request.
func (h *TenantHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var req createTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tenant, _, err := h.svc.CreateTenant(requestContext(c), req.Name, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tenant)
}

// GET /api/tenants/:tenantID
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.svc.GetTenant(requestContext(c), c.Param("tenantID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tenant)
}
