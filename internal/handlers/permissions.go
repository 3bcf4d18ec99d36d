package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/response"
)

const (
	checkModeAny = "any"
	checkModeAll = "all"
)

type PermissionHandler struct {
	svc *services.PermissionService
}

func NewPermissionHandler(svc *services.PermissionService) (*PermissionHandler, error) {
	if svc == nil {
		return nil, errors.New("permission handler: service is required")
	}
	return &PermissionHandler{svc: svc}, nil
}

type myPermissionsResponse struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	State       string   `json:"state"`
	Role        string   `json:"role"`
	IsActive    bool     `json:"is_active"`
	Permissions []string `json:"permissions"`
}

type checkPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
	Mode        string   `json:"mode" validate:"omitempty,oneof=any all"`
}

type checkPermissionsResponse struct {
	Mode        string   `json:"mode"`
	Permissions []string `json:"permissions"`
	Allowed     bool     `json:"allowed"`
}

type createPermissionsRequest struct {
	UserID      string   `json:"user_id" validate:"required,max=128"`
	Role        string   `json:"role" validate:"required,oneof=owner admin manager staff viewer"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,permission_token"`
}

type updatePermissionsRequest struct {
	Role        *string   `json:"role" validate:"omitempty,oneof=owner admin manager staff viewer"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,permission_token"`
}

// GET /api/tenants/:tenantID/permissions/me
func (h *PermissionHandler) Me(c *gin.Context) {
	session, err := accessSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, tenantID := session.Identity()
	payload := myPermissionsResponse{
		UserID:      userID,
		TenantID:    tenantID,
		State:       session.State().String(),
		Permissions: []string{},
	}
	if record := session.Snapshot(); record != nil {
		payload.Role = record.Role
		payload.IsActive = record.IsActive
		if record.Permissions != nil {
			payload.Permissions = []string(record.Permissions)
		}
	}

	response.Success(c, http.StatusOK, payload)
}

// POST /api/tenants/:tenantID/permissions/check
// Checks run against the live record, not the request snapshot.
func (h *PermissionHandler) Check(c *gin.Context) {
	session, err := accessSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req checkPermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Mode == "" {
		req.Mode = checkModeAny
	}

	ctx := requestContext(c)
	var allowed bool
	if req.Mode == checkModeAll {
		allowed = session.CheckAllPermissions(ctx, req.Permissions...)
	} else {
		allowed = session.CheckAnyPermission(ctx, req.Permissions...)
	}

	response.Success(c, http.StatusOK, checkPermissionsResponse{
		Mode:        req.Mode,
		Permissions: req.Permissions,
		Allowed:     allowed,
	})
}

// GET /api/tenants/:tenantID/permissions
func (h *PermissionHandler) List(c *gin.Context) {
	tenantID := c.Param("tenantID")
	records, err := h.svc.GetTenantUsers(requestContext(c), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, records, &response.Meta{Total: len(records), TenantID: tenantID})
}

// POST /api/tenants/:tenantID/permissions
func (h *PermissionHandler) Create(c *gin.Context) {
	session, err := accessSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req createPermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := session.CreatePermissions(requestContext(c), req.UserID, permissions.Role(req.Role), req.Permissions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, record)
}

// GET /api/tenants/:tenantID/permissions/:userID
func (h *PermissionHandler) Get(c *gin.Context) {
	record, err := h.svc.GetUserPermissions(requestContext(c), c.Param("userID"), c.Param("tenantID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if record == nil {
		response.Error(c, services.ErrPermissionsNotFound)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// PATCH /api/tenants/:tenantID/permissions/:userID
// An omitted field is left untouched; "permissions": [] clears the grant list.
func (h *PermissionHandler) Update(c *gin.Context) {
	session, err := accessSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req updatePermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Role == nil && req.Permissions == nil {
		response.Error(c, apperrors.NewBadRequest("role or permissions is required"))
		return
	}

	var role *permissions.Role
	if req.Role != nil {
		r := permissions.Role(*req.Role)
		role = &r
	}
	var perms []string
	if req.Permissions != nil {
		perms = append([]string{}, (*req.Permissions)...)
	}

	record, err := session.UpdatePermissions(requestContext(c), c.Param("userID"), role, perms)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// DELETE /api/tenants/:tenantID/permissions/:userID
func (h *PermissionHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUserPermissions(requestContext(c), c.Param("userID"), c.Param("tenantID")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
