package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/access"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/metrics"
	"github.com/charlesng35/schedulr/pkg/response"
)

// RequirePermission allows the request when the session snapshot grants permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return guard(permission, "snapshot", func(_ *gin.Context, s *access.Session) bool {
		return s.HasPermission(permission)
	})
}

// RequireAnyPermission allows the request when the snapshot grants at least one of required.
func RequireAnyPermission(required ...string) gin.HandlerFunc {
	return guard(strings.Join(required, "|"), "snapshot", func(_ *gin.Context, s *access.Session) bool {
		return s.HasAnyPermission(required...)
	})
}

// RequireAllPermissions allows the request when the snapshot grants every element of required.
func RequireAllPermissions(required ...string) gin.HandlerFunc {
	return guard(strings.Join(required, ","), "snapshot", func(_ *gin.Context, s *access.Session) bool {
		return s.HasAllPermissions(required...)
	})
}

// RequireServerPermission re-validates permission against the live record instead of the
// snapshot. Use it on routes that mutate permissions.
func RequireServerPermission(permission string) gin.HandlerFunc {
	return guard(permission, "gate", func(c *gin.Context, s *access.Session) bool {
		return s.CheckPermission(c.Request.Context(), permission)
	})
}

// RequireRole allows the request when the active snapshot role ranks at or above min.
func RequireRole(min permissions.Role) gin.HandlerFunc {
	return guard("role:"+min.String(), "snapshot", func(_ *gin.Context, s *access.Session) bool {
		return s.Active() && s.AtLeast(min)
	})
}

func guard(label, source string, allow func(*gin.Context, *access.Session) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			metrics.PermissionChecks.WithLabelValues(label, source, "error").Inc()
			response.Abort(c, errors.ErrForbidden)
			return
		}
		if !allow(c, session) {
			metrics.PermissionChecks.WithLabelValues(label, source, "denied").Inc()
			response.Abort(c, errors.ErrForbidden)
			return
		}
		metrics.PermissionChecks.WithLabelValues(label, source, "allowed").Inc()
		c.Next()
	}
}
