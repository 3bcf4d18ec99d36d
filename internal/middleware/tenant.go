package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/schedulr/internal/access"
	"github.com/charlesng35/schedulr/internal/auditctx"
	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/logger"
	"github.com/charlesng35/schedulr/pkg/response"
)

// ErrPermissionsUnavailable is returned when the caller's permission snapshot could not be loaded.
var ErrPermissionsUnavailable = errors.New("PERMISSIONS_UNAVAILABLE", "Could not load permissions", http.StatusForbidden)

// MembershipReader resolves a user's membership in a tenant. A nil record means no membership.
type MembershipReader interface {
	GetTenantUser(ctx context.Context, userID, tenantID string) (*models.TenantUser, error)
}

// TenantAccess builds an access.Session for the authenticated user and the :tenantID route
// parameter and stores it in the request context. Requests whose permissions cannot be loaded
// are rejected.
func TenantAccess(svc access.PermissionService, initializer access.Initializer, members MembershipReader, opts ...access.Option) gin.HandlerFunc {
	log := logger.WithModule("tenant-access")

	return func(c *gin.Context) {
		userID := c.GetString(CtxUserIDKey)
		if userID == "" {
			response.Abort(c, errors.ErrUnauthorized)
			return
		}
		tenantID := strings.TrimSpace(c.Param("tenantID"))
		if tenantID == "" {
			response.Abort(c, errors.NewBadRequest("tenant id is required"))
			return
		}

		ctx := c.Request.Context()
		member, err := members.GetTenantUser(ctx, userID, tenantID)
		if err != nil {
			log.Warn("load tenant membership", zap.String("user_id", userID), zap.String("tenant_id", tenantID), zap.Error(err))
			response.Abort(c, err)
			return
		}
		if member != nil && !member.IsActive {
			member = nil
		}

		session, err := access.NewSession(svc, initializer, opts...)
		if err != nil {
			response.Abort(c, errors.Wrap(err, "could not create access session"))
			return
		}

		if state := session.SetIdentity(ctx, userID, tenantID, member); state == access.StateErrored {
			response.Abort(c, ErrPermissionsUnavailable.WithMessage(session.ErrorMessage()))
			return
		}

		actor, _ := auditctx.FromContext(ctx)
		actor.UserID = userID
		actor.TenantID = tenantID
		c.Request = c.Request.WithContext(auditctx.WithActor(ctx, actor))

		c.Set(CtxTenantIDKey, tenantID)
		c.Set(CtxAccessKey, session)
		c.Next()
	}
}

// SessionFrom returns the access session stored by TenantAccess.
func SessionFrom(c *gin.Context) (*access.Session, bool) {
	v, ok := c.Get(CtxAccessKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*access.Session)
	return session, ok && session != nil
}
