package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/access"
	"github.com/charlesng35/schedulr/internal/middleware"
	"github.com/charlesng35/schedulr/pkg/errors"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// accessSession returns the session built by middleware.TenantAccess.
func accessSession(c *gin.Context) (*access.Session, error) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, errors.ErrForbidden
	}
	return session, nil
}
