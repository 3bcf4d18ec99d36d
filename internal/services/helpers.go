package services

import (
	"context"
	"strings"

	"github.com/charlesng35/schedulr/internal/permissions"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// requireKey trims and validates the (user, tenant) pair every record is keyed by.
func requireKey(userID, tenantID string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	tenantID = strings.TrimSpace(tenantID)
	if userID == "" {
		return "", "", apperrors.NewBadRequest("user id is required")
	}
	if tenantID == "" {
		return "", "", apperrors.NewBadRequest("tenant id is required")
	}
	return userID, tenantID, nil
}

func parseRole(value string) (permissions.Role, error) {
	role, err := permissions.ParseRole(value)
	if err != nil {
		return "", ErrInvalidRole.WithMessage("unknown role " + strings.TrimSpace(value))
	}
	return role, nil
}

// copyPermissions returns a detached copy, preserving the distinction between nil and empty.
func copyPermissions(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// permissionLabel bounds the metrics label space to the registered vocabulary.
func permissionLabel(permission string) string {
	if permissions.IsKnown(permission) {
		return permission
	}
	return "unknown"
}

func normaliseIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
