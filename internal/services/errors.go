package services

import (
	"fmt"
	"net/http"

	apperrors "github.com/charlesng35/schedulr/pkg/errors"
)

var (
	// ErrPermissionsNotFound indicates no permission record exists for the (user, tenant) pair.
	ErrPermissionsNotFound = apperrors.New("PERMISSIONS_NOT_FOUND", "User permissions not found", http.StatusNotFound)
	// ErrPermissionsExist indicates a permission record already exists for the (user, tenant) pair.
	ErrPermissionsExist = apperrors.New("PERMISSIONS_EXIST", "User permissions already exist", http.StatusConflict)
	// ErrTenantUserExists indicates the user already belongs to the tenant.
	ErrTenantUserExists = apperrors.New("TENANT_USER_EXISTS", "User already belongs to the tenant", http.StatusConflict)
	// ErrInvalidRole is returned for role names outside the catalog.
	ErrInvalidRole = apperrors.New("INVALID_ROLE", "Unknown role", http.StatusBadRequest)
)

// internalError wraps a backend failure as an internal AppError, keeping the cause for logging.
func internalError(format string, err error) error {
	return apperrors.ErrInternalServer.WithInternal(fmt.Errorf(format+": %w", err))
}
