// Package access evaluates permissions for one (user, tenant) session.
//
// A Session loads the user's permission record once, answers synchronous checks from that
// snapshot and forwards asynchronous checks to the permission service. Checks fail closed: any
// state other than StateLoaded with an active record denies.
package access

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/permissions"
	"github.com/charlesng35/schedulr/internal/services"
	apperrors "github.com/charlesng35/schedulr/pkg/errors"
	"github.com/charlesng35/schedulr/pkg/logger"
	"github.com/charlesng35/schedulr/pkg/metrics"
)

const (
	// MessageLoadFailed is reported when no record exists and self-provisioning does not apply.
	MessageLoadFailed = "could not load permissions"
	// MessageInitFailed is reported when self-provisioning a missing record fails.
	MessageInitFailed = "could not initialize permissions"
)

// ErrNoIdentity is returned by mutations attempted on a session without a tenant.
var ErrNoIdentity = apperrors.NewBadRequest("no active tenant session")

// PermissionService is the subset of services.PermissionService a Session depends on.
type PermissionService interface {
	GetUserPermissions(ctx context.Context, userID, tenantID string) (*models.UserPermissions, error)
	CreateUserPermissions(ctx context.Context, input services.CreateUserPermissionsInput) (*models.UserPermissions, error)
	UpdateUserPermissions(ctx context.Context, userID, tenantID string, input services.UpdateUserPermissionsInput) (*models.UserPermissions, error)
	CheckUserPermission(ctx context.Context, userID, tenantID, permission string) (bool, error)
	CheckUserAnyPermission(ctx context.Context, userID, tenantID string, required []string) (bool, error)
	CheckUserAllPermissions(ctx context.Context, userID, tenantID string, required []string) (bool, error)
}

// Initializer provisions a missing permission record from tenant membership.
type Initializer interface {
	InitializeUserPermissions(ctx context.Context, userID string, tenantUser *models.TenantUser) bool
}

// Option customises a Session.
type Option func(*Session)

// WithLogger overrides the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithEmptyOnMissing resolves a missing record that cannot be self-provisioned to
// StateLoadedEmpty instead of StateErrored.
func WithEmptyOnMissing() Option {
	return func(s *Session) {
		s.emptyOnMissing = true
	}
}

// Session holds the permission snapshot of one (user, tenant) pair. It is safe for concurrent use.
type Session struct {
	svc            PermissionService
	initializer    Initializer
	log            *zap.Logger
	emptyOnMissing bool

	mu         sync.RWMutex
	generation uint64
	state      State
	userID     string
	tenantID   string
	snapshot   *models.UserPermissions
	err        error
}

// NewSession constructs an idle Session. initializer may be nil, disabling self-provisioning.
func NewSession(svc PermissionService, initializer Initializer, opts ...Option) (*Session, error) {
	if svc == nil {
		return nil, errors.New("access: permission service is required")
	}
	s := &Session{
		svc:         svc,
		initializer: initializer,
		log:         logger.WithModule("access"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SetIdentity switches the session to (userID, tenantID) and loads its snapshot. tenantUser is
// the membership record, if known; it drives self-provisioning for privileged roles. An empty
// user or tenant returns the session to StateIdle. A load superseded by a later SetIdentity or
// Clear is discarded.
func (s *Session) SetIdentity(ctx context.Context, userID, tenantID string, tenantUser *models.TenantUser) State {
	userID = strings.TrimSpace(userID)
	tenantID = strings.TrimSpace(tenantID)
	if userID == "" || tenantID == "" {
		s.Clear()
		return StateIdle
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = StateLoading
	s.userID = userID
	s.tenantID = tenantID
	s.snapshot = nil
	s.err = nil
	s.mu.Unlock()

	state, record, err := s.load(ensureContext(ctx), userID, tenantID, tenantUser)
	if !s.resolve(gen, state, record, err) {
		s.log.Debug("discarded superseded permission load",
			zap.String("user_id", userID),
			zap.String("tenant_id", tenantID),
		)
	}
	return s.State()
}

// Clear drops the identity and snapshot, returning the session to StateIdle.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = StateIdle
	s.userID = ""
	s.tenantID = ""
	s.snapshot = nil
	s.err = nil
}

func (s *Session) load(ctx context.Context, userID, tenantID string, tenantUser *models.TenantUser) (State, *models.UserPermissions, error) {
	record, err := s.svc.GetUserPermissions(ctx, userID, tenantID)
	if err != nil {
		return StateErrored, nil, err
	}
	if record != nil {
		return StateLoaded, record, nil
	}

	member := membershipFor(tenantUser, tenantID)
	if member != nil && s.initializer != nil && services.ShouldInitializePermissions(permissions.Role(member.Role)) {
		if !s.initializer.InitializeUserPermissions(ctx, userID, member) {
			return StateErrored, nil, errors.New(MessageInitFailed)
		}

		record, err = s.svc.GetUserPermissions(ctx, userID, tenantID)
		if err != nil {
			return StateErrored, nil, err
		}
		if record == nil {
			return StateErrored, nil, errors.New(MessageInitFailed)
		}
		return StateLoaded, record, nil
	}

	if s.emptyOnMissing {
		return StateLoadedEmpty, nil, nil
	}
	return StateErrored, nil, errors.New(MessageLoadFailed)
}

// resolve stores the outcome of a load unless a newer identity change superseded it.
func (s *Session) resolve(gen uint64, state State, record *models.UserPermissions, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.state = state
	s.snapshot = record
	s.err = err
	metrics.PermissionLoads.WithLabelValues(state.String()).Inc()

	if err != nil {
		s.log.Warn("permission snapshot unavailable",
			zap.String("user_id", s.userID),
			zap.String("tenant_id", s.tenantID),
			zap.Error(err),
		)
	}
	return true
}

// membershipFor returns a copy of tenantUser scoped to tenantID, or nil when it belongs elsewhere.
func membershipFor(tenantUser *models.TenantUser, tenantID string) *models.TenantUser {
	if tenantUser == nil {
		return nil
	}
	member := *tenantUser
	if member.TenantID == "" {
		member.TenantID = tenantID
	}
	if member.TenantID != tenantID {
		return nil
	}
	return &member
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a snapshot load is in flight.
func (s *Session) Loading() bool {
	return s.State() == StateLoading
}

// Loaded reports whether a permission record is available.
func (s *Session) Loaded() bool {
	return s.State() == StateLoaded
}

// Err returns the load failure, if any.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ErrorMessage returns a user-facing description of the load failure, or "".
func (s *Session) ErrorMessage() string {
	err := s.Err()
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Identity returns the session's user and tenant.
func (s *Session) Identity() (userID, tenantID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.tenantID
}

// Snapshot returns a copy of the loaded record, or nil.
func (s *Session) Snapshot() *models.UserPermissions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
