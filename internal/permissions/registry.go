package permissions

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Permission describes a permission token registered in the vocabulary.
type Permission struct {
	ID          string `json:"id"`
	Resource    string `json:"resource"`
	Description string `json:"description"`
}

type permissionRegistry struct {
	mu          sync.RWMutex
	order       []string
	permissions map[string]*Permission
}

var globalRegistry = &permissionRegistry{
	permissions: make(map[string]*Permission),
}

var (
	errNilPermission  = errors.New("permission: nil definition")
	errEmptyID        = errors.New("permission: id is required")
	errDuplicateID    = errors.New("permission: already registered")
	errWildcardID     = errors.New("permission: wildcard cannot be registered")
	errMalformedToken = errors.New("permission: id must be namespaced as resource:action")
)

// Register adds a permission definition to the global vocabulary. Registration order is preserved.
func Register(perm *Permission) error {
	if perm == nil {
		return errNilPermission
	}

	id := strings.TrimSpace(perm.ID)
	switch {
	case id == "":
		return errEmptyID
	case id == Wildcard:
		return errWildcardID
	}

	sep := strings.LastIndex(id, ":")
	if sep <= 0 || sep == len(id)-1 {
		return fmt.Errorf("%w: %s", errMalformedToken, id)
	}

	def := clonePermission(perm)
	def.ID = id
	def.Resource = strings.TrimSpace(def.Resource)
	if def.Resource == "" {
		def.Resource = id[:sep]
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if _, exists := globalRegistry.permissions[id]; exists {
		return fmt.Errorf("%w: %s", errDuplicateID, id)
	}

	globalRegistry.permissions[id] = def
	globalRegistry.order = append(globalRegistry.order, id)
	return nil
}

// Get returns a copy of the permission definition when registered.
func Get(id string) (*Permission, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	perm, ok := globalRegistry.permissions[id]
	if !ok {
		return nil, false
	}
	return clonePermission(perm), true
}

// IsKnown reports whether id is part of the vocabulary. The wildcard is always known.
func IsKnown(id string) bool {
	if id == Wildcard {
		return true
	}
	_, ok := Get(id)
	return ok
}

// GetAll returns copies of every registered definition in registration order.
func GetAll() []*Permission {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	out := make([]*Permission, 0, len(globalRegistry.order))
	for _, id := range globalRegistry.order {
		out = append(out, clonePermission(globalRegistry.permissions[id]))
	}
	return out
}

// GetAllPermissions enumerates the vocabulary IDs in registration order.
func GetAllPermissions() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	return append([]string(nil), globalRegistry.order...)
}

// GetByResource gathers permissions registered under the specified resource.
func GetByResource(resource string) []*Permission {
	resource = strings.TrimSpace(resource)

	var perms []*Permission
	for _, perm := range GetAll() {
		if perm.Resource == resource {
			perms = append(perms, perm)
		}
	}
	return perms
}

func clonePermission(perm *Permission) *Permission {
	if perm == nil {
		return nil
	}
	cp := *perm
	return &cp
}

// Unregister removes a permission from the vocabulary and reports whether it was present.
// Records that already grant the token are left untouched.
func Unregister(id string) bool {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if _, ok := globalRegistry.permissions[id]; !ok {
		return false
	}
	delete(globalRegistry.permissions, id)
	for i, existing := range globalRegistry.order {
		if existing == id {
			globalRegistry.order = append(globalRegistry.order[:i], globalRegistry.order[i+1:]...)
			break
		}
	}
	return true
}
