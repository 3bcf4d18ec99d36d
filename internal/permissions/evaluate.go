package permissions

// HasPermission reports whether granted contains the wildcard or permission.
func HasPermission(granted []string, permission string) bool {
	for _, p := range granted {
		if p == Wildcard || p == permission {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether granted covers at least one of required.
// An empty requirement is only satisfied by the wildcard.
func HasAnyPermission(granted []string, required []string) bool {
	set, wildcard := toSet(granted)
	if wildcard {
		return true
	}
	for _, p := range required {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether granted covers every element of required.
func HasAllPermissions(granted []string, required []string) bool {
	set, wildcard := toSet(granted)
	if wildcard {
		return true
	}
	for _, p := range required {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

func toSet(granted []string) (map[string]struct{}, bool) {
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		if p == Wildcard {
			return nil, true
		}
		set[p] = struct{}{}
	}
	return set, false
}
