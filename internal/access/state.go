package access

// State is the lifecycle position of a Session's permission snapshot.
type State int

const (
	// StateIdle means no (user, tenant) identity is set.
	StateIdle State = iota
	// StateLoading means a snapshot load is in flight. Every check is denied.
	StateLoading
	// StateLoaded means a permission record was loaded.
	StateLoaded
	// StateLoadedEmpty means the identity resolved to no record and the session was configured to
	// treat that as zero permissions rather than an error.
	StateLoadedEmpty
	// StateErrored means the snapshot could not be loaded. Every check is denied.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadedEmpty:
		return "loaded_empty"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}
