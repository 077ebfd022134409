package rating

// State is the interaction state of a Rating.
type State int32

const (
	// StateIdle indicates no pointer gesture is in progress. The drag target
	// equals the committed value.
	StateIdle State = iota

	// StateDragging indicates a pointer gesture is in progress. The drag
	// target may differ from the committed value until release.
	StateDragging
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// BindingState represents the current state of a Binding.
type BindingState int32

const (
	// BindingLoading indicates the Binding has not yet processed any props.
	BindingLoading BindingState = iota

	// BindingHealthy indicates the last props document was applied.
	BindingHealthy

	// BindingDegraded indicates the last props document could not be decoded.
	// The previously applied props remain in effect.
	BindingDegraded

	// BindingEmpty indicates the initial props document could not be decoded
	// and the Rating has never been mounted. The Binding keeps watching.
	BindingEmpty
)

// String returns the string representation of the binding state.
func (s BindingState) String() string {
	switch s {
	case BindingLoading:
		return "loading"
	case BindingHealthy:
		return "healthy"
	case BindingDegraded:
		return "degraded"
	case BindingEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
