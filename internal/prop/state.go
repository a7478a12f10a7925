package prop

// State is the discrete open/closed state of a prop. The panel's orientation
// converges toward the state's target continuously and is tracked separately.
type State uint8

const (
	StateClosed State = iota
	StateOpen
)

// Toggle returns the opposite state.
func (s State) Toggle() State {
	if s == StateOpen {
		return StateClosed
	}
	return StateOpen
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
