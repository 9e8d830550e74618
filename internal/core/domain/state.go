package domain

// State is the connection state of a pairing session.
//
// A session starts in StateConnecting. It moves forward to
// StateConnected when the caller confirms the pairing, or to
// StateDisconnected when the deadline fires first. There are no
// backward transitions, and StateDisconnected is terminal for
// automatic transitions: the record stays queryable until deleted.
type State int

const (
	// StateConnecting is the initial state, entered at creation.
	StateConnecting State = iota

	// StateConnected is entered via an explicit confirm call.
	StateConnected

	// StateDisconnected is entered when the deadline fires before
	// the session was confirmed. Terminal.
	StateDisconnected
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further automatic transition can occur.
func (s State) Terminal() bool {
	return s == StateDisconnected
}

// MarshalText implements encoding.TextMarshaler so the state appears
// as its lowercase name in JSON responses.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "connecting":
		*s = StateConnecting
	case "connected":
		*s = StateConnected
	case "disconnected":
		*s = StateDisconnected
	default:
		return ErrInvalidArgument.WithDetails("unknown session state: " + string(text))
	}
	return nil
}
