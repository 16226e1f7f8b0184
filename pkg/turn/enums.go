// Package turn tracks which of two peers currently holds the right to send.
//
// Each peer runs its own Machine; the two machines are never synchronized
// explicitly. They stay consistent because every turn transition is caused
// by exactly one confirmed I/O event: a successful send moves the turn out,
// a successful receive moves it back in.
package turn

// State is the local view of turn ownership.
type State int

const (
	// StateUnknown is the zero value for an uninitialized state.
	StateUnknown State = iota

	// StateMyTurn means the local peer may send exactly one frame.
	StateMyTurn

	// StateOpponentsTurn means the local peer must wait for a frame.
	StateOpponentsTurn

	// StateClosed means the session has ended. Terminal.
	StateClosed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMyTurn:
		return "MyTurn"
	case StateOpponentsTurn:
		return "OpponentsTurn"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the state is a defined value.
func (s State) IsValid() bool {
	return s == StateMyTurn || s == StateOpponentsTurn || s == StateClosed
}

// Role identifies which peer sends the first frame of a session.
// Exactly one peer of a pair resolves to RoleFirstMover; roles are assigned
// from the transport-level initiator/acceptor distinction, so no negotiation
// message crosses the wire.
type Role int

const (
	// RoleUnknown is the zero value for an unassigned role.
	RoleUnknown Role = iota

	// RoleFirstMover sends the first frame and starts in StateMyTurn.
	RoleFirstMover

	// RoleSecondMover waits for the first frame and starts in StateOpponentsTurn.
	RoleSecondMover
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleFirstMover:
		return "FirstMover"
	case RoleSecondMover:
		return "SecondMover"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the role is a defined value.
func (r Role) IsValid() bool {
	return r == RoleFirstMover || r == RoleSecondMover
}

// Opposite returns the complementary role.
func (r Role) Opposite() Role {
	switch r {
	case RoleFirstMover:
		return RoleSecondMover
	case RoleSecondMover:
		return RoleFirstMover
	default:
		return RoleUnknown
	}
}
