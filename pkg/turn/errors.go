package turn

import "errors"

// Turn package errors.
var (
	// ErrInvalidRole is returned when a machine is created with an
	// unassigned or undefined role.
	ErrInvalidRole = errors.New("turn: invalid role")

	// ErrNotYourTurn is returned when the local peer attempts to send
	// while the opponent holds the turn. Purely a local guard: nothing is
	// written and no state changes. The caller may wait and retry.
	ErrNotYourTurn = errors.New("turn: not your turn")

	// ErrPeerTurnViolation is returned when a frame arrives while the peer
	// does not hold the turn. The two automatons have desynchronized, or
	// the peer is buggy; there is no resynchronization protocol, so the
	// session must close.
	ErrPeerTurnViolation = errors.New("turn: peer sent out of turn")

	// ErrMachineClosed is returned by every operation after Close.
	ErrMachineClosed = errors.New("turn: machine closed")
)
