package turn

import "sync"

// Machine is the local half of the alternating-turn automaton.
//
// Transitions happen only on confirmed I/O events reported by the caller:
// BeginSend/FinishSend bracket one frame write, FrameArrived/FinishReceive
// bracket one frame's arrival and its delivery to the application. The
// machine itself performs no I/O.
//
// All methods are safe for concurrent use.
type Machine struct {
	mu sync.Mutex

	role  Role
	state State

	// arrived is set between a frame's arrival on the wire and its
	// delivery to the application. While set, the turn still belongs to
	// the opponent from the application's point of view, but a second
	// arrival is a protocol violation.
	arrived bool
}

// NewMachine creates a machine seeded from the negotiated role.
// First movers start in StateMyTurn, second movers in StateOpponentsTurn.
func NewMachine(role Role) (*Machine, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	state := StateOpponentsTurn
	if role == RoleFirstMover {
		state = StateMyTurn
	}

	return &Machine{role: role, state: state}, nil
}

// Role returns the negotiated role.
func (m *Machine) Role() Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.role
}

// State returns the current turn state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// BeginSend checks that the local peer may send right now.
// It has no side effects: callers perform the frame write only after
// BeginSend succeeds, then report the outcome with FinishSend.
func (m *Machine) BeginSend() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateClosed:
		return ErrMachineClosed
	case StateOpponentsTurn:
		return ErrNotYourTurn
	}
	return nil
}

// FinishSend records a successful full-frame write and hands the turn to
// the opponent.
func (m *Machine) FinishSend() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateClosed:
		return ErrMachineClosed
	case StateOpponentsTurn:
		return ErrNotYourTurn
	}

	m.state = StateOpponentsTurn
	return nil
}

// FrameArrived records that a full frame was read off the wire.
//
// A frame may legally arrive only while the opponent holds the turn and no
// earlier arrival is still undelivered. Anything else means the peer sent
// without holding the turn; the caller must close the session.
func (m *Machine) FrameArrived() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateClosed {
		return ErrMachineClosed
	}
	if m.state == StateMyTurn || m.arrived {
		return ErrPeerTurnViolation
	}

	m.arrived = true
	return nil
}

// FinishReceive records that the arrived frame was delivered to the
// application and takes the turn back.
func (m *Machine) FinishReceive() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateClosed {
		return ErrMachineClosed
	}
	if !m.arrived {
		return ErrPeerTurnViolation
	}

	m.arrived = false
	m.state = StateMyTurn
	return nil
}

// Close moves the machine to StateClosed. Idempotent; there are no
// transitions out of the closed state.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateClosed
	m.arrived = false
}
