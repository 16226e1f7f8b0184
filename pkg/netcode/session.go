// Package netcode coordinates strictly alternating turns between two
// connected peers.
//
// A Session owns an established transport.Channel and exposes the operations
// a turn-based game calls: Send a fixed-size payload when it is your turn,
// Receive (or poll with TryReceive) the opponent's payload when it is not,
// query whose turn it is, and tear down. Exactly one peer may send at any
// instant; the right to send alternates with every successful exchange,
// starting with whichever peer dialed the connection.
//
// The two peers never share turn state. Each session infers it locally from
// its own confirmed I/O, which keeps the pair consistent without sequence
// numbers or extra messages.
package netcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pion/logging"

	"github.com/saffron-engine/turnwire/pkg/frame"
	"github.com/saffron-engine/turnwire/pkg/transport"
	"github.com/saffron-engine/turnwire/pkg/turn"
)

// Session is one live pairing between two peers.
//
// All methods are safe for concurrent use: a game typically keeps one
// goroutine blocked in Receive while another decides when to Send.
type Session struct {
	channel *transport.Channel
	machine *turn.Machine
	writer  *frame.Writer
	reader  *frame.Reader
	log     logging.LeveledLogger

	// sendMu serializes frame writes against each other and orders the
	// read pump's arrival check after a concurrent send's turn transition.
	sendMu sync.Mutex

	// frames carries arrived payloads from the read pump to Receive.
	// Capacity 1: strict alternation means at most one frame can legally
	// be in flight toward the application.
	frames chan []byte

	closeOnce sync.Once
	closed    chan struct{}

	errMu sync.RWMutex
	err   error
}

// NewSession establishes a session over an already-connected channel.
//
// The channel's establishment role seeds the turn order (the dialer moves
// first), the optional payload size confirmation runs, and the session takes
// exclusive ownership of the channel: on any setup failure the channel is
// closed and no session exists.
func NewSession(ch *transport.Channel, config Config) (*Session, error) {
	if config.PayloadSize < 1 {
		ch.Close()
		return nil, fmt.Errorf("%w: %w", ErrSetupFailed, frame.ErrInvalidSize)
	}

	role, err := negotiateRole(ch)
	if err != nil {
		ch.Close()
		return nil, err
	}

	if config.ConfirmPayloadSize {
		if err := confirmPayloadSize(ch, config.PayloadSize); err != nil {
			ch.Close()
			return nil, fmt.Errorf("%w: %w", ErrSetupFailed, err)
		}
	}

	machine, err := turn.NewMachine(role)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	writer, err := frame.NewWriter(ch, config.PayloadSize)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}
	reader, err := frame.NewReader(ch, config.PayloadSize)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	s := &Session{
		channel: ch,
		machine: machine,
		writer:  writer,
		reader:  reader,
		frames:  make(chan []byte, 1),
		closed:  make(chan struct{}),
	}

	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("netcode")
	}
	if s.log != nil {
		s.log.Infof("session active: %s over %s, %d-byte frames, peer %s",
			role, ch.Kind(), config.PayloadSize, ch.RemoteAddr())
	}

	go s.readLoop()

	return s, nil
}

// CurrentTurn reports whose turn it is. Pure query, no side effects.
func (s *Session) CurrentTurn() turn.State {
	return s.machine.State()
}

// Role returns the negotiated turn role.
func (s *Session) Role() turn.Role {
	return s.machine.Role()
}

// PayloadSize returns the fixed frame size in bytes.
func (s *Session) PayloadSize() int {
	return s.writer.Size()
}

// Send transmits one frame and hands the turn to the opponent.
//
// Local contract violations fail before any bytes reach the channel and
// leave all state unchanged: turn.ErrNotYourTurn when the opponent holds
// the turn, frame.ErrPayloadSize when the payload length is wrong,
// ErrSessionClosed after closure. An I/O failure mid-write is fatal and
// closes the session.
func (s *Session) Send(payload []byte) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if err := s.machine.BeginSend(); err != nil {
		if errors.Is(err, turn.ErrMachineClosed) {
			return ErrSessionClosed
		}
		return err
	}

	if len(payload) != s.writer.Size() {
		return frame.ErrPayloadSize
	}

	if err := s.writer.WriteFrame(payload); err != nil {
		err = fmt.Errorf("%w: %w", ErrTransport, err)
		s.shutdown(err)
		return err
	}

	if err := s.machine.FinishSend(); err != nil {
		// The session closed between the write and the transition.
		return ErrSessionClosed
	}
	return nil
}

// Receive blocks until the opponent's frame arrives, then takes the turn
// and returns the payload.
//
// Calling Receive while still holding the turn is legitimate: the call
// simply waits through the local send for the opponent's eventual reply.
// Cancelling the context abandons the wait without consuming anything, so
// session state is untouched and a later Receive sees the frame. If the
// session closes while waiting, Receive returns the closure's cause.
func (s *Session) Receive(ctx context.Context) ([]byte, error) {
	if s.machine.State() == turn.StateClosed {
		return nil, ErrSessionClosed
	}

	select {
	case payload := <-s.frames:
		return s.deliver(payload)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closed:
		return nil, s.terminalError()
	}
}

// TryReceive returns the opponent's frame if one has already arrived, or
// ErrNoFrame without blocking. On success it takes the turn, exactly like
// Receive.
func (s *Session) TryReceive() ([]byte, error) {
	if s.machine.State() == turn.StateClosed {
		return nil, ErrSessionClosed
	}

	select {
	case payload := <-s.frames:
		return s.deliver(payload)
	default:
		return nil, ErrNoFrame
	}
}

// Close releases the channel and moves the session to the closed state.
// Idempotent; every operation afterwards fails with ErrSessionClosed.
func (s *Session) Close() error {
	s.shutdown(nil)
	return nil
}

// Err returns the reason the session closed: nil while the session is
// active or after a plain Close, otherwise the first fatal error.
func (s *Session) Err() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.err
}

// deliver completes one receive: the turn comes back to the local peer.
func (s *Session) deliver(payload []byte) ([]byte, error) {
	if err := s.machine.FinishReceive(); err != nil {
		// The session closed while the frame sat in the queue.
		return nil, s.terminalError()
	}
	return payload, nil
}

// readLoop is the session's receive pump. It exclusively owns the channel's
// read side: every arriving frame passes the turn machine's arrival check
// before being queued for delivery. Any failure is fatal.
func (s *Session) readLoop() {
	for {
		payload, err := s.reader.ReadFrame()
		if err != nil {
			select {
			case <-s.closed:
				// Local closure interrupted the read; nothing to report.
				return
			default:
			}

			switch {
			case errors.Is(err, frame.ErrTruncatedFrame):
				// Peer vanished mid-frame. The stream position is lost.
			case errors.Is(err, io.EOF):
				err = fmt.Errorf("%w: peer closed the connection", ErrTransport)
			default:
				err = fmt.Errorf("%w: %w", ErrTransport, err)
			}
			s.shutdown(err)
			return
		}

		// A frame can land while Send is still inside WriteFrame: the
		// peer read our full frame and replied before our write call
		// unwound. That reply is legal. Taking sendMu parks the arrival
		// check until the send's turn transition has completed, so the
		// machine never sees a legal reply during StateMyTurn.
		s.sendMu.Lock()
		arriveErr := s.machine.FrameArrived()
		s.sendMu.Unlock()
		if arriveErr != nil {
			if errors.Is(arriveErr, turn.ErrPeerTurnViolation) {
				if s.log != nil {
					s.log.Warnf("peer sent a frame without holding the turn")
				}
				s.shutdown(arriveErr)
			}
			return
		}

		select {
		case s.frames <- payload:
		case <-s.closed:
			return
		}
	}
}

// shutdown closes the session exactly once. A nil cause is a deliberate
// local Close; anything else is the fatal error waiters will observe.
func (s *Session) shutdown(cause error) {
	s.closeOnce.Do(func() {
		s.errMu.Lock()
		s.err = cause
		s.errMu.Unlock()

		s.machine.Close()
		close(s.closed)
		s.channel.Close()

		if s.log != nil {
			if cause != nil {
				s.log.Infof("session closed: %v", cause)
			} else {
				s.log.Infof("session closed")
			}
		}
	})
}

// terminalError is what operations report once the session has closed.
func (s *Session) terminalError() error {
	if err := s.Err(); err != nil {
		return err
	}
	return ErrSessionClosed
}
