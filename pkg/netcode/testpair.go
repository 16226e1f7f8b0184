package netcode

import (
	"fmt"

	"github.com/saffron-engine/turnwire/pkg/transport"
)

// SessionPair is two sessions connected by an in-memory pipe: everything a
// test (or a local two-player mode) needs to drive both ends of the
// protocol without real network I/O.
//
// Usage:
//
//	pair, _ := netcode.NewSessionPair(netcode.Config{PayloadSize: 8})
//	defer pair.Close()
//
//	pair.First().Send(move)
//	got, _ := pair.Second().Receive(ctx)
type SessionPair struct {
	first  *Session
	second *Session
}

// NewSessionPair creates two connected sessions sharing one Config. The
// first session holds the first move (it plays the dialing side of the
// pipe), the second waits.
func NewSessionPair(config Config) (*SessionPair, error) {
	chFirst, chSecond := transport.Pipe()

	// Both sessions must come up concurrently: the pipe is unbuffered, so
	// with ConfirmPayloadSize enabled each side's setup blocks on the
	// other's.
	type result struct {
		s   *Session
		err error
	}
	firstCh := make(chan result, 1)
	go func() {
		s, err := NewSession(chFirst, config)
		firstCh <- result{s, err}
	}()

	second, secondErr := NewSession(chSecond, config)
	first := <-firstCh

	if first.err != nil || secondErr != nil {
		if first.s != nil {
			first.s.Close()
		}
		if second != nil {
			second.Close()
		}
		if first.err != nil {
			return nil, fmt.Errorf("first session: %w", first.err)
		}
		return nil, fmt.Errorf("second session: %w", secondErr)
	}

	return &SessionPair{first: first.s, second: second}, nil
}

// First returns the session holding the first move.
func (p *SessionPair) First() *Session {
	return p.first
}

// Second returns the session waiting for the first move.
func (p *SessionPair) Second() *Session {
	return p.second
}

// Close tears down both sessions.
func (p *SessionPair) Close() error {
	p.first.Close()
	p.second.Close()
	return nil
}
