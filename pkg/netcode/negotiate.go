package netcode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/saffron-engine/turnwire/pkg/transport"
	"github.com/saffron-engine/turnwire/pkg/turn"
)

// negotiateRole derives the turn role from the channel's establishment role.
//
// Whichever side initiated the connection moves first; the side that
// accepted it moves second. Both peers observe the same establishment, so
// the derived roles are complementary by construction and no negotiation
// message crosses the wire.
func negotiateRole(ch *transport.Channel) (turn.Role, error) {
	switch ch.Role() {
	case transport.RoleInitiator:
		return turn.RoleFirstMover, nil
	case transport.RoleAcceptor:
		return turn.RoleSecondMover, nil
	default:
		return turn.RoleUnknown, fmt.Errorf("%w: channel has no establishment role", ErrSetupFailed)
	}
}

// confirmPayloadSize performs the optional one-time size exchange: each peer
// writes its payload size as a 4-byte little-endian integer and checks the
// peer's value against its own.
//
// The write runs concurrently with the read because some channels (in-memory
// pipes) do not buffer: with both peers confirming at the same time, writing
// first on both sides would deadlock.
func confirmPayloadSize(ch *transport.Channel, size int) error {
	var ours [4]byte
	binary.LittleEndian.PutUint32(ours[:], uint32(size))

	writeErr := make(chan error, 1)
	go func() {
		_, err := ch.Write(ours[:])
		writeErr <- err
	}()

	var theirs [4]byte
	if _, err := io.ReadFull(ch, theirs[:]); err != nil {
		return fmt.Errorf("reading size confirmation: %w", err)
	}
	if err := <-writeErr; err != nil {
		return fmt.Errorf("writing size confirmation: %w", err)
	}

	peerSize := binary.LittleEndian.Uint32(theirs[:])
	if peerSize != uint32(size) {
		return fmt.Errorf("%w: local %d, peer %d", ErrSizeMismatch, size, peerSize)
	}
	return nil
}
