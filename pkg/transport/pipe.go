package transport

import "net"

// Pipe returns two connected in-memory channels, one per peer. Writes on one
// side appear on the other with no real network I/O, which makes tests
// deterministic and flake-free.
//
// The first channel plays the Initiator, the second the Acceptor, matching a
// dial/accept pair. Closing either side causes the peer's pending and future
// reads to fail, which models a peer disconnect.
func Pipe() (*Channel, *Channel) {
	c0, c1 := net.Pipe()
	return NewChannel(c0, KindPipe, RoleInitiator),
		NewChannel(c1, KindPipe, RoleAcceptor)
}
