package transport

// Kind identifies the transport protocol carrying a channel.
type Kind int

const (
	// KindUnknown is the zero value for an unknown transport.
	KindUnknown Kind = iota
	// KindTCP indicates a plain TCP stream.
	KindTCP
	// KindWebSocket indicates a WebSocket connection carrying binary messages.
	KindWebSocket
	// KindQUIC indicates a single bidirectional QUIC stream.
	KindQUIC
	// KindPipe indicates an in-memory pipe used for testing.
	KindPipe
)

// String returns the string representation of the transport kind.
func (k Kind) String() string {
	switch k {
	case KindTCP:
		return "TCP"
	case KindWebSocket:
		return "WebSocket"
	case KindQUIC:
		return "QUIC"
	case KindPipe:
		return "Pipe"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the kind is a known valid transport.
func (k Kind) IsValid() bool {
	switch k {
	case KindTCP, KindWebSocket, KindQUIC, KindPipe:
		return true
	default:
		return false
	}
}

// Role records which side of connection establishment a channel came from.
// The dialing side is the Initiator, the listening side the Acceptor. The
// distinction is free at connection time and is what higher layers use to
// assign complementary first-mover roles without any extra round trip.
type Role int

const (
	// RoleUnknown is the zero value for an unknown establishment role.
	RoleUnknown Role = iota
	// RoleInitiator marks the side that dialed the connection.
	RoleInitiator
	// RoleAcceptor marks the side that accepted the connection.
	RoleAcceptor
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleInitiator:
		return "Initiator"
	case RoleAcceptor:
		return "Acceptor"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the role is a defined value.
func (r Role) IsValid() bool {
	return r == RoleInitiator || r == RoleAcceptor
}
