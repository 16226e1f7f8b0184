// Package transport establishes ordered, reliable duplex byte channels
// between exactly two peers.
//
// A Channel is the only thing higher layers see: a bidirectional byte stream
// plus two facts learned during establishment, the transport Kind and the
// establishment Role (dialer or acceptor). TCP, WebSocket and QUIC channels
// cross real networks; pipe channels connect two endpoints in memory for
// tests. Discovery, address exchange and encryption policy are out of scope:
// callers bring addresses, and QUIC's TLS exists to satisfy the protocol,
// not to authenticate peers.
package transport

import (
	"net"
	"sync"
	"time"
)

// Channel is an established duplex byte stream between two peers.
//
// Reads and writes follow net.Conn semantics: Read blocks until at least one
// byte arrives or the stream ends, Write blocks until all bytes are accepted.
// A Channel is exclusively owned by whoever holds it; the transport package
// never touches an established channel again.
type Channel struct {
	conn net.Conn
	kind Kind
	role Role

	closeOnce sync.Once
	closeErr  error
	// extraClose releases resources beyond the conn itself, like the QUIC
	// connection a stream rides on. May be nil.
	extraClose func() error
}

// NewChannel wraps an established connection in a Channel.
// Most callers use the Dial/Listen constructors instead; NewChannel exists
// for duplex transports provided by the application.
func NewChannel(conn net.Conn, kind Kind, role Role) *Channel {
	return &Channel{conn: conn, kind: kind, role: role}
}

// Kind returns the transport protocol carrying this channel.
func (c *Channel) Kind() Kind {
	return c.kind
}

// Role returns which side of establishment this channel is.
func (c *Channel) Role() Role {
	return c.role
}

// Read reads up to len(p) bytes from the peer.
func (c *Channel) Read(p []byte) (int, error) {
	return c.conn.Read(p)
}

// Write writes len(p) bytes to the peer.
func (c *Channel) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

// Close releases the channel. Idempotent; concurrent and repeated calls
// return the first close's result.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		if c.extraClose != nil {
			if err := c.extraClose(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}

// LocalAddr returns the local endpoint address.
func (c *Channel) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the peer's address.
func (c *Channel) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// SetReadDeadline sets the deadline for future Read calls.
func (c *Channel) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// SetWriteDeadline sets the deadline for future Write calls.
func (c *Channel) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}

// Listener accepts incoming channels. Implementations exist per transport;
// every accepted channel carries RoleAcceptor.
type Listener interface {
	// Accept blocks until a peer connects and returns the established channel.
	Accept() (*Channel, error)

	// Addr returns the address the listener is bound to.
	Addr() net.Addr

	// Close stops the listener. Pending Accept calls fail.
	Close() error
}
