package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/pion/logging"
)

// WSConfig configures a WebSocket channel listener.
type WSConfig struct {
	// Listener is an optional pre-existing listener to use.
	// If nil, a new TCP listener is created on ListenAddr.
	Listener net.Listener

	// ListenAddr is the address to listen on (e.g., ":7401").
	// An empty address binds an ephemeral port. Ignored if Listener is set.
	ListenAddr string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// WSListener accepts WebSocket channels. Each accepted TCP connection is
// upgraded in place with a zero-copy handshake.
type WSListener struct {
	listener net.Listener
	log      logging.LeveledLogger
}

// ListenWS creates a listener that yields WebSocket channels.
func ListenWS(config WSConfig) (*WSListener, error) {
	l := &WSListener{listener: config.Listener}

	if config.LoggerFactory != nil {
		l.log = config.LoggerFactory.NewLogger("transport-ws")
	}

	if l.listener == nil {
		addr := config.ListenAddr
		if addr == "" {
			addr = ":0"
		}

		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, err
		}
		l.listener = listener
	}

	if l.log != nil {
		l.log.Infof("listening for WebSocket peers on %s", l.listener.Addr())
	}

	return l, nil
}

// Accept blocks until a peer completes the WebSocket handshake and returns
// the acceptor-side channel.
func (l *WSListener) Accept() (*Channel, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}

	if _, err := ws.Upgrade(conn); err != nil {
		conn.Close()
		if l.log != nil {
			l.log.Warnf("rejected non-websocket peer %s: %v", conn.RemoteAddr(), err)
		}
		return nil, ErrNotWebSocket
	}

	if l.log != nil {
		l.log.Infof("accepted WebSocket peer %s", conn.RemoteAddr())
	}

	wc := newWSConn(conn, nil, ws.StateServerSide)
	return NewChannel(wc, KindWebSocket, RoleAcceptor), nil
}

// Addr returns the address the listener is bound to.
func (l *WSListener) Addr() net.Addr {
	return l.listener.Addr()
}

// Close stops the listener. Channels already accepted stay open.
func (l *WSListener) Close() error {
	return l.listener.Close()
}

// DialWS connects to a WebSocket peer (e.g., "ws://host:port/") and returns
// the initiator-side channel.
func DialWS(ctx context.Context, url string) (*Channel, error) {
	if url == "" {
		return nil, ErrInvalidAddress
	}

	conn, br, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, err
	}

	wc := newWSConn(conn, br, ws.StateClientSide)
	return NewChannel(wc, KindWebSocket, RoleInitiator), nil
}

// wsConn adapts a WebSocket connection to byte-stream semantics: writes
// become binary messages, reads drain binary messages with any remainder
// buffered for the next call.
type wsConn struct {
	conn  net.Conn
	state ws.State

	mu      sync.Mutex
	readBuf []byte
	readPos int
	// pre holds bytes the dialer's handshake over-read, consumed before
	// any reads from the socket itself.
	pre *bufio.Reader
}

func newWSConn(conn net.Conn, pre *bufio.Reader, state ws.State) *wsConn {
	if pre != nil && pre.Buffered() == 0 {
		pre = nil
	}
	return &wsConn{conn: conn, state: state, pre: pre}
}

func (c *wsConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.readPos < len(c.readBuf) {
		n := copy(p, c.readBuf[c.readPos:])
		c.readPos += n
		if c.readPos >= len(c.readBuf) {
			c.readBuf = nil
			c.readPos = 0
		}
		return n, nil
	}

	// Keep reading through control-only messages: io.Reader callers are
	// not prepared for a zero-byte non-EOF result.
	var payload []byte
	for payload == nil {
		var src io.Reader = c.conn
		if c.pre != nil {
			src = io.MultiReader(c.pre, c.conn)
		}

		data, err := wsutil.ReadMessage(src, c.state, nil)
		if c.pre != nil && c.pre.Buffered() == 0 {
			c.pre = nil
		}
		if err != nil {
			// A close frame ends the stream cleanly.
			if _, closed := err.(wsutil.ClosedError); closed {
				return 0, io.EOF
			}
			return 0, err
		}

		for _, m := range data {
			if m.OpCode == ws.OpClose {
				return 0, io.EOF
			}
			if m.OpCode == ws.OpBinary {
				payload = m.Payload
				break
			}
		}
	}

	n := copy(p, payload)
	if n < len(payload) {
		c.readBuf = payload[n:]
		c.readPos = 0
	}
	return n, nil
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := wsutil.WriteMessage(c.conn, c.state, ws.OpBinary, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	// Best-effort close frame; the peer may already be gone.
	_ = wsutil.WriteMessage(c.conn, c.state, ws.OpClose, nil)
	return c.conn.Close()
}

func (c *wsConn) LocalAddr() net.Addr                { return c.conn.LocalAddr() }
func (c *wsConn) RemoteAddr() net.Addr               { return c.conn.RemoteAddr() }
func (c *wsConn) SetDeadline(t time.Time) error      { return c.conn.SetDeadline(t) }
func (c *wsConn) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *wsConn) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }

var (
	_ net.Conn = (*wsConn)(nil)
	_ Listener = (*WSListener)(nil)
)
