package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"time"

	"github.com/pion/logging"
	"github.com/quic-go/quic-go"
)

// ALPN string for the turn protocol. The QUIC handshake aborts unless both
// peers present the same value.
const quicALPN = "turnwire/1"

// QUICConfig configures QUIC channel establishment.
type QUICConfig struct {
	// ListenAddr is the UDP address to listen on (e.g., ":7402").
	// An empty address binds an ephemeral port. Dial side ignores it.
	ListenAddr string

	// TLSConfig overrides the TLS setup. If nil, the listen side generates
	// an ephemeral self-signed certificate and the dial side skips
	// verification: peers are mutually trusted and identity is the
	// application's concern, the handshake only has to complete.
	TLSConfig *tls.Config

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// QUICListener accepts QUIC channels. Each peer connection contributes one
// bidirectional stream, which becomes the channel's byte stream.
type QUICListener struct {
	listener *quic.Listener
	log      logging.LeveledLogger
}

// ListenQUIC creates a listener that yields QUIC channels.
func ListenQUIC(config QUICConfig) (*QUICListener, error) {
	tlsConf := config.TLSConfig
	if tlsConf == nil {
		var err error
		tlsConf, err = selfSignedTLSConfig()
		if err != nil {
			return nil, err
		}
	}

	addr := config.ListenAddr
	if addr == "" {
		addr = ":0"
	}

	listener, err := quic.ListenAddr(addr, tlsConf, nil)
	if err != nil {
		return nil, err
	}

	l := &QUICListener{listener: listener}
	if config.LoggerFactory != nil {
		l.log = config.LoggerFactory.NewLogger("transport-quic")
	}

	if l.log != nil {
		l.log.Infof("listening for QUIC peers on %s", listener.Addr())
	}

	return l, nil
}

// Accept blocks until a peer connects and opens its stream, then returns the
// acceptor-side channel.
//
// QUIC creates streams lazily: the accept side learns of the stream with its
// first bytes. Under this protocol the dialer always writes first (it is the
// first mover, and session setup may exchange a size confirmation), so the
// stream appears as soon as the peer's session starts.
func (l *QUICListener) Accept() (*Channel, error) {
	conn, err := l.listener.Accept(context.Background())
	if err != nil {
		return nil, err
	}

	stream, err := conn.AcceptStream(context.Background())
	if err != nil {
		conn.CloseWithError(0, "no stream")
		return nil, err
	}

	if l.log != nil {
		l.log.Infof("accepted QUIC peer %s", conn.RemoteAddr())
	}

	return newQUICChannel(conn, stream, RoleAcceptor), nil
}

// Addr returns the UDP address the listener is bound to.
func (l *QUICListener) Addr() net.Addr {
	return l.listener.Addr()
}

// Close stops the listener. Channels already accepted stay open.
func (l *QUICListener) Close() error {
	return l.listener.Close()
}

// DialQUIC connects to a listening peer, opens the session's single
// bidirectional stream and returns the initiator-side channel.
func DialQUIC(ctx context.Context, addr string, config QUICConfig) (*Channel, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}

	tlsConf := config.TLSConfig
	if tlsConf == nil {
		tlsConf = &tls.Config{
			InsecureSkipVerify: true,
			NextProtos:         []string{quicALPN},
			MinVersion:         tls.VersionTLS13,
		}
	}

	conn, err := quic.DialAddr(ctx, addr, tlsConf, nil)
	if err != nil {
		return nil, err
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(0, "no stream")
		return nil, err
	}

	return newQUICChannel(conn, stream, RoleInitiator), nil
}

func newQUICChannel(conn quic.Connection, stream quic.Stream, role Role) *Channel {
	qc := &quicConn{conn: conn, stream: stream}
	ch := NewChannel(qc, KindQUIC, role)
	ch.extraClose = func() error {
		return conn.CloseWithError(0, "session closed")
	}
	return ch
}

// quicConn adapts one bidirectional QUIC stream to net.Conn.
type quicConn struct {
	conn   quic.Connection
	stream quic.Stream
}

func (c *quicConn) Read(p []byte) (int, error)  { return c.stream.Read(p) }
func (c *quicConn) Write(p []byte) (int, error) { return c.stream.Write(p) }

func (c *quicConn) Close() error {
	c.stream.CancelRead(0)
	return c.stream.Close()
}

func (c *quicConn) LocalAddr() net.Addr                { return c.conn.LocalAddr() }
func (c *quicConn) RemoteAddr() net.Addr               { return c.conn.RemoteAddr() }
func (c *quicConn) SetDeadline(t time.Time) error      { return c.stream.SetDeadline(t) }
func (c *quicConn) SetReadDeadline(t time.Time) error  { return c.stream.SetReadDeadline(t) }
func (c *quicConn) SetWriteDeadline(t time.Time) error { return c.stream.SetWriteDeadline(t) }

// selfSignedTLSConfig generates an ephemeral certificate for the listen side.
func selfSignedTLSConfig() (*tls.Config, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "turnwire"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{der},
			PrivateKey:  key,
		}},
		NextProtos: []string{quicALPN},
		MinVersion: tls.VersionTLS13,
	}, nil
}

var _ net.Conn = (*quicConn)(nil)
var _ Listener = (*QUICListener)(nil)
