package transport

import (
	"net"

	"github.com/pion/logging"
)

// TCPConfig configures a TCP channel listener.
type TCPConfig struct {
	// Listener is an optional pre-existing listener to use.
	// If nil, a new listener is created on ListenAddr.
	Listener net.Listener

	// ListenAddr is the address to listen on (e.g., ":7400").
	// An empty address binds an ephemeral port. Ignored if Listener is set.
	ListenAddr string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// TCPListener accepts TCP channels.
type TCPListener struct {
	listener net.Listener
	log      logging.LeveledLogger
}

// ListenTCP creates a listener that yields TCP channels.
func ListenTCP(config TCPConfig) (*TCPListener, error) {
	l := &TCPListener{listener: config.Listener}

	if config.LoggerFactory != nil {
		l.log = config.LoggerFactory.NewLogger("transport-tcp")
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
		l.log.Infof("listening for TCP peers on %s", l.listener.Addr())
	}

	return l, nil
}

// Accept blocks until a peer connects and returns the acceptor-side channel.
func (l *TCPListener) Accept() (*Channel, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}

	if l.log != nil {
		l.log.Infof("accepted TCP peer %s", conn.RemoteAddr())
	}

	return NewChannel(conn, KindTCP, RoleAcceptor), nil
}

// Addr returns the address the listener is bound to.
func (l *TCPListener) Addr() net.Addr {
	return l.listener.Addr()
}

// Close stops the listener. Channels already accepted stay open.
func (l *TCPListener) Close() error {
	return l.listener.Close()
}

// DialTCP connects to a listening peer and returns the initiator-side channel.
func DialTCP(addr string) (*Channel, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	return NewChannel(conn, KindTCP, RoleInitiator), nil
}

var _ Listener = (*TCPListener)(nil)
