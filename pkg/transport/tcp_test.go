package transport

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/pion/transport/v3/test"
)

func TestListenTCP(t *testing.T) {
	t.Run("ephemeral port", func(t *testing.T) {
		l, err := ListenTCP(TCPConfig{ListenAddr: "127.0.0.1:0"})
		if err != nil {
			t.Fatalf("ListenTCP() error = %v", err)
		}
		defer l.Close()

		if l.Addr() == nil {
			t.Error("Addr() = nil")
		}
	})

	t.Run("injected listener", func(t *testing.T) {
		inner, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Listen() error = %v", err)
		}

		l, err := ListenTCP(TCPConfig{Listener: inner})
		if err != nil {
			t.Fatalf("ListenTCP() error = %v", err)
		}
		defer l.Close()

		if l.Addr().String() != inner.Addr().String() {
			t.Errorf("Addr() = %v, want %v", l.Addr(), inner.Addr())
		}
	})
}

func TestDialTCPInvalidAddress(t *testing.T) {
	if _, err := DialTCP(""); err != ErrInvalidAddress {
		t.Errorf("DialTCP(\"\") error = %v, want %v", err, ErrInvalidAddress)
	}
}

func TestTCPRoleComplementarity(t *testing.T) {
	lim := test.TimeOut(10 * time.Second)
	defer lim.Stop()

	// The accept side may start waiting before or after the dial happens;
	// roles must come out complementary either way.
	t.Run("accept first", func(t *testing.T) {
		l, err := ListenTCP(TCPConfig{ListenAddr: "127.0.0.1:0"})
		if err != nil {
			t.Fatalf("ListenTCP() error = %v", err)
		}
		defer l.Close()

		accepted := make(chan *Channel, 1)
		go func() {
			ch, err := l.Accept()
			if err != nil {
				t.Errorf("Accept() error = %v", err)
				return
			}
			accepted <- ch
		}()

		dialed, err := DialTCP(l.Addr().String())
		if err != nil {
			t.Fatalf("DialTCP() error = %v", err)
		}
		defer dialed.Close()

		ch := <-accepted
		defer ch.Close()
		assertComplementaryRoles(t, dialed, ch)
	})

	t.Run("dial first", func(t *testing.T) {
		l, err := ListenTCP(TCPConfig{ListenAddr: "127.0.0.1:0"})
		if err != nil {
			t.Fatalf("ListenTCP() error = %v", err)
		}
		defer l.Close()

		dialed, err := DialTCP(l.Addr().String())
		if err != nil {
			t.Fatalf("DialTCP() error = %v", err)
		}
		defer dialed.Close()

		ch, err := l.Accept()
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		defer ch.Close()
		assertComplementaryRoles(t, dialed, ch)
	})
}

func assertComplementaryRoles(t *testing.T, dialed, accepted *Channel) {
	t.Helper()

	if dialed.Role() != RoleInitiator {
		t.Errorf("dialed channel role = %v, want RoleInitiator", dialed.Role())
	}
	if accepted.Role() != RoleAcceptor {
		t.Errorf("accepted channel role = %v, want RoleAcceptor", accepted.Role())
	}
}

func TestTCPRoundTrip(t *testing.T) {
	lim := test.TimeOut(10 * time.Second)
	defer lim.Stop()

	l, err := ListenTCP(TCPConfig{ListenAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("ListenTCP() error = %v", err)
	}
	defer l.Close()

	accepted := make(chan *Channel, 1)
	go func() {
		ch, err := l.Accept()
		if err != nil {
			t.Errorf("Accept() error = %v", err)
			return
		}
		accepted <- ch
	}()

	dialed, err := DialTCP(l.Addr().String())
	if err != nil {
		t.Fatalf("DialTCP() error = %v", err)
	}
	defer dialed.Close()

	server := <-accepted
	defer server.Close()

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if _, err := dialed.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := make([]byte, len(payload))
	if _, err := io.ReadFull(server, got); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read %v, want %v", got, payload)
	}

	if dialed.Kind() != KindTCP || server.Kind() != KindTCP {
		t.Errorf("Kind() = %v/%v, want TCP/TCP", dialed.Kind(), server.Kind())
	}
}

func TestChannelCloseIdempotent(t *testing.T) {
	a, b := Pipe()
	defer b.Close()

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
