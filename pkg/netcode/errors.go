package netcode

import "errors"

// Netcode package errors.
var (
	// ErrSetupFailed is returned when the session cannot be established:
	// the channel died before negotiation completed, or the peers disagree
	// on configuration. No session exists after this error.
	ErrSetupFailed = errors.New("netcode: connection setup failed")

	// ErrSizeMismatch is returned during setup when the peers confirm
	// their payload sizes and the values differ.
	ErrSizeMismatch = errors.New("netcode: peers disagree on payload size")

	// ErrSessionClosed is returned by any operation invoked after the
	// session has closed. Expected terminal condition; always recoverable
	// for the caller.
	ErrSessionClosed = errors.New("netcode: session closed")

	// ErrTransport wraps an underlying I/O failure or peer disconnect.
	// Always fatal: the session closes and does not reconnect.
	ErrTransport = errors.New("netcode: transport failure")

	// ErrNoFrame is returned by TryReceive when no frame is pending.
	ErrNoFrame = errors.New("netcode: no frame pending")
)
