package netcode

import "github.com/pion/logging"

// Config configures a session.
type Config struct {
	// PayloadSize is the exact length in bytes of every frame, fixed for
	// the session's lifetime. Both peers must use the same value; this is
	// a deployment contract unless ConfirmPayloadSize is enabled.
	// Required, must be at least 1.
	PayloadSize int

	// ConfirmPayloadSize exchanges each peer's payload size once before
	// the first turn and fails setup with ErrSizeMismatch when the values
	// differ. Both peers must enable it, since the confirmation bytes are
	// in-band. Recommended hardening; off by default for wire
	// compatibility with peers that do not send the confirmation.
	ConfirmPayloadSize bool

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}
