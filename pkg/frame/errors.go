package frame

import "errors"

// Frame package errors.
var (
	// ErrInvalidSize is returned when a Reader or Writer is constructed
	// with a frame size smaller than one byte.
	ErrInvalidSize = errors.New("frame: frame size must be at least 1 byte")

	// ErrPayloadSize is returned when a caller supplies a payload whose
	// length does not match the configured frame size. Nothing is written
	// to the underlying stream; the caller may retry with a correct buffer.
	ErrPayloadSize = errors.New("frame: payload length does not match frame size")

	// ErrTruncatedFrame is returned when the stream ends partway through a
	// frame. The stream position cannot be recovered, so the session that
	// owns the stream must be torn down.
	ErrTruncatedFrame = errors.New("frame: stream ended mid-frame")
)
