package transport

import "errors"

// Transport errors.
var (
	// ErrInvalidAddress is returned when an address cannot be parsed or
	// is empty where one is required.
	ErrInvalidAddress = errors.New("transport: invalid address")

	// ErrNotWebSocket is returned when a peer connects to a WebSocket
	// listener without completing a WebSocket upgrade.
	ErrNotWebSocket = errors.New("transport: connection is not a websocket")
)
