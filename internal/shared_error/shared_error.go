// Package shared_error collects the I/O-facing sentinel errors the example
// socksconnect client returns. These are distinct from internal/protoerr:
// protoerr classifies failures of the sans-I/O handshake itself, while
// these mark failures of the transport the example client owns (dialing,
// reading) that the core has no opinion on.
package shared_error

import "errors"

var (
	ErrProxyDialFailed     = errors.New("failed to establish a connection with the SOCKS proxy")
	ErrProxyConnClosed     = errors.New("connection to the SOCKS proxy closed before the handshake completed")
	ErrProxyReadFailed     = errors.New("failed to read from the SOCKS proxy connection")
	ErrHandshakeIncomplete = errors.New("the SOCKS proxy closed the connection mid-handshake")
)
