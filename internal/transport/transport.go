// Package transport defines the framed, bidirectional byte-stream contract
// the gateway session engine consumes. It deliberately knows nothing about
// the Discord wire protocol: a Conn hands over opaque message frames, and
// the gateway package is the only thing that interprets their contents.
package transport

import (
	"context"
	"errors"
)

// ErrConnClosed is returned by Read/Write once Close has been called and
// no more specific close-code error is available.
var ErrConnClosed = errors.New("transport: connection closed")

// Conn is a ready-to-use, already-handshaked message channel. Exactly one
// Read and at most one Write may be outstanding at any instant; the gateway
// session engine is responsible for enforcing that, not the Conn itself.
type Conn interface {
	// Read blocks for the next whole message. It returns a non-nil error
	// exactly once, after which the Conn is considered dead.
	Read(ctx context.Context) ([]byte, error)
	// Write sends one whole message and returns once it has been flushed.
	Write(ctx context.Context, message []byte) error
	// Close closes the underlying connection. Idempotent.
	Close() error
}

// Dialer produces a Conn for a given gateway URL. Implementations may also
// set transport-specific options (headers, per-message compression) before
// returning.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}
