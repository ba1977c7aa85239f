package gateway

import "errors"

// Sentinel errors the session surfaces to the consumer through Open's and
// Send's return values; the Events() channel never carries an error.
var (
	// ErrTransportFailure covers dial failures and unexpected socket drops
	// that the lifecycle controller could not classify any further.
	ErrTransportFailure = errors.New("gateway: transport failure")
	// ErrProtocolViolation covers any inbound frame that breaks the wire
	// contract: an unparseable envelope, or a DISPATCH missing s or t.
	ErrProtocolViolation = errors.New("gateway: protocol violation")
	// ErrLivenessFailure is raised when a HEARTBEAT goes unacknowledged
	// before the next one is due: the connection is presumed dead.
	ErrLivenessFailure = errors.New("gateway: heartbeat not acknowledged")
	// ErrSessionInvalidated covers an INVALID_SESSION from the server,
	// resumable or not; Open answers it with the 1-5s invalid-session delay.
	ErrSessionInvalidated = errors.New("gateway: session invalidated")
	// ErrAuthenticationFailed covers the non-reconnectable close codes
	// (4004, 4010-4014): retrying would just repeat the failure.
	ErrAuthenticationFailed = errors.New("gateway: authentication failed")
	// ErrClosed is returned from Send calls made after Close. Open called
	// after Close returns nil without dialing.
	ErrClosed = errors.New("gateway: session closed")
)
