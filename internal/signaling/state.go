package signaling

import (
	"errors"
	"fmt"
)

// State is the lifecycle state of the Client's current connection.
type State int32

const (
	StateIdle       State = iota // no socket yet
	StateConnecting              // dial in flight
	StateOpen                    // handshake complete, frames flow
	StateClosed                  // terminal for that connection
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var (
	// ErrNotOpen is returned when sending without an open connection.
	// Nothing is queued.
	ErrNotOpen = errors.New("connection is not open")

	// ErrInvalidProperty is returned by SendProperty for an empty name or a
	// nil value.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrEmptySDP is returned by SendAnswer for an empty session description.
	ErrEmptySDP = errors.New("empty session description")
)

// TransportError is a socket-level failure. It is delivered through the
// OnError handler and never retried.
type TransportError struct {
	Op  string // "dial", "read" or "write"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("websocket %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
