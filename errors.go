package gowlcore

import (
	"errors"
	"fmt"
)

// Common errors returned by Core's top-level lifecycle methods.
var (
	// ErrNotRunning is returned when an operation that requires a running
	// core is attempted before Run or after Stop.
	ErrNotRunning = errors.New("gowlcore: core is not running")

	// ErrAlreadyRunning is returned by Run when called on a core that is
	// already serving clients.
	ErrAlreadyRunning = errors.New("gowlcore: core is already running")

	// ErrXWaylandDisabled reports that the XWayland bridge is not enabled.
	// Core's own methods do not return it: Bridge returns nil when
	// Config.EnableXWayland was false or the bridge failed to start.
	ErrXWaylandDisabled = errors.New("gowlcore: xwayland bridge is not enabled")
)

// ProtocolError is a client protocol violation: a role conflict, an ack of
// an unknown configure serial, INCR misuse, or any other condition the
// wire protocol specifies as a fatal client error. A host compositor maps
// it to wl_display.error / the interface's own error event and tears the
// offending client down; it must never propagate past the client that
// caused it.
type ProtocolError struct {
	// Interface is the Wayland interface name the violation was reported
	// against, e.g. "xdg_surface" or "wl_surface".
	Interface string
	// Code is the interface-specific error code from its protocol XML.
	Code uint32
	// Message is a human-readable description sent to the client.
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gowlcore: protocol error on %s (code %d): %s", e.Interface, e.Code, e.Message)
}

// AsProtocolError is a convenience wrapper over errors.As for call sites
// that need to decide whether an error returned from a handler should be
// sent to the client as a fatal wire error.
func AsProtocolError(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	ok := errors.As(err, &pe)
	return pe, ok
}
