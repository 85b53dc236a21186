// Package selection implements the clipboard/primary/DnD selection model:
// per-seat slots holding either a client- or compositor-backed source,
// offer lifecycle management, the DnD grab state machine, and action
// arbitration.
package selection

import "io"

// SlotKind names one of a seat's three selection slots.
type SlotKind int

const (
	SlotClipboard SlotKind = iota
	SlotPrimary
	SlotDnd
)

func (k SlotKind) String() string {
	switch k {
	case SlotClipboard:
		return "clipboard"
	case SlotPrimary:
		return "primary"
	case SlotDnd:
		return "dnd"
	default:
		return "unknown"
	}
}

// SourceKind distinguishes a client-owned source from a compositor-owned
// one.
type SourceKind int

const (
	SourceClient SourceKind = iota
	SourceCompositor
)

// Source is the common shape of a selection's data provider.
type Source interface {
	Mimes() []string
	Kind() SourceKind
}

// ClientSource is a selection source owned by a client connection: its
// Send writes mime's data to fd, and its lifetime is tied to the client's
// wl_data_source (or primary-selection equivalent) resource.
type ClientSource struct {
	mimes []string
	send  func(mime string, fd io.WriteCloser) error

	// Cancelled is invoked when this source is replaced in its slot, or
	// when a drag it started is released without a drop, letting the
	// client be told cancelled() per the data-source protocol.
	Cancelled func()
}

// NewClientSource creates a client-backed source advertising mimes, whose
// data is produced by send.
func NewClientSource(mimes []string, send func(mime string, fd io.WriteCloser) error) *ClientSource {
	return &ClientSource{mimes: mimes, send: send}
}

func (s *ClientSource) Mimes() []string  { return s.mimes }
func (s *ClientSource) Kind() SourceKind { return SourceClient }

// Send writes mime's data to fd via the client's send callback.
func (s *ClientSource) Send(mime string, fd io.WriteCloser) error { return s.send(mime, fd) }

// CompositorSource is a selection source owned by the compositor itself
// (e.g. a "set clipboard programmatically" API); RequestSelection reports
// ServerSideSelection for these rather than invoking Send synchronously,
// since the compositor already holds the data and can service the read
// however it likes outside the core.
type CompositorSource struct {
	mimes []string
	send  func(mime string, fd io.WriteCloser) error
}

// NewCompositorSource creates a compositor-backed source.
func NewCompositorSource(mimes []string, send func(mime string, fd io.WriteCloser) error) *CompositorSource {
	return &CompositorSource{mimes: mimes, send: send}
}

func (s *CompositorSource) Mimes() []string  { return s.mimes }
func (s *CompositorSource) Kind() SourceKind { return SourceCompositor }

// Send invokes the compositor's send callback directly; exposed for the
// compositor's own internal transfer glue, not part of the Source
// interface's external contract.
func (s *CompositorSource) Send(mime string, fd io.WriteCloser) error { return s.send(mime, fd) }
