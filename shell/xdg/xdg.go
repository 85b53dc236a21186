// Package xdg implements the xdg-shell state machine: toplevel and popup
// configure/ack handshakes layered on the surface commit pipeline.
package xdg

import (
	"errors"
	"fmt"

	"github.com/gowlcore/gowlcore/surface"
)

// Errors returned by the xdg-shell state machine.
var (
	ErrUnconfiguredBuffer = errors.New("xdg: buffer attached before initial configure was acked")
	ErrUnknownSerial      = errors.New("xdg: ack_configure serial not found in queue")
	ErrNoSurface          = errors.New("xdg: shell surface not found")
)

// ToplevelState is a single bit in a ToplevelStateSet, named to match
// xdg_toplevel.state wire values.
type ToplevelState uint32

const (
	StateMaximized ToplevelState = 1 << iota
	StateFullscreen
	StateResizing
	StateActivated
	StateTiledLeft
	StateTiledRight
	StateTiledTop
	StateTiledBottom
	StateSuspended
)

// ToplevelStateSet is a bitset of ToplevelState values.
type ToplevelStateSet uint32

func (s ToplevelStateSet) Has(st ToplevelState) bool { return uint32(s)&uint32(st) != 0 }
func (s ToplevelStateSet) With(st ToplevelState) ToplevelStateSet {
	return ToplevelStateSet(uint32(s) | uint32(st))
}
func (s ToplevelStateSet) Without(st ToplevelState) ToplevelStateSet {
	return ToplevelStateSet(uint32(s) &^ uint32(st))
}

// wireToplevelState mirrors the order Wayland's xdg_toplevel.state enum
// assigns to each named state, used by Encode/DecodeToplevelStates.
var wireToplevelState = []struct {
	bit   ToplevelState
	value uint32
}{
	{StateMaximized, 1},
	{StateFullscreen, 2},
	{StateResizing, 3},
	{StateActivated, 4},
	{StateTiledLeft, 5},
	{StateTiledRight, 6},
	{StateTiledTop, 7},
	{StateTiledBottom, 8},
	{StateSuspended, 9},
}

// EncodeToplevelStates converts a ToplevelStateSet into the list of uint32
// values a configure event's state array argument carries.
func EncodeToplevelStates(set ToplevelStateSet) []uint32 {
	var out []uint32
	for _, w := range wireToplevelState {
		if set.Has(w.bit) {
			out = append(out, w.value)
		}
	}
	return out
}

// DecodeToplevelStates parses a configure event's state array back into a
// ToplevelStateSet.
func DecodeToplevelStates(values []uint32) ToplevelStateSet {
	var set ToplevelStateSet
	for _, v := range values {
		for _, w := range wireToplevelState {
			if w.value == v {
				set = set.With(w.bit)
			}
		}
	}
	return set
}

// ToplevelProposedState is the proposed_state half of a configure tuple.
type ToplevelProposedState struct {
	Width, Height int32
	States        ToplevelStateSet
}

func (a ToplevelProposedState) equal(b ToplevelProposedState) bool {
	return a.Width == b.Width && a.Height == b.Height && a.States == b.States
}

// ToplevelConfigure is one queued configure: a serial and the state proposed
// at the time it was generated.
type ToplevelConfigure struct {
	Serial   uint32
	Proposed ToplevelProposedState
}

// Toplevel is the role data a surface given RoleToplevel carries. It is the
// "window identity, configure queue, last-acked serial, activation status,
// decoration mode" entity from spec.md's DATA MODEL.
type Toplevel struct {
	Surface surface.ID

	Title string
	AppID string

	MinWidth, MinHeight int32
	MaxWidth, MaxHeight int32

	Pending   ToplevelProposedState
	lastSent  *ToplevelProposedState
	lastAcked ToplevelProposedState

	configureQueue []ToplevelConfigure
	nextSerial     uint32

	configured bool // at least one configure has been sent
	acked      bool // at least one configure has been acked
	mapped     bool

	DecorationServerSide bool
}

// WithPendingState invokes f with the toplevel's proposed state for the next
// configure, per spec.md's "with_pending_state(shell_surface, f)".
func (tl *Toplevel) WithPendingState(f func(*ToplevelProposedState)) {
	f(&tl.Pending)
}

// SendConfigure diffs Pending against the last enqueued (or acked, if none
// queued) proposal. If they are structurally equal, no configure is sent and
// SendConfigure returns (0, false). Otherwise it enqueues a new configure
// and returns its serial.
func (tl *Toplevel) SendConfigure(allocSerial func() uint32) (uint32, bool) {
	baseline := tl.lastAcked
	if tl.lastSent != nil {
		baseline = *tl.lastSent
	}
	if tl.configured && tl.Pending.equal(baseline) {
		return 0, false
	}

	serial := allocSerial()
	proposed := tl.Pending
	tl.configureQueue = append(tl.configureQueue, ToplevelConfigure{Serial: serial, Proposed: proposed})
	tl.lastSent = &proposed
	tl.configured = true
	return serial, true
}

// AckConfigure locates the queued configure matching serial, discards every
// earlier queued configure, and records its proposed state as the surface's
// last-acked state. An ack of a serial not present (e.g. an already-discarded
// earlier serial) leaves the state unchanged and returns ErrUnknownSerial.
func (tl *Toplevel) AckConfigure(serial uint32) error {
	idx := -1
	for i, c := range tl.configureQueue {
		if c.Serial == serial {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: serial %d", ErrUnknownSerial, serial)
	}

	tl.lastAcked = tl.configureQueue[idx].Proposed
	tl.configureQueue = tl.configureQueue[idx+1:]
	tl.acked = true
	return nil
}

// ApplyAckedStateOnCommit advances the surface's effective state to
// last_acked_state, called from the commit pipeline's post-merge step.
func (tl *Toplevel) ApplyAckedStateOnCommit() ToplevelProposedState {
	return tl.lastAcked
}

// Unconfigured reports whether the toplevel has not yet had any configure
// acked; clients must not attach a buffer while unconfigured. A configure
// that has only been sent, not yet acked, still leaves the toplevel
// unconfigured.
func (tl *Toplevel) Unconfigured() bool { return !tl.acked }

// GuardBufferAttach enforces the unconfigured-buffer rule: a non-null
// buffer must not be attached before the first configure has been acked.
// The dispatcher handling wl_surface.attach/commit for a toplevel-rooted
// surface should call this before letting the attach through.
func (tl *Toplevel) GuardBufferAttach(bufferNonNil bool) error {
	if bufferNonNil && tl.Unconfigured() {
		return ErrUnconfiguredBuffer
	}
	return nil
}

// Mapped reports whether the toplevel currently has a non-null buffer
// attached.
func (tl *Toplevel) Mapped() bool { return tl.mapped }

// Unmap transitions the toplevel back to the unconfigured state, as happens
// whenever its buffer becomes null; a fresh initial configure is required
// before it may re-map.
func (tl *Toplevel) Unmap() {
	tl.mapped = false
	tl.configured = false
	tl.acked = false
	tl.lastSent = nil
	tl.configureQueue = nil
}

// Map records that a buffer has been attached and committed.
func (tl *Toplevel) Map() { tl.mapped = true }

// Close requests the client close the toplevel (xdg_toplevel.close).
type CloseRequested struct{ Surface surface.ID }
