// Package wlrlayer implements the zwlr_layer_shell_v1 state machine: layer
// surfaces that sit above or below the regular toplevel stack and carve
// exclusive zones out of an output's usable area.
package wlrlayer

import (
	"errors"
	"fmt"
	"image"

	"github.com/gowlcore/gowlcore/surface"
)

// Errors returned by the layer-shell state machine.
var (
	ErrUnknownSerial  = errors.New("wlrlayer: ack_configure serial not found in queue")
	ErrInvalidAnchor  = errors.New("wlrlayer: exclusive zone requires a single anchored edge")
	ErrUnknownSurface = errors.New("wlrlayer: layer surface not found")
)

// Layer names a stacking layer, ordered back to front.
type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// Anchor is a bitset of output edges a layer surface is anchored to.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// KeyboardInteractivity names how a layer surface participates in keyboard
// focus.
type KeyboardInteractivity int

const (
	KeyboardInteractivityNone KeyboardInteractivity = iota
	KeyboardInteractivityExclusive
	KeyboardInteractivityOnDemand
)

// Margin is the per-edge margin applied when a layer surface is anchored to
// an edge (or pair of edges) of the output.
type Margin struct {
	Top, Right, Bottom, Left int32
}

// ProposedState is the proposed_state half of a layer surface's configure
// tuple.
type ProposedState struct {
	Size image.Point
}

func (a ProposedState) equal(b ProposedState) bool { return a.Size == b.Size }

// Configure is one queued layer-surface configure.
type Configure struct {
	Serial   uint32
	Proposed ProposedState
}

// LayerSurface is the role data a surface given RoleLayer carries.
type LayerSurface struct {
	Surface surface.ID
	Output  string
	Layer   Layer

	Namespace             string
	Anchor                Anchor
	ExclusiveZone         int32
	Margin                Margin
	KeyboardInteractivity KeyboardInteractivity

	Pending   ProposedState
	lastSent  *ProposedState
	lastAcked ProposedState

	configureQueue []Configure

	configured bool
	mapped     bool
}

// WithPendingState invokes f with the layer surface's proposed state for the
// next configure.
func (l *LayerSurface) WithPendingState(f func(*ProposedState)) { f(&l.Pending) }

// SendConfigure diffs Pending against the last enqueued (or acked) proposal,
// enqueuing a new configure only on a structural difference.
func (l *LayerSurface) SendConfigure(allocSerial func() uint32) (uint32, bool) {
	baseline := l.lastAcked
	if l.lastSent != nil {
		baseline = *l.lastSent
	}
	if l.configured && l.Pending.equal(baseline) {
		return 0, false
	}

	serial := allocSerial()
	proposed := l.Pending
	l.configureQueue = append(l.configureQueue, Configure{Serial: serial, Proposed: proposed})
	l.lastSent = &proposed
	l.configured = true
	return serial, true
}

// AckConfigure locates the queued configure matching serial and discards all
// earlier queued configures.
func (l *LayerSurface) AckConfigure(serial uint32) error {
	idx := -1
	for i, c := range l.configureQueue {
		if c.Serial == serial {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: serial %d", ErrUnknownSerial, serial)
	}
	l.lastAcked = l.configureQueue[idx].Proposed
	l.configureQueue = l.configureQueue[idx+1:]
	return nil
}

// Unconfigured reports whether no configure has been sent to the layer
// surface since it was created or last unmapped. Sending a configure clears
// it, whether or not the client has acked it.
func (l *LayerSurface) Unconfigured() bool { return !l.configured }

// Mapped reports whether the layer surface currently has a buffer attached.
func (l *LayerSurface) Mapped() bool { return l.mapped }

// Map records that a buffer has been attached and committed.
func (l *LayerSurface) Map() { l.mapped = true }

// Unmap transitions the layer surface back to unconfigured, requiring a
// fresh initial configure before it may re-map.
func (l *LayerSurface) Unmap() {
	l.mapped = false
	l.configured = false
	l.lastSent = nil
	l.configureQueue = nil
}

// validateExclusiveZone enforces that a non-zero exclusive zone only makes
// sense when the surface is anchored to exactly one edge, or to the two
// edges perpendicular to it (spanning an edge) — never to all four or to
// neither.
func (l *LayerSurface) validateExclusiveZone() error {
	if l.ExclusiveZone <= 0 {
		return nil
	}
	single := l.Anchor == AnchorTop || l.Anchor == AnchorBottom ||
		l.Anchor == AnchorLeft || l.Anchor == AnchorRight
	spanning := l.Anchor == AnchorTop|AnchorLeft|AnchorRight ||
		l.Anchor == AnchorBottom|AnchorLeft|AnchorRight ||
		l.Anchor == AnchorLeft|AnchorTop|AnchorBottom ||
		l.Anchor == AnchorRight|AnchorTop|AnchorBottom
	if !single && !spanning {
		return ErrInvalidAnchor
	}
	return nil
}
