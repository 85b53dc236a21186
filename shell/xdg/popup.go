package xdg

import (
	"image"

	"github.com/gowlcore/gowlcore/surface"
)

// PopupConfigure is one queued popup configure: a serial plus the placed
// rectangle at the time it was generated.
type PopupConfigure struct {
	Serial uint32
	Rect   image.Rectangle
}

// Popup is the role data a surface given RolePopup carries.
type Popup struct {
	Surface surface.ID
	Parent  surface.ID

	Positioner Positioner

	configureQueue []PopupConfigure
	lastSent       *image.Rectangle
	lastAcked      image.Rectangle

	configured bool
	grabbed    bool

	// needsReposition is set when the parent moves and the positioner is
	// reactive; it is cleared, and a configure coalesced, by
	// ShellState.FlushReactivePopups.
	needsReposition bool
}

// Grab marks the popup as holding an implicit popup grab.
func (p *Popup) Grab() { p.grabbed = true }

// Grabbed reports whether the popup holds an implicit grab.
func (p *Popup) Grabbed() bool { return p.grabbed }

// Unconfigured reports whether no configure has been sent to the popup yet.
// Sending a configure clears it, whether or not the client has acked it.
func (p *Popup) Unconfigured() bool { return !p.configured }

// SendConfigure diffs the positioner's placement against the last sent (or
// acked) rectangle, enqueuing a new configure only if they differ.
func (p *Popup) SendConfigure(allocSerial func() uint32) (uint32, bool) {
	rect := p.Positioner.Place()
	baseline := p.lastAcked
	if p.lastSent != nil {
		baseline = *p.lastSent
	}
	if p.configured && rect == baseline {
		return 0, false
	}

	serial := allocSerial()
	p.configureQueue = append(p.configureQueue, PopupConfigure{Serial: serial, Rect: rect})
	p.lastSent = &rect
	p.configured = true
	p.needsReposition = false
	return serial, true
}

// AckConfigure locates the queued configure matching serial and discards all
// earlier queued configures.
func (p *Popup) AckConfigure(serial uint32) error {
	idx := -1
	for i, c := range p.configureQueue {
		if c.Serial == serial {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownSerial
	}
	p.lastAcked = p.configureQueue[idx].Rect
	p.configureQueue = p.configureQueue[idx+1:]
	return nil
}

// NotifyParentMoved marks the popup as needing a reactive reposition, if its
// positioner opted in. The actual re-evaluation is coalesced by
// ShellState.FlushReactivePopups rather than run synchronously here, so that
// many parent-motion events in one frame produce at most one configure.
func (p *Popup) NotifyParentMoved() {
	if p.Positioner.Reactive {
		p.needsReposition = true
	}
}
