// Package seat implements input routing: per-seat keyboard/pointer/touch
// capability handles, a focus model shared across them, a pointer/touch
// grab stack, and the relative-pointer extension, all layered on the
// surface tree's identity type rather than any wire-protocol resource.
package seat

import "github.com/gowlcore/gowlcore/surface"

// FocusTarget is whatever a capability handle currently considers focused.
// It is polymorphic over which capability-specific events a receiver
// accepts; compositor glue maps it to wire resources for a specific
// client connection.
type FocusTarget struct {
	Surface surface.ID
	// ClientScale is applied to relative-pointer deltas delivered to this
	// target's client, matching wl_surface buffer scale.
	ClientScale float64
}

// StateSnapshot carries the capability-specific presentation state sent
// alongside a focus enter event (pressed keys, current modifiers, pointer
// position, etc.); each capability handle fills the fields it owns.
type StateSnapshot struct {
	PressedKeysym []uint32
	ModsDepressed uint32
	ModsLatched   uint32
	ModsLocked    uint32
	Layout        uint32

	PointerX, PointerY float64
}

// focusHolder is the shared focus-transition bookkeeping embedded in every
// capability handle: tracking current focus and emitting leave-then-enter
// through host-supplied callbacks.
type focusHolder struct {
	current *FocusTarget

	onLeave func(old FocusTarget, serial uint32)
	onEnter func(new FocusTarget, serial uint32, snapshot StateSnapshot)
}

// Focus returns the currently focused target, or nil.
func (h *focusHolder) Focus() *FocusTarget { return h.current }

// setFocus transitions focus to target (nil to clear), allocating serial
// via allocSerial for whichever of leave/enter fire. A focus change always
// emits leave(old, serial) before enter(new, serial, snapshot) when both
// apply.
func (h *focusHolder) setFocus(target *FocusTarget, snapshot StateSnapshot, allocSerial func() uint32) {
	if h.current != nil && (target == nil || *h.current != *target) {
		if h.onLeave != nil {
			h.onLeave(*h.current, allocSerial())
		}
	}
	if target != nil && (h.current == nil || *h.current != *target) {
		if h.onEnter != nil {
			h.onEnter(*target, allocSerial(), snapshot)
		}
	}
	h.current = target
}

// SyntheticLeave delivers a leave with a fresh serial without waiting for a
// new focus to replace the old one, used when the focus target itself is
// destroyed mid-interaction.
func (h *focusHolder) SyntheticLeave(allocSerial func() uint32) {
	if h.current == nil {
		return
	}
	if h.onLeave != nil {
		h.onLeave(*h.current, allocSerial())
	}
	h.current = nil
}
