package xwm

import (
	"sync"

	"github.com/gowlcore/gowlcore/internal/xproto"
)

// xdndAction is one of the four XDND action atoms, tracked by name rather
// than by wire.DndAction bitflag since X11 actions are single atoms, not
// a bitmask, and the two vocabularies only meet at the arbitration step.
type xdndAction int

const (
	xdndActionNone xdndAction = iota
	xdndActionCopy
	xdndActionMove
	xdndActionLink
	xdndActionAsk
)

// position is one XdndPosition message's payload: root-relative
// coordinates and the source's proposed action.
type position struct {
	rootX, rootY int32
	action       xdndAction
	time         xproto.Timestamp
}

// DndState tracks one in-progress drag that is crossing the X11/Wayland
// boundary, in either direction. The XDND protocol only allows a single
// outstanding XdndPosition per target window (the target must reply with
// XdndStatus before the source may send the next one), so incoming
// position updates are debounced: one in flight (pos_pending) and at
// most one more queued behind it (pos_cached), matching the reference
// behavior of coalescing to the latest pointer location rather than
// flooding the wire.
type DndState struct {
	mu sync.Mutex

	target    xproto.ResourceID
	source    xproto.ResourceID
	typeList  []xproto.Atom

	posInFlight bool
	posPending  *position // currently being sent to the target, awaiting XdndStatus
	posCached   *position // superseding update received while posPending is in flight

	accepted     bool
	targetAction xdndAction

	dropPayload []byte
}

// NewDndState starts tracking a drag with the given source and the list
// of mime-type atoms (from XdndEnter/XdndTypeList) it offers.
func NewDndState(source xproto.ResourceID, typeList []xproto.Atom) *DndState {
	return &DndState{source: source, typeList: append([]xproto.Atom(nil), typeList...)}
}

// TypeList returns the drag's offered type atoms.
func (d *DndState) TypeList() []xproto.Atom {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]xproto.Atom(nil), d.typeList...)
}

// Source returns the drag's X11 source window.
func (d *DndState) Source() xproto.ResourceID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source
}

// EnterTarget switches the drag's current target window, clearing any
// queued position state from the previous target.
func (d *DndState) EnterTarget(target xproto.ResourceID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = target
	d.posInFlight = false
	d.posPending = nil
	d.posCached = nil
	d.accepted = false
	d.targetAction = xdndActionNone
}

// QueuePosition records a new pointer position for the current target. If
// no XdndPosition is currently awaiting a reply, send reports true and
// the caller should transmit it immediately; otherwise it is cached,
// superseding any previously cached position, and send reports false.
func (d *DndState) QueuePosition(rootX, rootY int32, action xdndAction, time xproto.Timestamp) (p position, send bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p = position{rootX: rootX, rootY: rootY, action: action, time: time}
	if !d.posInFlight {
		d.posInFlight = true
		d.posPending = &p
		return p, true
	}
	d.posCached = &p
	return p, false
}

// AckStatus processes the target's XdndStatus reply: records whether it
// accepted and which action it chose, then releases the next queued
// position (if any) for the caller to send. ok is false if there was no
// position in flight to acknowledge (a stray or duplicate status).
func (d *DndState) AckStatus(accepted bool, action xdndAction) (next position, hasNext bool, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.posInFlight {
		return position{}, false, false
	}
	d.accepted = accepted
	d.targetAction = action
	d.posInFlight = false
	d.posPending = nil

	if d.posCached != nil {
		next = *d.posCached
		d.posCached = nil
		d.posInFlight = true
		d.posPending = &next
		return next, true, true
	}
	return position{}, false, true
}

// Accepted reports the most recently acknowledged accept/action state.
func (d *DndState) Accepted() (accepted bool, action xdndAction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.accepted, d.targetAction
}

// SetDropPayload records the bytes fetched for a completed drop, for a
// host to retrieve and hand off to whatever Wayland surface received it.
func (d *DndState) SetDropPayload(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dropPayload = data
}

// DropPayload returns the bytes recorded by SetDropPayload, or nil if the
// drag has not completed a drop yet.
func (d *DndState) DropPayload() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropPayload
}

// chooseXdndAction arbitrates an XdndStatus reply. XDND has no
// arbitration function like wl_data_source's f(S∩D, P) → A; a target's
// XdndStatus either names the action it wants directly, or sets accepts=1
// with action=None — an ambiguous "I accept, you choose" reply the XDND
// spec leaves underspecified. This resolves that ambiguous case by
// falling through to Copy if the source supports it, else None; an
// outright accepts=0 (or no status received at all) always yields None.
func chooseXdndAction(sourceSupportsCopy bool, targetAccepted xdndAction, targetAccepts bool) xdndAction {
	if !targetAccepts {
		return xdndActionNone
	}
	if targetAccepted != xdndActionNone {
		return targetAccepted
	}
	if sourceSupportsCopy {
		return xdndActionCopy
	}
	return xdndActionNone
}
