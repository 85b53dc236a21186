package selection

import (
	"errors"

	"github.com/gowlcore/gowlcore/internal/wire"
	"github.com/gowlcore/gowlcore/surface"
)

// ErrNotSingleAction is a programming error: ChooseAction's result must be
// a single bitflag, never a union of actions.
var ErrNotSingleAction = errors.New("selection: action-choice function returned more than one action")

// DataDevice is the minimal shape of a client's data-device resource the
// DnD grab delivers events to.
type DataDevice interface {
	Enter(serial uint32, surface surface.ID, x, y float64, offer *Offer)
	Leave()
	Motion(time uint32, x, y float64)
	Drop()
	Cancelled()
}

// Drag is one in-progress DnD operation, rooted at the seat's pointer (or
// touch) grab that initiated it.
type Drag struct {
	Source        Source
	OriginSurface surface.ID
	Icon          surface.ID
	Serial        uint32

	mgr *Manager

	focusedDevice DataDevice
	focusedOffer  *Offer

	accepted     bool
	offerMask    wire.DndAction
	sourceMask   wire.DndAction
	chosenAction wire.DndAction
	preferred    wire.DndAction
	chooseAction func(common, preferred wire.DndAction) wire.DndAction

	dropped bool
	ended   bool
}

// defaultChooseAction implements f(S∩D, P) → A: prefer the client's
// preference if it is among the common actions, otherwise Copy if common,
// otherwise Move or Ask (in that order) if common, otherwise None.
func defaultChooseAction(common, preferred wire.DndAction) wire.DndAction {
	if common&preferred != 0 {
		return singleBit(preferred & common)
	}
	if common&wire.DndActionCopy != 0 {
		return wire.DndActionCopy
	}
	return singleBit(common)
}

func singleBit(mask wire.DndAction) wire.DndAction {
	for _, bit := range []wire.DndAction{wire.DndActionCopy, wire.DndActionMove, wire.DndActionAsk} {
		if mask&bit != 0 {
			return bit
		}
	}
	return wire.DndActionNone
}

// StartDrag begins a new DnD operation for source, rooted at originSurface.
// chooseAction overrides the default action-arbitration function; pass nil
// to use defaultChooseAction.
func StartDrag(mgr *Manager, source Source, originSurface, icon surface.ID, serial uint32, chooseAction func(common, preferred wire.DndAction) wire.DndAction) *Drag {
	mgr.SetSource(SlotDnd, source)
	if chooseAction == nil {
		chooseAction = defaultChooseAction
	}
	return &Drag{
		Source:        source,
		OriginSurface: originSurface,
		Icon:          icon,
		Serial:        serial,
		mgr:           mgr,
		chooseAction:  chooseAction,
	}
}

// EnterSurface transitions focus to a new surface's data device mid-drag,
// emitting leave to the previous one (if any) and creating a fresh offer
// plus enter on the new one.
func (d *Drag) EnterSurface(serial uint32, target surface.ID, x, y float64, device DataDevice) {
	if d.focusedDevice != nil {
		d.focusedDevice.Leave()
		d.mgr.InvalidateOffer(SlotDnd)
	}
	d.focusedDevice = device
	d.accepted = false
	d.offerMask = wire.DndActionNone
	d.chosenAction = wire.DndActionNone

	if device == nil {
		d.focusedOffer = nil
		return
	}
	offer := d.mgr.CreateOffer(SlotDnd)
	d.focusedOffer = offer
	device.Enter(serial, target, x, y, offer)
}

// Motion delivers pointer motion to whichever data device currently holds
// drag focus.
func (d *Drag) Motion(time uint32, x, y float64) {
	if d.focusedDevice != nil {
		d.focusedDevice.Motion(time, x, y)
	}
}

// Accept records the offer's current action mask and whether it has been
// accept()-ed by the focused client, then re-runs action arbitration.
func (d *Drag) Accept(accepted bool, offerMask wire.DndAction) {
	d.accepted = accepted
	d.offerMask = offerMask
	d.rearbitrate()
}

// SetSourceActions sets the drag source's advertised action mask.
func (d *Drag) SetSourceActions(sourceMask wire.DndAction, preferred wire.DndAction) error {
	d.sourceMask = sourceMask
	d.preferred = preferred
	return d.rearbitrate()
}

func (d *Drag) rearbitrate() error {
	common := d.sourceMask & d.offerMask
	chosen := d.chooseAction(common, d.preferred)
	if !isSingleBit(chosen) {
		return ErrNotSingleAction
	}
	d.chosenAction = chosen
	return nil
}

func isSingleBit(a wire.DndAction) bool {
	return a == wire.DndActionNone || a&(a-1) == 0
}

// ChosenAction returns the currently arbitrated single action.
func (d *Drag) ChosenAction() wire.DndAction { return d.chosenAction }

// Release processes a button release: the drop decision. If the current
// offer has been accepted and a non-empty action is chosen, it sends drop
// to the target and returns true (the caller schedules finished once the
// transfer completes); otherwise it sends leave to the focused data device,
// runs a client source's Cancelled hook, and returns false. Either way the
// grab ends.
func (d *Drag) Release() (dropped bool) {
	defer func() { d.ended = true }()

	if d.focusedDevice != nil && d.accepted && d.chosenAction != wire.DndActionNone {
		d.dropped = true
		d.focusedDevice.Drop()
		return true
	}

	if d.focusedDevice != nil {
		d.focusedDevice.Leave()
	}
	if cs, ok := d.Source.(*ClientSource); ok && cs.Cancelled != nil {
		cs.Cancelled()
	}
	return false
}

// Ended reports whether the grab has concluded (via Release).
func (d *Drag) Ended() bool { return d.ended }
