package seat

import (
	"github.com/gowlcore/gowlcore/seat/xkbstate"
)

// FilterResult is returned by a Keyboard's filter callback for every key
// event before it is (potentially) forwarded to the focused client.
type FilterResult int

const (
	Forward FilterResult = iota
	Intercept
)

// Keyboard is one seat's keyboard capability handle.
type Keyboard struct {
	focusHolder

	state *xkbstate.State

	// Filter is invoked before forwarding each key event. A nil Filter
	// forwards everything.
	Filter func(mods xkbstate.Modifiers, sym xkbstate.Keysym, state xkbstate.KeyState) FilterResult

	onKey       func(serial uint32, sym xkbstate.Keysym, state xkbstate.KeyState)
	onModifiers func(serial uint32, mods xkbstate.Modifiers)

	intercepted map[xkbstate.Keysym]bool
}

// NewKeyboard creates a keyboard handle. onKey/onModifiers deliver events
// to whatever currently holds focus; onEnter/onLeave fire focus
// transitions.
func NewKeyboard(
	onKey func(serial uint32, sym xkbstate.Keysym, state xkbstate.KeyState),
	onModifiers func(serial uint32, mods xkbstate.Modifiers),
	onEnter func(target FocusTarget, serial uint32, snapshot StateSnapshot),
	onLeave func(target FocusTarget, serial uint32),
) *Keyboard {
	k := &Keyboard{
		state:       xkbstate.New(),
		onKey:       onKey,
		onModifiers: onModifiers,
		intercepted: make(map[xkbstate.Keysym]bool),
	}
	k.focusHolder.onEnter = onEnter
	k.focusHolder.onLeave = onLeave
	return k
}

// SetFocus transitions keyboard focus, sending the current pressed-keys set
// and modifier snapshot with the enter event.
func (k *Keyboard) SetFocus(target *FocusTarget, allocSerial func() uint32) {
	mods := k.state.Modifiers()
	var snapshot StateSnapshot
	for _, sym := range k.state.PressedKeys() {
		snapshot.PressedKeysym = append(snapshot.PressedKeysym, uint32(sym))
	}
	snapshot.ModsDepressed = uint32(mods.Depressed)
	snapshot.ModsLatched = uint32(mods.Latched)
	snapshot.ModsLocked = uint32(mods.Locked)
	snapshot.Layout = mods.Layout

	k.setFocus(target, snapshot, allocSerial)
}

// KeyEvent processes one physical key event: updates modifier state,
// invokes the filter, and forwards the key (and any modifier change) to
// the focused client unless intercepted.
//
// Press and release of the same key are treated consistently: if a press
// was intercepted, its matching release is intercepted too, regardless of
// what the filter now returns, so a compositor-level shortcut can never
// leave a client thinking a key is still held down.
func (k *Keyboard) KeyEvent(sym xkbstate.Keysym, state xkbstate.KeyState, allocSerial func() uint32) FilterResult {
	mods, changed := k.state.UpdateKey(sym, state)

	var result FilterResult
	if state == xkbstate.KeyReleased && k.intercepted[sym] {
		result = Intercept
		delete(k.intercepted, sym)
	} else if k.Filter != nil {
		result = k.Filter(mods, sym, state)
		if state == xkbstate.KeyPressed && result == Intercept {
			k.intercepted[sym] = true
		}
	}

	if result == Intercept {
		return result
	}

	if changed && k.onModifiers != nil {
		k.onModifiers(allocSerial(), mods)
	}
	if k.onKey != nil {
		k.onKey(allocSerial(), sym, state)
	}
	return result
}

// Modifiers returns the keyboard's current modifier/layout tuple.
func (k *Keyboard) Modifiers() xkbstate.Modifiers { return k.state.Modifiers() }
