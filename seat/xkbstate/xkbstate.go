// Package xkbstate implements a minimal xkb-style keyboard modifier and
// layout state machine: depressed/latched/locked modifier masks plus the
// active layout index, updated as keys are pressed and released.
//
// No xkbcommon binding is used here: nothing in the retrieved example pack
// wraps libxkbcommon, so this tracks state with the standard library only,
// matching what the wl_keyboard.modifiers event actually needs to carry —
// four uint32s — without compiling a real keymap.
package xkbstate

import "sync"

// Keysym is a placeholder for an xkb keysym value; callers resolve the
// keycode-to-keysym mapping themselves (keymap compilation is out of
// scope, see the package doc).
type Keysym uint32

// KeyState is the physical state of a key event.
type KeyState int

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// ModMask is a bitset of modifier indices, matching the shape of
// wl_keyboard.modifiers' mods_depressed/mods_latched/mods_locked
// arguments.
type ModMask uint32

// Common modifier bits, in the order xkbcommon's default keymap assigns
// them.
const (
	ModShift ModMask = 1 << iota
	ModLock
	ModControl
	ModMod1
	ModMod2
	ModMod3
	ModMod4
	ModMod5
)

// Modifiers is the {depressed, latched, locked, layout} tuple sent in a
// wl_keyboard.modifiers event.
type Modifiers struct {
	Depressed ModMask
	Latched   ModMask
	Locked    ModMask
	Layout    uint32
}

func (m Modifiers) equal(o Modifiers) bool {
	return m.Depressed == o.Depressed && m.Latched == o.Latched &&
		m.Locked == o.Locked && m.Layout == o.Layout
}

// keyModifier maps a keysym to the modifier bit it contributes while held,
// and whether it latches/locks like Caps/Num Lock rather than acting like a
// plain depressed modifier.
type keyModifier struct {
	mask ModMask
	lock bool
}

// State tracks modifier and layout state for one keyboard.
type State struct {
	mu sync.Mutex

	mods      Modifiers
	modKeys   map[Keysym]keyModifier
	pressed   map[Keysym]bool
	numLayout uint32
}

// New creates a keyboard state with the standard Shift/Control/Alt
// modifiers wired, and Caps Lock treated as a locking modifier.
func New() *State {
	return &State{
		modKeys: map[Keysym]keyModifier{
			KeysymShiftL:   {mask: ModShift},
			KeysymShiftR:   {mask: ModShift},
			KeysymControlL: {mask: ModControl},
			KeysymControlR: {mask: ModControl},
			KeysymAltL:     {mask: ModMod1},
			KeysymAltR:     {mask: ModMod1},
			KeysymCapsLock: {mask: ModLock, lock: true},
		},
		pressed: make(map[Keysym]bool),
	}
}

// Well-known keysym values this package recognizes as modifiers, using
// xkbcommon's numbering so callers can feed real X11/xkb keysyms straight
// through.
const (
	KeysymShiftL   Keysym = 0xffe1
	KeysymShiftR   Keysym = 0xffe2
	KeysymControlL Keysym = 0xffe3
	KeysymControlR Keysym = 0xffe4
	KeysymCapsLock Keysym = 0xffe5
	KeysymAltL     Keysym = 0xffe9
	KeysymAltR     Keysym = 0xffea
)

// UpdateKey feeds one key event into the state machine. It reports the new
// Modifiers tuple and whether it differs from the previous one — the
// compositor sends wl_keyboard.modifiers to the focused client only when
// changed is true.
func (s *State) UpdateKey(sym Keysym, state KeyState) (mods Modifiers, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.mods
	km, isMod := s.modKeys[sym]
	if isMod {
		switch {
		case state == KeyPressed && km.lock:
			if s.mods.Locked&km.mask != 0 {
				s.mods.Locked &^= km.mask
			} else {
				s.mods.Locked |= km.mask
			}
		case state == KeyPressed:
			s.mods.Depressed |= km.mask
		case state == KeyReleased && !km.lock:
			s.mods.Depressed &^= km.mask
		}
	}
	s.pressed[sym] = state == KeyPressed

	return s.mods, !s.mods.equal(before)
}

// SetLayout switches the active layout index, reporting the resulting
// Modifiers tuple and whether it changed.
func (s *State) SetLayout(layout uint32) (mods Modifiers, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mods.Layout == layout {
		return s.mods, false
	}
	s.mods.Layout = layout
	return s.mods, true
}

// Modifiers returns the current modifier/layout tuple.
func (s *State) Modifiers() Modifiers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mods
}

// Pressed reports whether sym is currently held down.
func (s *State) Pressed(sym Keysym) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressed[sym]
}

// PressedKeys returns every currently-held keysym, for the pressed-keys
// snapshot sent on keyboard enter.
func (s *State) PressedKeys() []Keysym {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Keysym
	for sym, down := range s.pressed {
		if down {
			out = append(out, sym)
		}
	}
	return out
}
