package seat

import (
	"testing"

	"github.com/gowlcore/gowlcore/seat/xkbstate"
	"github.com/gowlcore/gowlcore/surface"
)

func allocSerial() func() uint32 {
	var n uint32
	return func() uint32 { n++; return n }
}

func TestFocusChangeEmitsLeaveThenEnter(t *testing.T) {
	var events []string
	alloc := allocSerial()
	kb := NewKeyboard(
		func(serial uint32, sym xkbstate.Keysym, state xkbstate.KeyState) {},
		func(serial uint32, mods xkbstate.Modifiers) {},
		func(target FocusTarget, serial uint32, snapshot StateSnapshot) {
			events = append(events, "enter")
		},
		func(target FocusTarget, serial uint32) {
			events = append(events, "leave")
		},
	)

	a := FocusTarget{Surface: surface.ID(1)}
	b := FocusTarget{Surface: surface.ID(2)}

	kb.SetFocus(&a, alloc)
	kb.SetFocus(&b, alloc)

	if len(events) != 3 || events[0] != "enter" || events[1] != "leave" || events[2] != "enter" {
		t.Fatalf("unexpected event order: %v", events)
	}
}

func TestKeyboardInterceptConsistencyAcrossPressRelease(t *testing.T) {
	var forwarded []string
	alloc := allocSerial()
	kb := NewKeyboard(
		func(serial uint32, sym xkbstate.Keysym, state xkbstate.KeyState) {
			tag := "press"
			if state == xkbstate.KeyReleased {
				tag = "release"
			}
			forwarded = append(forwarded, tag)
		},
		func(serial uint32, mods xkbstate.Modifiers) {},
		nil, nil,
	)
	target := FocusTarget{Surface: surface.ID(1)}
	kb.SetFocus(&target, alloc)

	// The filter intercepts the press of 'a', but would forward its
	// release if asked naively.
	kb.Filter = func(mods xkbstate.Modifiers, sym xkbstate.Keysym, state xkbstate.KeyState) FilterResult {
		if sym == Keysym('a') && state == xkbstate.KeyPressed {
			return Intercept
		}
		return Forward
	}

	r1 := kb.KeyEvent(Keysym('a'), xkbstate.KeyPressed, alloc)
	r2 := kb.KeyEvent(Keysym('a'), xkbstate.KeyReleased, alloc)

	if r1 != Intercept || r2 != Intercept {
		t.Fatalf("expected both press and release intercepted, got %v, %v", r1, r2)
	}
	if len(forwarded) != 0 {
		t.Fatalf("expected nothing forwarded to client, got %v", forwarded)
	}
}

// Keysym is a tiny local alias to keep seat_test.go readable without
// importing xkbstate.Keysym everywhere.
func Keysym(r rune) xkbstate.Keysym { return xkbstate.Keysym(r) }

func TestPointerFrameCoalescesMultipleEvents(t *testing.T) {
	var frames int
	alloc := allocSerial()
	p := NewPointer(alloc,
		func(target FocusTarget, time uint32, x, y float64) {},
		func(target FocusTarget, serial, time uint32, button uint32, state ButtonState) {},
		func(target FocusTarget, time uint32, axis AxisSource, value float64) {},
		func(target FocusTarget) { frames++ },
		nil, nil,
	)
	target := FocusTarget{Surface: surface.ID(1)}
	p.SetFocus(&target, StateSnapshot{})

	p.Motion(100, 1, 1)
	p.Button(100, 1, ButtonPressed)
	p.Axis(100, AxisVertical, 5)
	p.Flush()

	if frames != 1 {
		t.Fatalf("expected exactly one frame for the batch, got %d", frames)
	}

	// A flush with no new events must not emit another frame.
	p.Flush()
	if frames != 1 {
		t.Fatalf("expected no frame on an idle flush, got %d", frames)
	}
}

func TestGrabSuppressesFocusChanges(t *testing.T) {
	alloc := allocSerial()
	var entered int
	p := NewPointer(alloc,
		func(target FocusTarget, time uint32, x, y float64) {},
		func(target FocusTarget, serial, time uint32, button uint32, state ButtonState) {},
		func(target FocusTarget, time uint32, axis AxisSource, value float64) {},
		func(target FocusTarget) {},
		func(target FocusTarget, serial uint32, snapshot StateSnapshot) { entered++ },
		func(target FocusTarget, serial uint32) {},
	)

	grab := &BaseGrab{}
	p.SetGrab(grab)

	target := FocusTarget{Surface: surface.ID(1)}
	p.SetFocus(&target, StateSnapshot{})

	if entered != 0 {
		t.Fatal("expected focus change to be suppressed while grabbed")
	}
	if !p.Grabbed() {
		t.Fatal("expected pointer to report grabbed")
	}

	unset := false
	grab.OnUnset = func(p *Pointer) { unset = true }
	p.UnsetGrab()
	if !unset || p.Grabbed() {
		t.Fatal("expected UnsetGrab to run the grab's Unset hook and clear grabbed state")
	}
}

func TestRelativePointerSinkReceivesScaledDeltas(t *testing.T) {
	alloc := allocSerial()
	p := NewPointer(alloc, nil, nil, nil, nil, nil, nil)
	target := FocusTarget{Surface: surface.ID(1), ClientScale: 2}
	p.SetFocus(&target, StateSnapshot{})

	var gotDx, gotDy float64
	p.AddRelativePointerSink(surface.ID(1), sinkFunc(func(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64) {
		gotDx, gotDy = dx, dy
	}))

	p.RelativeMotion(0, 1000, 1.5, 2.5, 1.5, 2.5)

	if gotDx != 3 || gotDy != 5 {
		t.Fatalf("expected scaled deltas (3, 5), got (%v, %v)", gotDx, gotDy)
	}
}

type sinkFunc func(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64)

func (f sinkFunc) Deliver(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64) {
	f(utimeHi, utimeLo, dx, dy, dxUnaccel, dyUnaccel)
}

func TestSeatCapabilitiesReflectInstalledHandles(t *testing.T) {
	var lastCaps Capability
	s := NewSeat("seat0", func(c Capability) { lastCaps = c })

	kb := NewKeyboard(nil, nil, nil, nil)
	s.AddKeyboard(kb)
	if lastCaps != CapabilityKeyboard {
		t.Fatalf("expected CapabilityKeyboard, got %v", lastCaps)
	}

	s.RemoveKeyboard()
	if lastCaps != 0 {
		t.Fatalf("expected no capabilities after removal, got %v", lastCaps)
	}
}
