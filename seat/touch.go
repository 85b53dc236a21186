package seat

// TouchSlot identifies one active touch point.
type TouchSlot int32

// TouchGrab is a per-slot analogue of Grab: it decides what a touch point's
// down/up/motion/frame/cancel deliver while active.
type TouchGrab interface {
	Down(t *Touch, slot TouchSlot, time uint32, x, y float64)
	Up(t *Touch, slot TouchSlot, time uint32)
	Motion(t *Touch, slot TouchSlot, time uint32, x, y float64)
	Frame(t *Touch)
	Cancel(t *Touch)
	StartData() GrabStartData
	Unset(t *Touch)
}

// BaseTouchGrab is TouchGrab's default-forwarding base, mirroring BaseGrab.
type BaseTouchGrab struct {
	Start GrabStartData

	OnDown   func(t *Touch, slot TouchSlot, time uint32, x, y float64)
	OnUp     func(t *Touch, slot TouchSlot, time uint32)
	OnMotion func(t *Touch, slot TouchSlot, time uint32, x, y float64)
	OnFrame  func(t *Touch)
	OnCancel func(t *Touch)
	OnUnset  func(t *Touch)
}

func (g *BaseTouchGrab) Down(t *Touch, slot TouchSlot, time uint32, x, y float64) {
	if g.OnDown != nil {
		g.OnDown(t, slot, time, x, y)
		return
	}
	t.defaultDown(slot, time, x, y)
}

func (g *BaseTouchGrab) Up(t *Touch, slot TouchSlot, time uint32) {
	if g.OnUp != nil {
		g.OnUp(t, slot, time)
		return
	}
	t.defaultUp(slot, time)
}

func (g *BaseTouchGrab) Motion(t *Touch, slot TouchSlot, time uint32, x, y float64) {
	if g.OnMotion != nil {
		g.OnMotion(t, slot, time, x, y)
		return
	}
	t.defaultMotion(slot, time, x, y)
}

func (g *BaseTouchGrab) Frame(t *Touch) {
	if g.OnFrame != nil {
		g.OnFrame(t)
		return
	}
	t.defaultFrame()
}

func (g *BaseTouchGrab) Cancel(t *Touch) {
	if g.OnCancel != nil {
		g.OnCancel(t)
		return
	}
	t.defaultCancel()
}

func (g *BaseTouchGrab) StartData() GrabStartData { return g.Start }

func (g *BaseTouchGrab) Unset(t *Touch) {
	if g.OnUnset != nil {
		g.OnUnset(t)
	}
}

// Touch is one seat's touch capability handle. Each active slot tracks its
// own focus target independently of the others; a grab, when set, applies
// across all slots (matching how a single drag or gesture spans whichever
// slot initiated it).
type Touch struct {
	slotFocus map[TouchSlot]FocusTarget
	grab      TouchGrab

	pendingFrame bool

	onDown   func(target FocusTarget, slot TouchSlot, serial, time uint32, x, y float64)
	onUp     func(target FocusTarget, slot TouchSlot, serial, time uint32)
	onMotion func(target FocusTarget, slot TouchSlot, time uint32, x, y float64)
	onFrame  func(target FocusTarget)
	onCancel func(target FocusTarget)

	allocSerial func() uint32
}

// NewTouch creates a touch handle.
func NewTouch(
	allocSerial func() uint32,
	onDown func(target FocusTarget, slot TouchSlot, serial, time uint32, x, y float64),
	onUp func(target FocusTarget, slot TouchSlot, serial, time uint32),
	onMotion func(target FocusTarget, slot TouchSlot, time uint32, x, y float64),
	onFrame func(target FocusTarget),
	onCancel func(target FocusTarget),
) *Touch {
	return &Touch{
		slotFocus:   make(map[TouchSlot]FocusTarget),
		allocSerial: allocSerial,
		onDown:      onDown,
		onUp:        onUp,
		onMotion:    onMotion,
		onFrame:     onFrame,
		onCancel:    onCancel,
	}
}

// SetGrab pushes a touch grab across every slot.
func (t *Touch) SetGrab(g TouchGrab) { t.grab = g }

// UnsetGrab pops the active touch grab.
func (t *Touch) UnsetGrab() {
	if t.grab == nil {
		return
	}
	g := t.grab
	t.grab = nil
	g.Unset(t)
}

// Down begins a new touch point at slot, entering target's focus for that
// slot.
func (t *Touch) Down(slot TouchSlot, target FocusTarget, time uint32, x, y float64) {
	t.slotFocus[slot] = target
	if t.grab != nil {
		t.grab.Down(t, slot, time, x, y)
		return
	}
	t.defaultDown(slot, time, x, y)
}

func (t *Touch) defaultDown(slot TouchSlot, time uint32, x, y float64) {
	target, ok := t.slotFocus[slot]
	if !ok || t.onDown == nil {
		return
	}
	t.onDown(target, slot, t.serial(), time, x, y)
	t.pendingFrame = true
}

// Up ends slot's touch point.
func (t *Touch) Up(slot TouchSlot, time uint32) {
	if t.grab != nil {
		t.grab.Up(t, slot, time)
	} else {
		t.defaultUp(slot, time)
	}
	delete(t.slotFocus, slot)
}

func (t *Touch) defaultUp(slot TouchSlot, time uint32) {
	target, ok := t.slotFocus[slot]
	if !ok || t.onUp == nil {
		return
	}
	t.onUp(target, slot, t.serial(), time)
	t.pendingFrame = true
}

// Motion moves slot's touch point.
func (t *Touch) Motion(slot TouchSlot, time uint32, x, y float64) {
	if t.grab != nil {
		t.grab.Motion(t, slot, time, x, y)
		return
	}
	t.defaultMotion(slot, time, x, y)
}

func (t *Touch) defaultMotion(slot TouchSlot, time uint32, x, y float64) {
	target, ok := t.slotFocus[slot]
	if !ok || t.onMotion == nil {
		return
	}
	t.onMotion(target, slot, time, x, y)
	t.pendingFrame = true
}

// Cancel aborts every active touch point, e.g. when focus is destroyed
// mid-interaction.
func (t *Touch) Cancel() {
	if t.grab != nil {
		t.grab.Cancel(t)
	} else {
		t.defaultCancel()
	}
	t.slotFocus = make(map[TouchSlot]FocusTarget)
}

func (t *Touch) defaultCancel() {
	seen := make(map[FocusTarget]bool)
	for _, target := range t.slotFocus {
		if seen[target] {
			continue
		}
		seen[target] = true
		if t.onCancel != nil {
			t.onCancel(target)
		}
	}
}

// Flush emits, if any touch event occurred since the last flush, one frame
// event to each distinct focus target among the currently active slots.
func (t *Touch) Flush() {
	if t.grab != nil {
		t.grab.Frame(t)
		return
	}
	t.defaultFrame()
}

func (t *Touch) defaultFrame() {
	if !t.pendingFrame {
		return
	}
	t.pendingFrame = false
	seen := make(map[FocusTarget]bool)
	for _, target := range t.slotFocus {
		if seen[target] {
			continue
		}
		seen[target] = true
		if t.onFrame != nil {
			t.onFrame(target)
		}
	}
}

func (t *Touch) serial() uint32 {
	if t.allocSerial == nil {
		return 0
	}
	return t.allocSerial()
}
