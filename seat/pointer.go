package seat

import "github.com/gowlcore/gowlcore/surface"

// ButtonState mirrors wl_pointer.button_state.
type ButtonState int

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// AxisSource names the scroll axis, mirroring wl_pointer.axis (vertical = 0,
// horizontal = 1).
type AxisSource int

const (
	AxisVertical AxisSource = iota
	AxisHorizontal
)

// RelativePointerSink receives relative-motion deltas in parallel with
// absolute wl_pointer motion, per zwp_relative_pointer_v1. Client-scale is
// already applied to dx/dy by the time Deliver is called.
type RelativePointerSink interface {
	Deliver(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64)
}

// GrabStartData captures the state a grab began with, returned by
// Grab.StartData() for the compositor to inspect (e.g. to decide whether a
// late-binding client should see the grab at all).
type GrabStartData struct {
	Focus  *FocusTarget
	Button uint32
	Serial uint32
}

// Grab is an active pointer grab: while set, it — not the seat's default
// routing — decides what focus target and events a pointer interaction
// produces.
type Grab interface {
	Motion(p *Pointer, time uint32, x, y float64)
	RelativeMotion(p *Pointer, utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64)
	Button(p *Pointer, time uint32, button uint32, state ButtonState)
	Axis(p *Pointer, time uint32, axis AxisSource, value float64)
	Frame(p *Pointer)
	StartData() GrabStartData
	Unset(p *Pointer)
}

// BaseGrab implements Grab by forwarding every method to the seat's default
// routing unless the corresponding function field is set, so a grab that
// only cares about overriding e.g. Motion can embed BaseGrab by value and
// leave the rest at their defaults — Go has no inheritance, so overriding
// is done through these function fields rather than virtual methods.
type BaseGrab struct {
	Start GrabStartData

	OnMotion         func(p *Pointer, time uint32, x, y float64)
	OnRelativeMotion func(p *Pointer, utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64)
	OnButton         func(p *Pointer, time uint32, button uint32, state ButtonState)
	OnAxis           func(p *Pointer, time uint32, axis AxisSource, value float64)
	OnFrame          func(p *Pointer)
	OnUnset          func(p *Pointer)
}

func (g *BaseGrab) Motion(p *Pointer, time uint32, x, y float64) {
	if g.OnMotion != nil {
		g.OnMotion(p, time, x, y)
		return
	}
	p.defaultMotion(time, x, y)
}

func (g *BaseGrab) RelativeMotion(p *Pointer, utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64) {
	if g.OnRelativeMotion != nil {
		g.OnRelativeMotion(p, utimeHi, utimeLo, dx, dy, dxUnaccel, dyUnaccel)
		return
	}
	p.defaultRelativeMotion(utimeHi, utimeLo, dx, dy, dxUnaccel, dyUnaccel)
}

func (g *BaseGrab) Button(p *Pointer, time uint32, button uint32, state ButtonState) {
	if g.OnButton != nil {
		g.OnButton(p, time, button, state)
		return
	}
	p.defaultButton(time, button, state)
}

func (p *Pointer) defaultButton(time uint32, button uint32, state ButtonState) {
	var serial uint32
	if p.allocSerial != nil {
		serial = p.allocSerial()
	}
	p.defaultButtonWithSerial(time, button, state, serial)
}

func (g *BaseGrab) Axis(p *Pointer, time uint32, axis AxisSource, value float64) {
	if g.OnAxis != nil {
		g.OnAxis(p, time, axis, value)
		return
	}
	p.defaultAxis(time, axis, value)
}

func (g *BaseGrab) Frame(p *Pointer) {
	if g.OnFrame != nil {
		g.OnFrame(p)
		return
	}
	p.defaultFrame()
}

func (g *BaseGrab) StartData() GrabStartData { return g.Start }

func (g *BaseGrab) Unset(p *Pointer) {
	if g.OnUnset != nil {
		g.OnUnset(p)
	}
}

// Pointer is one seat's pointer capability handle.
type Pointer struct {
	focusHolder

	grab Grab

	relativeSinks map[surface.ID][]RelativePointerSink

	pendingFrame bool

	onMotion func(target FocusTarget, time uint32, x, y float64)
	onButton func(target FocusTarget, serial, time uint32, button uint32, state ButtonState)
	onAxis   func(target FocusTarget, time uint32, axis AxisSource, value float64)
	onFrame  func(target FocusTarget)

	allocSerial func() uint32
}

// NewPointer creates a pointer handle with default routing callbacks.
// allocSerial is used by grabs whose default Button forwarding needs a
// fresh serial without the caller threading one through explicitly.
func NewPointer(
	allocSerial func() uint32,
	onMotion func(target FocusTarget, time uint32, x, y float64),
	onButton func(target FocusTarget, serial, time uint32, button uint32, state ButtonState),
	onAxis func(target FocusTarget, time uint32, axis AxisSource, value float64),
	onFrame func(target FocusTarget),
	onEnter func(target FocusTarget, serial uint32, snapshot StateSnapshot),
	onLeave func(target FocusTarget, serial uint32),
) *Pointer {
	p := &Pointer{
		relativeSinks: make(map[surface.ID][]RelativePointerSink),
		allocSerial:   allocSerial,
		onMotion:      onMotion,
		onButton:      onButton,
		onAxis:        onAxis,
		onFrame:       onFrame,
	}
	p.focusHolder.onEnter = onEnter
	p.focusHolder.onLeave = onLeave
	return p
}

// AddRelativePointerSink registers sink to receive relative motion whenever
// target holds pointer focus.
func (p *Pointer) AddRelativePointerSink(target surface.ID, sink RelativePointerSink) {
	p.relativeSinks[target] = append(p.relativeSinks[target], sink)
}

// SetFocus transitions pointer focus. While a grab is active, focus changes
// are suppressed — the grab alone decides what focus to present to its
// handler, per spec.
func (p *Pointer) SetFocus(target *FocusTarget, snapshot StateSnapshot) {
	if p.grab != nil {
		return
	}
	p.setFocus(target, snapshot, p.allocSerial)
}

// SetGrab pushes an active grab, replacing default routing.
func (p *Pointer) SetGrab(g Grab) { p.grab = g }

// UnsetGrab pops the active grab, running its Unset hook and restoring
// default routing.
func (p *Pointer) UnsetGrab() {
	if p.grab == nil {
		return
	}
	g := p.grab
	p.grab = nil
	g.Unset(p)
}

// Grabbed reports whether a grab is currently active.
func (p *Pointer) Grabbed() bool { return p.grab != nil }

// Motion delivers an absolute motion sample, routed through the active
// grab if any, otherwise default focus-based routing.
func (p *Pointer) Motion(time uint32, x, y float64) {
	if p.grab != nil {
		p.grab.Motion(p, time, x, y)
		return
	}
	p.defaultMotion(time, x, y)
}

func (p *Pointer) defaultMotion(time uint32, x, y float64) {
	if p.current != nil && p.onMotion != nil {
		p.onMotion(*p.current, time, x, y)
		p.pendingFrame = true
	}
}

// RelativeMotion delivers a relative-pointer sample, applying the focused
// target's client scale and fanning it out to every bound sink in
// parallel with the absolute motion delivered via Motion.
func (p *Pointer) RelativeMotion(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64) {
	if p.grab != nil {
		p.grab.RelativeMotion(p, utimeHi, utimeLo, dx, dy, dxUnaccel, dyUnaccel)
		return
	}
	p.defaultRelativeMotion(utimeHi, utimeLo, dx, dy, dxUnaccel, dyUnaccel)
}

func (p *Pointer) defaultRelativeMotion(utimeHi, utimeLo uint32, dx, dy, dxUnaccel, dyUnaccel float64) {
	if p.current == nil {
		return
	}
	scale := p.current.ClientScale
	if scale == 0 {
		scale = 1
	}
	for _, sink := range p.relativeSinks[p.current.Surface] {
		sink.Deliver(utimeHi, utimeLo, dx*scale, dy*scale, dxUnaccel*scale, dyUnaccel*scale)
		p.pendingFrame = true
	}
}

// Button delivers a button event.
func (p *Pointer) Button(time uint32, button uint32, state ButtonState) {
	if p.grab != nil {
		p.grab.Button(p, time, button, state)
		return
	}
	p.defaultButton(time, button, state)
}

func (p *Pointer) defaultButtonWithSerial(time uint32, button uint32, state ButtonState, serial uint32) {
	if p.current != nil && p.onButton != nil {
		p.onButton(*p.current, serial, time, button, state)
		p.pendingFrame = true
	}
}

// Axis delivers a scroll/axis event.
func (p *Pointer) Axis(time uint32, axis AxisSource, value float64) {
	if p.grab != nil {
		p.grab.Axis(p, time, axis, value)
		return
	}
	p.defaultAxis(time, axis, value)
}

func (p *Pointer) defaultAxis(time uint32, axis AxisSource, value float64) {
	if p.current != nil && p.onAxis != nil {
		p.onAxis(*p.current, time, axis, value)
		p.pendingFrame = true
	}
}

// Flush emits exactly one frame event if any atomic event (motion, button,
// axis, relative_motion) occurred since the last Flush, per the ordering
// guarantee that enter/motion/button/axis/relative_motion occurring
// together are followed by exactly one frame.
func (p *Pointer) Flush() {
	if p.grab != nil {
		p.grab.Frame(p)
		return
	}
	p.defaultFrame()
}

func (p *Pointer) defaultFrame() {
	if !p.pendingFrame {
		return
	}
	p.pendingFrame = false
	if p.current != nil && p.onFrame != nil {
		p.onFrame(*p.current)
	}
}
