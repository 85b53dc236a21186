package seat

import "github.com/gowlcore/gowlcore/internal/wire"

// Capability is a bitset mirroring wl_seat's capability bitmask.
type Capability uint32

const (
	CapabilityPointer Capability = 1 << iota
	CapabilityKeyboard
	CapabilityTouch
)

// Seat aggregates a keyboard, pointer, and touch capability handle, each
// optional, matching wl_seat's capability-advertisement model.
type Seat struct {
	Name string

	serials  wire.SerialAllocator
	keyboard *Keyboard
	pointer  *Pointer
	touch    *Touch

	onCapabilities func(Capability)
}

// NewSeat creates an empty seat with no capabilities installed.
func NewSeat(name string, onCapabilities func(Capability)) *Seat {
	return &Seat{Name: name, onCapabilities: onCapabilities}
}

// AllocSerial hands out the next input serial for this seat.
func (s *Seat) AllocSerial() uint32 { return s.serials.Next() }

// Capabilities reports the current capability bitmask.
func (s *Seat) Capabilities() Capability {
	var c Capability
	if s.pointer != nil {
		c |= CapabilityPointer
	}
	if s.keyboard != nil {
		c |= CapabilityKeyboard
	}
	if s.touch != nil {
		c |= CapabilityTouch
	}
	return c
}

func (s *Seat) notify() {
	if s.onCapabilities != nil {
		s.onCapabilities(s.Capabilities())
	}
}

// Keyboard returns the seat's keyboard handle, or nil.
func (s *Seat) Keyboard() *Keyboard { return s.keyboard }

// Pointer returns the seat's pointer handle, or nil.
func (s *Seat) Pointer() *Pointer { return s.pointer }

// Touch returns the seat's touch handle, or nil.
func (s *Seat) Touch() *Touch { return s.touch }

// AddKeyboard installs a keyboard capability, advertising it to clients.
func (s *Seat) AddKeyboard(kb *Keyboard) {
	s.keyboard = kb
	s.notify()
}

// RemoveKeyboard uninstalls the keyboard capability. Any current focus
// receives a synthetic leave first.
func (s *Seat) RemoveKeyboard() {
	if s.keyboard == nil {
		return
	}
	s.keyboard.SyntheticLeave(s.AllocSerial)
	s.keyboard = nil
	s.notify()
}

// AddPointer installs a pointer capability, advertising it to clients.
func (s *Seat) AddPointer(p *Pointer) {
	s.pointer = p
	s.notify()
}

// RemovePointer uninstalls the pointer capability, with a synthetic leave
// for any current focus.
func (s *Seat) RemovePointer() {
	if s.pointer == nil {
		return
	}
	s.pointer.SyntheticLeave(s.AllocSerial)
	s.pointer = nil
	s.notify()
}

// AddTouch installs a touch capability, advertising it to clients.
func (s *Seat) AddTouch(t *Touch) {
	s.touch = t
	s.notify()
}

// RemoveTouch uninstalls the touch capability, cancelling any active touch
// points.
func (s *Seat) RemoveTouch() {
	if s.touch == nil {
		return
	}
	s.touch.Cancel()
	s.touch = nil
	s.notify()
}
