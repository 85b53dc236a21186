package xdg

import (
	"sync"

	"github.com/gowlcore/gowlcore/internal/wire"
	"github.com/gowlcore/gowlcore/surface"
)

// ShellState aggregates every xdg-shell object bound to a single xdg_wm_base
// and drives the configure serial allocator shared across toplevels and
// popups on it.
type ShellState struct {
	mu sync.Mutex

	serials wire.SerialAllocator

	toplevels map[surface.ID]*Toplevel
	popups    map[surface.ID]*Popup
}

// NewShellState creates an empty xdg-shell state for one xdg_wm_base
// binding.
func NewShellState() *ShellState {
	return &ShellState{
		toplevels: make(map[surface.ID]*Toplevel),
		popups:    make(map[surface.ID]*Popup),
	}
}

// NewToplevel registers and returns a new Toplevel for id.
func (s *ShellState) NewToplevel(id surface.ID) *Toplevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	tl := &Toplevel{Surface: id}
	s.toplevels[id] = tl
	return tl
}

// Toplevel returns the Toplevel registered for id, or nil.
func (s *ShellState) Toplevel(id surface.ID) *Toplevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toplevels[id]
}

// RemoveToplevel unregisters id's Toplevel, called when the xdg_toplevel
// resource is destroyed.
func (s *ShellState) RemoveToplevel(id surface.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toplevels, id)
}

// NewPopup registers and returns a new Popup for id.
func (s *ShellState) NewPopup(id, parent surface.ID, positioner Positioner) *Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &Popup{Surface: id, Parent: parent, Positioner: positioner}
	s.popups[id] = p
	return p
}

// Popup returns the Popup registered for id, or nil.
func (s *ShellState) Popup(id surface.ID) *Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popups[id]
}

// RemovePopup unregisters id's Popup.
func (s *ShellState) RemovePopup(id surface.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.popups, id)
}

// AllocSerial hands out the next configure serial.
func (s *ShellState) AllocSerial() uint32 { return s.serials.Next() }

// NotifyParentMoved forwards a parent-motion notification to every popup
// parented (directly) at parent, marking reactive ones as needing a
// reposition.
func (s *ShellState) NotifyParentMoved(parent surface.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.popups {
		if p.Parent == parent {
			p.NotifyParentMoved()
		}
	}
}

// FlushReactivePopups re-evaluates and, if needed, sends one coalesced
// configure for every popup marked needsReposition. It is meant to be called
// once per output frame tick by the host compositor, rather than
// synchronously inside NotifyParentMoved, so that several parent moves
// within one frame collapse into a single configure per popup.
func (s *ShellState) FlushReactivePopups() []surface.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reconfigured []surface.ID
	for id, p := range s.popups {
		if !p.needsReposition {
			continue
		}
		if _, sent := p.SendConfigure(s.serials.Next); sent {
			reconfigured = append(reconfigured, id)
		}
	}
	return reconfigured
}
