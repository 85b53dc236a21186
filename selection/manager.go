package selection

import (
	"errors"
	"io"
)

// RequestResult is the outcome of Manager.RequestSelection.
type RequestResult int

const (
	// Sent means a client source's Send was invoked directly.
	Sent RequestResult = iota
	// ServerSideSelection means the slot holds a compositor source; the
	// compositor already has the data and services the read itself.
	ServerSideSelection
	// InvalidMimetype means mime was not among the source's advertised
	// mime types.
	InvalidMimetype
	// NoSelection means no source is currently set for the slot.
	NoSelection
)

// ErrNoSource names the no-source condition. No Manager method returns it:
// RequestSelection reports a slot without a source as NoSelection.
var ErrNoSource = errors.New("selection: no source set for slot")

// Offer is the resource a client-side selection offer is backed by: the
// advertised mime list for whichever source currently occupies the slot.
type Offer struct {
	Slot  SlotKind
	Mimes []string
}

// Manager holds one seat's three selection slots and the currently
// advertised offer (if any) per slot.
type Manager struct {
	sources  map[SlotKind]Source
	offers   map[SlotKind]*Offer
	registry *TransferRegistry
}

// NewManager creates an empty selection manager.
func NewManager() *Manager {
	return &Manager{
		sources:  make(map[SlotKind]Source),
		offers:   make(map[SlotKind]*Offer),
		registry: NewTransferRegistry(),
	}
}

// Transfers returns the manager's TransferRegistry, so in-flight reads can
// be tracked by compositor glue as it spins up fd writers.
func (m *Manager) Transfers() *TransferRegistry { return m.registry }

// SetSource replaces slot's source. Any existing source has its in-flight
// transfers cancelled and, if it is a ClientSource with a Cancelled hook,
// that hook runs, matching "offers are invalidated when the selection slot
// is replaced".
func (m *Manager) SetSource(slot SlotKind, src Source) {
	if old, ok := m.sources[slot]; ok {
		m.registry.CancelSource(old)
		if cs, ok := old.(*ClientSource); ok && cs.Cancelled != nil {
			cs.Cancelled()
		}
	}
	m.sources[slot] = src
	delete(m.offers, slot)
}

// Source returns slot's current source, or nil.
func (m *Manager) Source(slot SlotKind) Source { return m.sources[slot] }

// CreateOffer advertises slot's current source's mime types as a fresh
// offer, called on the focus transition that grants selection focus
// (keyboard enter for clipboard/primary, drag-grab surface entry for DnD).
// Returns nil if no source is set.
func (m *Manager) CreateOffer(slot SlotKind) *Offer {
	src, ok := m.sources[slot]
	if !ok {
		return nil
	}
	offer := &Offer{Slot: slot, Mimes: append([]string(nil), src.Mimes()...)}
	m.offers[slot] = offer
	return offer
}

// InvalidateOffer drops slot's current offer, called when focus leaves.
func (m *Manager) InvalidateOffer(slot SlotKind) {
	delete(m.offers, slot)
}

// CurrentOffer returns slot's currently advertised offer, or nil.
func (m *Manager) CurrentOffer(slot SlotKind) *Offer { return m.offers[slot] }

// RequestSelection is the compositor's API to read the current selection
// from kernel side.
func (m *Manager) RequestSelection(slot SlotKind, mime string, fd io.WriteCloser) RequestResult {
	src, ok := m.sources[slot]
	if !ok {
		return NoSelection
	}
	if !hasMime(src.Mimes(), mime) {
		return InvalidMimetype
	}
	switch s := src.(type) {
	case *ClientSource:
		m.registry.Begin(src, fd, func() { _ = fd.Close() })
		_ = s.Send(mime, fd)
		m.registry.End(src, fd)
		return Sent
	case *CompositorSource:
		return ServerSideSelection
	default:
		return NoSelection
	}
}

func hasMime(mimes []string, mime string) bool {
	for _, m := range mimes {
		if m == mime {
			return true
		}
	}
	return false
}
