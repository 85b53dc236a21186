package xwm

import (
	"encoding/binary"

	"github.com/gowlcore/gowlcore/internal/xproto"
)

// This file implements only the inbound XDND direction: an X11 client is
// the drag source and the bridge's utility window stands in as the target
// for whatever Wayland surface is under the pointer. Proxying a
// Wayland-native drag outward as an XDND source is not implemented.

// actionFromAtom maps an XDND action atom to the internal xdndAction
// vocabulary, defaulting to None for anything unrecognized.
func (b *Bridge) actionFromAtom(atom xproto.Atom) xdndAction {
	switch atom {
	case b.atoms.XdndActionCopy:
		return xdndActionCopy
	case b.atoms.XdndActionMove:
		return xdndActionMove
	case b.atoms.XdndActionLink:
		return xdndActionLink
	case b.atoms.XdndActionAsk:
		return xdndActionAsk
	default:
		return xdndActionNone
	}
}

// atomFromAction is the inverse of actionFromAtom.
func (b *Bridge) atomFromAction(action xdndAction) xproto.Atom {
	switch action {
	case xdndActionCopy:
		return b.atoms.XdndActionCopy
	case xdndActionMove:
		return b.atoms.XdndActionMove
	case xdndActionLink:
		return b.atoms.XdndActionLink
	case xdndActionAsk:
		return b.atoms.XdndActionAsk
	default:
		return xproto.AtomNone
	}
}

func (b *Bridge) decodeAtomList(value []byte) []xproto.Atom {
	order := b.conn.ByteOrder()
	atoms := make([]xproto.Atom, 0, len(value)/4)
	for off := 0; off+4 <= len(value); off += 4 {
		var raw uint32
		if order == xproto.LSBFirst {
			raw = binary.LittleEndian.Uint32(value[off : off+4])
		} else {
			raw = binary.BigEndian.Uint32(value[off : off+4])
		}
		atoms = append(atoms, xproto.Atom(raw))
	}
	return atoms
}

// handleXdndEnter starts tracking a new drag: the source window and its
// offered type list, read from the message's inline atoms or, when the
// "more than three types" bit is set, from the source's XdndTypeList
// property.
func (b *Bridge) handleXdndEnter(e *xproto.ClientMessageEvent) error {
	data := e.Data32()
	source := xproto.ResourceID(data[0])
	moreThanThree := data[1]&1 != 0

	var types []xproto.Atom
	if moreThanThree {
		value, _, _, _, err := b.conn.GetProperty(source, b.atoms.XdndTypeList, xproto.AtomAtom, 0, 256, false)
		if err == nil {
			types = b.decodeAtomList(value)
		}
	} else {
		for _, raw := range data[2:5] {
			if raw != 0 {
				types = append(types, xproto.Atom(raw))
			}
		}
	}

	dnd := NewDndState(source, types)
	dnd.EnterTarget(e.Window)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.dnd = dnd
	return nil
}

// handleXdndPosition decodes the source's proposed drop point/action and
// replies with XdndStatus. Drop-target acceptance is always granted since
// the bridge has no compositor pointer-grab/surface-under-cursor lookup to
// consult; a host wiring this bridge into its input stack can refine this
// by inspecting DndState before HandleEvent returns.
func (b *Bridge) handleXdndPosition(e *xproto.ClientMessageEvent) error {
	data := e.Data32()
	source := xproto.ResourceID(data[0])
	rootX := int32(data[2] >> 16)
	rootY := int32(int16(data[2] & 0xffff))
	time := xproto.Timestamp(data[3])
	proposed := b.actionFromAtom(xproto.Atom(data[4]))

	b.mu.Lock()
	dnd := b.dnd
	b.mu.Unlock()
	if dnd == nil || dnd.Source() != source {
		return nil
	}

	dnd.QueuePosition(rootX, rootY, proposed, time)
	action := proposed
	if action == xdndActionNone {
		action = xdndActionCopy
	}
	dnd.AckStatus(true, action)

	return b.conn.SendClientMessage(source, source, b.atoms.XdndStatus,
		uint32(e.Window), 1, 0, 0, uint32(b.atomFromAction(action)))
}

// handleXdndLeave abandons the current drag without a drop.
func (b *Bridge) handleXdndLeave(e *xproto.ClientMessageEvent) error {
	data := e.Data32()
	source := xproto.ResourceID(data[0])

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dnd != nil && b.dnd.Source() == source {
		b.dnd = nil
	}
	return nil
}

// handleXdndDrop fetches the dropped data (via the XdndSelection
// ConvertSelection exchange, against the first offered type) and replies
// with XdndFinished.
func (b *Bridge) handleXdndDrop(e *xproto.ClientMessageEvent) error {
	data := e.Data32()
	source := xproto.ResourceID(data[0])

	b.mu.Lock()
	dnd := b.dnd
	b.mu.Unlock()
	if dnd == nil || dnd.Source() != source {
		return b.conn.SendClientMessage(source, source, b.atoms.XdndFinished, uint32(e.Window), 0, 0, 0, 0)
	}

	accepted, action := dnd.Accepted()
	types := dnd.TypeList()

	var payload []byte
	if accepted && len(types) > 0 {
		dropped, err := b.requestX11Selection(b.atoms.XdndSelection, types[0])
		if err == nil {
			payload = dropped
		} else {
			accepted = false
		}
	}
	dnd.SetDropPayload(payload)

	var flags uint32
	var actionAtom uint32
	if accepted {
		flags = 1
		actionAtom = uint32(b.atomFromAction(action))
	}

	b.mu.Lock()
	if b.dnd == dnd {
		b.dnd = nil
	}
	b.mu.Unlock()

	return b.conn.SendClientMessage(source, source, b.atoms.XdndFinished, uint32(e.Window), flags, actionAtom, 0, 0)
}
