package xwm

import (
	"testing"

	"github.com/gowlcore/gowlcore/internal/xproto"
)

func testAtoms() *xproto.StandardAtoms {
	return &xproto.StandardAtoms{
		NetWMState:              xproto.Atom(100),
		NetWMStateMaximizedHorz: xproto.Atom(101),
		NetWMStateMaximizedVert: xproto.Atom(102),
		NetWMStateFullscreen:    xproto.Atom(103),
		NetWMStateHidden:        xproto.Atom(104),
		XdndEnter:               xproto.Atom(200),
		XdndPosition:            xproto.Atom(201),
		XdndLeave:               xproto.Atom(202),
		XdndDrop:                xproto.Atom(203),
		XdndTypeList:            xproto.Atom(204),
		XdndActionCopy:          xproto.Atom(210),
		XdndActionMove:          xproto.Atom(211),
	}
}

func TestHandleNetWMStateMessageAddsBothMaximizeAxes(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	msg := &xproto.ClientMessageEvent{Window: xproto.ResourceID(5)}
	putData32(msg, netWMStateAdd, uint32(b.atoms.NetWMStateMaximizedHorz), uint32(b.atoms.NetWMStateMaximizedVert))

	if err := b.handleNetWMStateMessage(msg); err != nil {
		t.Fatalf("handleNetWMStateMessage: %v", err)
	}

	w := b.WindowFor(xproto.ResourceID(5))
	if w == nil || !w.RequestedState.Maximized {
		t.Fatalf("expected maximized requested state, got %+v", w)
	}
}

func TestHandleNetWMStateMessageToggleFullscreen(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	msg := &xproto.ClientMessageEvent{Window: xproto.ResourceID(9)}
	putData32(msg, netWMStateToggle, uint32(b.atoms.NetWMStateFullscreen), 0)

	if err := b.handleNetWMStateMessage(msg); err != nil {
		t.Fatal(err)
	}
	if !b.WindowFor(xproto.ResourceID(9)).RequestedState.Fullscreen {
		t.Fatal("expected first toggle to set fullscreen")
	}

	if err := b.handleNetWMStateMessage(msg); err != nil {
		t.Fatal(err)
	}
	if b.WindowFor(xproto.ResourceID(9)).RequestedState.Fullscreen {
		t.Fatal("expected second toggle to clear fullscreen")
	}
}

func TestHandleNetWMStateMessageRemoveMinimized(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	w := b.ensureWindow(xproto.ResourceID(1))
	w.RequestedState.Minimized = true

	msg := &xproto.ClientMessageEvent{Window: xproto.ResourceID(1)}
	putData32(msg, netWMStateRemove, uint32(b.atoms.NetWMStateHidden), 0)
	if err := b.handleNetWMStateMessage(msg); err != nil {
		t.Fatal(err)
	}
	if b.WindowFor(xproto.ResourceID(1)).RequestedState.Minimized {
		t.Fatal("expected minimized to be cleared")
	}
}

func TestHandleXdndEnterTracksSourceAndInlineTypes(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	msg := &xproto.ClientMessageEvent{Window: xproto.ResourceID(50), Type: b.atoms.XdndEnter}
	// flags bit0=0 (3 or fewer types); two inline type atoms.
	putData32(msg, 30, 0, 300, 301)

	if err := b.handleXdndEnter(msg); err != nil {
		t.Fatalf("handleXdndEnter: %v", err)
	}

	dnd := b.Dnd()
	if dnd == nil {
		t.Fatal("expected a tracked drag")
	}
	if dnd.Source() != xproto.ResourceID(30) {
		t.Fatalf("source = %v, want 30", dnd.Source())
	}
	types := dnd.TypeList()
	if len(types) != 2 || types[0] != xproto.Atom(300) || types[1] != xproto.Atom(301) {
		t.Fatalf("unexpected type list: %v", types)
	}
}

func TestHandleXdndLeaveClearsMatchingSource(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	enter := &xproto.ClientMessageEvent{Window: xproto.ResourceID(50), Type: b.atoms.XdndEnter}
	putData32(enter, 30, 0, 300, 0)
	if err := b.handleXdndEnter(enter); err != nil {
		t.Fatal(err)
	}
	if b.Dnd() == nil {
		t.Fatal("expected a tracked drag before leave")
	}

	leave := &xproto.ClientMessageEvent{Window: xproto.ResourceID(50), Type: b.atoms.XdndLeave}
	putData32(leave, 30, 0, 0, 0)
	if err := b.handleXdndLeave(leave); err != nil {
		t.Fatal(err)
	}
	if b.Dnd() != nil {
		t.Fatal("expected the drag to be cleared after XdndLeave")
	}
}

func TestHandleDestroyNotifyClearsDndForSourceWindow(t *testing.T) {
	b := NewBridge(nil, testAtoms(), nil)
	enter := &xproto.ClientMessageEvent{Window: xproto.ResourceID(50), Type: b.atoms.XdndEnter}
	putData32(enter, 30, 0, 300, 0)
	if err := b.handleXdndEnter(enter); err != nil {
		t.Fatal(err)
	}

	if err := b.handleDestroyNotify(&xproto.DestroyNotifyEvent{Window: xproto.ResourceID(30)}); err != nil {
		t.Fatal(err)
	}
	if b.Dnd() != nil {
		t.Fatal("expected dnd state to be dropped when its source window is destroyed")
	}
}

func TestSelectionKindAtomRoundTrip(t *testing.T) {
	atoms := &xproto.StandardAtoms{Clipboard: 1, Primary: 2, XdndSelection: 3}
	b := NewBridge(nil, atoms, nil)

	for _, kind := range []SelectionKind{SelectionClipboard, SelectionPrimary, SelectionDnd} {
		atom := b.selectionAtomFor(kind)
		got, ok := b.selectionKindForAtom(atom)
		if !ok || got != kind {
			t.Fatalf("kind %v: round trip got kind=%v ok=%v", kind, got, ok)
		}
	}

	if _, ok := b.selectionKindForAtom(xproto.Atom(999)); ok {
		t.Fatal("expected an unrecognized atom to report ok=false")
	}
}

// putData32 writes up to five uint32 values into a ClientMessageEvent's
// Data field at the offsets Data32 decodes them from, little-endian as the
// wire always is. Trailing values may be omitted.
func putData32(e *xproto.ClientMessageEvent, values ...uint32) {
	for i, v := range values {
		off := i * 4
		e.Data[off] = byte(v)
		e.Data[off+1] = byte(v >> 8)
		e.Data[off+2] = byte(v >> 16)
		e.Data[off+3] = byte(v >> 24)
	}
}
