package xwm

import (
	"encoding/binary"
	"fmt"

	"github.com/gowlcore/gowlcore/internal/xproto"
)

// HandleEvent is the bridge's single entry point for the live X11 wire: a
// caller pumping Connection.WaitForEvent hands every event here,
// and HandleEvent type-switches on it and performs whatever X11 requests
// (ChangeProperty, ConvertSelection, SendClientMessage, ...) the event
// calls for. This is the X11-side counterpart to the Wayland wire
// dispatcher a host builds against Core's Dispatcher hook.
func (b *Bridge) HandleEvent(ev xproto.Event) error {
	switch e := ev.(type) {
	case *xproto.ConfigureNotifyEvent:
		return b.handleConfigureNotify(e)
	case *xproto.MapNotifyEvent:
		return b.handleMapNotify(e)
	case *xproto.UnmapNotifyEvent:
		return b.handleUnmapNotify(e)
	case *xproto.DestroyNotifyEvent:
		return b.handleDestroyNotify(e)
	case *xproto.PropertyNotifyEvent:
		return b.handlePropertyNotify(e)
	case *xproto.ClientMessageEvent:
		return b.handleClientMessage(e)
	case *xproto.SelectionClearEvent:
		return b.handleSelectionClear(e)
	case *xproto.SelectionRequestEvent:
		return b.handleSelectionRequest(e)
	case *xproto.SelectionNotifyEvent:
		return b.handleSelectionNotify(e)
	default:
		return nil
	}
}

func (b *Bridge) handleConfigureNotify(e *xproto.ConfigureNotifyEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	w := b.ensureWindow(e.Window)
	w.Geometry.Min.X = int(e.X)
	w.Geometry.Min.Y = int(e.Y)
	w.Geometry.Max.X = int(e.X) + int(e.Width)
	w.Geometry.Max.Y = int(e.Y) + int(e.Height)
	w.OverrideRedirect = e.OverrideRedirect
	return nil
}

func (b *Bridge) handleMapNotify(e *xproto.MapNotifyEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	w := b.ensureWindow(e.Window)
	w.Mapped = true
	w.OverrideRedirect = e.OverrideRedirect
	return nil
}

func (b *Bridge) handleUnmapNotify(e *xproto.UnmapNotifyEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	if w, ok := b.windows[e.Window]; ok {
		w.Mapped = false
	}
	return nil
}

func (b *Bridge) handleDestroyNotify(e *xproto.DestroyNotifyEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	delete(b.windows, e.Window)
	if b.dnd != nil && b.dnd.Source() == e.Window {
		b.dnd = nil
	}
	return nil
}

// handlePropertyNotify refreshes the window's cached atom dictionary,
// releases anything blocked in propertyWaits watching this (window,
// property) pair, and auto-completes window-surface pairing the moment an
// X11 client publishes WL_SURFACE_SERIAL.
func (b *Bridge) handlePropertyNotify(e *xproto.PropertyNotifyEvent) error {
	b.mu.Lock()
	key := propKey{window: e.Window, property: e.Atom}
	if ch, ok := b.propertyWaits[key]; ok {
		delete(b.propertyWaits, key)
		b.mu.Unlock()
		ch <- *e
		b.mu.Lock()
	}
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	w := b.ensureWindow(e.Window)
	if e.State == xproto.PropertyDelete {
		delete(w.Atoms, e.Atom)
		b.mu.Unlock()
		return nil
	}
	serialAtom := b.atoms.WlSurfaceSerial
	netWMState := b.atoms.NetWMState
	b.mu.Unlock()

	value, _, _, _, err := b.conn.GetProperty(e.Window, e.Atom, xproto.AnyPropertyType, 0, 1024, false)
	if err != nil {
		return nil
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	w = b.ensureWindow(e.Window)
	w.Atoms[e.Atom] = value
	b.mu.Unlock()

	switch e.Atom {
	case serialAtom:
		if len(value) < 8 {
			return nil
		}
		order := b.conn.ByteOrder()
		lo, hi := decodeUint32Pair(order, value)
		serial := uint64(lo) | uint64(hi)<<32
		return b.NotifyX11Window(e.Window, serial)
	case netWMState:
		return b.applyNetWMState(e.Window, value)
	}
	return nil
}

// decodeUint32Pair decodes the first two CARD32s of an atom value in the
// connection's negotiated byte order (WL_SURFACE_SERIAL packs a 64-bit
// serial as two CARD32s, lo then hi).
func decodeUint32Pair(order xproto.ByteOrder, value []byte) (lo, hi uint32) {
	if order == xproto.LSBFirst {
		lo = binary.LittleEndian.Uint32(value[0:4])
		if len(value) >= 8 {
			hi = binary.LittleEndian.Uint32(value[4:8])
		}
		return lo, hi
	}
	lo = binary.BigEndian.Uint32(value[0:4])
	if len(value) >= 8 {
		hi = binary.BigEndian.Uint32(value[4:8])
	}
	return lo, hi
}

// applyNetWMState updates a window's RequestedState from a freshly-read
// _NET_WM_STATE property value (a list of CARD32 atoms), used both for the
// initial property read and as a fallback to the incremental
// ClientMessage-driven update in handleNetWMStateMessage.
func (b *Bridge) applyNetWMState(window xproto.ResourceID, value []byte) error {
	order := b.conn.ByteOrder()
	var maximizedH, maximizedV, fullscreen, hidden bool
	for off := 0; off+4 <= len(value); off += 4 {
		var raw uint32
		if order == xproto.LSBFirst {
			raw = binary.LittleEndian.Uint32(value[off : off+4])
		} else {
			raw = binary.BigEndian.Uint32(value[off : off+4])
		}
		atom := xproto.Atom(raw)
		switch atom {
		case b.atoms.NetWMStateMaximizedHorz:
			maximizedH = true
		case b.atoms.NetWMStateMaximizedVert:
			maximizedV = true
		case b.atoms.NetWMStateFullscreen:
			fullscreen = true
		case b.atoms.NetWMStateHidden:
			hidden = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	w := b.ensureWindow(window)
	w.RequestedState.Maximized = maximizedH && maximizedV
	w.RequestedState.Fullscreen = fullscreen
	w.RequestedState.Minimized = hidden
	return nil
}

// netWMStateAction mirrors the _NET_WM_STATE client message's data[0].
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
	netWMStateToggle = 2
)

func (b *Bridge) handleClientMessage(e *xproto.ClientMessageEvent) error {
	b.mu.Lock()
	onClose := b.onCloseRequested
	atoms := b.atoms
	b.mu.Unlock()

	if e.IsDeleteWindow(atoms) {
		if onClose != nil {
			onClose(e.Window)
		}
		return nil
	}

	switch e.Type {
	case atoms.NetWMState:
		return b.handleNetWMStateMessage(e)
	case atoms.XdndEnter:
		return b.handleXdndEnter(e)
	case atoms.XdndPosition:
		return b.handleXdndPosition(e)
	case atoms.XdndLeave:
		return b.handleXdndLeave(e)
	case atoms.XdndDrop:
		return b.handleXdndDrop(e)
	}
	return nil
}

// handleNetWMStateMessage applies an incremental _NET_WM_STATE client
// message (the usual way a client toggles its own fullscreen/maximized/
// minimized request, rather than rewriting the whole property).
func (b *Bridge) handleNetWMStateMessage(e *xproto.ClientMessageEvent) error {
	data := e.Data32()
	action := data[0]
	states := []xproto.Atom{xproto.Atom(data[1]), xproto.Atom(data[2])}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	w := b.ensureWindow(e.Window)
	for _, atom := range states {
		if atom == xproto.AtomNone {
			continue
		}
		var target *bool
		switch atom {
		case b.atoms.NetWMStateMaximizedHorz, b.atoms.NetWMStateMaximizedVert:
			target = &w.RequestedState.Maximized
		case b.atoms.NetWMStateFullscreen:
			target = &w.RequestedState.Fullscreen
		case b.atoms.NetWMStateHidden:
			target = &w.RequestedState.Minimized
		default:
			continue
		}
		switch action {
		case netWMStateAdd:
			*target = true
		case netWMStateRemove:
			*target = false
		case netWMStateToggle:
			*target = !*target
		}
	}
	return nil
}

func (b *Bridge) handleSelectionClear(e *xproto.SelectionClearEvent) error {
	b.mu.Lock()
	kind, ok := b.selectionKindForAtom(e.Selection)
	proxy := b.selections[kind]
	b.mu.Unlock()
	if ok && proxy != nil {
		proxy.ReleaseX11Owner()
	}
	return nil
}

// handleSelectionRequest answers a SelectionRequest for a slot the
// compositor (a Wayland client, via selection.Manager) currently owns: it
// resolves the data from whatever Source occupies that slot and writes it
// into the requestor's property, following ICCCM INCR chunking once the
// payload is large, then replies with SelectionNotify either way.
func (b *Bridge) handleSelectionRequest(e *xproto.SelectionRequestEvent) error {
	b.mu.Lock()
	kind, ok := b.selectionKindForAtom(e.Selection)
	var proxy *SelectionProxy
	if ok {
		proxy = b.selections[kind]
	}
	atoms := b.atoms
	conn := b.conn
	b.mu.Unlock()

	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	fail := func() error {
		return conn.SendSelectionNotify(e.Requestor, e.Selection, e.Target, xproto.AtomNone, e.Time)
	}

	if !ok || proxy == nil || proxy.IsX11Owned() {
		return fail()
	}

	if e.Target == atoms.Targets {
		src := proxy.mgr.Source(proxy.kind.slot())
		var mimes []string
		if src != nil {
			mimes = src.Mimes()
		}
		data := make([]byte, 0, len(mimes)*4)
		order := conn.ByteOrder()
		for _, mime := range mimes {
			target, ok := b.targetForMime(mime)
			if !ok {
				continue
			}
			data = appendUint32(data, order, uint32(target))
		}
		if err := conn.ChangeProperty(e.Requestor, property, xproto.AtomAtom, 32, xproto.PropModeReplace, data); err != nil {
			return fail()
		}
		return conn.SendSelectionNotify(e.Requestor, e.Selection, e.Target, property, e.Time)
	}

	mime := b.mimeForTarget(e.Target)
	if mime == "" {
		return fail()
	}
	data, err := proxy.readCompositorData(mime)
	if err != nil {
		return fail()
	}
	if err := b.writeSelectionProperty(e.Requestor, property, data); err != nil {
		return fail()
	}
	return conn.SendSelectionNotify(e.Requestor, e.Selection, e.Target, property, e.Time)
}

// writeSelectionProperty writes data into window's property, following
// ICCCM INCR for payloads at or above IncrChunkSize.
func (b *Bridge) writeSelectionProperty(window xproto.ResourceID, property xproto.Atom, data []byte) error {
	if len(data) < IncrChunkSize {
		return b.conn.ChangeProperty(window, property, b.atoms.UTF8String, 8, xproto.PropModeReplace, data)
	}
	return b.writeIncr(window, property, data)
}

// writeIncr runs the ICCCM INCR write side: announce the total size as an
// INCR-typed property holding one CARD32, then write the payload through an
// IncrTransfer, pacing each chunk on the requestor deleting the previous
// one and finishing with an empty property write.
func (b *Bridge) writeIncr(window xproto.ResourceID, property xproto.Atom, data []byte) error {
	order := b.conn.ByteOrder()
	sizeBuf := make([]byte, 4)
	if order == xproto.LSBFirst {
		binary.LittleEndian.PutUint32(sizeBuf, uint32(len(data)))
	} else {
		binary.BigEndian.PutUint32(sizeBuf, uint32(len(data)))
	}
	if err := b.conn.ChangeProperty(window, property, b.atoms.Incr, 32, xproto.PropModeReplace, sizeBuf); err != nil {
		return err
	}

	awaitDelete := func() error {
		ch := b.registerPropertyWait(window, property)
		if _, err := b.waitForProperty(ch, xproto.PropertyDelete); err != nil {
			b.unregisterPropertyWait(window, property)
			return err
		}
		return nil
	}

	var completeErr error
	tr := NewIncrTransfer(DirectionToX11, "", func(chunk []byte) error {
		if err := awaitDelete(); err != nil {
			return err
		}
		return b.conn.ChangeProperty(window, property, b.atoms.UTF8String, 8, xproto.PropModeReplace, chunk)
	}, func(err error) { completeErr = err })
	tr.SetTotal(int64(len(data)))

	offset := 0
	for offset < len(data) {
		end := offset + IncrChunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := tr.Write(data[offset:end]); err != nil {
			return err
		}
		offset = end
	}

	if err := awaitDelete(); err != nil {
		tr.Cancel()
		return err
	}
	if err := b.conn.ChangeProperty(window, property, b.atoms.UTF8String, 8, xproto.PropModeReplace, nil); err != nil {
		tr.Cancel()
		return err
	}
	tr.Finish()
	return completeErr
}

// handleSelectionNotify resolves whichever pendingConvert channel is
// waiting on this selection atom, reading the converted value back from
// the property (following ICCCM INCR if the owner announced it).
func (b *Bridge) handleSelectionNotify(e *xproto.SelectionNotifyEvent) error {
	b.mu.Lock()
	ch, ok := b.pendingConvert[e.Selection]
	if ok {
		delete(b.pendingConvert, e.Selection)
	}
	b.mu.Unlock()
	if !ok {
		return nil
	}

	if e.Property == xproto.AtomNone {
		ch <- convertResult{err: fmt.Errorf("xwm: selection conversion refused")}
		return nil
	}

	data, err := b.readPropertyFull(e.Requestor, e.Property)
	ch <- convertResult{data: data, err: err}
	return nil
}

// readPropertyFull reads the whole value of a property, transparently
// following ICCCM INCR if the owner announced it (an INCR-typed property
// whose value is a size, followed by successive chunks, terminated by an
// empty write).
func (b *Bridge) readPropertyFull(window xproto.ResourceID, property xproto.Atom) ([]byte, error) {
	value, actualType, _, bytesAfter, err := b.conn.GetProperty(window, property, xproto.AnyPropertyType, 0, 1<<22, false)
	if err != nil {
		return nil, err
	}
	if actualType != b.atoms.Incr {
		for bytesAfter > 0 {
			more, _, _, ba, err := b.conn.GetProperty(window, property, xproto.AnyPropertyType, uint32(len(value))/4, 1<<22, false)
			if err != nil {
				return nil, err
			}
			value = append(value, more...)
			bytesAfter = ba
		}
		_ = b.conn.DeleteProperty(window, property)
		return value, nil
	}

	if err := b.conn.DeleteProperty(window, property); err != nil {
		return nil, err
	}

	var out []byte
	var completeErr error
	tr := NewIncrTransfer(DirectionFromX11, "", func(chunk []byte) error {
		out = append(out, chunk...)
		return nil
	}, func(err error) { completeErr = err })

	for {
		ch := b.registerPropertyWait(window, property)
		if _, err := b.waitForProperty(ch, xproto.PropertyNewValue); err != nil {
			b.unregisterPropertyWait(window, property)
			tr.Cancel()
			return nil, err
		}
		chunk, _, _, _, err := b.conn.GetProperty(window, property, xproto.AnyPropertyType, 0, 1<<22, true)
		if err != nil {
			tr.Cancel()
			return nil, err
		}
		if len(chunk) == 0 {
			tr.Finish()
			return out, completeErr
		}
		if _, err := tr.Write(chunk); err != nil {
			return nil, err
		}
	}
}

// requestX11Selection issues a ConvertSelection against selectionAtom's
// current X11 owner for target, and blocks until the matching
// SelectionNotify arrives through the event pump and the resulting
// property has been read back.
func (b *Bridge) requestX11Selection(selectionAtom, target xproto.Atom) ([]byte, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBridgeClosed
	}
	if _, already := b.pendingConvert[selectionAtom]; already {
		b.mu.Unlock()
		return nil, fmt.Errorf("xwm: selection %v conversion already in flight", selectionAtom)
	}
	utility := b.utilityWindow
	ch := make(chan convertResult, 1)
	b.pendingConvert[selectionAtom] = ch
	b.mu.Unlock()

	transferProperty := b.atoms.WlSelection
	if err := b.conn.ConvertSelection(utility, selectionAtom, target, transferProperty, xproto.CurrentTime); err != nil {
		b.mu.Lock()
		delete(b.pendingConvert, selectionAtom)
		b.mu.Unlock()
		return nil, err
	}

	result := <-ch
	return result.data, result.err
}

func (b *Bridge) registerPropertyWait(window xproto.ResourceID, property xproto.Atom) chan xproto.PropertyNotifyEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan xproto.PropertyNotifyEvent, 1)
	b.propertyWaits[propKey{window: window, property: property}] = ch
	return ch
}

func (b *Bridge) unregisterPropertyWait(window xproto.ResourceID, property xproto.Atom) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.propertyWaits, propKey{window: window, property: property})
}

// waitForProperty blocks for the next PropertyNotify delivered to ch. A
// property wait is always registered immediately before the specific
// transition (delete or new-value) it expects, so the next notification
// for that (window, property) pair is the one being waited for; wantState
// is kept only to self-document which transition the caller expects.
func (b *Bridge) waitForProperty(ch chan xproto.PropertyNotifyEvent, wantState uint8) (xproto.PropertyNotifyEvent, error) {
	_ = wantState
	ev, ok := <-ch
	if !ok {
		return xproto.PropertyNotifyEvent{}, ErrBridgeClosed
	}
	return ev, nil
}

func appendUint32(data []byte, order xproto.ByteOrder, v uint32) []byte {
	buf := make([]byte, 4)
	if order == xproto.LSBFirst {
		binary.LittleEndian.PutUint32(buf, v)
	} else {
		binary.BigEndian.PutUint32(buf, v)
	}
	return append(data, buf...)
}
