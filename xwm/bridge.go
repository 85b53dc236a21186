// Package xwm implements the XWayland bridge: window-surface pairing,
// selection proxying, and the XDND state machine layered on a live X11
// connection (internal/xproto).
package xwm

import (
	"errors"
	"image"
	"sync"

	"github.com/gowlcore/gowlcore/internal/xproto"
	"github.com/gowlcore/gowlcore/surface"
)

// ErrBridgeClosed is returned by Bridge methods called after the X11
// connection has been torn down.
var ErrBridgeClosed = errors.New("xwm: bridge is closed")

// PairingCallback is invoked once both halves of a window-surface pairing
// (the X11 window and the wl_surface carrying xwayland_surface) are known.
type PairingCallback func(xwmID uint64, wlSurface surface.ID, x11Window xproto.ResourceID)

// RequestedState tracks the _NET_WM_STATE flags an X11 window has asked
// the compositor for, distinct from whatever state the compositor has
// actually granted it.
type RequestedState struct {
	Maximized  bool
	Fullscreen bool
	Minimized  bool
}

// X11Window is the bridge's record of one paired (or pairing) X11 window:
// identity, the X atoms dictionary cached off it, its geometry, and the
// window-manager-relevant flags a real WM would track.
type X11Window struct {
	ID        xproto.ResourceID
	Serial    uint64
	WlSurface surface.ID
	Paired    bool

	// Atoms is the window's X atoms dictionary: cached property values
	// keyed by the property atom, refreshed as PropertyNotify events
	// arrive.
	Atoms map[xproto.Atom][]byte

	Geometry         image.Rectangle
	OverrideRedirect bool
	Mapped           bool
	Decorated        bool
	RequestedState   RequestedState
}

func newX11Window(id xproto.ResourceID) *X11Window {
	return &X11Window{ID: id, Atoms: make(map[xproto.Atom][]byte), Decorated: true}
}

// ensureWindow returns the tracked record for id, creating an unpaired one
// if this is the first event the bridge has seen for it. Must be called
// with b.mu held.
func (b *Bridge) ensureWindow(id xproto.ResourceID) *X11Window {
	w, ok := b.windows[id]
	if !ok {
		w = newX11Window(id)
		b.windows[id] = w
	}
	return w
}

// Bridge owns one long-lived X11 connection and every window pairing,
// selection proxy, and XDND state derived from it.
type Bridge struct {
	mu sync.Mutex

	conn  *xproto.Connection
	atoms *xproto.StandardAtoms

	windows map[xproto.ResourceID]*X11Window

	// pendingSerial / pendingSurface park whichever half of a
	// window-surface pairing arrived first, keyed by the 64-bit serial
	// exchanged over both WL_SURFACE_SERIAL (X property) and
	// xwayland_surface.set_serial (Wayland request).
	pendingSerial  map[uint64]xproto.ResourceID
	pendingSurface map[uint64]surface.ID

	onPaired PairingCallback

	selections map[SelectionKind]*SelectionProxy
	dnd        *DndState

	// utilityWindow is the requestor side of every ConvertSelection the
	// bridge issues on the compositor's behalf, created by the caller that
	// starts the bridge (an unmapped, override-redirect window; see
	// SetUtilityWindow).
	utilityWindow xproto.ResourceID

	// pendingConvert parks one outstanding ConvertSelection per selection
	// atom, resolved when the matching SelectionNotify arrives.
	pendingConvert map[xproto.Atom]chan convertResult

	// propertyWaits parks goroutines blocked on a specific property
	// transitioning (INCR chunk delivery in either direction), keyed by
	// the (window, property) pair they are watching.
	propertyWaits map[propKey]chan xproto.PropertyNotifyEvent

	onCloseRequested func(x11Window xproto.ResourceID)

	closed bool
}

// propKey identifies one (window, property) pair being watched for the
// next PropertyNotify.
type propKey struct {
	window   xproto.ResourceID
	property xproto.Atom
}

// convertResult is what a pending ConvertSelection resolves to once its
// SelectionNotify (and, for INCR transfers, every subsequent chunk) has
// been collected.
type convertResult struct {
	data []byte
	err  error
}

// NewBridge creates a bridge over an already-connected X11 connection with
// its standard atoms interned. Atom interning happens in one round trip
// via Connection.InternStandardAtoms / InternAtoms, not one request per
// atom.
func NewBridge(conn *xproto.Connection, atoms *xproto.StandardAtoms, onPaired PairingCallback) *Bridge {
	return &Bridge{
		conn:           conn,
		atoms:          atoms,
		windows:        make(map[xproto.ResourceID]*X11Window),
		pendingSerial:  make(map[uint64]xproto.ResourceID),
		pendingSurface: make(map[uint64]surface.ID),
		onPaired:       onPaired,
		selections:     make(map[SelectionKind]*SelectionProxy),
		pendingConvert: make(map[xproto.Atom]chan convertResult),
		propertyWaits:  make(map[propKey]chan xproto.PropertyNotifyEvent),
	}
}

// SetUtilityWindow records the X11 window the bridge uses as the requestor
// side of ConvertSelection exchanges. The caller starting the bridge is
// responsible for creating it (a small override-redirect, never-mapped
// window is the conventional choice XWM implementations use for this).
func (b *Bridge) SetUtilityWindow(id xproto.ResourceID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.utilityWindow = id
}

// OnCloseRequested installs a callback invoked when an X11 window's
// WM_DELETE_WINDOW client message arrives, mirroring xdg_toplevel.close for
// XWayland-backed windows.
func (b *Bridge) OnCloseRequested(fn func(x11Window xproto.ResourceID)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCloseRequested = fn
}

// Atoms returns the bridge's interned standard atom table.
func (b *Bridge) Atoms() *xproto.StandardAtoms { return b.atoms }

// Conn returns the bridge's X11 connection, for components (selection,
// DnD) that need to issue requests directly.
func (b *Bridge) Conn() *xproto.Connection { return b.conn }

// NotifyX11Window records that x11Window carries WL_SURFACE_SERIAL serial.
// If the matching wl_surface half is already known, the pairing completes
// immediately and the surface acquires the xwayland_shell role (reported
// via the PairingCallback; role assignment itself is the caller's
// responsibility through the surface tree).
func (b *Bridge) NotifyX11Window(x11Window xproto.ResourceID, serial uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBridgeClosed
	}

	if wlSurface, ok := b.pendingSurface[serial]; ok {
		delete(b.pendingSurface, serial)
		b.completePairing(serial, x11Window, wlSurface)
		return nil
	}
	b.pendingSerial[serial] = x11Window
	return nil
}

// NotifySurfaceSerial records that wlSurface sent xwayland_surface's
// set_serial(serial). Symmetric to NotifyX11Window.
func (b *Bridge) NotifySurfaceSerial(wlSurface surface.ID, serial uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBridgeClosed
	}

	if x11Window, ok := b.pendingSerial[serial]; ok {
		delete(b.pendingSerial, serial)
		b.completePairing(serial, x11Window, wlSurface)
		return nil
	}
	b.pendingSurface[serial] = wlSurface
	return nil
}

// completePairing must be called with b.mu held.
func (b *Bridge) completePairing(serial uint64, x11Window xproto.ResourceID, wlSurface surface.ID) {
	w := b.ensureWindow(x11Window)
	w.Serial = serial
	w.WlSurface = wlSurface
	w.Paired = true
	if b.onPaired != nil {
		b.onPaired(serial, wlSurface, x11Window)
	}
}

// WindowFor returns the paired record for x11Window, or nil.
func (b *Bridge) WindowFor(x11Window xproto.ResourceID) *X11Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windows[x11Window]
}

// Teardown tears down the bridge and every pairing following loss of the
// X11 connection: each paired wl_surface survives in the compositor but
// loses its X11 window reference. lostSurfaces receives every wl_surface
// that was paired at the time of teardown so the caller can clear their
// xwayland role's window reference.
func (b *Bridge) Teardown() (lostSurfaces []surface.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, w := range b.windows {
		if w.Paired {
			lostSurfaces = append(lostSurfaces, w.WlSurface)
		}
	}
	b.windows = make(map[xproto.ResourceID]*X11Window)
	b.pendingSerial = make(map[uint64]xproto.ResourceID)
	b.pendingSurface = make(map[uint64]surface.ID)

	for atom, ch := range b.pendingConvert {
		ch <- convertResult{err: ErrBridgeClosed}
		delete(b.pendingConvert, atom)
	}
	for key, ch := range b.propertyWaits {
		close(ch)
		delete(b.propertyWaits, key)
	}
	return lostSurfaces
}

// Dnd returns the bridge's current cross-boundary drag state, or nil when
// no X11-sourced drag is in progress.
func (b *Bridge) Dnd() *DndState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dnd
}

// Closed reports whether the bridge has torn down.
func (b *Bridge) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
