package xwm

import (
	"io"

	"github.com/gowlcore/gowlcore/internal/xproto"
	"github.com/gowlcore/gowlcore/selection"
)

// SelectionKind identifies which of the three selection slots an X11
// selection atom maps to.
type SelectionKind int

const (
	SelectionClipboard SelectionKind = iota
	SelectionPrimary
	SelectionDnd
)

func (k SelectionKind) slot() selection.SlotKind {
	switch k {
	case SelectionPrimary:
		return selection.SlotPrimary
	case SelectionDnd:
		return selection.SlotDnd
	default:
		return selection.SlotClipboard
	}
}

// mimeForTarget rewrites an X11 TARGETS atom into the mime type Wayland
// clients expect, per ICCCM's legacy text targets.
func (b *Bridge) mimeForTarget(target xproto.Atom) string {
	switch target {
	case b.atoms.UTF8String:
		return "text/plain;charset=utf-8"
	case b.atoms.Text, b.atoms.CompoundText:
		return "text/plain"
	default:
		name, err := b.conn.GetAtomName(target)
		if err != nil {
			return ""
		}
		return name
	}
}

// targetForMime is the inverse of mimeForTarget, used when the bridge
// offers a Wayland selection's mime list to X11 clients as TARGETS.
func (b *Bridge) targetForMime(mime string) (xproto.Atom, bool) {
	switch mime {
	case "text/plain;charset=utf-8":
		return b.atoms.UTF8String, true
	case "text/plain":
		return b.atoms.Text, true
	default:
		atom, err := b.conn.InternAtom(mime, false)
		if err != nil {
			return xproto.AtomNone, false
		}
		return atom, true
	}
}

// SelectionProxy mirrors one selection slot between the X11 selection
// owner mechanism and the compositor's selection.Manager. Exactly one
// side owns the data at a time; the proxy's job is the translation, never
// holding the bytes itself.
type SelectionProxy struct {
	kind   SelectionKind
	mgr    *selection.Manager
	bridge *Bridge

	selectionAtom xproto.Atom

	// owner is true when an X11 client currently owns this selection, so
	// GetProperty/PropertyNotify traffic from X11 should flow into the
	// compositor's selection.Manager as a CompositorSource-backed offer.
	owner bool
}

// NewSelectionProxy creates a proxy for kind backed by mgr, able to issue
// ConvertSelection/property requests through bridge.
func NewSelectionProxy(kind SelectionKind, mgr *selection.Manager, bridge *Bridge) *SelectionProxy {
	return &SelectionProxy{kind: kind, mgr: mgr, bridge: bridge, selectionAtom: bridge.selectionAtomFor(kind)}
}

// Selection returns (or creates) the proxy for kind, lazily, so a bridge
// need not set up all three slots up front.
func (b *Bridge) Selection(kind SelectionKind, mgr *selection.Manager) *SelectionProxy {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.selections[kind]; ok {
		return p
	}
	p := NewSelectionProxy(kind, mgr, b)
	b.selections[kind] = p
	return p
}

// selectionAtomFor maps a SelectionKind to its X11 selection atom.
func (b *Bridge) selectionAtomFor(kind SelectionKind) xproto.Atom {
	switch kind {
	case SelectionPrimary:
		return b.atoms.Primary
	case SelectionDnd:
		return b.atoms.XdndSelection
	default:
		return b.atoms.Clipboard
	}
}

// selectionKindForAtom is the inverse of selectionAtomFor, used when a
// SelectionRequest or SelectionClear event names the atom rather than the
// kind.
func (b *Bridge) selectionKindForAtom(atom xproto.Atom) (SelectionKind, bool) {
	switch atom {
	case b.atoms.Clipboard:
		return SelectionClipboard, true
	case b.atoms.Primary:
		return SelectionPrimary, true
	case b.atoms.XdndSelection:
		return SelectionDnd, true
	default:
		return 0, false
	}
}

// AdoptX11Owner records that an X11 client now owns this selection: future
// Wayland RequestSelection reads for it are serviced by a CompositorSource
// whose Send performs a real ConvertSelection against the X11 owner, waits
// for the resulting SelectionNotify (through the bridge's event pump), and
// reads the converted value back with GetProperty, transparently following
// ICCCM INCR chunking for large selections.
func (p *SelectionProxy) AdoptX11Owner(mimes []string) {
	p.owner = true
	send := func(mime string, fd io.WriteCloser) error {
		target, ok := p.bridge.targetForMime(mime)
		if !ok {
			return ErrTransferFailed
		}
		data, err := p.bridge.requestX11Selection(p.selectionAtom, target)
		if err != nil {
			return err
		}
		_, err = fd.Write(data)
		return err
	}
	p.mgr.SetSource(p.kind.slot(), selection.NewCompositorSource(mimes, send))
}

// ReleaseX11Owner records that the X11 selection owner disappeared
// (SelectionClear was received for this atom, or the connection owning
// it closed).
func (p *SelectionProxy) ReleaseX11Owner() {
	p.owner = false
}

// IsX11Owned reports whether the current owner of this slot is an X11
// client (as opposed to a Wayland client or nobody).
func (p *SelectionProxy) IsX11Owned() bool { return p.owner }

// readCompositorData pulls mime's bytes out of whatever source currently
// occupies this slot (Wayland client or compositor-owned), used to answer
// an X11 SelectionRequest when a Wayland-side client owns the selection.
func (p *SelectionProxy) readCompositorData(mime string) ([]byte, error) {
	pr, pw := io.Pipe()
	done := make(chan struct{})
	var data []byte
	var readErr error
	go func() {
		data, readErr = io.ReadAll(pr)
		close(done)
	}()

	result := p.mgr.RequestSelection(p.kind.slot(), mime, pw)
	switch result {
	case selection.Sent:
		_ = pw.Close()
	case selection.ServerSideSelection:
		if cs, ok := p.mgr.Source(p.kind.slot()).(*selection.CompositorSource); ok {
			if err := cs.Send(mime, pw); err != nil {
				_ = pw.CloseWithError(err)
				<-done
				return nil, err
			}
		}
		_ = pw.Close()
	default:
		_ = pw.Close()
		<-done
		return nil, ErrTransferFailed
	}

	<-done
	return data, readErr
}
