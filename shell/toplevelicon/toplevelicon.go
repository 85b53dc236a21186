// Package toplevelicon implements xdg_toplevel_icon_manager_v1: an
// immutable-after-attach icon made of a name plus a set of
// resolution-scaled buffers.
package toplevelicon

import (
	"errors"

	"github.com/gowlcore/gowlcore/surface"
)

// Errors returned by the toplevel-icon state machine.
var (
	ErrIconAttached     = errors.New("toplevelicon: icon already attached to a toplevel")
	ErrNonSquareBuffer  = errors.New("toplevelicon: buffer width must equal height")
	ErrBufferNotSHM     = errors.New("toplevelicon: buffer backing storage must be shm")
)

// BufferSource is the minimal shape of a client buffer this package needs
// to validate; the host compositor's real buffer type satisfies it.
type BufferSource interface {
	Width() int
	Height() int
	IsSHM() bool
}

// IconBuffer pairs a buffer with the scale it was supplied for.
type IconBuffer struct {
	Buffer BufferSource
	Scale  int32
}

// Icon is a client-built xdg_toplevel_icon_v1 object: a display name plus
// an ordered list of (buffer, scale) alternatives the compositor may choose
// from to best match the icon's render resolution.
type Icon struct {
	Name     string
	Buffers  []IconBuffer
	attached bool
}

// SetName sets the icon's theme-lookup name. Calling it after the icon has
// been attached to a toplevel is a protocol error.
func (icon *Icon) SetName(name string) error {
	if icon.attached {
		return ErrIconAttached
	}
	icon.Name = name
	return nil
}

// AddBuffer appends a (buffer, scale) alternative, validating that the
// buffer is square and shm-backed. Calling it after the icon has been
// attached to a toplevel is a protocol error.
func (icon *Icon) AddBuffer(buf BufferSource, scale int32) error {
	if icon.attached {
		return ErrIconAttached
	}
	if buf.Width() != buf.Height() {
		return ErrNonSquareBuffer
	}
	if !buf.IsSHM() {
		return ErrBufferNotSHM
	}
	icon.Buffers = append(icon.Buffers, IconBuffer{Buffer: buf, Scale: scale})
	return nil
}

// Registry tracks the icon currently set on each toplevel.
type Registry struct {
	byToplevel map[surface.ID]*Icon
}

// NewRegistry creates an empty toplevel-icon registry.
func NewRegistry() *Registry {
	return &Registry{byToplevel: make(map[surface.ID]*Icon)}
}

// SetIcon attaches icon to toplevel, marking it immutable. The registry
// records it at once: Icon returns it from this call on, without waiting
// for a commit of the toplevel surface.
func (r *Registry) SetIcon(toplevel surface.ID, icon *Icon) {
	icon.attached = true
	r.byToplevel[toplevel] = icon
}

// UnsetIcon reverts toplevel to having no icon (set_icon(nil)).
func (r *Registry) UnsetIcon(toplevel surface.ID) {
	delete(r.byToplevel, toplevel)
}

// Icon returns the icon currently attached to toplevel, or nil.
func (r *Registry) Icon(toplevel surface.ID) *Icon {
	return r.byToplevel[toplevel]
}
