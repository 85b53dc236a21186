// Package surface implements the compositor surface tree: per-surface
// pending/cached/current state, subsurface topology, and the atomic commit
// pipeline every Wayland shell protocol is layered on top of.
package surface

import (
	"errors"
	"fmt"
	"image"
)

// ID identifies a live surface. It never repeats while the surface is
// alive; ids are reused only after the slot holding them has been freed.
type ID uint32

// Errors returned by the surface tree.
var (
	ErrRoleConflict   = errors.New("surface: role already assigned")
	ErrNoRole         = errors.New("surface: no matching role assigned")
	ErrUnknownSurface = errors.New("surface: unknown surface id")
	ErrNotSubsurface  = errors.New("surface: surface is not a subsurface")
)

// RoleError is returned by operations that fail because of the role
// exclusivity invariant. It wraps ErrRoleConflict so callers can still use
// errors.Is(err, ErrRoleConflict).
type RoleError struct {
	Surface  ID
	Existing RoleKind
	Wanted   RoleKind
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("surface: surface %d already has role %s, cannot assign %s", e.Surface, e.Existing, e.Wanted)
}

func (e *RoleError) Unwrap() error { return ErrRoleConflict }

// RoleKind enumerates the mutually exclusive roles a surface can hold.
type RoleKind int

const (
	RoleNone RoleKind = iota
	RoleToplevel
	RolePopup
	RoleSubsurface
	RoleLayer
	RoleCursor
	RoleDnDIcon
	RoleXWayland
)

func (r RoleKind) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleToplevel:
		return "toplevel"
	case RolePopup:
		return "popup"
	case RoleSubsurface:
		return "subsurface"
	case RoleLayer:
		return "layer"
	case RoleCursor:
		return "cursor"
	case RoleDnDIcon:
		return "dnd-icon"
	case RoleXWayland:
		return "xwayland"
	default:
		return "unknown"
	}
}

// Surface is the addressable unit of client-side content. It never outlives
// its arena slot; callers hold an ID, not a *Surface, across event-loop
// turns.
type Surface struct {
	id     ID
	client any
	tree   *Tree

	role     RoleKind
	roleData any

	states StateBagMap

	parent   ID
	hasParent bool
	children []ID

	commitSeq uint64

	blockers []Blocker

	preCommitHooks  []func(ID)
	postCommitHooks []func(ID)

	deferredCommit bool
	destroyed      bool
}

// ID returns the surface's stable identity.
func (s *Surface) ID() ID { return s.id }

// Client returns the opaque per-client handle supplied to Tree.Create.
func (s *Surface) Client() any { return s.client }

// Role returns the surface's current role, or RoleNone.
func (s *Surface) Role() RoleKind { return s.role }

// RoleData returns the role-specific payload installed by GiveRole, or nil.
func (s *Surface) RoleData() any { return s.roleData }

// Parent returns the parent surface id and whether this surface has one.
func (s *Surface) Parent() (ID, bool) { return s.parent, s.hasParent }

// Children returns the ids of this surface's subsurfaces, in stacking order.
func (s *Surface) Children() []ID {
	out := make([]ID, len(s.children))
	copy(out, s.children)
	return out
}

// CommitSequence returns the sequence number assigned to the most recent
// Commit call on this surface, used to enforce FIFO promotion ordering
// (Testable Property 2).
func (s *Surface) CommitSequence() uint64 { return s.commitSeq }

// DamageRegion tracks buffer and surface-local damage rectangles attached to
// a commit. It mirrors the wl_surface.damage/damage_buffer duality.
type DamageRegion struct {
	SurfaceLocal []image.Rectangle
	Buffer       []image.Rectangle
}

// Region models an additive/subtractive wl_region.
type Region struct {
	rects []regionOp
}

type regionOp struct {
	rect    image.Rectangle
	subtract bool
}

// Add unions rect into the region.
func (r *Region) Add(rect image.Rectangle) {
	r.rects = append(r.rects, regionOp{rect: rect})
}

// Subtract removes rect from the region.
func (r *Region) Subtract(rect image.Rectangle) {
	r.rects = append(r.rects, regionOp{rect: rect, subtract: true})
}

// Contains reports whether pt lies in the region, replaying add/subtract ops
// in order, matching the wl_region semantics.
func (r *Region) Contains(pt image.Point) bool {
	in := false
	for _, op := range r.rects {
		if pt.In(op.rect) {
			in = !op.subtract
		}
	}
	return in
}

// CoreAttributes is the always-present state bag for buffer assignment,
// damage, regions, transform and scale (DATA MODEL §3's "core surface
// attributes").
type CoreAttributes struct {
	Buffer          any
	BufferOffset    image.Point
	Damage          DamageRegion
	OpaqueRegion    *Region
	InputRegion     *Region
	BufferTransform int
	BufferScale     int
}

// CoreState is the StateBag implementation backing CoreAttributes.
type CoreState struct {
	Pending CoreAttributes
	Cached  CoreAttributes
	Current CoreAttributes
}

// MergePendingIntoCached implements StateBag.
func (c *CoreState) MergePendingIntoCached() {
	c.Cached = c.Pending
	c.Pending = CoreAttributes{BufferScale: c.Cached.BufferScale}
}

// PromoteCachedIntoCurrent implements StateBag.
func (c *CoreState) PromoteCachedIntoCurrent() {
	c.Current = c.Cached
}

// Mapped reports whether the surface currently has an attached buffer.
func (c *CoreState) Mapped() bool { return c.Current.Buffer != nil }
