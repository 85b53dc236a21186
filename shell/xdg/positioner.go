package xdg

import "image"

// Anchor names an edge or corner of the anchor rect a popup is positioned
// relative to.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Gravity names the direction the popup grows away from its anchor point.
type Gravity int

const (
	GravityNone Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
	GravityTopLeft
	GravityTopRight
	GravityBottomLeft
	GravityBottomRight
)

// ConstraintAdjustment is a bitset of adjustments the compositor may apply
// to keep a popup on-screen.
type ConstraintAdjustment uint32

const (
	ConstraintSlideX ConstraintAdjustment = 1 << iota
	ConstraintSlideY
	ConstraintFlipX
	ConstraintFlipY
	ConstraintResizeX
	ConstraintResizeY
)

// Positioner is the client-supplied recipe for placing a popup.
type Positioner struct {
	Size                 image.Point
	AnchorRect           image.Rectangle
	AnchorEdge           Anchor
	Gravity              Gravity
	ConstraintAdjustment ConstraintAdjustment
	Offset               image.Point
	Reactive             bool
	ParentSize           image.Point
	ParentConfigureSerial uint32
	HasParentConfigure    bool
}

// anchorPoint returns the point on AnchorRect that Gravity grows away from.
func (p *Positioner) anchorPoint() image.Point {
	r := p.AnchorRect
	switch p.AnchorEdge {
	case AnchorTop:
		return image.Pt((r.Min.X+r.Max.X)/2, r.Min.Y)
	case AnchorBottom:
		return image.Pt((r.Min.X+r.Max.X)/2, r.Max.Y)
	case AnchorLeft:
		return image.Pt(r.Min.X, (r.Min.Y+r.Max.Y)/2)
	case AnchorRight:
		return image.Pt(r.Max.X, (r.Min.Y+r.Max.Y)/2)
	case AnchorTopLeft:
		return r.Min
	case AnchorTopRight:
		return image.Pt(r.Max.X, r.Min.Y)
	case AnchorBottomLeft:
		return image.Pt(r.Min.X, r.Max.Y)
	case AnchorBottomRight:
		return r.Max
	default:
		return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	}
}

// Place computes the popup's rectangle in parent-local coordinates. It does
// not apply ConstraintAdjustment against an output's usable area; that step
// belongs to the host compositor, which knows output geometry.
func (p *Positioner) Place() image.Rectangle {
	anchor := p.anchorPoint().Add(p.Offset)

	var origin image.Point
	switch p.Gravity {
	case GravityTop:
		origin = image.Pt(anchor.X-p.Size.X/2, anchor.Y-p.Size.Y)
	case GravityBottom:
		origin = image.Pt(anchor.X-p.Size.X/2, anchor.Y)
	case GravityLeft:
		origin = image.Pt(anchor.X-p.Size.X, anchor.Y-p.Size.Y/2)
	case GravityRight:
		origin = image.Pt(anchor.X, anchor.Y-p.Size.Y/2)
	case GravityTopLeft:
		origin = image.Pt(anchor.X-p.Size.X, anchor.Y-p.Size.Y)
	case GravityTopRight:
		origin = image.Pt(anchor.X, anchor.Y-p.Size.Y)
	case GravityBottomLeft:
		origin = image.Pt(anchor.X-p.Size.X, anchor.Y)
	case GravityBottomRight:
		origin = anchor
	default:
		origin = image.Pt(anchor.X-p.Size.X/2, anchor.Y-p.Size.Y/2)
	}

	return image.Rectangle{Min: origin, Max: origin.Add(p.Size)}
}
