package wlrlayer

import (
	"image"

	"github.com/gowlcore/gowlcore/surface"
)

// RoleTypeMask filters layer_for_surface's ancestry walk by the role kind of
// each surface it passes through.
type RoleTypeMask uint32

const (
	MaskToplevel RoleTypeMask = 1 << iota
	MaskSubsurface
	MaskPopup
	MaskAll = MaskToplevel | MaskSubsurface | MaskPopup
)

func maskAllows(mask RoleTypeMask, role surface.RoleKind) bool {
	switch role {
	case surface.RoleToplevel:
		return mask&MaskToplevel != 0
	case surface.RoleSubsurface:
		return mask&MaskSubsurface != 0
	case surface.RolePopup:
		return mask&MaskPopup != 0
	default:
		return false
	}
}

type outputLayers struct {
	size   image.Point
	byEdge map[Layer][]surface.ID
}

// OutputLayerMap arranges exclusive zones per edge across every layer
// surface mapped to each output, and computes the remaining usable area.
type OutputLayerMap struct {
	tree    *surface.Tree
	layers  map[surface.ID]*LayerSurface
	outputs map[string]*outputLayers
}

// NewOutputLayerMap creates a layer map backed by tree for ancestry walks in
// LayerForSurface.
func NewOutputLayerMap(tree *surface.Tree) *OutputLayerMap {
	return &OutputLayerMap{
		tree:    tree,
		layers:  make(map[surface.ID]*LayerSurface),
		outputs: make(map[string]*outputLayers),
	}
}

// SetOutputSize records output's full size, used as the starting rectangle
// for UsableArea.
func (m *OutputLayerMap) SetOutputSize(output string, size image.Point) {
	m.outputEntry(output).size = size
}

func (m *OutputLayerMap) outputEntry(output string) *outputLayers {
	o, ok := m.outputs[output]
	if !ok {
		o = &outputLayers{byEdge: make(map[Layer][]surface.ID)}
		m.outputs[output] = o
	}
	return o
}

// MapLayer registers l as mapped to its Output/Layer, appended after any
// other surface already mapped on that layer.
func (m *OutputLayerMap) MapLayer(l *LayerSurface) {
	m.layers[l.Surface] = l
	o := m.outputEntry(l.Output)
	o.byEdge[l.Layer] = append(o.byEdge[l.Layer], l.Surface)
}

// UnmapLayer removes id from whatever output/layer it was mapped to.
func (m *OutputLayerMap) UnmapLayer(id surface.ID) {
	l, ok := m.layers[id]
	if !ok {
		return
	}
	delete(m.layers, id)
	o, ok := m.outputs[l.Output]
	if !ok {
		return
	}
	ids := o.byEdge[l.Layer]
	for i, sid := range ids {
		if sid == id {
			o.byEdge[l.Layer] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

// LayerForSurface walks id's ancestry upward looking for the nearest mapped
// layer surface, refusing to cross a role not permitted by mask. It returns
// nil if id is not reachable from a mapped layer surface within the mask.
func (m *OutputLayerMap) LayerForSurface(id surface.ID, mask RoleTypeMask) *LayerSurface {
	current := id
	for {
		if l, ok := m.layers[current]; ok {
			return l
		}
		s := m.tree.Get(current)
		if s == nil {
			return nil
		}
		if s.Role() != surface.RoleNone && !maskAllows(mask, s.Role()) {
			return nil
		}
		parent, ok := s.Parent()
		if !ok {
			return nil
		}
		current = parent
	}
}

// UsableArea returns output's full rectangle with every mapped layer
// surface's exclusive zone carved out, in stacking order
// (background-to-overlay, then mapping order within a layer).
func (m *OutputLayerMap) UsableArea(output string) image.Rectangle {
	o, ok := m.outputs[output]
	if !ok {
		return image.Rectangle{}
	}
	usable := image.Rectangle{Max: o.size}

	for _, layer := range []Layer{LayerBackground, LayerBottom, LayerTop, LayerOverlay} {
		for _, id := range o.byEdge[layer] {
			l := m.layers[id]
			if l == nil || l.ExclusiveZone <= 0 {
				continue
			}
			usable = carve(usable, l.Anchor, l.ExclusiveZone)
		}
	}
	return usable
}

// carve removes a band of the given thickness from the edge a surface is
// singly (or edge-spanningly) anchored to.
func carve(r image.Rectangle, anchor Anchor, zone int32) image.Rectangle {
	switch {
	case anchor == AnchorTop || anchor == AnchorTop|AnchorLeft|AnchorRight:
		r.Min.Y += int(zone)
	case anchor == AnchorBottom || anchor == AnchorBottom|AnchorLeft|AnchorRight:
		r.Max.Y -= int(zone)
	case anchor == AnchorLeft || anchor == AnchorLeft|AnchorTop|AnchorBottom:
		r.Min.X += int(zone)
	case anchor == AnchorRight || anchor == AnchorRight|AnchorTop|AnchorBottom:
		r.Max.X -= int(zone)
	}
	return r
}
