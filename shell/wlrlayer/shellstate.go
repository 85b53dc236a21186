package wlrlayer

import (
	"sync"

	"github.com/gowlcore/gowlcore/internal/wire"
	"github.com/gowlcore/gowlcore/surface"
)

// ShellState aggregates every layer surface bound to a single
// zwlr_layer_shell_v1 and the OutputLayerMap they are arranged on.
type ShellState struct {
	mu sync.Mutex

	serials wire.SerialAllocator
	layers  map[surface.ID]*LayerSurface
	outputs *OutputLayerMap
}

// NewShellState creates an empty layer-shell state backed by tree for
// ancestry resolution.
func NewShellState(tree *surface.Tree) *ShellState {
	return &ShellState{
		layers:  make(map[surface.ID]*LayerSurface),
		outputs: NewOutputLayerMap(tree),
	}
}

// Outputs returns the underlying OutputLayerMap, e.g. to call SetOutputSize
// during output configuration.
func (s *ShellState) Outputs() *OutputLayerMap { return s.outputs }

// AllocSerial hands out the next configure serial.
func (s *ShellState) AllocSerial() uint32 { return s.serials.Next() }

// NewLayerSurface registers a new LayerSurface for id. It neither validates
// nor maps it; MapLayer does both.
func (s *ShellState) NewLayerSurface(id surface.ID, output string, layer Layer) *LayerSurface {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &LayerSurface{Surface: id, Output: output, Layer: layer}
	s.layers[id] = l
	return l
}

// MapLayer enters l into the per-output exclusive-zone arrangement. It first
// validates l's anchor/exclusive-zone combination and, if that fails,
// returns ErrInvalidAnchor without mapping l.
func (s *ShellState) MapLayer(l *LayerSurface) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := l.validateExclusiveZone(); err != nil {
		return err
	}
	s.outputs.MapLayer(l)
	return nil
}

// UnmapLayer removes id from the output arrangement, e.g. when its buffer
// becomes null or the layer_surface resource is destroyed.
func (s *ShellState) UnmapLayer(id surface.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs.UnmapLayer(id)
}

// RemoveLayerSurface fully unregisters id, called on layer_surface
// destruction.
func (s *ShellState) RemoveLayerSurface(id surface.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs.UnmapLayer(id)
	delete(s.layers, id)
}

// LayerSurface returns the LayerSurface registered for id, or nil.
func (s *ShellState) LayerSurface(id surface.ID) *LayerSurface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layers[id]
}

// LayerForSurface resolves the mapped layer surface owning id, per
// spec's layer_for_surface(surface, type_mask).
func (s *ShellState) LayerForSurface(id surface.ID, mask RoleTypeMask) *LayerSurface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs.LayerForSurface(id, mask)
}
