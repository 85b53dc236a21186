package wlrlayer

import (
	"image"
	"testing"

	"github.com/gowlcore/gowlcore/surface"
)

func TestLayerSurfaceInitialConfigure(t *testing.T) {
	tree := surface.NewTree()
	state := NewShellState(tree)
	id := tree.Create(nil)

	l := state.NewLayerSurface(id, "eDP-1", LayerTop)
	l.WithPendingState(func(p *ProposedState) { p.Size = image.Pt(800, 32) })

	serial, sent := l.SendConfigure(state.AllocSerial)
	if !sent {
		t.Fatal("expected initial configure")
	}
	if err := l.AckConfigure(serial); err != nil {
		t.Fatalf("AckConfigure: %v", err)
	}
	if l.Unconfigured() {
		t.Fatal("should be configured after ack")
	}

	if _, sent := l.SendConfigure(state.AllocSerial); sent {
		t.Fatal("expected no-op configure when pending state unchanged")
	}
}

func TestLayerSurfaceExclusiveZoneValidation(t *testing.T) {
	l := &LayerSurface{Anchor: AnchorTop | AnchorBottom, ExclusiveZone: 10}
	if err := l.validateExclusiveZone(); err == nil {
		t.Fatal("expected error: exclusive zone with two opposing anchors is ambiguous")
	}

	l = &LayerSurface{Anchor: AnchorTop, ExclusiveZone: 10}
	if err := l.validateExclusiveZone(); err != nil {
		t.Fatalf("single-edge anchor should be valid: %v", err)
	}

	l = &LayerSurface{Anchor: AnchorTop | AnchorLeft | AnchorRight, ExclusiveZone: 10}
	if err := l.validateExclusiveZone(); err != nil {
		t.Fatalf("edge-spanning anchor should be valid: %v", err)
	}
}

func TestUsableAreaCarvesExclusiveZones(t *testing.T) {
	tree := surface.NewTree()
	state := NewShellState(tree)
	state.Outputs().SetOutputSize("eDP-1", image.Pt(1920, 1080))

	topBar := tree.Create(nil)
	topBarL := state.NewLayerSurface(topBar, "eDP-1", LayerTop)
	topBarL.Anchor = AnchorTop | AnchorLeft | AnchorRight
	topBarL.ExclusiveZone = 32
	if err := state.MapLayer(topBarL); err != nil {
		t.Fatalf("MapLayer(top bar): %v", err)
	}

	dock := tree.Create(nil)
	dockL := state.NewLayerSurface(dock, "eDP-1", LayerBottom)
	dockL.Anchor = AnchorBottom
	dockL.ExclusiveZone = 64
	if err := state.MapLayer(dockL); err != nil {
		t.Fatalf("MapLayer(dock): %v", err)
	}

	// A non-exclusive overlay surface should not affect usable area.
	overlay := tree.Create(nil)
	overlayL := state.NewLayerSurface(overlay, "eDP-1", LayerOverlay)
	overlayL.Anchor = AnchorTop
	overlayL.ExclusiveZone = 0
	if err := state.MapLayer(overlayL); err != nil {
		t.Fatalf("MapLayer(overlay): %v", err)
	}

	want := image.Rect(0, 32, 1920, 1080-64)
	if got := state.Outputs().UsableArea("eDP-1"); got != want {
		t.Fatalf("UsableArea = %v, want %v", got, want)
	}
}

func TestLayerForSurfaceWalksAncestry(t *testing.T) {
	tree := surface.NewTree()
	state := NewShellState(tree)

	layerID := tree.Create(nil)
	l := state.NewLayerSurface(layerID, "eDP-1", LayerTop)
	if err := state.MapLayer(l); err != nil {
		t.Fatalf("MapLayer: %v", err)
	}
	if err := tree.GiveRole(layerID, surface.RoleLayer, l); err != nil {
		t.Fatalf("GiveRole(layer): %v", err)
	}

	sub := tree.Create(nil)
	if err := tree.AddSubsurface(layerID, sub); err != nil {
		t.Fatalf("AddSubsurface: %v", err)
	}

	got := state.LayerForSurface(sub, MaskSubsurface)
	if got != l {
		t.Fatalf("LayerForSurface(sub, MaskSubsurface) = %v, want %v", got, l)
	}

	// Without permission to cross a subsurface, resolution must fail.
	if got := state.LayerForSurface(sub, MaskToplevel); got != nil {
		t.Fatalf("LayerForSurface(sub, MaskToplevel) = %v, want nil", got)
	}

	if got := state.LayerForSurface(layerID, MaskAll); got != l {
		t.Fatalf("LayerForSurface(layerID, MaskAll) = %v, want %v", got, l)
	}
}
