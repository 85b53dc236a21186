package toplevelicon

import (
	"testing"

	"github.com/gowlcore/gowlcore/surface"
)

type fakeBuffer struct {
	w, h int
	shm  bool
}

func (f fakeBuffer) Width() int  { return f.w }
func (f fakeBuffer) Height() int { return f.h }
func (f fakeBuffer) IsSHM() bool { return f.shm }

func TestAddBufferRejectsNonSquare(t *testing.T) {
	icon := &Icon{}
	if err := icon.AddBuffer(fakeBuffer{w: 32, h: 16, shm: true}, 1); err == nil {
		t.Fatal("expected error for non-square buffer")
	}
}

func TestAddBufferRejectsNonSHM(t *testing.T) {
	icon := &Icon{}
	if err := icon.AddBuffer(fakeBuffer{w: 32, h: 32, shm: false}, 1); err == nil {
		t.Fatal("expected error for non-shm buffer")
	}
}

func TestIconImmutableAfterAttach(t *testing.T) {
	reg := NewRegistry()
	icon := &Icon{}
	if err := icon.SetName("app-icon"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := icon.AddBuffer(fakeBuffer{w: 32, h: 32, shm: true}, 1); err != nil {
		t.Fatalf("AddBuffer: %v", err)
	}

	toplevel := surface.ID(1)
	reg.SetIcon(toplevel, icon)

	if err := icon.SetName("renamed"); err == nil {
		t.Fatal("expected error mutating name after attach")
	}
	if err := icon.AddBuffer(fakeBuffer{w: 16, h: 16, shm: true}, 2); err == nil {
		t.Fatal("expected error adding a buffer after attach")
	}

	// Round-trip per Testable Property 8: attach then look up returns the
	// same icon, and it was not mutated by the rejected calls above.
	got := reg.Icon(toplevel)
	if got != icon {
		t.Fatalf("Icon(toplevel) = %v, want %v", got, icon)
	}
	if got.Name != "app-icon" || len(got.Buffers) != 1 {
		t.Fatalf("icon was mutated after attach: %+v", got)
	}
}

func TestUnsetIcon(t *testing.T) {
	reg := NewRegistry()
	toplevel := surface.ID(1)
	reg.SetIcon(toplevel, &Icon{})
	reg.UnsetIcon(toplevel)
	if reg.Icon(toplevel) != nil {
		t.Fatal("expected nil icon after UnsetIcon")
	}
}
