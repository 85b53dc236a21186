package selection

import (
	"bytes"
	"io"
	"testing"

	"github.com/gowlcore/gowlcore/internal/wire"
	"github.com/gowlcore/gowlcore/surface"
)

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

func TestRequestSelectionClientSourceInvokesSendDirectly(t *testing.T) {
	mgr := NewManager()
	var sentMime string
	src := NewClientSource([]string{"text/plain"}, func(mime string, fd io.WriteCloser) error {
		sentMime = mime
		_, err := fd.Write([]byte("hello"))
		return err
	})
	mgr.SetSource(SlotClipboard, src)

	buf := nopWriteCloser{&bytes.Buffer{}}
	result := mgr.RequestSelection(SlotClipboard, "text/plain", buf)
	if result != Sent {
		t.Fatalf("result = %v, want Sent", result)
	}
	if sentMime != "text/plain" {
		t.Fatalf("sentMime = %q", sentMime)
	}
	if buf.String() != "hello" {
		t.Fatalf("buf = %q", buf.String())
	}
}

func TestRequestSelectionCompositorSourceIsServerSide(t *testing.T) {
	mgr := NewManager()
	mgr.SetSource(SlotClipboard, NewCompositorSource([]string{"text/plain"}, nil))

	result := mgr.RequestSelection(SlotClipboard, "text/plain", nopWriteCloser{&bytes.Buffer{}})
	if result != ServerSideSelection {
		t.Fatalf("result = %v, want ServerSideSelection", result)
	}
}

func TestRequestSelectionInvalidMimetype(t *testing.T) {
	mgr := NewManager()
	mgr.SetSource(SlotClipboard, NewClientSource([]string{"text/plain"}, nil))
	result := mgr.RequestSelection(SlotClipboard, "image/png", nopWriteCloser{&bytes.Buffer{}})
	if result != InvalidMimetype {
		t.Fatalf("result = %v, want InvalidMimetype", result)
	}
}

func TestRequestSelectionNoSelection(t *testing.T) {
	mgr := NewManager()
	result := mgr.RequestSelection(SlotPrimary, "text/plain", nopWriteCloser{&bytes.Buffer{}})
	if result != NoSelection {
		t.Fatalf("result = %v, want NoSelection", result)
	}
}

func TestSetSourceCancelsPreviousSourceTransfers(t *testing.T) {
	mgr := NewManager()
	old := NewClientSource([]string{"text/plain"}, nil)
	cancelled := false
	old.Cancelled = func() { cancelled = true }
	mgr.SetSource(SlotClipboard, old)

	fd := nopWriteCloser{&bytes.Buffer{}}
	mgr.Transfers().Begin(old, fd, func() { _ = fd.Close() })

	mgr.SetSource(SlotClipboard, NewClientSource([]string{"text/plain"}, nil))

	if !cancelled {
		t.Fatal("expected old source's Cancelled hook to run on replacement")
	}
	if mgr.Transfers().Len() != 0 {
		t.Fatal("expected in-flight transfer for the old source to be cancelled")
	}
}

func TestOfferLifecycle(t *testing.T) {
	mgr := NewManager()
	mgr.SetSource(SlotClipboard, NewClientSource([]string{"text/plain", "text/html"}, nil))

	if mgr.CurrentOffer(SlotClipboard) != nil {
		t.Fatal("expected no offer before CreateOffer")
	}
	offer := mgr.CreateOffer(SlotClipboard)
	if offer == nil || len(offer.Mimes) != 2 {
		t.Fatalf("unexpected offer: %+v", offer)
	}

	mgr.InvalidateOffer(SlotClipboard)
	if mgr.CurrentOffer(SlotClipboard) != nil {
		t.Fatal("expected offer cleared after InvalidateOffer")
	}
}

type fakeDevice struct {
	entered, left, dropped, cancelled bool
}

func (d *fakeDevice) Enter(serial uint32, surface surface.ID, x, y float64, offer *Offer) {
	d.entered = true
}
func (d *fakeDevice) Leave()                         { d.left = true }
func (d *fakeDevice) Motion(time uint32, x, y float64) {}
func (d *fakeDevice) Drop()                          { d.dropped = true }
func (d *fakeDevice) Cancelled()                     { d.cancelled = true }

func TestDragDropDecisionAccepted(t *testing.T) {
	mgr := NewManager()
	src := NewClientSource([]string{"text/uri-list"}, nil)
	drag := StartDrag(mgr, src, surface.ID(1), surface.ID(0), 1, nil)

	dev := &fakeDevice{}
	drag.EnterSurface(2, surface.ID(2), 10, 10, dev)
	if !dev.entered {
		t.Fatal("expected Enter to be called")
	}

	if err := drag.SetSourceActions(wire.DndActionCopy|wire.DndActionMove, wire.DndActionMove); err != nil {
		t.Fatalf("SetSourceActions: %v", err)
	}
	drag.Accept(true, wire.DndActionCopy|wire.DndActionMove)

	if drag.ChosenAction() != wire.DndActionMove {
		t.Fatalf("ChosenAction = %v, want Move", drag.ChosenAction())
	}

	if dropped := drag.Release(); !dropped {
		t.Fatal("expected drop to proceed when accepted with a chosen action")
	}
	if !dev.dropped {
		t.Fatal("expected Drop() to be called on the target device")
	}
	if !drag.Ended() {
		t.Fatal("expected drag to be marked ended after Release")
	}
}

func TestDragDropDecisionRejectedCancelsSource(t *testing.T) {
	mgr := NewManager()
	cancelled := false
	src := NewClientSource([]string{"text/uri-list"}, nil)
	src.Cancelled = func() { cancelled = true }
	drag := StartDrag(mgr, src, surface.ID(1), surface.ID(0), 1, nil)

	dev := &fakeDevice{}
	drag.EnterSurface(2, surface.ID(2), 10, 10, dev)
	// Never accepted.

	if dropped := drag.Release(); dropped {
		t.Fatal("expected no drop without acceptance")
	}
	if !dev.left {
		t.Fatal("expected Leave() sent to the target")
	}
	if !cancelled {
		t.Fatal("expected source Cancelled hook to run")
	}
}

func TestChooseActionRejectsUnionResult(t *testing.T) {
	mgr := NewManager()
	src := NewClientSource([]string{"text/plain"}, nil)
	drag := StartDrag(mgr, src, surface.ID(1), surface.ID(0), 1,
		func(common, preferred wire.DndAction) wire.DndAction {
			return wire.DndActionCopy | wire.DndActionMove // invalid: not a single bit
		})

	err := drag.SetSourceActions(wire.DndActionCopy|wire.DndActionMove, wire.DndActionCopy)
	if err == nil {
		t.Fatal("expected ErrNotSingleAction from a union-valued choose function")
	}
}
