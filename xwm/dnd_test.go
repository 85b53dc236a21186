package xwm

import (
	"testing"

	"github.com/gowlcore/gowlcore/internal/xproto"
)

func TestQueuePositionDebouncesToLatest(t *testing.T) {
	d := NewDndState(xproto.ResourceID(1), nil)
	d.EnterTarget(xproto.ResourceID(2))

	_, send := d.QueuePosition(10, 10, xdndActionCopy, 100)
	if !send {
		t.Fatal("expected the first position to send immediately")
	}

	// Two more arrive while the first is still in flight: only the latest
	// should be cached, not queued as a backlog.
	_, send = d.QueuePosition(20, 20, xdndActionCopy, 101)
	if send {
		t.Fatal("expected the second position to be cached, not sent")
	}
	_, send = d.QueuePosition(30, 30, xdndActionMove, 102)
	if send {
		t.Fatal("expected the third position to supersede the cached second")
	}

	next, hasNext, ok := d.AckStatus(true, xdndActionCopy)
	if !ok {
		t.Fatal("expected AckStatus to succeed")
	}
	if !hasNext {
		t.Fatal("expected the cached (latest) position to be released")
	}
	if next.rootX != 30 || next.rootY != 30 || next.action != xdndActionMove {
		t.Fatalf("unexpected released position: %+v", next)
	}

	// Acking that final in-flight position with nothing cached behind it
	// should not report a next.
	_, hasNext, ok = d.AckStatus(true, xdndActionMove)
	if !ok || hasNext {
		t.Fatalf("hasNext = %v, ok = %v, want false/true", hasNext, ok)
	}
}

func TestAckStatusWithoutInFlightPositionFails(t *testing.T) {
	d := NewDndState(xproto.ResourceID(1), nil)
	_, hasNext, ok := d.AckStatus(true, xdndActionCopy)
	if ok || hasNext {
		t.Fatal("expected a stray AckStatus to report ok=false")
	}
}

func TestEnterTargetResetsPositionState(t *testing.T) {
	d := NewDndState(xproto.ResourceID(1), nil)
	d.EnterTarget(xproto.ResourceID(10))
	d.QueuePosition(1, 1, xdndActionCopy, 1)
	d.QueuePosition(2, 2, xdndActionCopy, 2)

	d.EnterTarget(xproto.ResourceID(11))
	_, send := d.QueuePosition(5, 5, xdndActionCopy, 5)
	if !send {
		t.Fatal("expected a fresh target to accept a position immediately")
	}
}

func TestChooseXdndActionFallsBackToCopy(t *testing.T) {
	// Ambiguous reply (accepts=1, action=None): fall back to Copy only if
	// the source offered it.
	if a := chooseXdndAction(true, xdndActionNone, true); a != xdndActionCopy {
		t.Fatalf("ambiguous accept with Copy-capable source should yield Copy, got %v", a)
	}
	if a := chooseXdndAction(false, xdndActionNone, true); a != xdndActionNone {
		t.Fatalf("ambiguous accept without Copy support should yield None, got %v", a)
	}
	// A concrete action in the status reply is honored directly.
	if a := chooseXdndAction(true, xdndActionMove, true); a != xdndActionMove {
		t.Fatalf("explicit accepted action should be honored, got %v", a)
	}
	// accepts=0 always yields None regardless of what action accompanies it.
	if a := chooseXdndAction(true, xdndActionMove, false); a != xdndActionNone {
		t.Fatalf("rejected status should yield None, got %v", a)
	}
}
