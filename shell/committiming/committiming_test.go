package committiming

import (
	"testing"

	"github.com/gowlcore/gowlcore/surface"
)

func TestSetTimestampTwiceIsProtocolError(t *testing.T) {
	timer := &Timer{Surface: surface.ID(1)}
	if err := timer.SetTimestamp(Timestamp{Sec: 1}); err != nil {
		t.Fatalf("first SetTimestamp: %v", err)
	}
	if err := timer.SetTimestamp(Timestamp{Sec: 2}); err == nil {
		t.Fatal("expected error setting a second timestamp before commit")
	}
}

func TestNewTimerRejectsSecondForSameSurface(t *testing.T) {
	mgr := NewManager()
	id := surface.ID(1)
	if _, err := mgr.NewTimer(id); err != nil {
		t.Fatalf("first NewTimer: %v", err)
	}
	if _, err := mgr.NewTimer(id); err == nil {
		t.Fatal("expected error creating a second timer for the same surface")
	}
}

func TestTakeBlockerSignalsAtDeadline(t *testing.T) {
	mgr := NewManager()
	id := surface.ID(1)
	timer, err := mgr.NewTimer(id)
	if err != nil {
		t.Fatalf("NewTimer: %v", err)
	}

	if err := timer.SetTimestamp(Timestamp{Sec: 100, Nsec: 0}); err != nil {
		t.Fatalf("SetTimestamp: %v", err)
	}

	blocker, attached := timer.TakeBlocker(mgr)
	if !attached {
		t.Fatal("expected a blocker since a timestamp was set")
	}
	if blocker.State() != surface.BlockerPending {
		t.Fatal("expected blocker to start pending")
	}

	// A second commit with no new timestamp produces no blocker.
	if _, attached := timer.TakeBlocker(mgr); attached {
		t.Fatal("expected no blocker when no timestamp is pending")
	}

	signaledEarly := false
	blocker.OnSignal(func() { signaledEarly = true })

	if mgr.SignalUntil(Timestamp{Sec: 50}) {
		t.Fatal("should not signal before the deadline")
	}
	if signaledEarly {
		t.Fatal("blocker fired before its deadline")
	}

	if !mgr.SignalUntil(Timestamp{Sec: 100, Nsec: 0}) {
		t.Fatal("expected the blocker to signal once its deadline is reached")
	}
	if blocker.State() != surface.BlockerSignaled {
		t.Fatal("expected blocker to be signaled")
	}
}

func TestDestroyTimerAllowsRecreation(t *testing.T) {
	mgr := NewManager()
	id := surface.ID(1)
	if _, err := mgr.NewTimer(id); err != nil {
		t.Fatalf("NewTimer: %v", err)
	}
	mgr.DestroyTimer(id)
	if _, err := mgr.NewTimer(id); err != nil {
		t.Fatalf("NewTimer after destroy: %v", err)
	}
}
