package presentation

import (
	"testing"

	"github.com/gowlcore/gowlcore/surface"
)

func TestFeedbackResolvesExactlyOnce(t *testing.T) {
	var presented, discarded int
	f := NewFeedback(surface.ID(1), ClockMonotonic,
		func(Presented) { presented++ },
		func() { discarded++ })

	if err := f.Present(Presented{}); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if presented != 1 {
		t.Fatalf("presented = %d, want 1", presented)
	}

	if err := f.Discard(); err == nil {
		t.Fatal("expected error resolving an already-presented feedback again")
	}
	if discarded != 0 {
		t.Fatalf("discarded = %d, want 0 (already resolved)", discarded)
	}
}

func TestQueuePresentFrameDiscardsSuperseded(t *testing.T) {
	q := &Queue{}
	var outcomes []string
	mk := func(tag string) *Feedback {
		return NewFeedback(surface.ID(1), ClockMonotonic,
			func(Presented) { outcomes = append(outcomes, tag+":presented") },
			func() { outcomes = append(outcomes, tag+":discarded") })
	}

	q.Attach(mk("a"))
	q.Attach(mk("b"))
	q.Attach(mk("c"))

	// Frame corresponds to commit index 1 ("b"); "a" was superseded.
	q.PresentFrame(1, Presented{})

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 resolutions this frame, got %v", outcomes)
	}
	if outcomes[0] != "a:discarded" || outcomes[1] != "b:presented" {
		t.Fatalf("unexpected resolution order: %v", outcomes)
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 feedback (\"c\") still queued, got %d", q.Len())
	}
}

func TestQueueDiscardAllOnDestroy(t *testing.T) {
	q := &Queue{}
	f1 := NewFeedback(surface.ID(1), ClockMonotonic, nil, nil)
	f2 := NewFeedback(surface.ID(1), ClockMonotonic, nil, nil)
	q.Attach(f1)
	q.Attach(f2)

	q.DiscardAll()
	if !f1.Resolved() || !f2.Resolved() {
		t.Fatal("expected both feedbacks resolved after DiscardAll")
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue after DiscardAll, got %d", q.Len())
	}
}

func TestVariableRefreshVersionGating(t *testing.T) {
	if got := VariableRefresh(1, 6944444); got != 0 {
		t.Fatalf("version 1 should report 0, got %d", got)
	}
	if got := VariableRefresh(2, 6944444); got != 6944444 {
		t.Fatalf("version 2 should report the minimum refresh period, got %d", got)
	}
}
