// Package presentation implements wp_presentation feedback: a per-surface
// queue of callbacks resolved exactly once, either as presented or
// discarded, when the host compositor presents a frame.
package presentation

import (
	"errors"

	"github.com/gowlcore/gowlcore/surface"
)

// ErrAlreadyResolved is returned by Resolve methods called on a feedback
// that has already been presented or discarded.
var ErrAlreadyResolved = errors.New("presentation: feedback already resolved")

// Kind is a bitset mirroring wp_presentation_feedback's kind flags.
type Kind uint32

const (
	KindVsync Kind = 1 << iota
	KindHwClock
	KindHwCompletion
	KindZeroCopy
)

// Clock abstracts the clock id a feedback's timestamps are reported
// against. The library never reads a wall clock itself — timestamps are
// always host-supplied, keeping feedback resolution deterministic and
// testable.
type Clock int

// ClockMonotonic is the default clock id, matching CLOCK_MONOTONIC.
const ClockMonotonic Clock = 0

// Presented is the result of a successfully presented frame.
type Presented struct {
	TvSecHi, TvSecLo uint32
	TvNsec           uint32
	RefreshNanos     uint32
	SeqHi, SeqLo     uint32
	Flags            Kind
}

// Feedback is one queued (surface, clk_id, callback) triple attached at
// commit.
type Feedback struct {
	Surface  surface.ID
	ClockID  Clock
	resolved bool

	onPresented func(Presented)
	onDiscarded func()
}

// NewFeedback creates a feedback queued against surface id, to be resolved
// by exactly one of onPresented or onDiscarded.
func NewFeedback(id surface.ID, clk Clock, onPresented func(Presented), onDiscarded func()) *Feedback {
	return &Feedback{Surface: id, ClockID: clk, onPresented: onPresented, onDiscarded: onDiscarded}
}

// Resolved reports whether this feedback has already fired.
func (f *Feedback) Resolved() bool { return f.resolved }

// Present resolves the feedback as presented; Testable Property 5 requires
// every queued feedback resolve exactly once, so a second call on an
// already-resolved feedback is an error rather than a silent no-op.
func (f *Feedback) Present(p Presented) error {
	if f.resolved {
		return ErrAlreadyResolved
	}
	f.resolved = true
	if f.onPresented != nil {
		f.onPresented(p)
	}
	return nil
}

// Discard resolves the feedback as discarded, e.g. because its commit was
// superseded before ever being presented, or its surface was destroyed.
func (f *Feedback) Discard() error {
	if f.resolved {
		return ErrAlreadyResolved
	}
	f.resolved = true
	if f.onDiscarded != nil {
		f.onDiscarded()
	}
	return nil
}

// Queue is the per-surface FIFO of feedbacks attached at successive
// commits, resolved in commit order as frames are presented.
type Queue struct {
	entries []*Feedback
}

// Attach appends f to the queue, called when its commit is processed.
func (q *Queue) Attach(f *Feedback) { q.entries = append(q.entries, f) }

// PresentFrame resolves every still-pending feedback older than the one
// belonging to the just-presented commit as discarded (superseded), and the
// feedback for the presented commit itself as presented. Feedbacks attached
// after the presented one remain queued for a future frame.
//
// presentedIndex is the position within the queue (0-based, in attach
// order) of the feedback that corresponds to the frame actually presented;
// pass -1 if no commit on this surface was part of the presented frame, in
// which case every currently queued feedback is discarded.
func (q *Queue) PresentFrame(presentedIndex int, p Presented) {
	for i, f := range q.entries {
		if f.Resolved() {
			continue
		}
		switch {
		case presentedIndex >= 0 && i < presentedIndex:
			_ = f.Discard()
		case presentedIndex >= 0 && i == presentedIndex:
			_ = f.Present(p)
		case presentedIndex >= 0 && i > presentedIndex:
			// Not yet due; leave queued.
		default:
			_ = f.Discard()
		}
	}
	q.compact()
}

// DiscardAll resolves every still-pending feedback as discarded, called
// when the surface is destroyed.
func (q *Queue) DiscardAll() {
	for _, f := range q.entries {
		if !f.Resolved() {
			_ = f.Discard()
		}
	}
	q.compact()
}

// compact drops every resolved entry, keeping the rest in attach order.
func (q *Queue) compact() {
	kept := q.entries[:0]
	for _, f := range q.entries {
		if !f.Resolved() {
			kept = append(kept, f)
		}
	}
	q.entries = kept
}

// Len reports how many feedbacks remain queued (unresolved).
func (q *Queue) Len() int { return len(q.entries) }

// VariableRefresh reports the minimum variable-refresh period to advertise
// for an output, per protocol version: versions before 2 never report
// variable refresh.
func VariableRefresh(protocolVersion uint32, minRefreshNanos uint32) uint32 {
	if protocolVersion < 2 {
		return 0
	}
	return minRefreshNanos
}
