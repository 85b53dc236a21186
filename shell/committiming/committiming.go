// Package committiming implements wp_commit_timing_v1: a per-surface timer
// object that attaches a deadline-gated blocker to the next commit.
package committiming

import (
	"errors"
	"sync"

	"github.com/gowlcore/gowlcore/surface"
)

// Errors returned by the commit-timing state machine.
var (
	ErrTimerAlreadyExists = errors.New("committiming: surface already has a commit timer")
	ErrDuplicateTimestamp = errors.New("committiming: timestamp already set for the pending commit")
)

// Timestamp is a {tv_sec, tv_nsec} deadline, host-supplied — this package
// never reads a wall clock itself.
type Timestamp struct {
	Sec  uint64
	Nsec uint32
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	if t.Sec != other.Sec {
		return t.Sec < other.Sec
	}
	return t.Nsec < other.Nsec
}

// TimingBlocker is a surface.Blocker that signals once the compositor's
// advancing deadline reaches or passes Deadline.
type TimingBlocker struct {
	*surface.ManualBlocker
	Deadline Timestamp
}

func newTimingBlocker(deadline Timestamp) *TimingBlocker {
	return &TimingBlocker{ManualBlocker: surface.NewManualBlocker(), Deadline: deadline}
}

// Timer is the wp_commit_timing_v1 object attached to one surface.
type Timer struct {
	Surface surface.ID

	mu        sync.Mutex
	pendingTS *Timestamp
}

// SetTimestamp records the timestamp to attach to the surface's next
// commit. Calling it twice before that commit happens is a protocol error.
func (t *Timer) SetTimestamp(ts Timestamp) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pendingTS != nil {
		return ErrDuplicateTimestamp
	}
	t.pendingTS = &ts
	return nil
}

// TakeBlocker consumes the pending timestamp (if any), returning a
// TimingBlocker to attach to the surface's in-flight commit via
// surface.Tree.AddBlocker, and registers it with mgr so a future
// SignalUntil can resolve it. Returns (nil, false) if no timestamp was set
// for this commit.
func (t *Timer) TakeBlocker(mgr *Manager) (*TimingBlocker, bool) {
	t.mu.Lock()
	ts := t.pendingTS
	t.pendingTS = nil
	t.mu.Unlock()
	if ts == nil {
		return nil, false
	}
	b := newTimingBlocker(*ts)
	mgr.track(b)
	return b, true
}

// Manager owns every surface's commit timer and the set of in-flight
// timing blockers awaiting a deadline.
type Manager struct {
	mu       sync.Mutex
	timers   map[surface.ID]*Timer
	inflight []*TimingBlocker
}

// NewManager creates an empty commit-timing manager.
func NewManager() *Manager {
	return &Manager{timers: make(map[surface.ID]*Timer)}
}

// NewTimer creates and registers a Timer for id. A surface may hold only
// one live Timer at a time.
func (m *Manager) NewTimer(id surface.ID) (*Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.timers[id]; exists {
		return nil, ErrTimerAlreadyExists
	}
	t := &Timer{Surface: id}
	m.timers[id] = t
	return t, nil
}

// Timer returns the Timer registered for id, or nil.
func (m *Manager) Timer(id surface.ID) *Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers[id]
}

// DestroyTimer unregisters id's Timer, allowing a new one to be created.
func (m *Manager) DestroyTimer(id surface.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, id)
}

func (m *Manager) track(b *TimingBlocker) {
	m.mu.Lock()
	m.inflight = append(m.inflight, b)
	m.mu.Unlock()
}

// SignalUntil signals every in-flight blocker whose deadline is at or
// before deadline, and reports whether any were signaled.
func (m *Manager) SignalUntil(deadline Timestamp) bool {
	m.mu.Lock()
	var due, kept []*TimingBlocker
	for _, b := range m.inflight {
		if b.Deadline.Before(deadline) || b.Deadline == deadline {
			due = append(due, b)
		} else {
			kept = append(kept, b)
		}
	}
	m.inflight = kept
	m.mu.Unlock()

	for _, b := range due {
		b.Signal()
	}
	return len(due) > 0
}
