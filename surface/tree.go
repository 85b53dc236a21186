package surface

import "sync"

// commitRecord tracks one outstanding Commit call until every attached
// blocker has signaled and every earlier commit on the same surface has
// promoted.
type commitRecord struct {
	seq      uint64
	pending  int // remaining unsignaled blockers
	promoted bool
}

// Tree owns every surface in the compositor: creation, destruction, the
// commit pipeline, and tree traversal. It corresponds to spec.md §4.1's
// "surface tree & commit pipeline" component.
type Tree struct {
	mu sync.Mutex

	arena   *surfaceArena
	nextSeq uint64

	queues map[ID][]*commitRecord
}

// NewTree creates an empty surface tree.
func NewTree() *Tree {
	return &Tree{
		arena:  newSurfaceArena(),
		queues: make(map[ID][]*commitRecord),
	}
}

// Create allocates a new surface owned by client and returns its id.
func (t *Tree) Create(client any) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &Surface{
		client: client,
		states: newStateBagMap(),
	}
	id := t.arena.alloc(s)
	s.id = id
	s.states.Set(StateKindCore, &CoreState{})
	return id
}

// Destroy removes a surface from the tree. Its children are orphaned, not
// destroyed, and must be reparented or dropped by the caller (normally the
// shell package owning the now-parentless subsurfaces).
func (t *Tree) Destroy(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.arena.get(id)
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true

	for _, blockerRecord := range t.queues[id] {
		blockerRecord.promoted = true
	}
	delete(t.queues, id)

	if s.hasParent {
		if parent := t.arena.get(s.parent); parent != nil {
			parent.children = removeID(parent.children, id)
		}
	}
	for _, childID := range s.children {
		if child := t.arena.get(childID); child != nil {
			child.hasParent = false
		}
	}

	for _, bag := range s.states.bags {
		if fb, ok := bag.(interface{ Discard() }); ok {
			fb.Discard()
		}
	}

	t.arena.free(id)
}

func removeID(ids []ID, target ID) []ID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Get returns the surface for id, or nil if it does not exist.
func (t *Tree) Get(id ID) *Surface {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.arena.get(id)
}

// WithStates invokes f with the surface's state bag map. f must not call
// back into the Tree; Tree is not reentrant.
func (t *Tree) WithStates(id ID, f func(*StateBagMap)) error {
	t.mu.Lock()
	s := t.arena.get(id)
	if s == nil {
		t.mu.Unlock()
		return ErrUnknownSurface
	}
	t.mu.Unlock()
	f(&s.states)
	return nil
}

// GiveRole assigns kind to the surface, storing data as the role's payload.
// It fails with *RoleError, which wraps ErrRoleConflict, if the surface
// already holds any role, the same one included.
func (t *Tree) GiveRole(id ID, kind RoleKind, data any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.arena.get(id)
	if s == nil {
		return ErrUnknownSurface
	}
	if s.role != RoleNone {
		return &RoleError{Surface: id, Existing: s.role, Wanted: kind}
	}
	s.role = kind
	s.roleData = data
	return nil
}

// RemoveRole clears the surface's role. It is a no-op on an unroled surface.
func (t *Tree) RemoveRole(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.arena.get(id)
	if s == nil {
		return
	}
	s.role = RoleNone
	s.roleData = nil
}

// AddSubsurface gives child the Subsurface role and links it under parent.
// It fails if child already has a role.
func (t *Tree) AddSubsurface(parent, child ID) error {
	t.mu.Lock()
	pSurf := t.arena.get(parent)
	cSurf := t.arena.get(child)
	if pSurf == nil || cSurf == nil {
		t.mu.Unlock()
		return ErrUnknownSurface
	}
	if cSurf.role != RoleNone {
		t.mu.Unlock()
		return &RoleError{Surface: child, Existing: cSurf.role, Wanted: RoleSubsurface}
	}
	cSurf.role = RoleSubsurface
	cSurf.roleData = &SubsurfaceState{}
	cSurf.parent = parent
	cSurf.hasParent = true
	pSurf.children = append(pSurf.children, child)
	t.mu.Unlock()
	return nil
}

// SubsurfaceState is the RoleData payload a Subsurface-role surface carries:
// sync/desync mode and the pending commit-time offset relative to its
// parent.
type SubsurfaceState struct {
	Sync      bool
	Position  [2]int32
	HasOffset bool
}

// AddPreCommitHook registers fn to run immediately before a commit's pending
// state is merged into cached.
func (t *Tree) AddPreCommitHook(id ID, fn func(ID)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.arena.get(id)
	if s == nil {
		return ErrUnknownSurface
	}
	s.preCommitHooks = append(s.preCommitHooks, fn)
	return nil
}

// AddPostCommitHook registers fn to run after a commit's cached state has
// promoted to current.
func (t *Tree) AddPostCommitHook(id ID, fn func(ID)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.arena.get(id)
	if s == nil {
		return ErrUnknownSurface
	}
	s.postCommitHooks = append(s.postCommitHooks, fn)
	return nil
}

// AddBlocker attaches blocker to the surface's next commit. Multiple calls
// before the next Commit accumulate blockers onto that one commit.
func (t *Tree) AddBlocker(id ID, blocker Blocker) error {
	t.mu.Lock()
	s := t.arena.get(id)
	if s == nil {
		t.mu.Unlock()
		return ErrUnknownSurface
	}
	s.blockers = append(s.blockers, blocker)
	t.mu.Unlock()
	return nil
}

// Commit advances pending state to cached for every state bag, then either
// promotes cached to current immediately (no unsignaled blockers ahead of
// it in this surface's FIFO queue) or defers promotion until they signal.
func (t *Tree) Commit(id ID) error {
	t.mu.Lock()
	s := t.arena.get(id)
	if s == nil {
		t.mu.Unlock()
		return ErrUnknownSurface
	}

	for _, hook := range s.preCommitHooks {
		hook(id)
	}

	s.states.mergeAllPendingIntoCached()

	t.nextSeq++
	seq := t.nextSeq
	s.commitSeq = seq

	blockers := s.blockers
	s.blockers = nil

	record := &commitRecord{seq: seq, pending: len(blockers)}
	t.queues[id] = append(t.queues[id], record)

	t.mu.Unlock()

	if len(blockers) == 0 {
		t.tryPromote(id)
		return nil
	}

	s.deferredCommit = true
	for _, b := range blockers {
		b.OnSignal(func() {
			t.mu.Lock()
			record.pending--
			t.mu.Unlock()
			t.tryPromote(id)
		})
	}
	return nil
}

// tryPromote drains the front of id's commit queue as far as blocker state
// allows, enforcing FIFO promotion order (Testable Property 2): a later
// commit can never promote ahead of an earlier, still-blocked one.
func (t *Tree) tryPromote(id ID) {
	for {
		t.mu.Lock()
		queue := t.queues[id]
		if len(queue) == 0 {
			t.mu.Unlock()
			return
		}
		front := queue[0]
		if front.promoted || front.pending > 0 {
			t.mu.Unlock()
			return
		}

		s := t.arena.get(id)
		if s == nil {
			t.mu.Unlock()
			return
		}

		front.promoted = true
		t.queues[id] = queue[1:]
		s.deferredCommit = len(t.queues[id]) > 0
		hooks := s.postCommitHooks
		t.mu.Unlock()

		s.states.promoteAllCachedIntoCurrent()
		for _, hook := range hooks {
			hook(id)
		}
	}
}

// IsDeferred reports whether id has any commit still waiting on a blocker.
func (t *Tree) IsDeferred(id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.arena.get(id)
	return s != nil && s.deferredCommit
}
