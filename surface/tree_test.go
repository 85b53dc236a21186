package surface

import (
	"errors"
	"testing"
	"time"
)

func TestGiveRoleConflict(t *testing.T) {
	tree := NewTree()
	id := tree.Create("client-a")

	if err := tree.GiveRole(id, RoleToplevel, nil); err != nil {
		t.Fatalf("first GiveRole: %v", err)
	}

	err := tree.GiveRole(id, RolePopup, nil)
	if err == nil {
		t.Fatal("expected role conflict error")
	}
	if !errors.Is(err, ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict, got %v", err)
	}

	var roleErr *RoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("expected *RoleError, got %T", err)
	}
	if roleErr.Existing != RoleToplevel || roleErr.Wanted != RolePopup {
		t.Fatalf("unexpected RoleError fields: %+v", roleErr)
	}
}

func TestGiveRoleIdempotence(t *testing.T) {
	tree := NewTree()
	id := tree.Create(nil)

	if err := tree.GiveRole(id, RoleToplevel, nil); err != nil {
		t.Fatalf("first GiveRole: %v", err)
	}
	if err := tree.GiveRole(id, RoleToplevel, nil); err == nil {
		t.Fatal("second GiveRole with same kind should fail")
	}

	tree.RemoveRole(id)
	tree.RemoveRole(id) // no-op on unroled surface, must not panic
}

func TestCommitWithoutBlockerPromotesImmediately(t *testing.T) {
	tree := NewTree()
	id := tree.Create(nil)

	tree.WithStates(id, func(m *StateBagMap) {
		core := m.Get(StateKindCore).(*CoreState)
		core.Pending.Buffer = "buf-1"
	})

	if err := tree.Commit(id); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	s := tree.Get(id)
	core := s.states.Get(StateKindCore).(*CoreState)
	if core.Current.Buffer != "buf-1" {
		t.Fatalf("Current.Buffer = %v, want buf-1", core.Current.Buffer)
	}
	if tree.IsDeferred(id) {
		t.Fatal("surface should not be deferred")
	}
}

func TestCommitDeferredUntilBlockerSignals(t *testing.T) {
	tree := NewTree()
	id := tree.Create(nil)

	blocker := NewManualBlocker()
	if err := tree.AddBlocker(id, blocker); err != nil {
		t.Fatalf("AddBlocker: %v", err)
	}

	tree.WithStates(id, func(m *StateBagMap) {
		core := m.Get(StateKindCore).(*CoreState)
		core.Pending.Buffer = "buf-2"
	})

	if err := tree.Commit(id); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	s := tree.Get(id)
	core := s.states.Get(StateKindCore).(*CoreState)
	if core.Current.Buffer != nil {
		t.Fatalf("Current.Buffer should be unset before blocker signals, got %v", core.Current.Buffer)
	}
	if !tree.IsDeferred(id) {
		t.Fatal("surface should be deferred")
	}

	blocker.Signal()

	if core.Current.Buffer != "buf-2" {
		t.Fatalf("Current.Buffer = %v, want buf-2 after signal", core.Current.Buffer)
	}
	if tree.IsDeferred(id) {
		t.Fatal("surface should no longer be deferred")
	}
}

// TestFIFOPromotionOrder exercises Testable Property 2: a later commit must
// never promote ahead of an earlier, still-blocked commit on the same
// surface.
func TestFIFOPromotionOrder(t *testing.T) {
	tree := NewTree()
	id := tree.Create(nil)

	blockerA := NewManualBlocker()
	tree.AddBlocker(id, blockerA)
	tree.WithStates(id, func(m *StateBagMap) {
		m.Get(StateKindCore).(*CoreState).Pending.Buffer = "A"
	})
	if err := tree.Commit(id); err != nil {
		t.Fatal(err)
	}

	// Second commit has no blocker of its own, but must still wait behind A.
	tree.WithStates(id, func(m *StateBagMap) {
		m.Get(StateKindCore).(*CoreState).Pending.Buffer = "B"
	})
	if err := tree.Commit(id); err != nil {
		t.Fatal(err)
	}

	core := tree.Get(id).states.Get(StateKindCore).(*CoreState)
	if core.Current.Buffer != nil {
		t.Fatalf("commit B should not have promoted yet, Current.Buffer = %v", core.Current.Buffer)
	}

	blockerA.Signal()

	if core.Current.Buffer != "B" {
		t.Fatalf("after A signals, both queued commits should drain in order, Current.Buffer = %v, want B", core.Current.Buffer)
	}
}

func TestAddSubsurfaceAndDestroyOrphans(t *testing.T) {
	tree := NewTree()
	parent := tree.Create(nil)
	child := tree.Create(nil)

	if err := tree.AddSubsurface(parent, child); err != nil {
		t.Fatalf("AddSubsurface: %v", err)
	}

	if tree.Get(child).Role() != RoleSubsurface {
		t.Fatal("child should have RoleSubsurface")
	}
	if got, has := tree.Get(child).Parent(); !has || got != parent {
		t.Fatalf("child parent = %v,%v want %v,true", got, has, parent)
	}

	tree.Destroy(parent)

	if _, has := tree.Get(child).Parent(); has {
		t.Fatal("child should be orphaned after parent destruction")
	}
}

func TestWithSurfaceTreeDownwardVisitsAllOnce(t *testing.T) {
	tree := NewTree()
	root := tree.Create(nil)
	childA := tree.Create(nil)
	childB := tree.Create(nil)
	tree.AddSubsurface(root, childA)
	tree.AddSubsurface(root, childB)

	var visited []ID
	tree.WithSurfaceTreeDownward(root, 0, func(id ID, acc any) StepResult[any] {
		visited = append(visited, id)
		return DoChildren[any](acc)
	}, nil, nil)

	if len(visited) != 3 {
		t.Fatalf("visited %d nodes, want 3: %v", len(visited), visited)
	}
	if visited[0] != root {
		t.Fatalf("pre-order should visit root first, got %v", visited[0])
	}
}

func TestWithSurfaceTreeDownwardCycleIsSafe(t *testing.T) {
	tree := NewTree()
	a := tree.Create(nil)
	b := tree.Create(nil)
	tree.AddSubsurface(a, b)

	// Force a client-constructed cycle directly on the arena slot, bypassing
	// AddSubsurface's role check, the way a malicious client might confuse
	// the tree via repeated requests.
	sa := tree.Get(a)
	sa.children = append(sa.children, a)

	count := 0
	done := make(chan struct{})
	go func() {
		tree.WithSurfaceTreeDownward(a, 0, func(id ID, acc any) StepResult[any] {
			count++
			return DoChildren[any](acc)
		}, nil, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("traversal did not terminate on a cyclic tree")
	}
	if count != 2 {
		t.Fatalf("visited %d nodes, want 2 (a, b) with cycle suppressed", count)
	}
}
