package surface

import "sync/atomic"

// StateKind tags an entry in a StateBagMap. The low values are reserved for
// bags this package and the shell packages know about; extensions register
// their own tag via ExternalStateKind.
type StateKind int

const (
	StateKindCore StateKind = iota
	StateKindToplevel
	StateKindPopup
	StateKindLayerSurface
	StateKindSubsurface
	StateKindPresentationFeedback
	StateKindCommitTiming
	StateKindXWaylandShell
	StateKindToplevelIcon

	stateKindBuiltinCount
)

var externalStateKindCounter atomic.Int64

// ExternalStateKind allocates a StateKind for a third-party extension. The
// name is informational only; each call returns a distinct kind even if the
// name repeats, matching the "extensible external-tag escape hatch" called
// for by the state-bag ownership design.
func ExternalStateKind(name string) StateKind {
	return StateKind(int64(stateKindBuiltinCount) + externalStateKindCounter.Add(1))
}

// StateBag is a typed payload attached to a surface that participates in the
// commit pipeline. Implementations hold their own pending/cached/current
// halves and know how to move data between them.
type StateBag interface {
	// MergePendingIntoCached replaces the cached half with the pending half
	// and resets pending to a fresh value, called at commit time.
	MergePendingIntoCached()
	// PromoteCachedIntoCurrent replaces the current half with the cached
	// half, called only once every blocker on the commit has signaled.
	PromoteCachedIntoCurrent()
}

// StateBagMap is the per-surface dictionary of state bags keyed by kind.
type StateBagMap struct {
	bags map[StateKind]StateBag
}

func newStateBagMap() StateBagMap {
	return StateBagMap{bags: make(map[StateKind]StateBag)}
}

// Get returns the bag registered under kind, or nil if none is registered.
func (m *StateBagMap) Get(kind StateKind) StateBag {
	return m.bags[kind]
}

// Set installs bag under kind, replacing any existing registration. Role
// assignment calls this to attach role-specific state the first time a role
// is given.
func (m *StateBagMap) Set(kind StateKind, bag StateBag) {
	m.bags[kind] = bag
}

// Delete removes the bag registered under kind.
func (m *StateBagMap) Delete(kind StateKind) {
	delete(m.bags, kind)
}

// Kinds returns all kinds currently registered on the surface, order is
// unspecified.
func (m *StateBagMap) Kinds() []StateKind {
	out := make([]StateKind, 0, len(m.bags))
	for k := range m.bags {
		out = append(out, k)
	}
	return out
}

func (m *StateBagMap) mergeAllPendingIntoCached() {
	for _, bag := range m.bags {
		bag.MergePendingIntoCached()
	}
}

func (m *StateBagMap) promoteAllCachedIntoCurrent() {
	for _, bag := range m.bags {
		bag.PromoteCachedIntoCurrent()
	}
}
