package surface

// RoleRegistry is a thin, generic-friendly view over a Tree's role
// bookkeeping. Methods are free functions rather than generic methods on
// Tree because Go methods cannot carry their own type parameters; the
// registry is otherwise exactly the "(surface_id, role_tag, role_data)"
// table spec.md §4.2 describes, delegating straight to the owning Surface
// since the arena already gives O(1) lookup.
type RoleRegistry struct {
	tree *Tree
}

// NewRoleRegistry wraps tree.
func NewRoleRegistry(tree *Tree) *RoleRegistry {
	return &RoleRegistry{tree: tree}
}

// HasRole reports whether id currently holds any role.
func (r *RoleRegistry) HasRole(id ID) bool {
	s := r.tree.Get(id)
	return s != nil && s.role != RoleNone
}

// HasRoleType reports whether id holds kind specifically.
func (r *RoleRegistry) HasRoleType(id ID, kind RoleKind) bool {
	s := r.tree.Get(id)
	return s != nil && s.role == kind
}

// GiveRole assigns kind to id with defaultData as its payload.
func (r *RoleRegistry) GiveRole(id ID, kind RoleKind, defaultData any) error {
	return r.tree.GiveRole(id, kind, defaultData)
}

// RemoveRole clears id's role if it currently holds kind; it is a no-op
// otherwise, including on an unroled surface.
func (r *RoleRegistry) RemoveRole(id ID, kind RoleKind) {
	s := r.tree.Get(id)
	if s == nil || s.role != kind {
		return
	}
	r.tree.RemoveRole(id)
}

// RoleDataAs retrieves id's role payload typed as T. The second return value
// is false if id has no role, or its payload is not a T.
func RoleDataAs[T any](r *RoleRegistry, id ID) (T, bool) {
	var zero T
	s := r.tree.Get(id)
	if s == nil {
		return zero, false
	}
	v, ok := s.roleData.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// WithRoleData invokes f with id's role payload typed as T, if present.
func WithRoleData[T any](r *RoleRegistry, id ID, f func(T)) error {
	v, ok := RoleDataAs[T](r, id)
	if !ok {
		return ErrNoRole
	}
	f(v)
	return nil
}
