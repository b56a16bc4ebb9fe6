// Package weakset implements the change-propagation engine's weak
// dependent set: a per-node collection of back-references to dependents
// that does not keep those dependents alive. The engine adds a reader
// each time it records an edge and clears the whole set (see Clear) only
// when the owning node is invalidated; a re-evaluation of the owner does
// not clear it, so an entry stays until then, or until its referent is
// collected, even if that reader no longer reads the owner. The set only
// needs Add, Clear, and an iteration primitive that quietly skips entries
// whose referent has already been collected.
//
// Built on the standard library's weak package, which is the runtime's
// native weak-pointer primitive; no third-party weak-reference library
// appears anywhere in the retrieval pack (the nearest relative,
// runtime.SetFinalizer, solves a different problem: running cleanup code,
// not tracking a live-or-dead reference).
package weakset

import "weak"

// Set holds weak references to values of type T, deduplicated by
// referent identity.
type Set[T any] struct {
	refs map[weak.Pointer[T]]struct{}
}

// New returns an empty weak set.
func New[T any]() *Set[T] {
	return &Set[T]{refs: make(map[weak.Pointer[T]]struct{})}
}

// Add records a weak reference to v. Adding the same pointer twice is a
// no-op.
func (s *Set[T]) Add(v *T) {
	s.refs[weak.Make(v)] = struct{}{}
}

// Clear drops every reference, weak or otherwise.
func (s *Set[T]) Clear() {
	s.refs = make(map[weak.Pointer[T]]struct{})
}

// Len reports the number of live and dead entries currently tracked
// (dead entries are only pruned on Fold).
func (s *Set[T]) Len() int { return len(s.refs) }

// Fold calls f once for every entry whose referent is still alive.
// Entries whose referent has been collected are silently dropped from the
// set as they're encountered. Iteration order is unspecified.
func (s *Set[T]) Fold(f func(*T)) {
	for ref := range s.refs {
		v := ref.Value()
		if v == nil {
			delete(s.refs, ref)
			continue
		}
		f(v)
	}
}
