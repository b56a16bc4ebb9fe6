package loom

import (
	"fmt"

	"loom/internal/order"
	"loom/internal/weakset"
)

func newLeaf[T any](e *Engine, tag string, v T, data Data[T]) Art[T] {
	m := &meta{
		id:         e.nextNodeID(),
		tag:        tag,
		value:      v,
		equalFn:    func(a, b any) bool { return data.Equal(a.(T), b.(T)) },
		startTS:    order.Null,
		endTS:      order.Null,
		dependents: weakset.New[meta](),
		engine:     e,
		evaluate:   func() {},
	}
	e.stats.create.Add(1)
	e.log.Event("create", "id", m.id, "tag", tag, "kind", "leaf")
	return Art[T]{m: m}
}

// ConstIn creates an immutable leaf on e holding v. There is no
// structural difference between a Const and a Cell — both are nodes with
// no interval — but a Const is a promise from the Client Program that it
// will never call Set on the handle it gets back. data supplies the
// equality (and, incidentally, the hash/show/sanitize capabilities it
// isn't asked for here) a non-comparable T needs — ComparableData[T] is
// the ready-made choice for any T that satisfies comparable, matching
// the same Data/Name contract MkMfn's argData already threads through
// for memoized arguments.
func ConstIn[T any](e *Engine, v T, data Data[T]) Art[T] { return newLeaf(e, "", v, data) }

// Const creates an immutable leaf on the default Engine holding v. See ConstIn.
func Const[T any](v T, data Data[T]) Art[T] { return ConstIn(defaultEngine, v, data) }

// CellIn creates a mutable input leaf on e holding v, named tag for
// tracing. See ConstIn for data.
func CellIn[T any](e *Engine, tag string, v T, data Data[T]) Art[T] { return newLeaf(e, tag, v, data) }

// Cell creates a mutable input leaf on the default Engine holding v,
// named tag for tracing. See ConstIn for data.
func Cell[T any](tag string, v T, data Data[T]) Art[T] { return CellIn(defaultEngine, tag, v, data) }

// Set updates a Cell (or a Const, though a Client Program that does that
// is breaking its own promise) to v. It is illegal on any node with an
// interval — a Thunk or a memoized function's result — since those
// recompute from their own bodies, not from direct assignment; calling
// Set on one panics. Setting a Cell to a value equal (per the Data the
// Cell was constructed with) to what it already holds is a no-op:
// nothing is marked dirty and Refresh has nothing to do.
func Set[T any](a Art[T], v T) {
	m := a.m
	if m.startTS != order.Null {
		panic(fmt.Errorf("loom: Set called on a computed Art (tag=%q); Set is only legal on a Cell or Const", m.tag))
	}
	old, _ := m.value.(T)
	if m.equalFn(old, v) {
		return
	}
	m.value = v
	m.engine.stats.update.Add(1)
	m.engine.log.Event("update", "id", m.id, "tag", m.tag)
	m.engine.enqueueDependents(m)
}

// ThunkIn creates a node on e whose value is computed by f, which may
// read other Arts through the Depend it's given. The body runs once
// immediately, synchronously, on the calling goroutine.
func ThunkIn[T comparable](e *Engine, tag string, f func(Depend) T) Art[T] {
	equalFn := func(a, b any) bool { return a.(T) == b.(T) }
	m := e.makeAndEvalNode(tag, equalFn, func() any {
		return f(Depend(e.depend))
	})
	return Art[T]{m: m}
}

// Thunk creates a node on the default Engine whose value is computed by
// f. See ThunkIn.
func Thunk[T comparable](tag string, f func(Depend) T) Art[T] {
	return ThunkIn(defaultEngine, tag, f)
}

// Force reads a's current value and, if called from inside a Thunk or
// MFn body, records a dependency edge so that node re-runs the next time
// a's value changes and Refresh is called. Force never itself triggers
// any recomputation — it always returns whatever value a's node
// currently holds.
func Force[T any](a Art[T]) T {
	m := a.m
	m.engine.recordEdge(m)
	v, _ := m.value.(T)
	return v
}

// Refresh brings every node reachable from a changed Cell back up to
// date, in dependency order, and resets the engine to its idle position.
func (e *Engine) Refresh() {
	e.refreshUntil(order.Null, false)
	e.eagerNow = e.eagerStart
	e.eagerFinger = order.Null
}

// Refresh brings the default Engine's graph up to date. See Engine.Refresh.
func Refresh() { defaultEngine.Refresh() }

// Flush is a placeholder maintenance hook: loom's order-maintenance list
// already reclaims obsolete timestamps eagerly on every splice (see
// internal/order), so there is nothing left for a separate compaction
// pass to do. It exists so a Client Program can call it unconditionally
// without knowing whether the Engine it's holding needs one.
func (e *Engine) Flush() {}

// Flush is Engine.Flush on the default Engine.
func Flush() { defaultEngine.Flush() }

// MFn is a memoized function: a single logical computation reachable
// three ways. Data is the plain, unmemoized recursive call — useful for
// a body that wants to recurse without allocating a node at every step.
// Art allocates or reuses an anonymous, argument-keyed node. Nart
// allocates or reuses a node keyed by an explicit Name, and additionally
// supports re-executing that same node in place against a new argument
// when the name is reused.
type MFn[Arg any, T comparable] struct {
	Data func(Arg) T
	Art  func(Arg) Art[T]
	Nart func(Name, Arg) (Art[T], error)
}

// MkMfnIn defines a memoized function on e named tag. argData tells the
// memo table how to canonicalize, hash, and compare the arguments f is
// called with; ComparableData[Arg] is a ready-made choice for any
// comparable Arg.
func MkMfnIn[Arg any, T comparable](e *Engine, tag string, argData Data[Arg], f func(Depend, Arg) T) MFn[Arg, T] {
	mt := newMemoTable[Arg, T](tag, argData)

	recompute := func(arg Arg) T {
		return f(Depend(e.depend), arg)
	}

	return MFn[Arg, T]{
		Data: recompute,
		Art: func(arg Arg) Art[T] {
			return memoOnce(e, mt, tag, arg, recompute)
		},
		Nart: func(name Name, arg Arg) (Art[T], error) {
			return memoNamed(e, mt, tag, name, arg, recompute)
		},
	}
}

// MkMfn defines a memoized function on the default Engine. See MkMfnIn.
func MkMfn[Arg any, T comparable](tag string, argData Data[Arg], f func(Depend, Arg) T) MFn[Arg, T] {
	return MkMfnIn(defaultEngine, tag, argData, f)
}
