package loom

import (
	"math/rand/v2"

	"github.com/puzpuzpuz/xsync/v3"
)

// binding is one memo-table entry: either an anonymous arg-keyed entry
// (isName false, arg holds the canonical key) or a named entry (isName
// true, name holds the key). A binding holds every node created for that
// key that has not been invalidated yet; unmemo (installed by
// doFreshBinding) prunes a node from the list when it is invalidated.
type binding[Arg any, T any] struct {
	isName bool
	name   Name
	arg    Arg

	nodes []*bindingNode[Arg, T]
}

// bindingNode pairs a live meta with the mutable cell backing the
// argument its body closes over. For an anonymous binding argRef never
// changes after creation. For a named binding, memoNamed can overwrite
// *argRef in place when the same name is reused with a different
// argument — the "nominal, in-place" re-execution path.
type bindingNode[Arg, T any] struct {
	argRef *Arg
	m      *meta
}

// memoTable is the per-MFn hash-consing structure: two independent
// buckets-by-hash maps, one for anonymous (Arg-keyed) bindings and one
// for named (Name-keyed) bindings, exactly the two binding spaces
// SPEC_FULL.md section 4.F calls out — Arg keys and
// Name keys are never compared against each other.
//
// Buckets are stored in a github.com/puzpuzpuz/xsync/v3 MapOf, the same
// hash-consing structure the teacher's higact.LocalRouter uses for its
// actor table, keyed here by the argument or name's hash rather than by
// address. Because keys aren't guaranteed to satisfy Go's built-in
// comparable, collisions within a bucket are resolved by a linear scan
// using the caller-supplied Data.Equal rather than map equality.
type memoTable[Arg, T any] struct {
	tag     string
	argData Data[Arg]
	seed    uint64

	argBuckets  *xsync.MapOf[uint64, []*binding[Arg, T]]
	nameBuckets *xsync.MapOf[uint64, []*binding[Arg, T]]
}

func newMemoTable[Arg, T any](tag string, argData Data[Arg]) *memoTable[Arg, T] {
	return &memoTable[Arg, T]{
		tag:         tag,
		argData:     argData,
		seed:        rand.Uint64(),
		argBuckets:  xsync.NewMapOf[uint64, []*binding[Arg, T]](),
		nameBuckets: xsync.NewMapOf[uint64, []*binding[Arg, T]](),
	}
}

func (mt *memoTable[Arg, T]) mergeArg(arg Arg) *binding[Arg, T] {
	h := mt.argData.Hash(mt.seed, arg)
	bucket, _ := mt.argBuckets.LoadOrCompute(h, func() []*binding[Arg, T] { return nil })
	for _, b := range bucket {
		if mt.argData.Equal(b.arg, arg) {
			return b
		}
	}
	nb := &binding[Arg, T]{arg: mt.argData.Sanitize(arg)}
	bucket = append(bucket, nb)
	mt.argBuckets.Store(h, bucket)
	return nb
}

func (mt *memoTable[Arg, T]) mergeName(name Name) *binding[Arg, T] {
	h := hashName(mt.seed, name)
	bucket, _ := mt.nameBuckets.LoadOrCompute(h, func() []*binding[Arg, T] { return nil })
	for _, b := range bucket {
		if b.name == name {
			return b
		}
	}
	nb := &binding[Arg, T]{isName: true, name: name}
	bucket = append(bucket, nb)
	mt.nameBuckets.Store(h, bucket)
	return nb
}

// doFreshBinding allocates a new node for arg via makeAndEvalNode,
// closing over a ref cell (argRef) rather than arg directly so a later
// memoName rebinding can rewrite the argument this node's body reads
// without discarding the node. It registers the node against b and
// installs unmemo so invalidation detaches it again.
func doFreshBinding[Arg any, T comparable](e *Engine, b *binding[Arg, T], tag string, arg Arg, recompute func(Arg) T) *meta {
	argRef := new(Arg)
	*argRef = arg

	equalFn := func(x, y any) bool { return x.(T) == y.(T) }
	m := e.makeAndEvalNode(tag, equalFn, func() any {
		return recompute(*argRef)
	})

	bn := &bindingNode[Arg, T]{argRef: argRef, m: m}
	b.nodes = append(b.nodes, bn)
	m.unmemo = func() {
		for i, n := range b.nodes {
			if n == bn {
				b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
				return
			}
		}
	}
	return m
}

// memoOnce implements an MFn's Art: reuse any available node already
// bound to arg, or allocate a fresh one.
func memoOnce[Arg any, T comparable](e *Engine, mt *memoTable[Arg, T], tag string, arg Arg, recompute func(Arg) T) Art[T] {
	b := mt.mergeArg(arg)

	for _, bn := range b.nodes {
		if e.isAvailable(bn.m) {
			e.spliceAndAdopt(bn.m)
			e.stats.hit.Add(1)
			e.recordEdge(bn.m)
			return Art[T]{m: bn.m}
		}
	}

	e.stats.miss.Add(1)
	m := doFreshBinding(e, b, tag, arg, recompute)
	e.recordEdge(m)
	return Art[T]{m: m}
}

// memoNamed implements an MFn's Nart. It takes the first node bound to
// name that is available from the current position. If that node was last
// bound to an equal argument, it's an ordinary reuse. If it was bound to a
// different argument, the same node is re-executed in place against the
// new argument (the "nominal, from-scratch-inside-the-same-identity"
// path spec section 4.F calls out) instead of allocating a second node
// under the same name. If no node under name is available, a fresh node
// is allocated and added to the binding, which can then hold more than
// one live node for the same name.
func memoNamed[Arg any, T comparable](e *Engine, mt *memoTable[Arg, T], tag string, name Name, arg Arg, recompute func(Arg) T) (Art[T], error) {
	if !e.nominalSupport {
		return Art[T]{}, ErrNoNominalSupport
	}

	b := mt.mergeName(name)

	for _, bn := range b.nodes {
		if e.isAvailable(bn.m) {
			if mt.argData.Equal(*bn.argRef, arg) {
				e.spliceAndAdopt(bn.m)
				e.stats.hit.Add(1)
				e.recordEdge(bn.m)
				return Art[T]{m: bn.m}, nil
			}
			reboundInPlace(e, bn, arg)
			e.stats.hit.Add(1)
			e.recordEdge(bn.m)
			return Art[T]{m: bn.m}, nil
		}
	}

	e.stats.miss.Add(1)
	m := doFreshBinding(e, b, tag, arg, recompute)
	e.recordEdge(m)
	return Art[T]{m: m}, nil
}

// reboundInPlace re-executes bn's node against a new argument without
// discarding its identity: the timeline between the cursor and the node's
// start is discarded up front (the caller skips past it), the argument
// cell is overwritten, the node's own evaluate closure re-runs against it
// with the cursor at the node's start and the finger at its end, and
// whatever part of the old interval the re-run did not reuse is spliced
// away up to the recorded end.
func reboundInPlace[Arg, T any](e *Engine, bn *bindingNode[Arg, T], arg Arg) {
	m := bn.m

	e.to.Splice(e.eagerNow, m.startTS)
	e.eagerNow = m.startTS

	prevFinger := e.eagerFinger
	e.eagerFinger = m.endTS

	*bn.argRef = arg
	e.evaluateMeta(m)

	e.to.Splice(e.eagerNow, m.endTS)
	e.eagerNow = m.endTS
	e.eagerFinger = prevFinger
}
