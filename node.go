package loom

import (
	"fmt"

	"loom/internal/order"
	"loom/internal/weakset"
)

// meta is the engine-private representation of a node: a Cell, a Thunk,
// or one binding inside a memoized function's table. Client code never
// sees a *meta directly; it holds an Art[T] handle instead.
type meta struct {
	id  uint64
	tag string

	value   any
	equalFn func(a, b any) bool

	// startTS/endTS bound the node's interval on the engine's timeline.
	// Leaves (Cell, Const) never get an interval: both stay order.Null.
	startTS order.Stamp
	endTS   order.Stamp

	// evaluate re-runs the node's body, compares the result against the
	// previous value, and enqueues dependents on change. It is a no-op
	// for leaves and is replaced with a no-op again once the node is
	// invalidated.
	evaluate func()

	// unmemo detaches this node from whatever memo-table binding created
	// it. nil for leaves and Thunks, which aren't memoized.
	unmemo func()

	dependents *weakset.Set[meta]

	enqueued bool
	onstack  bool

	engine *Engine
}

// node satisfies the artHandle interface so Depend can recover the
// underlying meta from an opaque Art[T] argument.
func (m *meta) node() *meta { return m }

// Art is a handle to a node of value type T. It is safe to copy, compare
// for identity via ==, and hold across Refresh calls; the value it reads
// (via Force) can change underneath it as the graph is refreshed.
type Art[T any] struct {
	m *meta
}

func (a Art[T]) node() *meta { return a.m }

// artHandle lets Depend accept any Art[T] without knowing T.
type artHandle interface {
	node() *meta
}

// Depend is passed into every Thunk and MFn body. Calling it on an Art
// records a dependency edge from the node currently being evaluated to
// the Art's underlying node, and returns its current value (as any — the
// caller type-asserts, mirroring the teacher's own dep(a).(int) idiom in
// higrt.Depend and main.go).
type Depend func(a any) any

func (e *Engine) depend(a any) any {
	h, ok := a.(artHandle)
	if !ok {
		panic(fmt.Errorf("loom: dep() called with %T, which is not an Art", a))
	}
	target := h.node()
	e.recordEdge(target)
	return target.value
}

// makeAndEvalNode allocates a node with a fresh interval starting right
// after the engine's current cursor, pushes it onto the evaluation stack,
// runs recompute once to obtain its initial value, closes the interval at
// wherever the cursor ended up, and installs the node's steady-state
// evaluate closure and timeline invalidator.
//
// If recompute panics, the node is popped off the stack (via the inner
// defer) and the panic propagates unchanged; the half-built meta is
// discarded along with everything reachable only through it.
func (e *Engine) makeAndEvalNode(tag string, equalFn func(a, b any) bool, recompute func() any) *meta {
	startTS := e.to.InsertAfter(e.eagerNow)
	e.eagerNow = startTS

	m := &meta{
		id:         e.nextNodeID(),
		tag:        tag,
		equalFn:    equalFn,
		startTS:    startTS,
		endTS:      order.Null,
		dependents: weakset.New[meta](),
		engine:     e,
	}

	e.stack = append(e.stack, m)
	m.onstack = true

	var value any
	func() {
		defer func() {
			e.stack = e.stack[:len(e.stack)-1]
			m.onstack = false
		}()
		value = recompute()
	}()

	e.stats.evaluate.Add(1)

	endTS := e.to.InsertAfter(e.eagerNow)
	e.eagerNow = endTS

	m.value = value
	m.endTS = endTS

	e.installEvaluate(m, recompute)
	e.to.SetInvalidator(startTS, e.makeInvalidator(m))

	e.stats.create.Add(1)
	e.log.Event("create", "id", m.id, "tag", tag)

	return m
}

// installEvaluate gives m its steady-state re-evaluation behavior:
// recompute, and — only on an actual value change — enqueue whatever
// depends on m. m.dependents holds m's readers (recordEdge adds the
// currently-evaluating node to the *target*'s dependents), so it must
// not be cleared here: a reader only re-adds itself when the reader
// itself runs, which only happens if it was enqueued, which only
// happens if it was still in m.dependents when m last changed. Clearing
// it unconditionally would silently orphan every node more than one
// edge away from a mutated Cell. It is only ever reset wholesale when m
// itself is invalidated (makeInvalidator), never on an ordinary
// re-evaluation.
func (e *Engine) installEvaluate(m *meta, recompute func() any) {
	m.evaluate = func() {
		newVal := recompute()
		e.stats.evaluate.Add(1)
		e.stats.clean.Add(1)
		if !m.equalFn(m.value, newVal) {
			m.value = newVal
			e.log.Event("dirty-resolved", "id", m.id, "tag", m.tag)
			e.enqueueDependents(m)
			return
		}
		m.value = newVal
	}
}

// makeInvalidator returns the callback installed on m's start timestamp.
// When the order-maintenance list splices that timestamp out from under
// m — because a memo hit or a name rebinding decided m's old subtree is
// no longer reachable — m must stop being live: its evaluate becomes a
// no-op, its dependent set is dropped, any pending queue entry is pulled,
// and it detaches from its memo-table binding.
func (e *Engine) makeInvalidator(m *meta) func() {
	return func() {
		m.evaluate = func() {}
		m.dependents.Clear()
		if m.enqueued {
			e.queue.Remove(m)
			m.enqueued = false
		}
		if m.unmemo != nil {
			unmemo := m.unmemo
			m.unmemo = nil
			unmemo()
		}
		e.log.Event("invalidate", "id", m.id, "tag", m.tag)
	}
}
