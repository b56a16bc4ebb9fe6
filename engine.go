// Package loom is a single-threaded, self-adjusting computation runtime:
// build a graph of Cells, Thunks, and memoized functions over it, mutate
// a Cell, call Refresh, and only the nodes whose inputs actually changed
// re-run.
//
// The public surface is a set of free functions (Cell, Const, Thunk,
// Set, Force, MkMfn, Refresh, Flush) operating against a package-level
// default Engine, plus an *In suffixed variant of each constructor that
// takes an explicit *Engine for callers who want an isolated runtime —
// tests running in parallel, for instance. Go forbids type parameters on
// methods, so anything generic over the value a node carries (Cell, Const,
// Thunk, MkMfn, Force, Set) is necessarily a free function rather than an
// Engine method; only the engine-wide, non-generic operations (Refresh,
// Flush, Stats) are real methods.
package loom

import (
	"sync/atomic"

	"loom/internal/order"
	"loom/internal/pqueue"
	"loom/internal/telemetry"
)

// Engine owns one order-maintained timeline, its dirty-node priority
// queue, and the evaluation stack that tracks which node is currently
// re-computing. All of an Engine's methods and the free functions that
// take one assume single-threaded use: nothing here takes a lock, and
// calling into the same Engine from more than one goroutine at once is
// undefined behavior. The one documented exception is Stats, whose
// counters are atomic. Calls made from inside a Thunk or MFn body running
// on the Engine (forcing, memoized calls, building nested Thunks) are
// ordinary nested use on the same goroutine.
type Engine struct {
	to *order.List

	eagerStart  order.Stamp
	eagerNow    order.Stamp
	eagerFinger order.Stamp

	queue *pqueue.Queue[*meta]
	stack []*meta

	nextID uint64

	stats statCounters
	log   *telemetry.Logger

	nominalSupport bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a telemetry.Logger to the Engine's node lifecycle
// (create, update, invalidate, and dirty-resolved transitions). The
// default is telemetry.Noop, so tracing costs nothing unless requested.
func WithLogger(l *telemetry.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithNominalSupport toggles whether the Engine's memoized functions
// accept Nart (name-keyed) calls at all. It defaults to true; passing
// false makes every Nart call return ErrNoNominalSupport, for Client
// Programs that only ever use anonymous memoization and want that fact
// enforced rather than assumed.
func WithNominalSupport(enabled bool) Option {
	return func(e *Engine) { e.nominalSupport = enabled }
}

// NewEngine constructs a fresh, empty Engine. Each Engine has its own
// order-maintenance timeline: nodes and Arts from one Engine must never
// be passed to another.
func NewEngine(opts ...Option) *Engine {
	to := order.Create()
	start := to.InsertAfter(order.Null)

	e := &Engine{
		to:             to,
		eagerStart:     start,
		eagerNow:       start,
		eagerFinger:    order.Null, // idle: unbounded reuse window, see isAvailable
		log:            telemetry.Noop(),
		nominalSupport: true,
	}
	e.queue = pqueue.New(func(a, b *meta) bool {
		return to.Compare(a.startTS, b.startTS) < 0
	})

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// nodeIDs is shared by every Engine, so node ids are unique across the
// process rather than per Engine.
var nodeIDs atomic.Uint64

func (e *Engine) nextNodeID() uint64 {
	return nodeIDs.Add(1)
}

// defaultEngine backs every non-*In free function (Cell, Const, Thunk,
// Set, Force, MkMfn, Refresh, Flush). A Client Program that never
// constructs its own Engine gets one for free, sized for a single
// long-lived computation the way the teacher's package-level main.go
// example builds one runtime and drives it directly.
var defaultEngine = NewEngine()

// DefaultEngine returns the package-level Engine that the non-*In free
// functions operate against.
func DefaultEngine() *Engine { return defaultEngine }
