package loom

import "sync/atomic"

// Stats is a point-in-time snapshot of an Engine's lifetime counters. It
// is an ordinary value type: safe to copy, print, and compare.
type Stats struct {
	Create   uint64 // nodes allocated (leaves, thunks, and fresh memo bindings)
	Evaluate uint64 // times any node's body ran, initial creation included
	Hit      uint64 // memo() / memoName() calls that reused an existing node
	Miss     uint64 // memo() / memoName() calls that allocated a fresh node
	Dirty    uint64 // dependent nodes actually enqueued by a changed input
	Clean    uint64 // stale nodes brought up to date by refresh
	Update   uint64 // Set() calls that actually changed a cell's value
}

// statCounters holds the same seven counters as Stats but as
// independently-atomic fields, so Engine.Stats() can be called at any
// time — including, per SPEC_FULL.md's concurrency note, from a goroutine
// other than the one driving the engine — without racing the engine's own
// single-threaded bookkeeping.
type statCounters struct {
	create   atomic.Uint64
	evaluate atomic.Uint64
	hit      atomic.Uint64
	miss     atomic.Uint64
	dirty    atomic.Uint64
	clean    atomic.Uint64
	update   atomic.Uint64
}

func (c *statCounters) snapshot() Stats {
	return Stats{
		Create:   c.create.Load(),
		Evaluate: c.evaluate.Load(),
		Hit:      c.hit.Load(),
		Miss:     c.miss.Load(),
		Dirty:    c.dirty.Load(),
		Clean:    c.clean.Load(),
		Update:   c.update.Load(),
	}
}

// Stats returns a snapshot of e's lifetime counters.
func (e *Engine) Stats() Stats { return e.stats.snapshot() }
