// Package order implements the runtime's order-maintenance structure: a
// totally ordered list of timestamps supporting O(1)-amortized insertion
// between two existing timestamps, O(1) comparison, and range removal
// ("splice") with per-timestamp invalidation callbacks.
//
// The realization is a doubly linked list of integer-labeled nodes with
// Dietz-Sleator style tag relabeling: when two neighboring labels have no
// room between them, a window of nodes around the insertion point is
// widened (doubling) until it is sparse enough to redistribute evenly,
// which amortizes to O(1) per insertion across a run of inserts.
package order

import "fmt"

// minGap is the average label spacing a relabel aims to leave behind, so
// that a handful of inserts can land in a window before it needs
// relabeling again.
const minGap = 4

// initialSpan is the label distance between the two sentinel nodes created
// by Create. It is large enough that relabelAll (the O(n) safety net) is
// never reached in practice.
const initialSpan = int64(1) << 62

type node struct {
	label int64
	seq   int64 // tie-breaker for the (never expected) case of equal labels

	prev, next *node
	valid      bool

	invalidator func()
}

// Stamp is an opaque handle into a List. The zero value is Null.
type Stamp struct {
	n *node
}

// Null is the sentinel "no timestamp" value.
var Null = Stamp{}

// IsValid reports whether the stamp is non-null and has not been removed
// by a Splice.
func (s Stamp) IsValid() bool {
	return s.n != nil && s.n.valid
}

func (s Stamp) String() string {
	if s.n == nil {
		return "<null>"
	}
	return fmt.Sprintf("#%d", s.n.label)
}

// List is a totally ordered set of timestamps.
type List struct {
	head, tail *node
	seqCounter int64
}

// Create returns a new, empty order-maintenance list (containing only the
// two internal sentinels bounding the order).
func Create() *List {
	head := &node{label: 0, valid: true}
	tail := &node{label: initialSpan, valid: true}
	head.next = tail
	tail.prev = head
	return &List{head: head, tail: tail}
}

// InsertAfter allocates a fresh stamp immediately after t (or at the very
// start of the order if t is Null) and returns it. Amortized O(1).
func (l *List) InsertAfter(t Stamp) Stamp {
	prev := l.head
	if t.n != nil {
		prev = t.n
	}
	next := prev.next

	if next.label-prev.label <= 1 {
		l.makeRoom(prev, next)
		next = prev.next
	}

	l.seqCounter++
	mid := prev.label + (next.label-prev.label)/2
	n := &node{label: mid, seq: l.seqCounter, prev: prev, next: next, valid: true}
	prev.next = n
	next.prev = n
	return Stamp{n: n}
}

// Compare returns -1, 0, or 1 according to a's position relative to b in
// the total order. O(1).
func (l *List) Compare(a, b Stamp) int {
	an, bn := a.n, b.n
	switch {
	case an == bn:
		return 0
	case an == nil:
		return -1
	case bn == nil:
		return 1
	case an.label != bn.label:
		if an.label < bn.label {
			return -1
		}
		return 1
	case an.seq != bn.seq:
		if an.seq < bn.seq {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// SetInvalidator installs fn to be run exactly once, if and when t is
// removed by a future Splice.
func (l *List) SetInvalidator(t Stamp, fn func()) {
	if t.n == nil {
		return
	}
	t.n.invalidator = fn
}

// Splice removes every timestamp strictly between lo and hi from the
// order, marking each removed stamp invalid and firing its invalidator (if
// any) exactly once. lo defaults to the start of the list and hi to the
// end when Null.
func (l *List) Splice(lo, hi Stamp) {
	loNode := l.head
	if lo.n != nil {
		loNode = lo.n
	}
	hiNode := l.tail
	if hi.n != nil {
		hiNode = hi.n
	}

	cur := loNode.next
	for cur != hiNode {
		next := cur.next

		cur.valid = false
		if cur.invalidator != nil {
			fn := cur.invalidator
			cur.invalidator = nil
			fn()
		}
		cur.prev, cur.next = nil, nil

		loNode.next = next
		next.prev = loNode

		cur = next
	}
}

// makeRoom widens the label gap between prev and next by relabeling a
// window of nodes around them. Classic Dietz-Sleator tag relabeling: the
// window doubles outward until its label density is below the minGap
// threshold, or it covers the whole list.
func (l *List) makeRoom(prev, next *node) {
	lo, hi := prev, next
	for grow := 1; ; grow *= 2 {
		count := countBetween(lo, hi)
		span := hi.label - lo.label
		if span >= int64(count)*minGap || (lo == l.head && hi == l.tail) {
			break
		}
		for i := 0; i < grow; i++ {
			if lo.prev != nil {
				lo = lo.prev
			}
			if hi.next != nil {
				hi = hi.next
			}
		}
	}

	count := countBetween(lo, hi)
	span := hi.label - lo.label
	if span < int64(count) {
		// Window covers the whole list and it's still too dense (should
		// essentially never happen given initialSpan): fall back to a
		// full, uniform relabel.
		l.relabelAll()
		return
	}

	step := span / int64(count)
	label := lo.label
	for cur := lo; ; cur = cur.next {
		cur.label = label
		if cur == hi {
			break
		}
		label += step
	}
}

// relabelAll uniformly redistributes labels across the entire list. O(n);
// a safety net that only fires if makeRoom's windowed relabel can no
// longer find room anywhere in the list.
func (l *List) relabelAll() {
	count := 0
	for cur := l.head; cur != nil; cur = cur.next {
		count++
	}

	step := initialSpan / int64(count-1)
	label := int64(0)
	for cur := l.head; cur != nil; cur = cur.next {
		cur.label = label
		label += step
	}
}

func countBetween(lo, hi *node) int {
	n := 1
	for cur := lo; cur != hi; cur = cur.next {
		n++
	}
	return n
}
