// Package scenario holds larger, multi-node example computations used by
// loomdemo's subcommands — kept out of package main so they can carry
// their own tests.
package scenario

import (
	"loom"
)

// Point is a 2D point with integer coordinates, kept comparable so it can
// key a memoized function directly via loom.ComparableData.
type Point struct {
	X, Y int
}

func sqDist(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// ClosestPairData canonicalizes a []Point argument for memoization: the
// memo table needs a stable Equal/Hash/Show over a slice, which isn't
// comparable, so this hand-rolled Data sorts a defensive copy before
// hashing or comparing (its Sanitize) and hashes the sorted coordinates
// with a simple polynomial rolling hash.
type ClosestPairData struct{}

func (ClosestPairData) Sanitize(pts []Point) []Point {
	cp := append([]Point(nil), pts...)
	insertionSortPoints(cp)
	return cp
}

func (ClosestPairData) Equal(a, b []Point) bool {
	a, b = ClosestPairData{}.Sanitize(a), ClosestPairData{}.Sanitize(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (ClosestPairData) Hash(seed uint64, pts []Point) uint64 {
	h := seed*1099511628211 + 14695981039346656037
	for _, p := range (ClosestPairData{}).Sanitize(pts) {
		h = (h^uint64(p.X))*1099511628211 + 1
		h = (h^uint64(p.Y))*1099511628211 + 1
	}
	return h
}

func (ClosestPairData) Show(pts []Point) string {
	s := "["
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += "(" + itoa(p.X) + "," + itoa(p.Y) + ")"
	}
	return s + "]"
}

func insertionSortPoints(pts []Point) {
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && less(pts[j], pts[j-1]); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
}

func less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// NearestPair is a divide-and-conquer closest-pair-of-points computation
// built as a self-adjusting MFn: each recursive call over a sub-slice of
// points is its own memoized node, so changing one point and calling
// Refresh only re-runs the O(log n) chain of nodes whose sub-slice
// actually contains it, not the whole O(n log n) computation.
type NearestPair struct {
	mfn loom.MFn[[]Point, int]
}

// NewNearestPair defines the recursive memoized function on e. The base
// case (n <= 3) computes the minimum pairwise squared distance directly;
// the recursive case splits on the median x coordinate and combines the
// two halves with the classic strip check.
func NewNearestPair(e *loom.Engine) *NearestPair {
	np := &NearestPair{}
	np.mfn = loom.MkMfnIn(e, "nearest-pair", ClosestPairData{}, func(dep loom.Depend, pts []Point) int {
		return np.solve(dep, pts)
	})
	return np
}

func (np *NearestPair) solve(dep loom.Depend, pts []Point) int {
	if len(pts) <= 3 {
		return bruteForce(pts)
	}

	mid := len(pts) / 2
	left := append([]Point(nil), pts[:mid]...)
	right := append([]Point(nil), pts[mid:]...)

	dl := dep(np.mfn.Art(left)).(int)
	dr := dep(np.mfn.Art(right)).(int)

	d := dl
	if dr < d {
		d = dr
	}

	strip := make([]Point, 0, len(pts))
	mx := pts[mid].X
	for _, p := range pts {
		dx := p.X - mx
		if dx*dx < d {
			strip = append(strip, p)
		}
	}
	for i := 1; i < len(strip); i++ {
		for j := i; j > 0 && strip[j].Y < strip[j-1].Y; j-- {
			strip[j], strip[j-1] = strip[j-1], strip[j]
		}
	}
	for i := range strip {
		for j := i + 1; j < len(strip) && j < i+8; j++ {
			if sd := sqDist(strip[i], strip[j]); sd < d {
				d = sd
			}
		}
	}
	return d
}

func bruteForce(pts []Point) int {
	best := -1
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := sqDist(pts[i], pts[j])
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		return 1 << 30
	}
	return best
}

// Art forces a fresh-or-reused evaluation of the closest pair over pts.
// pts is sorted by X first (a defensive copy — the caller's slice is
// untouched) since the recursive strip check assumes each half it
// recurses into is contiguous in X order.
func (np *NearestPair) Art(pts []Point) loom.Art[int] {
	sorted := append([]Point(nil), pts...)
	insertionSortPoints(sorted)
	return np.mfn.Art(sorted)
}
