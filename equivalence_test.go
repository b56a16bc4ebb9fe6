package loom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loom"
)

// TestRefreshedGraphMatchesFromScratch checks the equivalence property:
// after mutating a Cell and calling Refresh, every node's value equals
// what a from-scratch construction with the same mutated inputs would
// produce — the whole point of incremental re-evaluation is that it's
// invisible from the outside.
func TestRefreshedGraphMatchesFromScratch(t *testing.T) {
	build := func(e *loom.Engine, aVal, bVal int) (loom.Art[int], loom.Art[int], loom.Art[int]) {
		a := loom.CellIn(e, "a", aVal, loom.ComparableData[int]{})
		b := loom.CellIn(e, "b", bVal, loom.ComparableData[int]{})
		sum := loom.ThunkIn(e, "sum", func(dep loom.Depend) int { return dep(a).(int) + dep(b).(int) })
		prod := loom.ThunkIn(e, "prod", func(dep loom.Depend) int { return dep(a).(int) * dep(b).(int) })
		combo := loom.ThunkIn(e, "combo", func(dep loom.Depend) int { return dep(sum).(int) - dep(prod).(int) })
		return sum, prod, combo
	}

	incremental := loom.NewEngine()
	a := loom.CellIn(incremental, "a", 2, loom.ComparableData[int]{})
	b := loom.CellIn(incremental, "b", 3, loom.ComparableData[int]{})
	sum := loom.ThunkIn(incremental, "sum", func(dep loom.Depend) int { return dep(a).(int) + dep(b).(int) })
	prod := loom.ThunkIn(incremental, "prod", func(dep loom.Depend) int { return dep(a).(int) * dep(b).(int) })
	combo := loom.ThunkIn(incremental, "combo", func(dep loom.Depend) int { return dep(sum).(int) - dep(prod).(int) })

	loom.Set(a, 7)
	loom.Set(b, 4)
	incremental.Refresh()

	fresh := loom.NewEngine()
	fSum, fProd, fCombo := build(fresh, 7, 4)

	require.Equal(t, loom.Force(fSum), loom.Force(sum))
	require.Equal(t, loom.Force(fProd), loom.Force(prod))
	require.Equal(t, loom.Force(fCombo), loom.Force(combo))
}

// TestMemoizedRecursionMatchesFromScratch checks the same equivalence
// property through a memoized recursive function rather than plain
// Thunks.
func TestMemoizedRecursionMatchesFromScratch(t *testing.T) {
	newFib := func(e *loom.Engine) loom.MFn[int, int] {
		var fib loom.MFn[int, int]
		fib = loom.MkMfnIn(e, "fib", loom.ComparableData[int]{}, func(dep loom.Depend, n int) int {
			if n < 2 {
				return n
			}
			return dep(fib.Art(n-1)).(int) + dep(fib.Art(n-2)).(int)
		})
		return fib
	}

	e := loom.NewEngine()
	fib := newFib(e)
	got := loom.Force(fib.Art(15))

	fresh := loom.NewEngine()
	freshFib := newFib(fresh)
	want := loom.Force(freshFib.Art(15))

	require.Equal(t, want, got)
	require.Equal(t, 610, got)
}
