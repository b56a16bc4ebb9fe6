package loom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loom"
)

// TestRefreshWithNothingDirtyIsNoOp checks that calling Refresh when no
// Cell has changed since the last Refresh does not re-evaluate anything.
func TestRefreshWithNothingDirtyIsNoOp(t *testing.T) {
	e := loom.NewEngine()

	c := loom.CellIn(e, "c", 1, loom.ComparableData[int]{})
	evals := 0
	d := loom.ThunkIn(e, "d", func(dep loom.Depend) int {
		evals++
		return dep(c).(int) + 1
	})
	require.Equal(t, 2, loom.Force(d))
	require.Equal(t, 1, evals)

	e.Refresh()
	e.Refresh()
	e.Refresh()

	require.Equal(t, 1, evals)
	require.Equal(t, 2, loom.Force(d))
}

// TestDoubleRefreshAfterSingleChangeConverges checks that calling Refresh
// twice in a row after a single Set only does real work on the first
// call — the second is idempotent.
func TestDoubleRefreshAfterSingleChangeConverges(t *testing.T) {
	e := loom.NewEngine()

	c := loom.CellIn(e, "c", 1, loom.ComparableData[int]{})
	evals := 0
	d := loom.ThunkIn(e, "d", func(dep loom.Depend) int {
		evals++
		return dep(c).(int) + 1
	})

	loom.Set(c, 41)
	e.Refresh()
	require.Equal(t, 42, loom.Force(d))
	require.Equal(t, 2, evals)

	e.Refresh()
	require.Equal(t, 42, loom.Force(d))
	require.Equal(t, 2, evals, "second refresh has nothing dirty left to do")
}
