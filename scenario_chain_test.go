package loom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loom"
)

// TestChainGraphTracksSourceChanges rebuilds the teacher's own a/x/y/z
// example (main.go: x=a*2, y=a*3+35, z=x+y*4) and drives it with
// Set/Refresh instead of transactions.
func TestChainGraphTracksSourceChanges(t *testing.T) {
	e := loom.NewEngine()

	a := loom.CellIn(e, "a", 0, loom.ComparableData[int]{})
	x := loom.ThunkIn(e, "x", func(dep loom.Depend) int { return dep(a).(int) * 2 })
	y := loom.ThunkIn(e, "y", func(dep loom.Depend) int { return dep(a).(int)*3 + 35 })
	z := loom.ThunkIn(e, "z", func(dep loom.Depend) int { return dep(x).(int) + dep(y).(int)*4 })

	require.Equal(t, 0, loom.Force(x))
	require.Equal(t, 35, loom.Force(y))
	require.Equal(t, 140, loom.Force(z))

	loom.Set(a, 2)
	e.Refresh()
	require.Equal(t, 4, loom.Force(x))
	require.Equal(t, 41, loom.Force(y))
	require.Equal(t, 168, loom.Force(z))

	loom.Set(a, 55)
	e.Refresh()
	require.Equal(t, 110, loom.Force(x))
	require.Equal(t, 200, loom.Force(y))
	require.Equal(t, 910, loom.Force(z))
}

// TestChainGraphOnlyEvaluatesDependents mirrors the same graph but checks
// that changing a Cell one of two independent Thunks depends on leaves
// the other alone.
func TestChainGraphOnlyEvaluatesDependents(t *testing.T) {
	e := loom.NewEngine()

	a := loom.CellIn(e, "a", 1, loom.ComparableData[int]{})
	b := loom.CellIn(e, "b", 100, loom.ComparableData[int]{})

	var xEvals, yEvals int
	x := loom.ThunkIn(e, "x", func(dep loom.Depend) int {
		xEvals++
		return dep(a).(int) * 2
	})
	y := loom.ThunkIn(e, "y", func(dep loom.Depend) int {
		yEvals++
		return dep(b).(int) * 2
	})

	require.Equal(t, 1, xEvals)
	require.Equal(t, 1, yEvals)

	loom.Set(a, 9)
	e.Refresh()
	loom.Force(x)
	loom.Force(y)

	require.Equal(t, 2, xEvals, "x depends on a, must re-evaluate")
	require.Equal(t, 1, yEvals, "y does not depend on a, must not re-evaluate")
}
