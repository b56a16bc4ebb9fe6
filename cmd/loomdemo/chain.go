package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loom"
)

// chainCmd rebuilds the teacher's own a/x/y/z example graph:
//
//	a          (a Cell)
//	|  \
//	x   y      (Thunks over a)
//	 \ /
//	  z         (a Thunk over x and y)
//
// where x = a*2, y = a*3+35, z = x+y*4 — but drives it synchronously with
// Set/Refresh instead of the teacher's Transact/Inspect goroutines, since
// loom's engine is single-threaded by design.
func chainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain",
		Short: "Build a small a -> {x, y} -> z dependency chain and mutate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := loom.NewEngine(loom.WithLogger(logger()))

			a := loom.CellIn(e, "a", 0, loom.ComparableData[int]{})
			x := loom.ThunkIn(e, "x", func(dep loom.Depend) int {
				return dep(a).(int) * 2
			})
			y := loom.ThunkIn(e, "y", func(dep loom.Depend) int {
				return dep(a).(int)*3 + 35
			})
			z := loom.ThunkIn(e, "z", func(dep loom.Depend) int {
				return dep(x).(int) + dep(y).(int)*4
			})

			print := func(label string) {
				fmt.Printf("%s: a=%d x=%d y=%d z=%d\n", label,
					loom.Force(a), loom.Force(x), loom.Force(y), loom.Force(z))
			}
			print("initial")

			loom.Set(a, 2)
			e.Refresh()
			print("after a=2")

			loom.Set(a, 55)
			e.Refresh()
			print("after a=55")

			s := e.Stats()
			fmt.Printf("stats: create=%d evaluate=%d dirty=%d clean=%d update=%d\n",
				s.Create, s.Evaluate, s.Dirty, s.Clean, s.Update)
			return nil
		},
	}
}
