package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loom"
)

// sharedCmd demonstrates that a memoized call site is only ever reused
// across a Refresh, never between two unrelated call sites built fresh
// in the same pass: combo depends on both a changing trigger Cell and a
// memoized square(6) whose argument never changes. Refreshing after the
// trigger changes re-evaluates combo but must not re-run square's body —
// its node's recorded interval still lies exactly where combo's replay
// expects it.
func sharedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shared",
		Short: "Show a memoized node surviving a Refresh that doesn't touch it",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := loom.NewEngine(loom.WithLogger(logger()))

			calls := 0
			square := loom.MkMfnIn(e, "square", loom.ComparableData[int]{}, func(dep loom.Depend, n int) int {
				calls++
				return n * n
			})

			trigger := loom.CellIn(e, "trigger", 0, loom.ComparableData[int]{})
			combo := loom.ThunkIn(e, "combo", func(dep loom.Depend) int {
				return dep(square.Art(6)).(int) + dep(trigger).(int)
			})

			fmt.Printf("combo=%d (square body ran %d time(s))\n", loom.Force(combo), calls)

			loom.Set(trigger, 1)
			e.Refresh()

			fmt.Printf("combo=%d after trigger changed (square body ran %d time(s) total)\n", loom.Force(combo), calls)

			s := e.Stats()
			fmt.Printf("stats: miss=%d hit=%d (expect one miss for square(6)'s first run, one hit on replay)\n", s.Miss, s.Hit)
			return nil
		},
	}
}
