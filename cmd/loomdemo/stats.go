package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"loom"
)

// statsCmd builds a tiny graph, refreshes it a few times, and dumps the
// engine's lifetime counters as JSON — useful for eyeballing that a
// change only dirtied what it should have.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print Engine.Stats() JSON after a few refreshes of a small graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := loom.NewEngine(loom.WithLogger(logger()))

			c := loom.CellIn(e, "c", 1, loom.ComparableData[int]{})
			t := loom.ThunkIn(e, "t", func(dep loom.Depend) int { return dep(c).(int) + 1 })

			for i := 2; i < 5; i++ {
				loom.Set(c, i)
				e.Refresh()
				_ = loom.Force(t)
			}

			out, err := json.MarshalIndent(e.Stats(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
