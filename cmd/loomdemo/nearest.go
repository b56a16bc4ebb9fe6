package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"loom"
	"loom/cmd/loomdemo/scenario"
)

func nearestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest",
		Short: "Incrementally recompute the closest pair of points after moving one point",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := loom.NewEngine(loom.WithLogger(logger()))
			np := scenario.NewNearestPair(e)

			pts := []scenario.Point{
				{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 9, Y: 1}, {X: 2, Y: 8},
				{X: 12, Y: 3}, {X: 7, Y: 7}, {X: 1, Y: 1}, {X: 15, Y: 9},
			}

			cell := loom.CellIn(e, "points", pts, scenario.ClosestPairData{})
			result := loom.ThunkIn(e, "closest", func(dep loom.Depend) int {
				return dep(np.Art(dep(cell).([]scenario.Point))).(int)
			})

			fmt.Printf("closest squared distance: %d (%.3f)\n", loom.Force(result), math.Sqrt(float64(loom.Force(result))))

			moved := append([]scenario.Point(nil), pts...)
			moved[0] = scenario.Point{X: 3, Y: 4}
			loom.Set(cell, moved)
			e.Refresh()

			fmt.Printf("after moving one point:   %d (%.3f)\n", loom.Force(result), math.Sqrt(float64(loom.Force(result))))

			s := e.Stats()
			fmt.Printf("stats: create=%d evaluate=%d hit=%d miss=%d\n", s.Create, s.Evaluate, s.Hit, s.Miss)
			return nil
		},
	}
}
