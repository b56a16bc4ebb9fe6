// Command loomdemo drives a handful of small, self-adjusting computation
// graphs against the loom engine and prints how each one reacts to input
// changes. It replaces the teacher's fixed main.go — which wired one
// hardcoded a/x/y/z graph to goroutines sleeping and printing — with a
// cobra command tree (github.com/spf13/cobra, also used for CLI
// structure in roach88-nysm and jinterlante1206-AleutianLocal) so each
// demo scenario is its own subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loom/internal/telemetry"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "loomdemo",
		Short: "Run example self-adjusting computation graphs against loom",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable structured tracing of node lifecycle events")

	root.AddCommand(chainCmd(), sharedCmd(), nominalCmd(), nearestCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logger() *telemetry.Logger {
	return telemetry.New(verbose)
}
