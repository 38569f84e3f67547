package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/montyhall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available experiments",
	Long:  `Shows a list of all experiments that can be run with 'simulate'.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	experiments := registry.List()

	if len(experiments) == 0 {
		fmt.Fprintln(out, "No experiments available.")
		return nil
	}

	fmt.Fprintln(out, "Available experiments:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, e := range experiments {
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, e := range experiments {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'montyhall simulate <id>' to run an experiment.")
	return nil
}
