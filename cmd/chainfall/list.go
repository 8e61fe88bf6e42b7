package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chainfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all simulation variants",
	Long:  `Shows a list of all simulation variants that can be watched.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Fprintln(out, "No variants available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, v := range variants {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, v.ID, v.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'chainfall watch <id>' to watch a variant.")
}
