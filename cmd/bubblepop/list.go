package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and levels",
	Long:  `Shows the registered game modes and every level the campaign can play.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	fmt.Println("Modes:")
	fmt.Println()
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	all, err := bubblepop.Levels().LoadAll()
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-8s  %-20s  %-8s  %-7s  %s\n", "ID", "Name", "Grid", "Size", "Shots")
	fmt.Printf("  %-8s  %-20s  %-8s  %-7s  %s\n", "--", "----", "----", "----", "-----")
	for _, l := range all {
		fmt.Printf("  %-8s  %-20s  %-8s  %-7s  %d\n",
			l.ID, l.Name, l.Topology.Name(), fmt.Sprintf("%dx%d", l.Cols, l.Rows), l.Shots)
	}

	fmt.Println()
	fmt.Println("Run 'bubblepop play --level <id>' to start from a level.")
	return nil
}
