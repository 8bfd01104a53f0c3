package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the registered games with the best score recorded for each.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	// Best scores are optional here; a missing database just shows dashes.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	idWidth, titleWidth := len("ID"), len("Title")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
		titleWidth = max(titleWidth, len(g.Title))
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", idWidth, "ID", titleWidth, "Title", "Best")
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", idWidth, "--", titleWidth, "-----", "----")

	for _, g := range games {
		best := "-"
		if gs, ok := stats[g.ID]; ok && gs.HighScore > 0 {
			best = fmt.Sprint(gs.HighScore)
		}
		fmt.Fprintf(out, "  %-*s  %-*s  %s\n", idWidth, g.ID, titleWidth, g.Title, best)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a game.")
}
