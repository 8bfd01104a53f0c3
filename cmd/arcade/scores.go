package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chase-arcade/internal/registry"
	"github.com/vovakirdan/chase-arcade/internal/storage"
)

var (
	flagScoreLimit int
	flagRuns       bool
	flagClear      bool
	flagRunID      string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.
Without a game, shows a summary of every game.

Examples:
  arcade scores
  arcade scores pacman
  arcade scores marcopolo --runs
  arcade scores pacman --limit 0     # every score
  arcade scores --run <run-id>
  arcade scores pacman --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of entries to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs instead of top scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the game")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by ID")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagRunID != "" {
		return printRun(out, store, flagRunID)
	}
	if len(args) == 0 {
		return printSummary(out, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared scores for %s\n", title)
		return nil
	}

	if flagRuns {
		return printRuns(out, store, gameID, title)
	}

	scores, err := store.TopScores(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(out, "Best: %d  Games: %d  Wins: %d  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

// printSummary lists every registered game with its stats.
func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Fprintf(out, "Scores Summary\n\n")
	fmt.Fprintf(out, "  %-12s  %-8s  %-6s  %-5s  %s\n", "Game", "Best", "Games", "Wins", "Last played")
	fmt.Fprintf(out, "  %-12s  %-8s  %-6s  %-5s  %s\n", "----", "----", "-----", "----", "-----------")
	for _, g := range registry.List() {
		gs, ok := stats[g.ID]
		if !ok {
			fmt.Fprintf(out, "  %-12s  %-8s  %-6d  %-5d  %s\n", g.ID, "-", 0, 0, "never")
			continue
		}
		fmt.Fprintf(out, "  %-12s  %-8d  %-6d  %-5d  %s\n",
			g.ID, gs.HighScore, gs.GamesCount, gs.Wins, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(out io.Writer, store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Fprintf(out, "Run %s\n\n", run.ID)
	fmt.Fprintf(out, "  Game:     %s\n", run.GameID)
	fmt.Fprintf(out, "  Score:    %d\n", run.Score)
	fmt.Fprintf(out, "  Level:    %d\n", run.Level)
	fmt.Fprintf(out, "  Result:   %s\n", strings.ReplaceAll(run.Reason, "_", " "))
	fmt.Fprintf(out, "  Time:     %s\n", run.Duration.Round(time.Second))
	fmt.Fprintf(out, "  Date:     %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printRuns(out io.Writer, store *storage.Store, gameID, title string) error {
	runs, err := store.RecentRuns(gameID, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(out, "Recent Runs - %s\n\n", title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-36s  %-10s  %-5s  %-10s  %-8s  %s\n", "ID", "Score", "Level", "Result", "Time", "Date")
	fmt.Fprintf(out, "  %-36s  %-10s  %-5s  %-10s  %-8s  %s\n", "--", "-----", "-----", "------", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-36s  %-10d  %-5d  %-10s  %-8s  %s\n",
			r.ID, r.Score, r.Level, strings.ReplaceAll(r.Reason, "_", " "),
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
