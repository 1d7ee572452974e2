package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-zigzag/internal/platform/tui"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

var (
	flagInteractive bool
	flagRunID       string
	flagClear       bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs.

Examples:
  zigzag scores
  zigzag scores --limit 25
  zigzag scores --interactive
  zigzag scores --run 0b6c2f0e-8d1e-4a57-9f43-2d7f5b0c9a11
  zigzag scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show details of one run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete run history (keeps coins and unlocks)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
	case flagRunID != "":
		showRun(store, flagRunID)
	case flagInteractive:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		listScores(store)
	}
}

func listScores(store *storage.Store) {
	// Get top scores
	scores, err := store.TopScores(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Neon Zigzag")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'zigzag play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-10s  %s\n", "Rank", "Score", "Coins", "Time", "Style", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %-10s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-7s  %-10s  %s\n",
			i+1, entry.Score, entry.Coins, formatMinSec(entry.Duration.Seconds()), entry.Style, dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Average: %.0f   Coins earned: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalCoins)
	}
}

func showRun(store *storage.Store, id string) {
	runID, err := uuid.Parse(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q: %v\n", id, err)
		os.Exit(1)
	}

	entry, err := store.Run(runID)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run %s\n", runID)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}

	sum := entry.Summary
	fmt.Printf("Run %s\n", entry.RunID)
	fmt.Println()
	fmt.Printf("  Played      %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Score       %.1f\n", sum.Score)
	fmt.Printf("  Coins       %d\n", sum.Coins)
	fmt.Printf("  Time        %s\n", formatMinSec(sum.Duration.Seconds()))
	fmt.Printf("  Max combo   x%.1f\n", sum.MaxCombo)
	fmt.Printf("  Lives lost  %d\n", sum.LivesLost)
	fmt.Printf("  Bounces     %d\n", sum.Bounces)
	fmt.Printf("  Style       %s\n", sum.Style)
}

// formatMinSec formats seconds as m:ss.
func formatMinSec(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
