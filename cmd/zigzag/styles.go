package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-zigzag/internal/runner"
	"github.com/vovakirdan/neon-zigzag/internal/shop"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List trail styles",
	Long: `List every trail style with its price and whether you own it.

Examples:
  zigzag styles
  zigzag styles buy plasma
  zigzag styles use plasma`,
	Args: cobra.NoArgs,
	Run:  runStyles,
}

var stylesBuyCmd = &cobra.Command{
	Use:   "buy <style>",
	Short: "Unlock a trail style with coins",
	Args:  cobra.ExactArgs(1),
	Run:   runStylesBuy,
}

var stylesUseCmd = &cobra.Command{
	Use:   "use <style>",
	Short: "Select an owned trail style",
	Args:  cobra.ExactArgs(1),
	Run:   runStylesUse,
}

func init() {
	stylesCmd.AddCommand(stylesBuyCmd)
	stylesCmd.AddCommand(stylesUseCmd)
}

// openShop opens the store and a silent shop on top of it.
func openShop() (*shop.Shop, *storage.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return shop.New(store, nil), store
}

func runStyles(_ *cobra.Command, _ []string) {
	s, store := openShop()
	defer store.Close()

	items, err := s.Items()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading unlocks: %v\n", err)
		os.Exit(1)
	}
	coins, _ := s.Coins()

	fmt.Printf("Trail Styles - %d coins\n", coins)
	fmt.Println()
	fmt.Printf("  %-8s  %-12s  %-6s  %s\n", "ID", "Name", "Cost", "Status")
	fmt.Printf("  %-8s  %-12s  %-6s  %s\n", "--", "----", "----", "------")

	for _, it := range items {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Style.Colors.Glow)).Render("●")
		status := ""
		switch {
		case it.Selected:
			status = "selected"
		case it.Unlocked:
			status = "owned"
		}
		fmt.Printf("%s %-8s  %-12s  %-6d  %s\n", swatch, it.Style.ID, it.Style.Name, it.Style.Cost, status)
	}
}

func runStylesBuy(_ *cobra.Command, args []string) {
	s, store := openShop()
	defer store.Close()

	id := args[0]
	err := s.Unlock(id)
	switch {
	case errors.Is(err, shop.ErrInsufficientCoins):
		style, _ := runner.StyleByID(id)
		coins, _ := s.Coins()
		fmt.Fprintf(os.Stderr, "Not enough coins: %s costs %d, you have %d\n", style.Name, style.Cost, coins)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	coins, _ := s.Coins()
	fmt.Printf("%s unlocked and selected. %d coins left.\n", s.Selected().Name, coins)
}

func runStylesUse(_ *cobra.Command, args []string) {
	s, store := openShop()
	defer store.Close()

	if err := s.Select(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s selected.\n", s.Selected().Name)
}
