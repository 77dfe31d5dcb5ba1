package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the built-in levels plus any loaded with --levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	reg, err := loadRegistry(logger)
	if err != nil {
		exitf("%v", err)
	}

	defs := reg.List()
	if len(defs) == 0 {
		fmt.Println("No levels available.")
		return
	}

	var stats map[string]*storage.LevelStats
	if store := openStore(); store != nil {
		if stats, err = store.AllLevelStats(); err != nil {
			logger.Warn("could not read level stats", "error", err)
		}
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, d := range defs {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	fmt.Printf("  %-*s  %-20s  %-10s  %5s  %s\n", maxIDLen, "ID", "Name", "Difficulty", "Coins", "Best")
	fmt.Printf("  %-*s  %-20s  %-10s  %5s  %s\n", maxIDLen, "--", "----", "----------", "-----", "----")

	for _, d := range defs {
		best := "-"
		if st := stats[d.ID]; st != nil && st.HasBestTime {
			best = fmt.Sprintf("%.1fs (%d coins)", (time.Duration(st.BestTimeMs) * time.Millisecond).Seconds(), st.BestCoins)
		}
		fmt.Printf("  %-*s  %-20s  %-10s  %5d  %s\n", maxIDLen, d.ID, d.Name, difficultyName(d.Difficulty), len(d.Coins), best)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
}

func difficultyName(d int) string {
	switch d {
	case 1:
		return "easy"
	case 2:
		return "medium"
	case 3:
		return "hard"
	default:
		return fmt.Sprintf("%d", d)
	}
}
