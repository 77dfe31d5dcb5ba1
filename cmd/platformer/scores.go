package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show leaderboards and statistics",
	Long: `Display the fastest completed runs with at least 15 coins.

Without a level, the leaderboard spans every level and overall totals are
shown. With a level, its attempt statistics and personal best are shown too.

Examples:
  platformer scores
  platformer scores level2
  platformer scores --recent
  platformer scores level1 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of runs to show (0 = config leaderboard.limit)")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent attempts instead")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history of the given level")
}

func runScores(_ *cobra.Command, args []string) {
	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	logger, closeLog := newLogger()
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		exitf("%v", err)
	}
	reg, err := loadRegistry(logger)
	if err != nil {
		exitf("%v", err)
	}

	title := "All levels"
	if levelID != "" {
		def, ok := reg.Get(levelID)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
			fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
			os.Exit(1)
		}
		title = def.Name
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening runs database: %v", err)
	}
	defer store.Close()

	limit := flagScoresLimit
	if limit <= 0 {
		limit = tuning.Leaderboard.Limit
	}

	switch {
	case flagScoresClear:
		if levelID == "" {
			exitf("--clear needs a level")
		}
		if err := store.ClearLevel(levelID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Cleared history of %s.\n", title)

	case flagScoresRecent:
		printRecent(store, limit)

	default:
		printLeaderboard(store, levelID, title, limit)
	}
}

func printLeaderboard(store *storage.Store, levelID, title string, limit int) {
	entries, err := store.Leaderboard(levelID, sim.QualifyingCoins, limit)
	if err != nil {
		exitf("retrieving leaderboard: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", title)
	fmt.Printf("Completed runs with %d or more coins\n", sim.QualifyingCoins)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No qualifying runs yet.")
	} else {
		fmt.Printf("  %-4s  %-12s  %-10s  %5s  %8s  %s\n", "Rank", "Player", "Level", "Coins", "Time", "When")
		fmt.Printf("  %-4s  %-12s  %-10s  %5s  %8s  %s\n", "----", "------", "-----", "-----", "----", "----")
		for i, e := range entries {
			player := e.Player
			if player == "" {
				player = "anonymous"
			}
			fmt.Printf("  %-4d  %-12s  %-10s  %5d  %8s  %s\n",
				i+1, player, e.LevelID, e.Coins, formatMs(e.TimeMs), humanize.Time(e.CreatedAt))
		}
	}
	fmt.Println()

	if levelID == "" {
		printTotals(store)
		return
	}

	st, err := store.LevelStats(levelID)
	if err != nil {
		exitf("retrieving level stats: %v", err)
	}
	if st == nil {
		fmt.Printf("Play 'platformer play %s' to set the first run!\n", levelID)
		return
	}
	fmt.Printf("Attempts: %s, completed: %s\n", humanize.Comma(int64(st.Attempts)), humanize.Comma(int64(st.Completions)))
	if st.HasBestTime {
		fmt.Printf("Personal best: %s with %d coins\n", formatMs(st.BestTimeMs), st.BestCoins)
	}
	if !st.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", humanize.Time(st.LastPlayed))
	}
}

func printTotals(store *storage.Store) {
	totals, err := store.Totals()
	if err != nil {
		exitf("retrieving totals: %v", err)
	}
	play := time.Duration(totals.PlayTimeMs) * time.Millisecond
	fmt.Printf("Total time in completed runs: %s\n", play.Round(time.Second))
	fmt.Printf("Total coins in completed runs: %s\n", humanize.Comma(totals.Coins))
}

func printRecent(store *storage.Store, limit int) {
	attempts, err := store.RecentAttempts(limit)
	if err != nil {
		exitf("retrieving attempts: %v", err)
	}

	fmt.Println("Recent attempts")
	fmt.Println()
	if len(attempts) == 0 {
		fmt.Println("No attempts recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-12s  %-6s  %8s  %-8s  %s\n", "Level", "Player", "Coins", "Time", "Result", "When")
	fmt.Printf("  %-10s  %-12s  %-6s  %8s  %-8s  %s\n", "-----", "------", "-----", "----", "------", "----")
	for _, a := range attempts {
		result, dur := "lost", "-"
		if a.Completed {
			result, dur = "won", formatMs(a.TimeMs)
		}
		fmt.Printf("  %-10s  %-12s  %-6s  %8s  %-8s  %s\n",
			a.LevelID, a.Player, fmt.Sprintf("%d/%d", a.Coins, a.TotalCoins), dur, result, humanize.Time(a.CreatedAt))
	}
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%.1fs", (time.Duration(ms) * time.Millisecond).Seconds())
}
