package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from a menu",
	Long: `Start the platformer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a level.
Back out of a finished or paused level to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Leaderboard
  Q            - Quit

Examples:
  platformer menu
  platformer menu --difficulty hard
  platformer menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	menuLoop(reg, store, tuning, logger)
}

// menuLoop alternates between the menu, leaderboard and levels until the
// player quits.
func menuLoop(reg *level.Registry, store *storage.Store, tuning config.PlatformerConfig, logger *log.Logger) {
	opts := gameOptions(reg, store, tuning, logger)

	for {
		result, err := tui.RunMenu(reg, store, opts.Runtime.ScreenW, opts.Runtime.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = result.Width, result.Height

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(reg, store, tuning.Leaderboard.Limit, result.Width, result.Height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case result.LevelID != "":
			backToMenu, runErr := tui.Run(result.LevelID, opts)
			if runErr != nil {
				logger.Error("level failed", "level", result.LevelID, "error", runErr)
				fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
				continue
			}
			if !backToMenu {
				return
			}

		default:
			return
		}
	}
}
