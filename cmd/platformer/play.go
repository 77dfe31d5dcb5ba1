package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  P                - Pause
  R/Enter          - Restart (after winning or losing)
  B/Esc            - Back to the level list (when paused or finished)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty presets:
  easy    - Higher jumps, roofs crack slower
  normal  - Tuning as configured
  hard    - Roofs crack faster

Examples:
  platformer play level1
  platformer play level3 --difficulty easy
  platformer play mylevel --levels ./levels
  platformer play level1 --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	levelID := args[0]

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
	if !reg.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		os.Exit(1)
	}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	opts := gameOptions(reg, store, tuning, logger)
	backToMenu, err := tui.Run(levelID, opts)
	switch {
	case errors.Is(err, sim.ErrInvalidRenderTarget):
		fmt.Fprintln(os.Stderr, "Error: terminal is too small to play")
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		return
	}

	if backToMenu {
		menuLoop(reg, store, tuning, logger)
	}
}
