// platformer is a side-scrolling platformer that runs in the terminal.
//
// Usage:
//
//	platformer list              - List available levels
//	platformer play <level>      - Play a level
//	platformer menu              - Pick levels interactively
//	platformer scores [level]    - Show leaderboards and statistics
//	platformer serve             - Start SSH server for remote play
//	platformer validate <path>   - Check level files and a config file
//
// Global flags:
//
//	--config <path>      - Tuning YAML (default: search ~/.platformer/configs, ./configs)
//	--levels <dir>       - Extra level files, overriding built-ins with the same id
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--seed <value>       - RNG seed for roof crack patterns (0 = from config)
//	--db <path>          - Database path (default: ~/.platformer/platformer.db)
//	--debug              - Write debug logs to ~/.platformer/debug.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - run, jump and collect coins in your terminal",
	Long: `Platformer is a side-scrolling platform game for the terminal.

Reach the flag at the end of each level. Coins are optional, but only
runs that finish with 15 or more coins make the leaderboard.

Available commands:
  list      - Show all levels
  play      - Play a specific level directly
  menu      - Interactive level picker
  scores    - Leaderboards and statistics
  serve     - Start SSH server for remote play
  validate  - Check level and config files

Examples:
  platformer list
  platformer play level1
  platformer menu --difficulty easy
  platformer serve --ssh :2222 --levels ./levels
  platformer scores level2`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/platformer.db", "Path to runs database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.platformer/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}
