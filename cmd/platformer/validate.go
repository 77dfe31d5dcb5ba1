package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check level files and the tuning config",
	Long: `Parse and validate level files or directories of level files.

The tuning config (--config, or the first one found in the search path)
is always checked too. Exits non-zero if anything is invalid.

Examples:
  platformer validate ./levels
  platformer validate mylevel.yaml other.yaml
  platformer validate --config ./my-tuning.yaml`,
	Run: runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := false

	_, err := loadTuning()
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		fmt.Printf("config: invalid\n%v\n", err)
		failed = true
	case err != nil:
		fmt.Printf("config: %v\n", err)
		failed = true
	default:
		fmt.Println("config: ok")
	}

	for _, path := range args {
		if err := validatePath(path); err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func validatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		def, err := level.LoadFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%s, %d coins)\n", path, def.ID, len(def.Coins))
		return nil
	}

	defs, err := level.LoadDir(path)
	for _, def := range defs {
		fmt.Printf("%s: level %s ok (%d coins)\n", path, def.ID, len(def.Coins))
	}
	if err == nil && len(defs) == 0 {
		return errors.New("no level files")
	}
	return err
}
