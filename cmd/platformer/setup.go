package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// loadTuning reads the config file and applies --difficulty and --seed.
func loadTuning() (config.PlatformerConfig, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagSeed != 0 {
		cfg.Loop.Seed = flagSeed
	}
	return cfg, nil
}

// loadRegistry returns the built-in levels plus --levels, if given.
// Broken files in --levels are logged and skipped.
func loadRegistry(logger *log.Logger) (*level.Registry, error) {
	reg, err := level.NewBuiltinRegistry()
	if err != nil {
		return nil, fmt.Errorf("cannot load built-in levels: %w", err)
	}
	if flagLevelsDir == "" {
		return reg, nil
	}

	n, err := reg.LoadDir(flagLevelsDir)
	if err != nil {
		if n == 0 {
			return nil, fmt.Errorf("cannot load levels from %s: %w", flagLevelsDir, err)
		}
		logger.Warn("some level files were skipped", "dir", flagLevelsDir, "error", err)
	}
	logger.Debug("loaded levels", "dir", flagLevelsDir, "count", n)
	return reg, nil
}

// openStore opens the runs database; the game works without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// newLogger returns a discarding logger unless --debug is set, in which case
// logs go to a file so they do not tear the alt screen.
func newLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".platformer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "platformer",
	})
	return logger, func() { f.Close() }
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// gameOptions bundles everything a terminal game needs.
func gameOptions(reg *level.Registry, store *storage.Store, tuning config.PlatformerConfig, logger *log.Logger) tui.GameOptions {
	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = terminalSize()

	player := os.Getenv("USER")
	return tui.GameOptions{
		Registry: reg,
		Store:    store,
		Config:   tuning,
		Runtime:  rt,
		Player:   player,
		Logger:   logger,
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
