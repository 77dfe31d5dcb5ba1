package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named player-chosen difficulty.
// It is independent of the per-level difficulty in level definitions.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Preset adjustments.
const (
	easyJumpBonus      = 0.5
	easyBreakRateScale = 0.5
	hardBreakRateScale = 1.5
)

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy jumps higher and roofs crumble slower; hard roofs crumble faster.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.JumpStrength += easyJumpBonus
		for d := range cfg.Difficulty.JumpStrength {
			cfg.Difficulty.JumpStrength[d] += easyJumpBonus
		}
		cfg.Roof.BreakRate *= easyBreakRateScale
	case DifficultyHard:
		cfg.Roof.BreakRate = math.Min(1, cfg.Roof.BreakRate*hardBreakRateScale)
	}
}
