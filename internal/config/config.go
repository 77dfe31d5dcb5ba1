// Package config provides YAML-based tuning for the platformer: movement
// physics, camera easing, roof breaking, the frame gate and leaderboards.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// PlatformerConfig contains all tuning for the platformer.
type PlatformerConfig struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Camera      CameraConfig      `yaml:"camera"`
	Roof        RoofConfig        `yaml:"roof"`
	Loop        LoopConfig        `yaml:"loop"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// PhysicsConfig defines the player's movement rules, per tick.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	Friction     float64 `yaml:"friction"`
	Speed        float64 `yaml:"speed"`
	JumpStrength float64 `yaml:"jump_strength"`
}

// CameraConfig defines how the viewport follows the player.
type CameraConfig struct {
	FollowSpeed float64 `yaml:"follow_speed"` // fraction of the gap closed per tick
}

// RoofConfig defines how breakable roofs crack.
type RoofConfig struct {
	BreakRate      float64 `yaml:"break_rate"`      // progress added per tick once breaking
	StandTolerance float64 `yaml:"stand_tolerance"` // max distance between feet and roof top
	CrackCount     int     `yaml:"crack_count"`
}

// LoopConfig defines the frame gate.
type LoopConfig struct {
	MinFrameDeltaMs int   `yaml:"min_frame_delta_ms"`
	TickRateMs      int   `yaml:"tick_rate_ms"` // how often the terminal host schedules a frame
	Seed            int64 `yaml:"seed"`
}

// LeaderboardConfig defines how leaderboards are shown.
// Which runs qualify is fixed by sim.Qualifies.
type LeaderboardConfig struct {
	Limit int `yaml:"limit"`
}

// DifficultyConfig holds per-level-difficulty overrides.
type DifficultyConfig struct {
	JumpStrength map[int]float64 `yaml:"jump_strength"` // keyed by level difficulty 1-3
}

// Validate reports every out-of-range value.
func (c PlatformerConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Physics.Gravity <= 0 {
		bad("physics.gravity must be positive")
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		bad("physics.friction must be in (0, 1]")
	}
	if c.Physics.Speed <= 0 {
		bad("physics.speed must be positive")
	}
	if c.Physics.JumpStrength <= 0 {
		bad("physics.jump_strength must be positive")
	}
	if c.Camera.FollowSpeed <= 0 || c.Camera.FollowSpeed > 1 {
		bad("camera.follow_speed must be in (0, 1]")
	}
	if c.Roof.BreakRate <= 0 || c.Roof.BreakRate > 1 {
		bad("roof.break_rate must be in (0, 1]")
	}
	if c.Roof.StandTolerance <= 0 {
		bad("roof.stand_tolerance must be positive")
	}
	if c.Roof.CrackCount < 0 {
		bad("roof.crack_count must not be negative")
	}
	if c.Loop.MinFrameDeltaMs < 0 {
		bad("loop.min_frame_delta_ms must not be negative")
	}
	if c.Leaderboard.Limit < 0 {
		bad("leaderboard.limit must not be negative")
	}
	for d, j := range c.Difficulty.JumpStrength {
		if d < 1 || d > 3 {
			bad("difficulty.jump_strength: unknown difficulty %d", d)
		}
		if j <= 0 {
			bad("difficulty.jump_strength[%d] must be positive", d)
		}
	}

	return errors.Join(errs...)
}

// PhysicsParams converts the physics section.
func (c PlatformerConfig) PhysicsParams() physics.Params {
	return physics.Params{
		Gravity:      c.Physics.Gravity,
		Friction:     c.Physics.Friction,
		Speed:        c.Physics.Speed,
		JumpStrength: c.Physics.JumpStrength,
	}
}

// RoofParams converts the roof section.
func (c PlatformerConfig) RoofParams() level.RoofParams {
	return level.RoofParams{
		BreakRate:      c.Roof.BreakRate,
		StandTolerance: c.Roof.StandTolerance,
		CrackCount:     c.Roof.CrackCount,
	}
}

// TickRate returns the host frame interval.
func (c PlatformerConfig) TickRate() time.Duration {
	if c.Loop.TickRateMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.Loop.TickRateMs) * time.Millisecond
}

// SimConfig builds the simulation tuning.
func (c PlatformerConfig) SimConfig() sim.Config {
	jumps := make(map[int]float64, len(c.Difficulty.JumpStrength))
	for d, j := range c.Difficulty.JumpStrength {
		jumps[d] = j
	}

	return sim.Config{
		Physics:          c.PhysicsParams(),
		Roof:             c.RoofParams(),
		FollowSpeed:      c.Camera.FollowSpeed,
		MinFrameDelta:    time.Duration(c.Loop.MinFrameDeltaMs) * time.Millisecond,
		JumpByDifficulty: jumps,
		Seed:             c.Loop.Seed,
	}
}
