package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the stock platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:      physics.DefaultGravity,
			Friction:     physics.DefaultFriction,
			Speed:        physics.DefaultSpeed,
			JumpStrength: physics.DefaultJumpStrength,
		},
		Camera: CameraConfig{
			FollowSpeed: camera.DefaultFollowSpeed,
		},
		Roof: RoofConfig{
			BreakRate:      level.DefaultBreakRate,
			StandTolerance: level.DefaultStandTolerance,
			CrackCount:     level.DefaultCrackCount,
		},
		Loop: LoopConfig{
			MinFrameDeltaMs: int(sim.DefaultMinFrameDelta.Milliseconds()),
			TickRateMs:      16,
		},
		Leaderboard: LeaderboardConfig{
			Limit: 10,
		},
		Difficulty: DifficultyConfig{
			JumpStrength: map[int]float64{3: sim.HardJumpStrength},
		},
	}
}
