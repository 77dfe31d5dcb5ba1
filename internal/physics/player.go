// Package physics implements the player body, its per-tick integrator and the
// least-penetration collision resolver used against level geometry.
package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Default body size and tuning, in world units per tick.
const (
	PlayerWidth  = 40
	PlayerHeight = 60

	DefaultGravity      = 0.16
	DefaultFriction     = 0.8
	DefaultSpeed        = 3.2
	DefaultJumpStrength = 5.5
)

// Params holds the movement rules of a body.
type Params struct {
	Gravity      float64
	Friction     float64
	Speed        float64
	JumpStrength float64
}

// DefaultParams returns the stock movement rules.
func DefaultParams() Params {
	return Params{
		Gravity:      DefaultGravity,
		Friction:     DefaultFriction,
		Speed:        DefaultSpeed,
		JumpStrength: DefaultJumpStrength,
	}
}

// Player is the player-controlled body.
type Player struct {
	X, Y    float64
	W, H    float64
	VX, VY  float64
	CanJump bool

	params Params
}

// NewPlayer creates a player at rest with its top-left at (x, y).
func NewPlayer(x, y float64, params Params) *Player {
	return &Player{
		X:      x,
		Y:      y,
		W:      PlayerWidth,
		H:      PlayerHeight,
		params: params,
	}
}

// Params returns the movement rules this body was built with.
func (p *Player) Params() Params {
	return p.params
}

// Bounds returns the body's bounding box.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Center returns the center of the body.
func (p *Player) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// MoveLeft sets leftward velocity.
func (p *Player) MoveLeft() {
	p.VX = -p.params.Speed
}

// MoveRight sets rightward velocity.
func (p *Player) MoveRight() {
	p.VX = p.params.Speed
}

// Jump launches the body upward if it is grounded.
// Reports whether the jump fired.
func (p *Player) Jump() bool {
	if !p.CanJump {
		return false
	}
	p.VY = -p.params.JumpStrength
	p.CanJump = false
	return true
}

// ApplyInput sets velocities from held actions and attempts a jump.
// Right is applied after left, so holding both moves right.
// Reports whether a jump fired.
func (p *Player) ApplyInput(in core.InputFrame) bool {
	if in.Has(core.ActionLeft) {
		p.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		p.MoveRight()
	}
	if in.Has(core.ActionJump) {
		return p.Jump()
	}
	return false
}

// ApplyGravity accelerates the body downward by one tick of gravity.
func (p *Player) ApplyGravity() {
	p.VY += p.params.Gravity
}

// Integrate advances the body by one tick: gravity, friction decay of the
// horizontal velocity, position update, then the horizontal clamp into
// [0, levelWidth - W]. There is no vertical clamp.
func (p *Player) Integrate(levelWidth float64) {
	p.ApplyGravity()
	p.VX *= p.params.Friction
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 {
		p.X = 0
	} else if p.X+p.W > levelWidth {
		p.X = levelWidth - p.W
	}
}
