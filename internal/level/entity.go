// Package level holds the static geometry of one playthrough: platforms,
// coins, obstacles, the finish and the optional breakable roof.
package level

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Kind tags the closed set of level entities.
type Kind int

const (
	KindPlatform Kind = iota
	KindCoin
	KindObstacle
	KindFinish
	KindRoof
)

// String returns the entity kind name.
func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindCoin:
		return "coin"
	case KindObstacle:
		return "obstacle"
	case KindFinish:
		return "finish"
	case KindRoof:
		return "roof"
	default:
		return "unknown"
	}
}

// Entity is the capability every level element exposes to the renderer.
// Collision semantics live in the physics package and are chosen by Kind.
type Entity interface {
	Kind() Kind
	Position() (x, y float64)
	Bounds() core.Rect
	// DrawAt draws the entity with its top-left corner at screen (sx, sy).
	DrawAt(c core.Canvas, sx, sy float64)
}

// Platform is solid on all four sides.
type Platform struct {
	core.Rect
}

func (p Platform) Kind() Kind                   { return KindPlatform }
func (p Platform) Position() (float64, float64) { return p.X, p.Y }
func (p Platform) Bounds() core.Rect            { return p.Rect }

func (p Platform) DrawAt(c core.Canvas, sx, sy float64) {
	c.FillRect(sx, sy, p.W, p.H, core.InkPlatform)
}

// Coin is a collectible. X/Y is the top-left of its bounding square.
type Coin struct {
	core.Circle
}

func (cn Coin) Kind() Kind                   { return KindCoin }
func (cn Coin) Position() (float64, float64) { return cn.X, cn.Y }

func (cn Coin) DrawAt(c core.Canvas, sx, sy float64) {
	c.FillCircle(sx+cn.R, sy+cn.R, cn.R, core.InkCoin)
}

// Obstacle is lethal on touch and never blocks movement.
type Obstacle struct {
	core.Rect
}

func (o Obstacle) Kind() Kind                   { return KindObstacle }
func (o Obstacle) Position() (float64, float64) { return o.X, o.Y }
func (o Obstacle) Bounds() core.Rect            { return o.Rect }

func (o Obstacle) DrawAt(c core.Canvas, sx, sy float64) {
	c.FillRect(sx, sy, o.W, o.H, core.InkObstacle)
}

// Finish ends the run with a win.
type Finish struct {
	core.Rect
}

func (f Finish) Kind() Kind                   { return KindFinish }
func (f Finish) Position() (float64, float64) { return f.X, f.Y }
func (f Finish) Bounds() core.Rect            { return f.Rect }

// DrawAt draws the finish pad with a flag pole rising from its left side.
func (f Finish) DrawAt(c core.Canvas, sx, sy float64) {
	c.FillRect(sx, sy, f.W, f.H, core.InkFinish)
	c.FillRect(sx+5, sy-50, 5, 50, core.InkPole)
	c.FillRect(sx+10, sy-50, 30, 10, core.InkFlag)
}
