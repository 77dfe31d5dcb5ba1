package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Inward margins applied to the player box for the overlap predicates.
const (
	CoinMargin     = 5
	ObstacleMargin = 2
	FinishMargin   = 10

	// HeadProbeHeight is the height of the band checked above the head.
	HeadProbeHeight = 3
)

// Face is the side of a platform a resolution pushed the player out of.
type Face int

const (
	FaceNone Face = iota
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight
)

// String returns the face name.
func (f Face) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "none"
	}
}

// Resolve pushes the player out of a solid rectangle along the axis of least
// penetration and reports which face it was resolved against.
//
// Depth ties are broken top, bottom, left, right. A face only resolves when
// the body moves into it: top needs VY >= 0, bottom VY < 0, left VX > 0 and
// right VX < 0. Otherwise the overlap is left alone this tick.
func Resolve(p *Player, solid core.Rect) Face {
	if !p.Bounds().Intersects(solid) {
		return FaceNone
	}

	left := p.X + p.W - solid.X
	right := solid.Right() - p.X
	top := p.Y + p.H - solid.Y
	bottom := solid.Bottom() - p.Y

	depth := min(left, right, top, bottom)

	switch {
	case depth == top && p.VY >= 0:
		p.Y = solid.Y - p.H
		p.VY = 0
		return FaceTop
	case depth == bottom && p.VY < 0:
		p.Y = solid.Bottom()
		p.VY = 0
		return FaceBottom
	case depth == left && p.VX > 0:
		p.X = solid.X - p.W
		p.VX = 0
		return FaceLeft
	case depth == right && p.VX < 0:
		p.X = solid.Right()
		p.VX = 0
		return FaceRight
	}
	return FaceNone
}

// ResolvePlatform resolves the player against one platform and reports
// whether the player landed on its top face.
func ResolvePlatform(p *Player, platform core.Rect) bool {
	return Resolve(p, platform) == FaceTop
}

// HeadProbe returns the thin band just above the player's head spanning the
// middle half of its width.
func HeadProbe(p *Player) core.Rect {
	return core.NewRect(p.X+p.W*0.25, p.Y-HeadProbeHeight, p.W*0.5, HeadProbeHeight)
}

// CheckHeadCollision reports whether anything solid or lethal sits directly
// above the player's head.
func CheckHeadCollision(p *Player, platforms, obstacles []core.Rect) bool {
	probe := HeadProbe(p)
	for _, r := range platforms {
		if probe.Intersects(r) {
			return true
		}
	}
	for _, r := range obstacles {
		if probe.Intersects(r) {
			return true
		}
	}
	return false
}

// CheckCoin reports whether the player picks up a coin.
func CheckCoin(p *Player, coin core.Circle) bool {
	return p.Bounds().Inset(CoinMargin).Intersects(coin.Bounds())
}

// CheckObstacle reports whether the player touches a lethal obstacle.
func CheckObstacle(p *Player, obstacle core.Rect) bool {
	return p.Bounds().Inset(ObstacleMargin).Intersects(obstacle)
}

// CheckFinish reports whether the player reached the finish.
func CheckFinish(p *Player, finish core.Rect) bool {
	return p.Bounds().Inset(FinishMargin).Intersects(finish)
}
