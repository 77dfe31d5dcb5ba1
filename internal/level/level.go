package level

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Viewport is what Draw needs from a camera.
type Viewport interface {
	IsVisible(r core.Rect) bool
	WorldToScreen(x, y float64) (float64, float64)
}

// Level is one playthrough instance built from a Definition.
// Coins shrink as they are picked up; everything else is static except the
// roof. Build a new Level to restart.
type Level struct {
	ID          string
	Name        string
	Width       float64
	Height      float64
	Difficulty  int
	PlayerStart Point
	Background  string

	Platforms []Platform
	Coins     []Coin
	Obstacles []Obstacle
	Finish    Finish
	Roof      *BreakableRoof

	totalCoins int
}

// New builds a fresh level. A positive RoofBreakRate on the definition
// overrides params.BreakRate. rng seeds the roof cracks; nil uses seed 0.
func New(def Definition, params RoofParams, rng *rand.Rand) *Level {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	l := &Level{
		ID:          def.ID,
		Name:        def.Name,
		Width:       def.Width,
		Height:      def.Height,
		Difficulty:  def.Difficulty,
		PlayerStart: def.PlayerStart,
		Background:  def.Background(),
		Platforms:   make([]Platform, len(def.Platforms)),
		Coins:       make([]Coin, len(def.Coins)),
		Obstacles:   make([]Obstacle, len(def.Obstacles)),
		Finish:      Finish{Rect: def.Finish.Rect()},
		totalCoins:  len(def.Coins),
	}

	for i, b := range def.Platforms {
		l.Platforms[i] = Platform{Rect: b.Rect()}
	}
	for i, c := range def.Coins {
		l.Coins[i] = Coin{Circle: core.Circle{X: c.X, Y: c.Y, R: c.Radius}}
	}
	for i, b := range def.Obstacles {
		l.Obstacles[i] = Obstacle{Rect: b.Rect()}
	}

	if def.BreakableRoof != nil {
		if def.RoofBreakRate > 0 {
			params.BreakRate = def.RoofBreakRate
		}
		l.Roof = NewBreakableRoof(def.BreakableRoof.Rect(), params, rng)
	}

	return l
}

// TotalCoins returns how many coins the level started with.
func (l *Level) TotalCoins() int {
	return l.totalCoins
}

// CoinsLeft returns how many coins are still in play.
func (l *Level) CoinsLeft() int {
	return len(l.Coins)
}

// RemoveCoin drops the coin at index i. Out-of-range indexes are ignored.
func (l *Level) RemoveCoin(i int) bool {
	if i < 0 || i >= len(l.Coins) {
		return false
	}
	l.Coins = append(l.Coins[:i], l.Coins[i+1:]...)
	return true
}

// Colliders returns the solid rectangles the player resolves against, in
// resolution order: platforms first, then the roof while it stands.
func (l *Level) Colliders() []core.Rect {
	rects := make([]core.Rect, 0, len(l.Platforms)+1)
	for _, p := range l.Platforms {
		rects = append(rects, p.Rect)
	}
	if l.Roof != nil && l.Roof.Solid() {
		rects = append(rects, l.Roof.Rect)
	}
	return rects
}

// ObstacleRects returns the lethal rectangles.
func (l *Level) ObstacleRects() []core.Rect {
	rects := make([]core.Rect, len(l.Obstacles))
	for i, o := range l.Obstacles {
		rects[i] = o.Rect
	}
	return rects
}

// CheckPlayerOnRoof starts breaking the roof when body stands on it.
// Returns true on the tick the roof first cracks.
func (l *Level) CheckPlayerOnRoof(body core.Rect) bool {
	if l.Roof == nil || !l.Roof.IsStandingOn(body) {
		return false
	}
	return l.Roof.StartBreaking()
}

// Update advances per-tick level state.
func (l *Level) Update() {
	if l.Roof != nil {
		l.Roof.Update()
	}
}

// Entities lists everything drawable in draw order:
// platforms, coins, obstacles, finish, then the roof unless broken.
func (l *Level) Entities() []Entity {
	out := make([]Entity, 0, len(l.Platforms)+len(l.Coins)+len(l.Obstacles)+2)
	for _, p := range l.Platforms {
		out = append(out, p)
	}
	for _, c := range l.Coins {
		out = append(out, c)
	}
	for _, o := range l.Obstacles {
		out = append(out, o)
	}
	out = append(out, l.Finish)
	if l.Roof != nil && !l.Roof.Broken {
		out = append(out, l.Roof)
	}
	return out
}

// Draw renders every visible entity through the viewport.
// The caller clears the canvas first.
func (l *Level) Draw(c core.Canvas, vp Viewport) {
	for _, e := range l.Entities() {
		if !vp.IsVisible(e.Bounds()) {
			continue
		}
		sx, sy := vp.WorldToScreen(e.Position())
		e.DrawAt(c, sx, sy)
	}
}
