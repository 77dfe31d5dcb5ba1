package level

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Roof tuning defaults.
const (
	DefaultBreakRate      = 0.02
	DefaultStandTolerance = 5.0
	DefaultCrackCount     = 8

	// crackStart is the progress a roof jumps to when it starts breaking.
	crackStart = 0.01
)

// RoofState is the lifecycle of a breakable roof within one attempt.
type RoofState int

const (
	RoofIntact RoofState = iota
	RoofBreaking
	RoofBroken
)

// String returns the state name.
func (s RoofState) String() string {
	switch s {
	case RoofIntact:
		return "intact"
	case RoofBreaking:
		return "breaking"
	case RoofBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// RoofParams tunes how a roof breaks.
type RoofParams struct {
	BreakRate      float64
	StandTolerance float64
	CrackCount     int
}

// DefaultRoofParams returns the stock roof tuning.
func DefaultRoofParams() RoofParams {
	return RoofParams{
		BreakRate:      DefaultBreakRate,
		StandTolerance: DefaultStandTolerance,
		CrackCount:     DefaultCrackCount,
	}
}

// Crack is one decorative fracture line, relative to the roof's top-left.
type Crack struct {
	OffsetX float64
	OffsetY float64
	Length  float64
	Angle   float64
}

// BreakableRoof crumbles while the player stands on it.
// Progress never decreases; once Broken the roof stays gone until the level
// is rebuilt.
type BreakableRoof struct {
	core.Rect

	Progress float64
	Broken   bool
	Cracks   []Crack

	params RoofParams
}

// NewBreakableRoof creates an intact roof. Cracks are drawn from rng so the
// same seed yields the same pattern.
func NewBreakableRoof(r core.Rect, params RoofParams, rng *rand.Rand) *BreakableRoof {
	if params.BreakRate <= 0 {
		params.BreakRate = DefaultBreakRate
	}
	if params.StandTolerance <= 0 {
		params.StandTolerance = DefaultStandTolerance
	}
	if params.CrackCount < 0 {
		params.CrackCount = 0
	}

	roof := &BreakableRoof{Rect: r, params: params}
	roof.Cracks = make([]Crack, params.CrackCount)
	for i := range roof.Cracks {
		roof.Cracks[i] = Crack{
			OffsetX: rng.Float64() * r.W,
			OffsetY: rng.Float64() * r.H,
			Length:  10 + rng.Float64()*20,
			Angle:   rng.Float64() * math.Pi * 2,
		}
	}
	return roof
}

func (r *BreakableRoof) Kind() Kind                   { return KindRoof }
func (r *BreakableRoof) Position() (float64, float64) { return r.X, r.Y }
func (r *BreakableRoof) Bounds() core.Rect            { return r.Rect }

// Params returns the roof tuning.
func (r *BreakableRoof) Params() RoofParams {
	return r.params
}

// State derives the lifecycle state from progress.
func (r *BreakableRoof) State() RoofState {
	switch {
	case r.Broken:
		return RoofBroken
	case r.Progress > 0:
		return RoofBreaking
	default:
		return RoofIntact
	}
}

// Solid reports whether the roof still blocks movement.
func (r *BreakableRoof) Solid() bool {
	return !r.Broken
}

// StartBreaking moves an intact roof into Breaking.
// Returns true only on that transition.
func (r *BreakableRoof) StartBreaking() bool {
	if r.State() != RoofIntact {
		return false
	}
	r.Progress = crackStart
	return true
}

// Update advances a breaking roof by one tick.
func (r *BreakableRoof) Update() {
	if r.State() != RoofBreaking {
		return
	}
	r.Progress += r.params.BreakRate
	if r.Progress >= 1 {
		r.Progress = 1
		r.Broken = true
	}
}

// IsStandingOn reports whether a body's feet rest on the roof's top surface.
// A broken roof has no surface.
func (r *BreakableRoof) IsStandingOn(body core.Rect) bool {
	if r.Broken {
		return false
	}
	feet := body.Bottom()
	if math.Abs(feet-r.Y) > r.params.StandTolerance {
		return false
	}
	return body.Right() > r.X && body.X < r.Right()
}

// DrawAt draws the roof slab and its cracks scaled by progress.
func (r *BreakableRoof) DrawAt(c core.Canvas, sx, sy float64) {
	if r.Broken {
		return
	}

	c.FillRect(sx, sy, r.W, r.H, core.InkRoof)
	if r.Progress <= 0 {
		return
	}

	for _, cr := range r.Cracks {
		length := cr.Length * r.Progress
		x0 := sx + cr.OffsetX
		y0 := sy + cr.OffsetY
		dx, dy := math.Cos(cr.Angle), math.Sin(cr.Angle)
		c.Line(x0, y0, x0+dx*length, y0+dy*length, core.InkCrack)

		if r.Progress > 0.5 {
			bx := x0 + dx*length*0.6
			by := y0 + dy*length*0.6
			branch := cr.Angle + math.Pi/4
			c.Line(bx, by, bx+math.Cos(branch)*length*0.3, by+math.Sin(branch)*length*0.3, core.InkCrack)
		}
	}
}
