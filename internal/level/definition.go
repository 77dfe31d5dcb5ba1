package level

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrInvalidDefinition is returned when level data fails validation.
var ErrInvalidDefinition = errors.New("invalid level definition")

// DefaultBackground is used when a definition sets no background color.
const DefaultBackground = "#1e293b"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Point is a world-space position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Box is a rectangle as written in level files.
type Box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect converts the box to a geometry rectangle.
func (b Box) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// CoinSpec is a coin as written in level files.
type CoinSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// Definition is the immutable description a Level is built from.
type Definition struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Width           float64    `yaml:"width"`
	Height          float64    `yaml:"height"`
	Difficulty      int        `yaml:"difficulty"`
	PlayerStart     Point      `yaml:"player_start"`
	Platforms       []Box      `yaml:"platforms"`
	Coins           []CoinSpec `yaml:"coins"`
	Obstacles       []Box      `yaml:"obstacles"`
	Finish          Box        `yaml:"finish"`
	BreakableRoof   *Box       `yaml:"breakable_roof,omitempty"`
	BackgroundColor string     `yaml:"background_color,omitempty"`
	// RoofBreakRate overrides the roof progress per tick when positive.
	RoofBreakRate float64 `yaml:"roof_break_rate,omitempty"`
}

// Background returns the level background color, falling back to the default.
func (d Definition) Background() string {
	if d.BackgroundColor == "" {
		return DefaultBackground
	}
	return d.BackgroundColor
}

// Clone returns a deep copy so callers cannot alias registry data.
func (d Definition) Clone() Definition {
	out := d
	out.Platforms = slices.Clone(d.Platforms)
	out.Coins = slices.Clone(d.Coins)
	out.Obstacles = slices.Clone(d.Obstacles)
	if d.BreakableRoof != nil {
		roof := *d.BreakableRoof
		out.BreakableRoof = &roof
	}
	return out
}

// Validate checks that the definition can be played.
// All problems are reported together, each wrapping ErrInvalidDefinition.
func (d Definition) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...)))
	}

	if d.ID == "" {
		fail("missing id")
	}
	if d.Width <= 0 || d.Height <= 0 {
		fail("level %q: size %vx%v must be positive", d.ID, d.Width, d.Height)
	}
	if d.Difficulty < 1 || d.Difficulty > 3 {
		fail("level %q: difficulty %d not in 1..3", d.ID, d.Difficulty)
	}
	if d.PlayerStart.X < 0 || d.PlayerStart.X > d.Width || d.PlayerStart.Y < 0 || d.PlayerStart.Y > d.Height {
		fail("level %q: player start (%v, %v) outside level", d.ID, d.PlayerStart.X, d.PlayerStart.Y)
	}

	for i, b := range d.Platforms {
		if b.Width <= 0 || b.Height <= 0 {
			fail("level %q: platform %d has empty size", d.ID, i)
		}
	}
	for i, b := range d.Obstacles {
		if b.Width <= 0 || b.Height <= 0 {
			fail("level %q: obstacle %d has empty size", d.ID, i)
		}
	}
	for i, c := range d.Coins {
		if c.Radius <= 0 {
			fail("level %q: coin %d has non-positive radius", d.ID, i)
		}
	}
	if d.Finish.Width <= 0 || d.Finish.Height <= 0 {
		fail("level %q: finish has empty size", d.ID)
	}
	if d.BreakableRoof != nil && (d.BreakableRoof.Width <= 0 || d.BreakableRoof.Height <= 0) {
		fail("level %q: breakable roof has empty size", d.ID)
	}
	if d.BackgroundColor != "" && !hexColor.MatchString(d.BackgroundColor) {
		fail("level %q: background color %q is not #rrggbb", d.ID, d.BackgroundColor)
	}
	if d.RoofBreakRate < 0 || d.RoofBreakRate > 1 {
		fail("level %q: roof break rate %v not in [0, 1]", d.ID, d.RoofBreakRate)
	}

	return errors.Join(errs...)
}
