package camera

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestFollowEases(t *testing.T) {
	c := New(800, 400, 1600, 500)

	c.Follow(900, 450)

	// Target top-left is (500, 250); one step covers 10% of the distance
	if math.Abs(c.X-50) > 1e-9 {
		t.Errorf("X after one Follow = %v, expected 50", c.X)
	}
	// Y target 250 is clamped to WorldH-ViewportH = 100
	if math.Abs(c.Y-25) > 1e-9 {
		t.Errorf("Y after one Follow = %v, expected 25", c.Y)
	}

	for i := 0; i < 200; i++ {
		c.Follow(900, 450)
	}
	if math.Abs(c.X-500) > 1e-6 {
		t.Errorf("X should converge to 500, got %v", c.X)
	}
	if math.Abs(c.Y-100) > 1e-6 {
		t.Errorf("Y should converge to clamp 100, got %v", c.Y)
	}
}

func TestFollowAlwaysInBounds(t *testing.T) {
	targets := [][2]float64{
		{-5000, -5000},
		{0, 0},
		{800, 250},
		{1600, 500},
		{99999, 99999},
		{-1, 1e6},
	}

	for _, speed := range []float64{0.1, 0.5, 1} {
		c := New(800, 400, 1600, 500)
		c.FollowSpeed = speed
		for _, tg := range targets {
			for i := 0; i < 5; i++ {
				c.Follow(tg[0], tg[1])
				if c.X < 0 || c.X > 800 || c.Y < 0 || c.Y > 100 {
					t.Fatalf("speed %v target %v: camera out of bounds at (%v, %v)", speed, tg, c.X, c.Y)
				}
			}
		}
	}
}

func TestViewportLargerThanWorld(t *testing.T) {
	c := New(2000, 1000, 1600, 500)

	c.Follow(1500, 400)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("oversized viewport should pin to origin, got (%v, %v)", c.X, c.Y)
	}
}

func TestCenterOnSnaps(t *testing.T) {
	c := New(800, 400, 1600, 500)
	c.CenterOn(1000, 300)

	if c.X != 600 || c.Y != 100 {
		t.Errorf("CenterOn = (%v, %v), expected (600, 100)", c.X, c.Y)
	}
}

func TestCoordinateConversion(t *testing.T) {
	c := New(800, 400, 1600, 500)
	c.X, c.Y = 300, 50

	sx, sy := c.WorldToScreen(450, 120)
	if sx != 150 || sy != 70 {
		t.Errorf("WorldToScreen = (%v, %v), expected (150, 70)", sx, sy)
	}

	wx, wy := c.ScreenToWorld(sx, sy)
	if wx != 450 || wy != 120 {
		t.Errorf("ScreenToWorld round trip = (%v, %v)", wx, wy)
	}
}

func TestIsVisible(t *testing.T) {
	c := New(800, 400, 1600, 500)
	c.X, c.Y = 400, 0

	tests := []struct {
		name string
		r    core.Rect
		want bool
	}{
		{"inside", core.NewRect(500, 100, 50, 50), true},
		{"straddling left edge", core.NewRect(380, 100, 50, 50), true},
		{"left of view", core.NewRect(300, 100, 100, 50), false},
		{"right of view", core.NewRect(1200, 100, 50, 50), false},
		{"below view", core.NewRect(500, 400, 50, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.IsVisible(tc.r); got != tc.want {
				t.Errorf("IsVisible(%+v) = %v, expected %v", tc.r, got, tc.want)
			}
		})
	}
}

func TestSetViewportReclamps(t *testing.T) {
	c := New(800, 400, 1600, 500)
	c.X, c.Y = 800, 100

	c.SetViewport(1000, 450)
	if c.X != 600 || c.Y != 50 {
		t.Errorf("after SetViewport camera = (%v, %v), expected (600, 50)", c.X, c.Y)
	}
}
