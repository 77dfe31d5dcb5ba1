package level

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func newTestRoof() *BreakableRoof {
	return NewBreakableRoof(core.NewRect(100, 200, 100, 20), DefaultRoofParams(), rand.New(rand.NewSource(1)))
}

func TestRoofLifecycle(t *testing.T) {
	roof := newTestRoof()

	if roof.State() != RoofIntact || roof.Progress != 0 {
		t.Fatalf("new roof state = %v progress = %v", roof.State(), roof.Progress)
	}

	// Updating an intact roof does nothing
	roof.Update()
	if roof.Progress != 0 {
		t.Errorf("intact roof advanced to %v", roof.Progress)
	}

	if !roof.StartBreaking() {
		t.Fatal("first StartBreaking should report the transition")
	}
	if roof.State() != RoofBreaking || roof.Progress != crackStart {
		t.Errorf("after StartBreaking state = %v progress = %v", roof.State(), roof.Progress)
	}
	if roof.StartBreaking() {
		t.Error("StartBreaking should fire only once")
	}

	roof.Update()
	if math.Abs(roof.Progress-0.03) > 1e-9 {
		t.Errorf("progress after one update = %v, expected 0.03", roof.Progress)
	}
	if !roof.Solid() {
		t.Error("breaking roof should still be solid")
	}
}

func TestRoofClampsToOne(t *testing.T) {
	roof := newTestRoof()
	roof.StartBreaking()
	roof.Progress = 0.99

	roof.Update()

	if roof.Progress != 1.0 {
		t.Errorf("progress = %v, expected exactly 1", roof.Progress)
	}
	if !roof.Broken || roof.State() != RoofBroken {
		t.Error("roof should be broken")
	}
	if roof.Solid() {
		t.Error("broken roof should not block movement")
	}

	roof.Update()
	if roof.Progress != 1.0 {
		t.Error("broken roof should not change")
	}
	if roof.StartBreaking() {
		t.Error("broken roof cannot start breaking again")
	}
}

func TestRoofBreaksInBoundedTicks(t *testing.T) {
	roof := newTestRoof()
	roof.StartBreaking()

	ticks := 0
	prev := roof.Progress
	for !roof.Broken && ticks < 1000 {
		roof.Update()
		ticks++
		if roof.Progress < prev {
			t.Fatalf("progress decreased from %v to %v", prev, roof.Progress)
		}
		prev = roof.Progress
	}

	if ticks != 50 {
		t.Errorf("roof broke after %d ticks, expected 50", ticks)
	}
}

func TestRoofIsStandingOn(t *testing.T) {
	roof := newTestRoof()

	tests := []struct {
		name string
		body core.Rect
		want bool
	}{
		{"feet on surface", core.NewRect(120, 140, 40, 60), true},
		{"hovering within tolerance", core.NewRect(120, 136, 40, 60), true},
		{"sunk within tolerance", core.NewRect(120, 145, 40, 60), true},
		{"too high", core.NewRect(120, 130, 40, 60), false},
		{"past right edge", core.NewRect(200, 140, 40, 60), false},
		{"overlapping left edge", core.NewRect(61, 140, 40, 60), true},
		{"touching left edge only", core.NewRect(60, 140, 40, 60), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := roof.IsStandingOn(tc.body); got != tc.want {
				t.Errorf("IsStandingOn(%+v) = %v, expected %v", tc.body, got, tc.want)
			}
		})
	}

	roof.Broken = true
	if roof.IsStandingOn(core.NewRect(120, 140, 40, 60)) {
		t.Error("broken roof has no surface")
	}
}

func TestRoofCracksDeterministic(t *testing.T) {
	a := newTestRoof()
	b := newTestRoof()

	if len(a.Cracks) != DefaultCrackCount {
		t.Fatalf("crack count = %d, expected %d", len(a.Cracks), DefaultCrackCount)
	}
	for i := range a.Cracks {
		if a.Cracks[i] != b.Cracks[i] {
			t.Fatalf("crack %d differs for the same seed", i)
		}
		c := a.Cracks[i]
		if c.OffsetX < 0 || c.OffsetX >= 100 || c.OffsetY < 0 || c.OffsetY >= 20 {
			t.Errorf("crack %d offset (%v, %v) outside roof", i, c.OffsetX, c.OffsetY)
		}
		if c.Length < 10 || c.Length >= 30 {
			t.Errorf("crack %d length %v outside [10, 30)", i, c.Length)
		}
	}
}

func TestRoofParamsDefaults(t *testing.T) {
	roof := NewBreakableRoof(core.NewRect(0, 0, 10, 10), RoofParams{}, rand.New(rand.NewSource(0)))

	p := roof.Params()
	if p.BreakRate != DefaultBreakRate || p.StandTolerance != DefaultStandTolerance {
		t.Errorf("zero params should fall back to defaults, got %+v", p)
	}
	if len(roof.Cracks) != 0 {
		t.Errorf("zero crack count should produce no cracks, got %d", len(roof.Cracks))
	}
}

func TestRoofDraw(t *testing.T) {
	tests := []struct {
		name      string
		progress  float64
		broken    bool
		wantRects int
		wantLines int
	}{
		{"intact", 0, false, 1, 0},
		{"early cracks", 0.3, false, 1, DefaultCrackCount},
		{"branching cracks", 0.6, false, 1, 2 * DefaultCrackCount},
		{"broken", 1, true, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roof := newTestRoof()
			roof.Progress = tc.progress
			roof.Broken = tc.broken

			c := newRecordingCanvas()
			roof.DrawAt(c, 0, 0)

			if got := c.count("rect"); got != tc.wantRects {
				t.Errorf("rects = %d, expected %d", got, tc.wantRects)
			}
			if got := c.count("line"); got != tc.wantLines {
				t.Errorf("lines = %d, expected %d", got, tc.wantLines)
			}
		})
	}
}
