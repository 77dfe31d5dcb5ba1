package level

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

type drawCall struct {
	op   string
	x, y float64
	ink  core.Ink
}

// recordingCanvas captures draw calls in order.
type recordingCanvas struct {
	calls []drawCall
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{}
}

func (c *recordingCanvas) Size() (float64, float64) { return 800, 400 }
func (c *recordingCanvas) Clear(bg core.Ink)        { c.calls = append(c.calls, drawCall{op: "clear", ink: bg}) }

func (c *recordingCanvas) FillRect(x, y, w, h float64, ink core.Ink) {
	c.calls = append(c.calls, drawCall{op: "rect", x: x, y: y, ink: ink})
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, ink core.Ink) {
	c.calls = append(c.calls, drawCall{op: "circle", x: cx, y: cy, ink: ink})
}

func (c *recordingCanvas) Line(x0, y0, x1, y1 float64, ink core.Ink) {
	c.calls = append(c.calls, drawCall{op: "line", x: x0, y: y0, ink: ink})
}

func (c *recordingCanvas) count(op string) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op {
			n++
		}
	}
	return n
}

func testDefinition() Definition {
	return Definition{
		ID:          "test",
		Name:        "Test Level",
		Width:       1000,
		Height:      500,
		Difficulty:  1,
		PlayerStart: Point{X: 50, Y: 340},
		Platforms: []Box{
			{X: 0, Y: 460, Width: 1000, Height: 40},
			{X: 200, Y: 380, Width: 150, Height: 20},
		},
		Coins: []CoinSpec{
			{X: 100, Y: 400, Radius: 10},
			{X: 300, Y: 300, Radius: 10},
			{X: 500, Y: 300, Radius: 10},
		},
		Obstacles: []Box{
			{X: 600, Y: 440, Width: 50, Height: 20},
		},
		Finish:        Box{X: 900, Y: 400, Width: 50, Height: 50},
		BreakableRoof: &Box{X: 850, Y: 380, Width: 150, Height: 20},
	}
}

func TestNewLevel(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)

	if len(l.Platforms) != 2 || len(l.Obstacles) != 1 {
		t.Errorf("platforms = %d obstacles = %d", len(l.Platforms), len(l.Obstacles))
	}
	if l.TotalCoins() != 3 || l.CoinsLeft() != 3 {
		t.Errorf("coins total = %d left = %d", l.TotalCoins(), l.CoinsLeft())
	}
	if l.Background != DefaultBackground {
		t.Errorf("Background = %q, expected default", l.Background)
	}
	if l.Roof == nil || l.Roof.State() != RoofIntact {
		t.Fatal("roof should be built intact")
	}
	if l.Coins[1].Bounds() != core.NewRect(300, 300, 20, 20) {
		t.Errorf("coin bounds = %+v", l.Coins[1].Bounds())
	}
}

func TestNewLevelWithoutRoof(t *testing.T) {
	def := testDefinition()
	def.BreakableRoof = nil
	l := New(def, DefaultRoofParams(), nil)

	if l.Roof != nil {
		t.Error("level without roof definition should have no roof")
	}
	if l.CheckPlayerOnRoof(core.NewRect(0, 0, 40, 60)) {
		t.Error("roof check without roof should be false")
	}
	l.Update()
}

func TestRemoveCoin(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)

	if !l.RemoveCoin(1) {
		t.Fatal("RemoveCoin(1) should succeed")
	}
	if l.CoinsLeft() != 2 || l.TotalCoins() != 3 {
		t.Errorf("left = %d total = %d", l.CoinsLeft(), l.TotalCoins())
	}
	if l.Coins[0].X != 100 || l.Coins[1].X != 500 {
		t.Error("remaining coins should keep their order")
	}

	if l.RemoveCoin(5) || l.RemoveCoin(-1) {
		t.Error("out of range removal should be ignored")
	}
}

func TestLevelDoesNotAliasDefinition(t *testing.T) {
	def := testDefinition()
	l := New(def, DefaultRoofParams(), nil)

	l.RemoveCoin(0)
	if len(def.Coins) != 3 || def.Coins[0].X != 100 {
		t.Error("removing a coin must not touch the definition")
	}

	again := New(def, DefaultRoofParams(), nil)
	if again.CoinsLeft() != 3 {
		t.Error("a rebuilt level should start with every coin")
	}
}

func TestCollidersIncludeRoofUntilBroken(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)

	cols := l.Colliders()
	if len(cols) != 3 {
		t.Fatalf("colliders = %d, expected platforms + roof", len(cols))
	}
	if cols[2] != l.Roof.Rect {
		t.Error("roof should come after the platforms")
	}

	l.Roof.Broken = true
	if got := len(l.Colliders()); got != 2 {
		t.Errorf("broken roof should leave %d colliders, got %d", 2, got)
	}
}

func TestCheckPlayerOnRoof(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)
	standing := core.NewRect(880, 320, 40, 60)

	if !l.CheckPlayerOnRoof(standing) {
		t.Fatal("standing on the roof should start breaking it")
	}
	if l.CheckPlayerOnRoof(standing) {
		t.Error("roof cracking should be reported once")
	}

	l.Update()
	if l.Roof.State() != RoofBreaking || l.Roof.Progress <= crackStart {
		t.Errorf("Update should advance the roof, progress = %v", l.Roof.Progress)
	}
}

func TestRoofBreakRateOverride(t *testing.T) {
	def := testDefinition()
	def.RoofBreakRate = 0.015
	l := New(def, DefaultRoofParams(), rand.New(rand.NewSource(3)))

	if got := l.Roof.Params().BreakRate; got != 0.015 {
		t.Errorf("BreakRate = %v, expected 0.015", got)
	}
}

func TestDrawOrder(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)
	cam := camera.New(1000, 500, 1000, 500)
	c := newRecordingCanvas()

	l.Draw(c, cam)

	want := []core.Ink{
		core.InkPlatform, core.InkPlatform,
		core.InkCoin, core.InkCoin, core.InkCoin,
		core.InkObstacle,
		core.InkFinish, core.InkPole, core.InkFlag,
		core.InkRoof,
	}
	if len(c.calls) != len(want) {
		t.Fatalf("draw calls = %d, expected %d", len(c.calls), len(want))
	}
	for i, ink := range want {
		if c.calls[i].ink != ink {
			t.Errorf("call %d ink = %+v, expected %+v", i, c.calls[i].ink, ink)
		}
	}
}

func TestDrawSkipsBrokenRoof(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)
	l.Roof.Broken = true
	cam := camera.New(1000, 500, 1000, 500)
	c := newRecordingCanvas()

	l.Draw(c, cam)

	for _, call := range c.calls {
		if call.ink == core.InkRoof {
			t.Fatal("broken roof should not be drawn")
		}
	}
}

func TestDrawCullsAndOffsets(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)
	cam := camera.New(300, 500, 1000, 500)
	cam.X = 150
	c := newRecordingCanvas()

	l.Draw(c, cam)

	// Visible: ground, raised platform, coin at 300, nothing else
	if got := c.count("rect"); got != 2 {
		t.Errorf("rects drawn = %d, expected 2", got)
	}
	if got := c.count("circle"); got != 1 {
		t.Errorf("coins drawn = %d, expected 1", got)
	}
	if c.calls[1].x != 50 {
		t.Errorf("raised platform screen x = %v, expected 50", c.calls[1].x)
	}
}

func TestEntityKinds(t *testing.T) {
	l := New(testDefinition(), DefaultRoofParams(), nil)

	counts := map[Kind]int{}
	for _, e := range l.Entities() {
		counts[e.Kind()]++
	}

	want := map[Kind]int{KindPlatform: 2, KindCoin: 3, KindObstacle: 1, KindFinish: 1, KindRoof: 1}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%s count = %d, expected %d", k, counts[k], n)
		}
	}
}
