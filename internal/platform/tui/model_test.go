package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const testFrame = 16 * time.Millisecond

// groundLevel has the player resting on a full-width floor.
func groundLevel() level.Definition {
	return level.Definition{
		ID:          "ground",
		Name:        "Ground",
		Width:       1000,
		Height:      500,
		Difficulty:  1,
		PlayerStart: level.Point{X: 50, Y: 400},
		Platforms:   []level.Box{{X: 0, Y: 460, Width: 1000, Height: 40}},
		Coins:       []level.CoinSpec{{X: 500, Y: 300, Radius: 10}},
		Finish:      level.Box{X: 900, Y: 400, Width: 50, Height: 50},
	}
}

// pitLevel has nothing to stand on.
func pitLevel() level.Definition {
	def := groundLevel()
	def.ID = "pit"
	def.Name = "Pit"
	def.Platforms = nil
	return def
}

// goalLevel starts the player inside the finish.
func goalLevel() level.Definition {
	def := groundLevel()
	def.ID = "goal"
	def.Name = "Goal"
	def.Finish = level.Box{X: 40, Y: 390, Width: 60, Height: 60}
	return def
}

func testRegistry(t *testing.T, defs ...level.Definition) *level.Registry {
	t.Helper()
	reg := level.NewRegistry()
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			t.Fatalf("register %s: %v", def.ID, err)
		}
	}
	return reg
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testOptions(reg *level.Registry, store *storage.Store) GameOptions {
	return GameOptions{
		Registry: reg,
		Store:    store,
		Config:   config.DefaultPlatformerConfig(),
		Runtime:  core.DefaultConfig(),
		Player:   "tester",
	}
}

// driver sends evenly spaced ticks to a game model.
type driver struct {
	t *testing.T
	m *GameModel
	n int
}

func newDriver(t *testing.T, levelID string, opts GameOptions) *driver {
	t.Helper()
	m, err := NewGameModel(levelID, opts)
	if err != nil {
		t.Fatalf("NewGameModel(%q): %v", levelID, err)
	}
	return &driver{t: t, m: m}
}

func (d *driver) tick() {
	d.n++
	d.m.Update(TickMsg(d.m.start.Add(time.Duration(d.n) * testFrame)))
}

func (d *driver) ticks(n int) {
	for range n {
		d.tick()
	}
}

func (d *driver) key(msg tea.KeyMsg) tea.Cmd {
	_, cmd := d.m.Update(msg)
	return cmd
}

func (d *driver) untilTerminal(max int) {
	d.t.Helper()
	for range max {
		d.tick()
		if d.m.Simulation().State().Terminal() {
			return
		}
	}
	d.t.Fatalf("level did not end within %d ticks", max)
}

func TestNewGameModelUnknownLevel(t *testing.T) {
	_, err := NewGameModel("missing", testOptions(testRegistry(t, groundLevel()), nil))
	if !errors.Is(err, sim.ErrLevelNotFound) {
		t.Fatalf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestGameModelInit(t *testing.T) {
	d := newDriver(t, "ground", testOptions(testRegistry(t, groundLevel()), nil))
	if d.m.Init() == nil {
		t.Error("Init should schedule the first tick")
	}
	if d.m.Simulation().State() != sim.StateRunning {
		t.Errorf("expected running, got %v", d.m.Simulation().State())
	}
}

func TestGameModelMovesWhileKeyHeld(t *testing.T) {
	d := newDriver(t, "ground", testOptions(testRegistry(t, groundLevel()), nil))
	d.tick()
	startX := d.m.Simulation().Player().X

	d.key(tea.KeyMsg{Type: tea.KeyRight})
	d.ticks(5)

	if x := d.m.Simulation().Player().X; x <= startX {
		t.Errorf("player should move right while held: x=%v start=%v", x, startX)
	}

	// Without repeats the hold expires and friction stops the player.
	d.ticks(60)
	x := d.m.Simulation().Player().X
	d.ticks(5)
	if got := d.m.Simulation().Player().X; got-x > 0.01 {
		t.Errorf("player kept moving after the hold expired: %v -> %v", x, got)
	}
}

func TestGameModelRecordsLostAttemptOnce(t *testing.T) {
	store := testStore(t)
	d := newDriver(t, "pit", testOptions(testRegistry(t, pitLevel()), store))

	d.untilTerminal(300)
	if d.m.Simulation().State() != sim.StateLost {
		t.Fatalf("expected lost, got %v", d.m.Simulation().State())
	}
	d.ticks(10)

	attempts, err := store.RecentAttempts(10)
	if err != nil {
		t.Fatalf("RecentAttempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	a := attempts[0]
	if a.LevelID != "pit" || a.Player != "tester" || a.Completed {
		t.Errorf("unexpected attempt %+v", a)
	}
	if !strings.Contains(d.m.View(), "GAME OVER") {
		t.Error("view should show GAME OVER")
	}
}

func TestGameModelRecordsWin(t *testing.T) {
	store := testStore(t)
	d := newDriver(t, "goal", testOptions(testRegistry(t, goalLevel()), store))

	d.untilTerminal(5)
	if d.m.Simulation().State() != sim.StateWon {
		t.Fatalf("expected won, got %v", d.m.Simulation().State())
	}

	st, err := store.LevelStats("goal")
	if err != nil {
		t.Fatalf("LevelStats: %v", err)
	}
	if st == nil || st.Completions != 1 || !st.HasBestTime {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestGameModelRestart(t *testing.T) {
	store := testStore(t)
	d := newDriver(t, "pit", testOptions(testRegistry(t, pitLevel()), store))

	// Restart is ignored mid-run.
	d.tick()
	d.key(runeKey('r'))
	if d.m.Simulation().Player().Y == pitLevel().PlayerStart.Y {
		t.Fatal("restart should be ignored while running")
	}

	d.untilTerminal(300)
	d.key(runeKey('r'))

	s := d.m.Simulation()
	if s.State() != sim.StateRunning {
		t.Fatalf("expected running after restart, got %v", s.State())
	}
	if s.Player().Y != pitLevel().PlayerStart.Y {
		t.Errorf("player should be back at the start, y=%v", s.Player().Y)
	}

	d.untilTerminal(300)
	attempts, err := store.RecentAttempts(10)
	if err != nil {
		t.Fatalf("RecentAttempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("expected one attempt per run, got %d", len(attempts))
	}
}

func TestGameModelPause(t *testing.T) {
	d := newDriver(t, "pit", testOptions(testRegistry(t, pitLevel()), nil))
	d.tick()

	d.key(runeKey('p'))
	if !d.m.Simulation().Paused() {
		t.Fatal("p should pause")
	}
	y := d.m.Simulation().Player().Y
	d.ticks(10)
	if d.m.Simulation().Player().Y != y {
		t.Error("paused simulation should not advance")
	}
	if !strings.Contains(d.m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	d.key(runeKey('p'))
	if d.m.Simulation().Paused() {
		t.Fatal("p should resume")
	}
	d.ticks(3)
	if d.m.Simulation().Player().Y == y {
		t.Error("resumed simulation should advance")
	}
}

func TestGameModelBack(t *testing.T) {
	d := newDriver(t, "pit", testOptions(testRegistry(t, pitLevel()), nil))
	d.tick()

	d.key(runeKey('b'))
	if d.m.BackToMenu() {
		t.Fatal("back should be ignored while running")
	}

	d.key(runeKey('p'))
	if cmd := d.key(runeKey('b')); cmd != nil {
		t.Error("back inside a session should not quit the program")
	}
	if !d.m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestGameModelStandaloneBackQuits(t *testing.T) {
	d := newDriver(t, "pit", testOptions(testRegistry(t, pitLevel()), nil))
	d.m.standalone = true

	d.untilTerminal(300)
	if cmd := d.key(runeKey('b')); cmd == nil {
		t.Error("back in a standalone game should quit the program")
	}
	if !d.m.BackToMenu() {
		t.Error("expected BackToMenu")
	}
}

func TestGameModelQuit(t *testing.T) {
	d := newDriver(t, "ground", testOptions(testRegistry(t, groundLevel()), nil))

	if cmd := d.key(runeKey('q')); cmd == nil {
		t.Error("quit should return a command")
	}
	if !d.m.IsQuitting() {
		t.Error("expected IsQuitting")
	}
	if d.m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestGameModelResize(t *testing.T) {
	d := newDriver(t, "ground", testOptions(testRegistry(t, groundLevel()), nil))

	d.m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	if d.m.screen.Width() != 40 || d.m.screen.Height() != 11 {
		t.Errorf("screen = %dx%d, want 40x11", d.m.screen.Width(), d.m.screen.Height())
	}
	lines := strings.Split(d.m.View(), "\n")
	if len(lines) != 12 {
		t.Errorf("view has %d lines, want 11 rows plus the HUD", len(lines))
	}
}
