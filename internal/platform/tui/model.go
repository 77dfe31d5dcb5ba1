package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// messageTTL is how long a HUD message stays up.
const messageTTL = 1500 * time.Millisecond

// GameOptions bundles what a game session needs besides the level.
type GameOptions struct {
	Registry *level.Registry
	Store    *storage.Store // optional
	Config   config.PlatformerConfig
	Runtime  core.RuntimeConfig
	Player   string
	Logger   *log.Logger
}

// GameModel runs one level in the terminal.
type GameModel struct {
	sim      *sim.Simulation
	screen   *core.Screen
	opts     GameOptions
	levelID  string
	bg       lipgloss.Color
	keys     *KeyMapper
	hold     *HoldTracker
	start    time.Time
	last     time.Time // timestamp of the most recent tick message
	message  string
	msgUntil time.Time

	recorded   bool // attempt stored for the current run
	standalone bool // quit the program instead of handing back to a session
	quitting   bool
	backToMenu bool
}

// screenSize returns the playfield size for a terminal; one row is the HUD.
func screenSize(rt core.RuntimeConfig) (int, int) {
	return max(rt.ScreenW, 1), max(rt.ScreenH-1, 1)
}

// NewGameModel builds the simulation for levelID.
// Returns sim.ErrLevelNotFound if the registry does not have it.
func NewGameModel(levelID string, opts GameOptions) (*GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	w, h := screenSize(opts.Runtime)
	screen := core.NewScreen(w, h)
	canvas := core.NewCellCanvas(screen, opts.Runtime.CellW, opts.Runtime.CellH)

	s, err := sim.New(opts.Registry, levelID, canvas, opts.Config.SimConfig(), sim.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	m := &GameModel{
		sim:     s,
		screen:  screen,
		opts:    opts,
		levelID: levelID,
		bg:      lipgloss.Color(s.Definition().Background()),
		keys:    NewKeyMapper(),
		hold:    NewHoldTracker(DefaultHoldWindow),
		start:   time.Now(),
	}
	s.Render()
	return m, nil
}

// Init starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate())
}

// Update handles messages and updates the model state.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, m.now())

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(screenSize(m.opts.Runtime))
		m.sim.Render()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// now is the latest known time; ticks carry their own timestamps.
func (m *GameModel) now() time.Time {
	if m.last.IsZero() {
		return time.Now()
	}
	return m.last
}

// handleKey processes keyboard input.
func (m *GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	state := m.sim.State()
	switch action {
	case core.ActionLeft, core.ActionRight, core.ActionJump:
		m.hold.Press(action, now)

	case core.ActionPause:
		if state.Terminal() {
			break
		}
		if m.sim.Paused() {
			m.sim.Resume(now.Sub(m.start))
		} else {
			m.sim.Pause()
			m.hold.Release()
		}

	case core.ActionRestart, core.ActionConfirm:
		if state.Terminal() {
			m.restart()
		}

	case core.ActionBack:
		if state.Terminal() || m.sim.Paused() {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// handleTick feeds one frame to the simulation.
func (m *GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.last = now
	frame := m.hold.Frame(now)

	out := m.sim.Tick(frame, now.Sub(m.start))
	for _, e := range out.Events {
		m.handleEvent(e, now)
	}

	if m.message != "" && now.After(m.msgUntil) {
		m.message = ""
	}
	return m, tickCmd(m.opts.Config.TickRate())
}

func (m *GameModel) handleEvent(e sim.Event, now time.Time) {
	switch e.Kind {
	case sim.EventCoinCollected:
		if e.Coins == sim.QualifyingCoins {
			m.flash("leaderboard pace!", now)
		}
	case sim.EventRoofCracked:
		m.flash("the roof is cracking!", now)
	case sim.EventGameWon, sim.EventGameOver:
		m.recordAttempt(e)
	}
}

func (m *GameModel) flash(text string, now time.Time) {
	m.message = text
	m.msgUntil = now.Add(messageTTL)
}

// recordAttempt stores the finished run once.
func (m *GameModel) recordAttempt(e sim.Event) {
	if m.recorded || m.opts.Store == nil {
		return
	}
	m.recorded = true

	a := storage.Attempt{
		LevelID:    m.levelID,
		Player:     m.opts.Player,
		Coins:      e.Coins,
		TotalCoins: e.Total,
		Completed:  e.Kind == sim.EventGameWon,
		TimeMs:     e.ElapsedMs,
	}
	if _, err := m.opts.Store.RecordAttempt(a); err != nil {
		m.opts.Logger.Warn("could not record attempt", "level", m.levelID, "error", err)
	}
}

// restart begins a new attempt on the same level.
func (m *GameModel) restart() {
	m.sim.Reset()
	m.bg = lipgloss.Color(m.sim.Definition().Background())
	m.hold.Release()
	m.recorded = false
	m.message = ""
	m.sim.Render()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.levelID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the playfield and the HUD.
func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}

	hud := HUD{
		LevelName:  m.sim.Definition().Name,
		Coins:      m.sim.Coins(),
		TotalCoins: m.sim.TotalCoins(),
		Elapsed:    m.sim.Elapsed(),
		State:      m.sim.State(),
		Paused:     m.sim.Paused(),
		Message:    m.message,
	}
	return RenderScreen(m.screen, m.bg) + "\n" + hud.Render(m.screen.Width())
}

// Simulation exposes the running simulation.
func (m *GameModel) Simulation() *sim.Simulation {
	return m.sim
}

// IsQuitting returns true if user requested to quit entirely.
func (m *GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level list.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one level in the terminal until the player quits or backs out.
// Reports whether the player asked to go back to the level list.
func Run(levelID string, opts GameOptions) (backToMenu bool, err error) {
	model, err := NewGameModel(levelID, opts)
	if err != nil {
		return false, err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}

	if gm, ok := final.(*GameModel); ok {
		if gm.BackToMenu() {
			return true, nil
		}
	}
	return false, nil
}
