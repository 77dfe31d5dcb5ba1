// Package sim runs one platformer attempt: it owns the player, the level
// instance and the camera, and advances them in a fixed per-tick order.
package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// State is the simulation lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateWon
	StateLost
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the attempt.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// HardJumpStrength is the jump used on difficulty 3 levels.
const HardJumpStrength = 5.8

// Config tunes a simulation.
type Config struct {
	Physics       physics.Params
	Roof          level.RoofParams
	FollowSpeed   float64
	MinFrameDelta time.Duration
	// JumpByDifficulty overrides Physics.JumpStrength per level difficulty.
	JumpByDifficulty map[int]float64
	// Seed drives every random choice, currently the roof crack pattern.
	Seed int64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Physics:          physics.DefaultParams(),
		Roof:             level.DefaultRoofParams(),
		FollowSpeed:      camera.DefaultFollowSpeed,
		MinFrameDelta:    DefaultMinFrameDelta,
		JumpByDifficulty: map[int]float64{3: HardJumpStrength},
	}
}

// ParamsFor returns the movement rules for a level of the given difficulty.
func (c Config) ParamsFor(difficulty int) physics.Params {
	p := c.Physics
	if j, ok := c.JumpByDifficulty[difficulty]; ok && j > 0 {
		p.JumpStrength = j
	}
	return p
}

// TickOutcome reports what one Tick call did.
type TickOutcome struct {
	// Ran is false when the call was gated, paused, or the run had ended.
	Ran    bool
	State  State
	Events []Event
	Coins  int
	Tick   uint64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHooks sets the callbacks fired for each event.
func WithHooks(h Hooks) Option {
	return func(s *Simulation) {
		s.hooks = h
	}
}

// Simulation is a single-player, single-level game loop.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Simulation struct {
	reg     *level.Registry
	levelID string
	def     level.Definition
	canvas  core.Canvas
	cfg     Config
	logger  *log.Logger
	hooks   Hooks

	state   State
	paused  bool
	player  *physics.Player
	level   *level.Level
	cam     *camera.Camera
	gate    *FrameGate
	coins   int
	tick    uint64
	elapsed time.Duration
}

// New builds a simulation for levelID and starts it Running.
// Nothing is constructed when the level is missing or the canvas unusable.
func New(reg *level.Registry, levelID string, canvas core.Canvas, cfg Config, opts ...Option) (*Simulation, error) {
	if reg == nil {
		return nil, fmt.Errorf("sim: %w: %q (no registry)", ErrLevelNotFound, levelID)
	}
	def, ok := reg.Get(levelID)
	if !ok {
		return nil, fmt.Errorf("sim: %w: %q", ErrLevelNotFound, levelID)
	}
	if err := checkCanvas(canvas); err != nil {
		return nil, err
	}

	s := &Simulation{
		reg:     reg,
		levelID: levelID,
		def:     def,
		canvas:  canvas,
		cfg:     cfg,
		logger:  log.New(io.Discard),
		gate:    NewFrameGate(cfg.MinFrameDelta),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Reset()
	return s, nil
}

func checkCanvas(c core.Canvas) error {
	if c == nil {
		return fmt.Errorf("sim: %w: nil canvas", ErrInvalidRenderTarget)
	}
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("sim: %w: canvas size %vx%v", ErrInvalidRenderTarget, w, h)
	}
	return nil
}

// Reset rebuilds the player, level and camera and starts a new attempt.
// The definition is re-read from the registry so edited levels take effect;
// if it has disappeared the previous definition is reused.
func (s *Simulation) Reset() {
	s.state = StateIdle

	if def, ok := s.reg.Get(s.levelID); ok {
		s.def = def
	} else {
		s.logger.Warn("level vanished from registry, replaying last copy", "level", s.levelID)
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	s.level = level.New(s.def, s.cfg.Roof, rng)
	s.player = physics.NewPlayer(s.def.PlayerStart.X, s.def.PlayerStart.Y, s.cfg.ParamsFor(s.def.Difficulty))

	w, h := s.canvas.Size()
	s.cam = camera.New(w, h, s.level.Width, s.level.Height)
	if s.cfg.FollowSpeed > 0 {
		s.cam.FollowSpeed = s.cfg.FollowSpeed
	}

	s.coins = 0
	s.tick = 0
	s.elapsed = 0
	s.paused = false
	s.gate.Reset()

	s.state = StateRunning
	s.logger.Debug("simulation reset", "level", s.levelID, "coins", s.level.TotalCoins())
}

// Pause stops ticks from running until Resume.
func (s *Simulation) Pause() {
	s.paused = true
}

// Resume lets ticks run again. Time spent paused does not count as play time.
func (s *Simulation) Resume(ts time.Duration) {
	if !s.paused {
		return
	}
	s.paused = false
	s.gate.Resume(ts)
}

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool {
	return s.paused
}

// Tick runs one step if the frame gate admits ts and the attempt is live.
// The input frame is only read.
func (s *Simulation) Tick(in core.InputFrame, ts time.Duration) TickOutcome {
	if s.state != StateRunning || s.paused {
		return s.outcome(false, nil)
	}
	if !s.gate.Accept(ts) {
		return s.outcome(false, nil)
	}

	s.elapsed = s.gate.Elapsed(ts)
	return s.step(in)
}

// step is one atomic tick in fixed order.
func (s *Simulation) step(in core.InputFrame) TickOutcome {
	var events []Event
	emit := func(e Event) {
		events = append(events, e)
		s.hooks.fire(e)
	}

	s.tick++
	p := s.player
	lvl := s.level

	// 1-2: input then integration
	p.ApplyInput(in)
	p.Integrate(lvl.Width)

	// 3: resolve against every solid, grounded if any top face was hit
	colliders := lvl.Colliders()
	p.CanJump = false
	for _, r := range colliders {
		if physics.ResolvePlatform(p, r) {
			p.CanJump = true
		}
	}

	// 4: wedged under something is not grounded
	obstacles := lvl.ObstacleRects()
	if p.CanJump && physics.CheckHeadCollision(p, colliders, obstacles) {
		p.CanJump = false
	}

	// 5: roof
	if lvl.CheckPlayerOnRoof(p.Bounds()) {
		s.logger.Debug("roof cracking", "level", s.levelID, "tick", s.tick)
		emit(Event{Kind: EventRoofCracked, Coins: s.coins, Total: lvl.TotalCoins()})
	}
	lvl.Update()

	// 6-7: deaths
	if p.Y > lvl.Height {
		s.finish(StateLost, "fell", emit)
		return s.outcome(true, events)
	}
	for _, o := range obstacles {
		if physics.CheckObstacle(p, o) {
			s.finish(StateLost, "obstacle", emit)
			return s.outcome(true, events)
		}
	}

	// 8: at most one coin per tick, newest first
	for i := len(lvl.Coins) - 1; i >= 0; i-- {
		if physics.CheckCoin(p, lvl.Coins[i].Circle) {
			lvl.RemoveCoin(i)
			s.coins++
			emit(Event{Kind: EventCoinCollected, Coins: s.coins, Total: lvl.TotalCoins()})
			break
		}
	}

	// 9: win, regardless of coins left
	if physics.CheckFinish(p, lvl.Finish.Rect) {
		s.finish(StateWon, "finish", emit)
		return s.outcome(true, events)
	}

	// 10-11
	s.syncViewport()
	s.cam.Follow(p.Center())
	s.Render()

	return s.outcome(true, events)
}

func (s *Simulation) finish(state State, reason string, emit func(Event)) {
	s.state = state
	total := s.level.TotalCoins()

	switch state {
	case StateWon:
		emit(Event{Kind: EventGameWon, Coins: s.coins, Total: total, ElapsedMs: s.elapsed.Milliseconds()})
	case StateLost:
		emit(Event{Kind: EventGameOver, Coins: s.coins, Total: total})
	}

	s.logger.Debug("attempt ended",
		"level", s.levelID,
		"state", state,
		"reason", reason,
		"coins", s.coins,
		"total", total,
		"elapsed", s.elapsed,
	)
}

func (s *Simulation) outcome(ran bool, events []Event) TickOutcome {
	return TickOutcome{
		Ran:    ran,
		State:  s.state,
		Events: events,
		Coins:  s.coins,
		Tick:   s.tick,
	}
}

// syncViewport follows canvas resizes.
func (s *Simulation) syncViewport() {
	w, h := s.canvas.Size()
	if w != s.cam.ViewportW || h != s.cam.ViewportH {
		s.cam.SetViewport(w, h)
	}
}

// Render draws the current frame: background, level geometry, then the
// player on top.
func (s *Simulation) Render() {
	s.canvas.Clear(core.Ink{Glyph: ' '})
	s.level.Draw(s.canvas, s.cam)

	p := s.player
	sx, sy := s.cam.WorldToScreen(p.X, p.Y)
	s.canvas.FillRect(sx, sy, p.W, p.H, core.InkPlayer)
	s.canvas.FillRect(sx+p.W*0.25, sy+15, 5, 5, core.InkEye)
	s.canvas.FillRect(sx+p.W*0.625, sy+15, 5, 5, core.InkEye)
}

// State returns the lifecycle state.
func (s *Simulation) State() State {
	return s.state
}

// Coins returns the coins collected this attempt.
func (s *Simulation) Coins() int {
	return s.coins
}

// TotalCoins returns the coins the level started with.
func (s *Simulation) TotalCoins() int {
	return s.level.TotalCoins()
}

// Elapsed returns the play time of the attempt so far.
func (s *Simulation) Elapsed() time.Duration {
	return s.elapsed
}

// Definition returns the definition the current attempt was built from.
func (s *Simulation) Definition() level.Definition {
	return s.def
}

// Level exposes the live level for hosts and tests. Callers must not mutate it.
func (s *Simulation) Level() *level.Level {
	return s.level
}

// Player exposes the live player body. Callers must not mutate it.
func (s *Simulation) Player() *physics.Player {
	return s.player
}

// Camera exposes the live camera. Callers must not mutate it.
func (s *Simulation) Camera() *camera.Camera {
	return s.cam
}
