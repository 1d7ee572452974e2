// Package runner implements the simulation of a ball steered along a
// procedurally generated corridor.
//
// The Engine is single-threaded: the host calls Update then Draw once per
// frame and receives results through callbacks, audio cues and snapshots.
package runner

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
	"github.com/vovakirdan/neon-zigzag/internal/config"
	"github.com/vovakirdan/neon-zigzag/internal/schedule"
)

// SessionState is the host's screen state as seen by the engine.
type SessionState int

const (
	StateMenu SessionState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateShop
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateShop:
		return "shop"
	default:
		return "unknown"
	}
}

// Playfield bounds.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	MinWidth      = 400.0
	MinHeight     = 300.0
)

// ballStartAnchor is the fraction of the height where a session starts.
const ballStartAnchor = 0.7

// Callbacks are invoked synchronously from Update, or from the scheduler
// for OnSessionEnd.
type Callbacks struct {
	OnTelemetry  func(t Telemetry)
	OnSessionEnd func(finalScore float64)
}

// Option configures an Engine.
type Option func(*Engine)

// WithCallbacks sets the observer callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(e *Engine) { e.callbacks = cb }
}

// WithAudio sets the cue sink. A nil sink is replaced by audio.Nop.
func WithAudio(s audio.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithScheduler sets the scheduler used for the session-end notification.
// Schedulers implementing schedule.Advancer are advanced by Update.
func WithScheduler(s schedule.Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithSeed makes the engine's randomness reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine owns all mutable simulation state.
type Engine struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	log        *log.Logger
	sink       audio.Sink
	sched      schedule.Scheduler
	callbacks  Callbacks

	width   float64
	height  float64
	state   SessionState
	started bool // A session has been reset at least once
	style   TrailStyle

	ball      Ball
	path      []Vec2
	gen       *PathGenerator
	items     []Item
	particles []Particle
	dust      []Dust
	phase     phase
	cameraY   float64

	score             float64
	lives             int
	coins             int
	invuln            time.Duration
	magnet            time.Duration
	lastParticleScore float64
	lastTelemetry     Telemetry
	nextItemID        uint64
	stats             RunStats

	gameOver  schedule.Task
	destroyed bool
}

// New creates an engine in the Menu state. cfg is sanitized.
func New(cfg config.RunnerConfig, opts ...Option) *Engine {
	cfg.Sanitize()

	e := &Engine{
		cfg:    cfg,
		log:    log.New(io.Discard),
		sink:   audio.Nop{},
		sched:  schedule.NewQueue(),
		width:  DefaultWidth,
		height: DefaultHeight,
		state:  StateMenu,
		style:  DefaultStyle(),
		phase:  active{},
		lives:  cfg.Lives.Starting,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	e.difficulty = config.NewDifficultyManager(cfg.Difficulty, cfg.Physics)
	e.gen = NewPathGenerator(cfg.Path, e.rng)
	e.ball = Ball{Combo: 1, Visible: true, Angle: -math.Pi / 2, trail: newTrail(cfg.Physics.TrailLength)}
	e.scatterDust()
	return e
}

// Resize updates the playfield bounds, clamped to a minimum size.
func (e *Engine) Resize(width, height float64) {
	if math.IsNaN(width) || width < MinWidth {
		width = MinWidth
	}
	if math.IsNaN(height) || height < MinHeight {
		height = MinHeight
	}
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	e.scatterDust()
}

// SetControlStyle swaps the cosmetic trail style.
func (e *Engine) SetControlStyle(style TrailStyle) {
	e.style = style
}

// SetState changes the session state. Entering Playing from Menu or
// GameOver, or for the first time, starts a new session.
func (e *Engine) SetState(s SessionState) {
	prev := e.state
	e.state = s
	if s == StatePlaying && (!e.started || prev == StateMenu || prev == StateGameOver) {
		e.reset()
	}
}

// State returns the current session state.
func (e *Engine) State() SessionState {
	return e.state
}

// Phase returns the ball's life phase.
func (e *Engine) Phase() Phase {
	return e.phaseKind()
}

// SetTurning is the only gameplay input. While waiting after a respawn a
// true value resumes play; false is ignored.
func (e *Engine) SetTurning(turning bool) {
	if e.state != StatePlaying {
		return
	}
	switch e.phase.(type) {
	case waiting:
		if turning {
			e.resume()
		}
	case active:
		e.ball.Turning = turning
	}
}

// Update advances the simulation by dt, clamped to [0, MaxFrameDelta].
func (e *Engine) Update(dt time.Duration) {
	if e.destroyed {
		return
	}
	dt = clampDelta(dt)

	if adv, ok := e.sched.(schedule.Advancer); ok {
		adv.Advance(dt)
	}
	if e.state == StatePaused {
		return
	}

	f := dtFactor(dt)
	e.updateDust(f)
	e.updateParticles(f)

	if e.state != StatePlaying {
		return
	}
	if !e.advancePhase(dt) {
		return
	}

	e.tickTimers(dt)
	e.updatePhysics(f)
	e.extendPath()
	e.updateItems(f)

	// An obstacle may have ended the life above
	if e.phaseKind() != PhaseActive {
		return
	}
	e.checkContainment(f)
	if e.phaseKind() != PhaseActive {
		return
	}
	e.updateScore(f, dt)
	e.maybeEmitTelemetry()
}

// Destroy cancels the pending session-end notification. The engine ignores
// further updates.
func (e *Engine) Destroy() {
	e.cancelGameOver()
	e.destroyed = true
}

// reset starts a fresh session.
func (e *Engine) reset() {
	e.started = true
	e.cancelGameOver()

	e.score = 0
	e.lives = e.cfg.Lives.Starting
	e.coins = 0
	e.invuln = 0
	e.magnet = 0
	e.lastParticleScore = 0
	e.particles = e.particles[:0]
	e.items = e.items[:0]
	e.nextItemID = 0
	e.stats = RunStats{MaxCombo: 1}
	e.phase = active{}
	e.gen.Reset()

	start := Vec2{e.width / 2, e.height * ballStartAnchor}
	e.ball.Pos = start
	e.ball.Vel = Vec2{0, -e.cfg.Physics.BaseSpeed}
	e.ball.Angle = -math.Pi / 2
	e.ball.Turning = false
	e.ball.Combo = 1
	e.ball.Visible = true
	e.ball.trail.clear()
	e.cameraY = start.Y() - e.height*cameraAnchor

	pc := e.cfg.Path
	e.path = e.path[:0]
	for i := 0; i < pc.SeedPoints; i++ {
		e.path = append(e.path, Vec2{start.X(), start.Y() - float64(i)*pc.SeedSpacing})
	}
	last := e.path[len(e.path)-1]
	for i := 0; i < pc.LeadPoints; i++ {
		next := e.gen.Next(last, e.width)
		e.path = append(e.path, next)
		last = next
	}

	e.log.Debug("session reset", "lives", e.lives, "width", e.width, "height", e.height)
	e.emitTelemetry()
}
