package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
)

// Phase is the externally visible life state of the ball.
type Phase int

const (
	PhaseActive   Phase = iota // Visible and controllable
	PhaseCrashing              // Hidden during the crash window
	PhaseWaiting               // Respawned, shielded, waiting for input
	PhaseGameOver              // No lives left
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCrashing:
		return "crashing"
	case PhaseWaiting:
		return "waiting"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// phase is the life state machine. Each state carries only the data that
// is valid while it lasts.
type phase interface {
	kind() Phase
}

type active struct{}

// crashing follows a life loss with lives remaining.
type crashing struct {
	remaining time.Duration
	respawnAt Vec2
}

// dying follows the loss of the final life.
type dying struct {
	remaining  time.Duration
	finalScore float64
}

type waiting struct{}

// over is terminal; the session-end notification is pending or has fired.
type over struct {
	finalScore float64
}

func (active) kind() Phase    { return PhaseActive }
func (*crashing) kind() Phase { return PhaseCrashing }
func (*dying) kind() Phase    { return PhaseCrashing }
func (waiting) kind() Phase   { return PhaseWaiting }
func (over) kind() Phase      { return PhaseGameOver }

func (e *Engine) phaseKind() Phase {
	if e.phase == nil {
		return PhaseActive
	}
	return e.phase.kind()
}

// advancePhase runs the crash countdowns. It reports whether the ball is
// active and the rest of the pipeline should run.
func (e *Engine) advancePhase(dt time.Duration) bool {
	switch p := e.phase.(type) {
	case *crashing:
		p.remaining -= dt
		if p.remaining <= 0 {
			e.respawn(p.respawnAt)
		}
		return false

	case *dying:
		p.remaining -= dt
		if p.remaining <= 0 {
			e.finish(p.finalScore)
		}
		return false

	case waiting, over:
		return false
	}
	return true
}

// loseLife hides the ball and starts the crash window. safe is where the
// ball respawns if lives remain.
func (e *Engine) loseLife(safe Vec2) {
	e.spawnParticles(e.ball.Pos, TintTrailGlow, burstDeath)
	e.sink.Play(audio.CueCrash)

	e.ball.Vel = Vec2{}
	e.ball.Visible = false
	e.ball.trail.clear()
	e.ball.Combo = 1
	e.lives--
	e.stats.LivesLost++

	window := e.cfg.Lives.CrashDuration
	if e.lives <= 0 {
		e.lives = 0
		e.phase = &dying{remaining: window, finalScore: e.score}
		e.log.Debug("final life lost", "score", math.Floor(e.score))
	} else {
		e.phase = &crashing{remaining: window, respawnAt: safe}
		e.log.Debug("life lost", "lives", e.lives, "respawn_x", safe.X(), "respawn_y", safe.Y())
	}

	e.emitTelemetry()
}

// respawn places the ball at p, shielded and inert until the next turn input.
func (e *Engine) respawn(p Vec2) {
	e.ball.Pos = p
	e.ball.Vel = Vec2{}
	e.ball.Angle = -math.Pi / 2
	e.ball.trail.clear()
	e.ball.Visible = true
	e.ball.Turning = false
	e.invuln = e.cfg.Lives.Invulnerability
	e.cameraY = p.Y() - e.height*cameraAnchor

	e.spawnParticles(p, TintRespawn, burstRespawn)
	e.phase = waiting{}
	e.log.Debug("respawned", "x", p.X(), "y", p.Y())
}

// resume leaves the respawn wait with a short clearance shield.
func (e *Engine) resume() {
	e.ball.Vel = Vec2{0, -e.cfg.Physics.BaseSpeed}
	e.ball.Angle = -math.Pi / 2
	e.ball.Turning = true
	e.invuln = e.cfg.Lives.Clearance
	e.phase = active{}
	e.sink.Play(audio.CueSessionStart)
}

// finish enters the terminal phase and schedules the session-end callback.
func (e *Engine) finish(finalScore float64) {
	e.phase = over{finalScore: finalScore}
	e.cancelGameOver()

	e.gameOver = e.sched.After(e.cfg.Lives.GameOverDelay, func() {
		e.log.Debug("session ended", "score", math.Floor(finalScore))
		if e.callbacks.OnSessionEnd != nil {
			e.callbacks.OnSessionEnd(finalScore)
		}
	})
}

func (e *Engine) cancelGameOver() {
	if e.gameOver != nil {
		e.gameOver.Cancel()
		e.gameOver = nil
	}
}
