package runner

import (
	"math"
	"time"
)

// Telemetry is the HUD-facing summary pushed to observers.
type Telemetry struct {
	Score float64
	Combo float64
	Coins int
	Lives int
}

// scoreParticleEvery spawns a score spark each time this many points accrue.
const scoreParticleEvery = 50

// updateScore accrues distance score, scaled by combo above 1.
func (e *Engine) updateScore(f float64, dt time.Duration) {
	bonus := 0.0
	if e.ball.Combo > 1 {
		bonus = e.ball.Combo * e.cfg.Combo.ScoreBonus
	}
	e.score += math.Abs(e.ball.Vel.Y()) * e.cfg.Physics.ScoreRate * (1 + bonus) * f
	e.stats.Duration += dt

	if fl := math.Floor(e.score); fl > e.lastParticleScore+scoreParticleEvery {
		e.spawnParticles(e.ball.Pos, TintScore, burstScore)
		e.lastParticleScore = fl
	}
}

// maybeEmitTelemetry notifies observers when a HUD value changed enough.
func (e *Engine) maybeEmitTelemetry() {
	last := e.lastTelemetry
	if e.coins != last.Coins ||
		e.lives != last.Lives ||
		e.score-last.Score > 1 ||
		math.Floor(e.score) > math.Floor(last.Score) {
		e.emitTelemetry()
	}
}

// emitTelemetry notifies observers unconditionally.
func (e *Engine) emitTelemetry() {
	t := Telemetry{Score: e.score, Combo: e.ball.Combo, Coins: e.coins, Lives: e.lives}
	e.lastTelemetry = t
	if e.callbacks.OnTelemetry != nil {
		e.callbacks.OnTelemetry(t)
	}
}

// RunStats summarizes the current session.
type RunStats struct {
	Score     float64
	Coins     int
	LivesLost int
	Bounces   int
	MaxCombo  float64
	Duration  time.Duration // Time spent active
	Style     string
}

// Stats returns the statistics of the current session.
func (e *Engine) Stats() RunStats {
	s := e.stats
	s.Score = e.score
	s.Coins = e.coins
	s.Style = e.style.ID
	return s
}
