package runner

import (
	"math"
	"time"
)

// Reference frame the tuning constants were written against.
const referenceFrame = time.Second / 60

// MaxFrameDelta is the largest dt a single Update integrates.
const MaxFrameDelta = 100 * time.Millisecond

// cameraAnchor keeps the ball this far down the screen.
const cameraAnchor = 0.7

// dtFactor normalizes dt so that one reference frame equals 1.0.
func dtFactor(dt time.Duration) float64 {
	return float64(dt) / float64(referenceFrame)
}

// clampDelta bounds dt to [0, MaxFrameDelta].
func clampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

// Ball is the player's ball.
type Ball struct {
	Pos     Vec2
	Vel     Vec2    // World units per reference frame
	Angle   float64 // Heading in radians, -pi/2 is straight ahead
	Turning bool
	Combo   float64 // In [1, combo.max]
	Visible bool

	trail trail
}

// updatePhysics steers the heading toward the input's target angle and
// integrates the position.
func (e *Engine) updatePhysics(f float64) {
	pc := e.cfg.Physics
	speed := e.difficulty.Speed(e.score)
	steer := e.difficulty.SteerForce(e.score)

	target := -math.Pi * pc.StraightAngle
	if e.ball.Turning {
		target = -math.Pi * pc.TurnAngle
	}
	e.ball.Angle += (target - e.ball.Angle) * steer * f

	e.ball.Vel = Vec2{math.Cos(e.ball.Angle) * speed, math.Sin(e.ball.Angle) * speed}
	e.ball.Pos = e.ball.Pos.Add(e.ball.Vel.Mul(f))
	e.ball.trail.push(e.ball.Pos)

	e.cameraY = e.ball.Pos.Y() - e.height*cameraAnchor
}

// tickTimers counts down the power-up timers.
func (e *Engine) tickTimers(dt time.Duration) {
	e.invuln = max(0, e.invuln-dt)
	e.magnet = max(0, e.magnet-dt)
}

func (e *Engine) invulnerable() bool {
	return e.invuln > 0
}

// extendPath appends waypoints until the corridor reaches the lookahead
// distance ahead of the ball, then trims the oldest ones. Only waypoints
// whose successor is already past the kill line are dropped, so the
// segment under the ball survives any window size.
func (e *Engine) extendPath() {
	limit := e.ball.Pos.Y() - e.height*e.cfg.Path.Lookahead
	for i := 0; i < maxExtendPerTick && len(e.path) > 0; i++ {
		last := e.path[len(e.path)-1]
		if last.Y() <= limit {
			break
		}
		next := e.gen.Next(last, e.width)
		e.path = append(e.path, next)
		e.maybeSpawnItem(last, next)
	}

	killY := e.cameraY + e.height + e.cfg.Items.KillMargin
	excess := 0
	for len(e.path)-excess > e.cfg.Path.MaxWaypoints && e.path[excess+1].Y() > killY {
		excess++
	}
	if excess > 0 {
		e.path = append(e.path[:0], e.path[excess:]...)
	}
}

// maxExtendPerTick bounds path growth in a single frame.
const maxExtendPerTick = 32
