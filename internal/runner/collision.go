package runner

import (
	"math"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
)

// containment is the result of testing a point against the corridor.
type containment struct {
	found   bool    // At least one segment was tested
	onPath  bool    // Distance to the centerline is below half the width
	margin  float64 // Half width minus the smallest distance
	closest Vec2    // Nearest centerline point
	segDir  Vec2    // Direction of the segment holding closest
}

// probe tests p against the corridor. Only segments whose padded y-span
// brackets p are considered; when none does, every segment is.
func (e *Engine) probe(p Vec2) containment {
	var c containment
	if len(e.path) < 2 {
		return c
	}

	pad := e.cfg.Path.SegmentPadding
	best := math.Inf(1)
	consider := func(a, b Vec2) {
		cp := closestOnSegment(a, b, p)
		if d := p.Sub(cp).Len(); d < best {
			best = d
			c.closest = cp
			c.segDir = b.Sub(a)
			c.found = true
		}
	}

	for i := 0; i+1 < len(e.path); i++ {
		a, b := e.path[i], e.path[i+1]
		if p.Y() <= math.Max(a.Y(), b.Y())+pad && p.Y() >= math.Min(a.Y(), b.Y())-pad {
			consider(a, b)
		}
	}
	if !c.found {
		for i := 0; i+1 < len(e.path); i++ {
			consider(e.path[i], e.path[i+1])
		}
	}

	half := e.cfg.Path.Width / 2
	c.onPath = best < half
	c.margin = half - best
	return c
}

// closestOnCenterline returns the corridor centerline point nearest to p,
// or p itself when the path is too short to have segments.
func (e *Engine) closestOnCenterline(p Vec2) Vec2 {
	c := e.probe(p)
	if !c.found {
		return p
	}
	return c.closest
}

// checkContainment applies the combo, bounce or life-loss outcome of the
// ball's position relative to the corridor.
func (e *Engine) checkContainment(f float64) {
	if !e.ball.Visible {
		return
	}
	c := e.probe(e.ball.Pos)
	if !c.found {
		return
	}

	cc := e.cfg.Combo
	switch {
	case c.onPath && c.margin < cc.Threshold:
		e.ball.Combo = math.Min(e.ball.Combo+cc.Gain*f, cc.Max)
		if e.rng.Float64() < cc.NearMissChance*f {
			at := Vec2{e.ball.Pos.X() + (e.rng.Float64()-0.5)*10, e.ball.Pos.Y()}
			e.spawnParticles(at, TintNearMiss, burstNearMiss)
		}
		if e.ball.Combo > e.stats.MaxCombo {
			e.stats.MaxCombo = e.ball.Combo
		}

	case c.onPath:
		e.ball.Combo = math.Max(1, e.ball.Combo-cc.Decay*f)

	case e.invulnerable():
		e.bounce(c)

	default:
		e.loseLife(c.closest)
	}
}

// bounce reflects the ball off the corridor wall and pushes it back inside.
// Velocity is only reflected while it points into the wall.
func (e *Engine) bounce(c containment) {
	n := e.ball.Pos.Sub(c.closest)
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	} else {
		n = perpendicular(c.segDir)
	}

	if e.ball.Vel.Dot(n) < 0 {
		e.ball.Vel = reflect(e.ball.Vel, n)
		e.ball.Angle = math.Atan2(e.ball.Vel.Y(), e.ball.Vel.X())
	}

	inset := e.cfg.Path.Width/2 - e.cfg.Lives.BouncePadding
	e.ball.Pos = c.closest.Add(n.Mul(inset))

	e.invuln -= e.cfg.Lives.BouncePenalty
	if e.invuln < 0 {
		e.invuln = 0
	}
	e.stats.Bounces++

	e.spawnParticles(e.ball.Pos, TintShield, burstBounce)
	e.sink.Play(audio.CuePickup)
}
