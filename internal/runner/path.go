package runner

import (
	"math/rand"

	"github.com/vovakirdan/neon-zigzag/internal/config"
)

// PathGenerator produces corridor waypoints as a biased random walk.
// The longer it runs in one direction, the likelier it is to switch.
type PathGenerator struct {
	cfg    config.RunnerPath
	rng    *rand.Rand
	dir    float64 // +1 right, -1 left
	streak int     // Segments generated in the current direction
}

// Step regimes: hard turns are wide and short, straightaways narrow and long.
const (
	hardTurnXBase     = 150.0
	hardTurnYBase     = 100.0
	straightawayXBase = 80.0
	straightawayYBase = 180.0
	stepJitter        = 100.0
	softClampJitter   = 50.0
)

// NewPathGenerator creates a generator drawing from rng.
func NewPathGenerator(cfg config.RunnerPath, rng *rand.Rand) *PathGenerator {
	g := &PathGenerator{cfg: cfg, rng: rng}
	g.Reset()
	return g
}

// Reset re-randomizes the bias direction and clears the streak.
func (g *PathGenerator) Reset() {
	g.dir = 1
	if g.rng.Float64() < 0.5 {
		g.dir = -1
	}
	g.streak = 0
}

// Direction returns the current bias direction (+1 or -1).
func (g *PathGenerator) Direction() float64 {
	return g.dir
}

// Streak returns the number of segments generated in the current direction.
func (g *PathGenerator) Streak() int {
	return g.streak
}

// Next returns the waypoint following last on a playfield of the given width.
// The result is always ahead of last (smaller y).
func (g *PathGenerator) Next(last Vec2, width float64) Vec2 {
	margin := g.cfg.Margin

	switch {
	case last.X() < margin:
		g.dir = 1
		g.streak = 0
	case last.X() > width-margin:
		g.dir = -1
		g.streak = 0
	default:
		p := g.cfg.SwitchBase + float64(g.streak)*g.cfg.SwitchPerSegment
		if g.rng.Float64() < p && g.streak > 0 {
			g.dir = -g.dir
			g.streak = 0
		}
	}

	xBase, yBase := straightawayXBase, straightawayYBase
	if g.rng.Float64() < g.cfg.HardTurnChance {
		xBase, yBase = hardTurnXBase, hardTurnYBase
	}
	xStep := xBase + g.rng.Float64()*stepJitter
	yStep := yBase + g.rng.Float64()*stepJitter

	nextX := last.X() + xStep*g.dir

	// Soft clamp keeps some jitter at the edges
	if nextX < margin/2 {
		nextX = margin/2 + g.rng.Float64()*softClampJitter
	}
	if nextX > width-margin/2 {
		nextX = width - margin/2 - g.rng.Float64()*softClampJitter
	}

	g.streak++
	return Vec2{nextX, last.Y() - yStep}
}
