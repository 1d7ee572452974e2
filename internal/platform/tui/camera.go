package tui

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/neon-zigzag/internal/core"
)

// Camera glide settings.
const (
	cameraGlide    = 0.25 // Seconds to reach a new target
	cameraDeadzone = 0.15 // Fraction of the view the ball may drift before the camera moves
)

// camera scrolls the view horizontally when the playfield is wider than
// the terminal. Vertical scrolling comes from the engine.
type camera struct {
	x      float64
	target float64
	tween  *gween.Tween
}

// follow retargets the camera so ballX stays inside the deadzone of a view
// viewW wide over a world worldW wide, then advances the glide by dt seconds.
func (c *camera) follow(ballX, viewW, worldW, dt float64) {
	if viewW >= worldW {
		c.x, c.target, c.tween = 0, 0, nil
		return
	}

	maxX := worldW - viewW
	margin := viewW * cameraDeadzone
	target := c.target
	switch {
	case ballX < c.target+margin:
		target = ballX - margin
	case ballX > c.target+viewW-margin:
		target = ballX - viewW + margin
	}
	target = core.ClampF(target, 0, maxX)

	if math.Abs(target-c.target) > 1 {
		c.target = target
		c.tween = gween.New(float32(c.x), float32(target), cameraGlide, ease.OutQuad)
	}

	if c.tween != nil {
		val, done := c.tween.Update(float32(dt))
		c.x = float64(val)
		if done {
			c.x = c.target
			c.tween = nil
		}
	}
	c.x = core.ClampF(c.x, 0, maxX)
}

// snap jumps to ballX centered without gliding.
func (c *camera) snap(ballX, viewW, worldW float64) {
	c.tween = nil
	if viewW >= worldW {
		c.x, c.target = 0, 0
		return
	}
	c.x = core.ClampF(ballX-viewW/2, 0, worldW-viewW)
	c.target = c.x
}
