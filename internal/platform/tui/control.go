package tui

import (
	"time"

	"github.com/vovakirdan/neon-zigzag/internal/config"
)

// turnControl reduces key presses to the engine's turning signal. Terminals
// report presses but not releases: toggle mode flips on each press, hold
// mode stays on while presses (or key repeats) keep arriving.
type turnControl struct {
	mode      config.ControlMode
	release   time.Duration
	turning   bool
	lastPress time.Time
}

func newTurnControl(mode config.ControlMode, release time.Duration) turnControl {
	return turnControl{mode: mode, release: release}
}

// Press registers a turn key press at now.
func (c *turnControl) Press(now time.Time) {
	c.lastPress = now
	if c.mode == config.ControlHold {
		c.turning = true
		return
	}
	c.turning = !c.turning
}

// Set forces the signal, e.g. when the engine resumes turning on its own.
func (c *turnControl) Set(turning bool) {
	c.turning = turning
}

// Turning returns the signal at now. In hold mode it expires once no press
// has arrived within the release window.
func (c *turnControl) Turning(now time.Time) bool {
	if c.mode == config.ControlHold && c.turning && now.Sub(c.lastPress) > c.release {
		c.turning = false
	}
	return c.turning
}

// Reset clears the signal for a new session.
func (c *turnControl) Reset() {
	c.turning = false
	c.lastPress = time.Time{}
}
