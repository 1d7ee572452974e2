package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-zigzag/internal/config"
)

func TestToggleControl(t *testing.T) {
	c := newTurnControl(config.ControlToggle, 150*time.Millisecond)
	now := time.Unix(0, 0)

	if c.Turning(now) {
		t.Fatal("turning before any press")
	}
	c.Press(now)
	if !c.Turning(now.Add(10 * time.Second)) {
		t.Error("toggle released without a press")
	}
	c.Press(now.Add(time.Second))
	if c.Turning(now.Add(time.Second)) {
		t.Error("second press did not toggle off")
	}
}

func TestHoldControl(t *testing.T) {
	c := newTurnControl(config.ControlHold, 150*time.Millisecond)
	now := time.Unix(0, 0)

	tests := []struct {
		name  string
		press bool
		at    time.Duration
		want  bool
	}{
		{"press", true, 0, true},
		{"within window", false, 100 * time.Millisecond, true},
		{"repeat", true, 140 * time.Millisecond, true},
		{"still held", false, 280 * time.Millisecond, true},
		{"released", false, 300 * time.Millisecond, false},
		{"pressed again", true, time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := now.Add(tt.at)
			if tt.press {
				c.Press(at)
			}
			if got := c.Turning(at); got != tt.want {
				t.Errorf("Turning() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestControlSetAndReset(t *testing.T) {
	c := newTurnControl(config.ControlToggle, 0)
	c.Set(true)
	if !c.Turning(time.Now()) {
		t.Error("Set(true) ignored")
	}
	c.Reset()
	if c.Turning(time.Now()) {
		t.Error("Reset() kept turning")
	}
}

func TestCameraFollow(t *testing.T) {
	var c camera

	// View wider than the world never scrolls
	c.follow(700, 800, 600, 1)
	if c.x != 0 {
		t.Errorf("x = %v, want 0", c.x)
	}

	// Ball near the right edge pulls the view right, clamped to the world
	for i := 0; i < 60; i++ {
		c.follow(790, 400, 800, 1.0/60)
	}
	if c.x != 400 {
		t.Errorf("x = %v, want 400", c.x)
	}

	// Ball inside the deadzone keeps the view still
	before := c.x
	c.follow(600, 400, 800, 1.0/60)
	if c.x != before {
		t.Errorf("x moved to %v inside the deadzone", c.x)
	}

	c.snap(100, 400, 800)
	if c.x != 0 || c.tween != nil {
		t.Errorf("snap: x=%v tween=%v", c.x, c.tween)
	}
}
