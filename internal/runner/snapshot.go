package runner

import "time"

// BallView is a read-only copy of the ball.
type BallView struct {
	Pos          Vec2
	Vel          Vec2
	Angle        float64
	Turning      bool
	Combo        float64
	Visible      bool
	Invulnerable bool
	Trail        []Vec2 // Oldest first
}

// Snapshot is an immutable copy of everything a renderer needs for one
// frame. Mutating it never affects the engine.
type Snapshot struct {
	State SessionState
	Phase Phase

	Width     float64
	Height    float64
	CameraY   float64
	PathWidth float64

	Ball      BallView
	Path      []Vec2
	Items     []Item
	Particles []Particle
	Dust      []Dust

	Score           float64
	Lives           int
	Coins           int
	Invulnerability time.Duration
	Magnet          time.Duration
	Style           TrailStyle
}

// Renderer consumes snapshots.
type Renderer interface {
	Render(s Snapshot)
}

// Snapshot returns a deep copy of the current simulation state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state,
		Phase:     e.phaseKind(),
		Width:     e.width,
		Height:    e.height,
		CameraY:   e.cameraY,
		PathWidth: e.cfg.Path.Width,
		Ball: BallView{
			Pos:          e.ball.Pos,
			Vel:          e.ball.Vel,
			Angle:        e.ball.Angle,
			Turning:      e.ball.Turning,
			Combo:        e.ball.Combo,
			Visible:      e.ball.Visible,
			Invulnerable: e.invulnerable(),
			Trail:        e.ball.trail.points(),
		},
		Path:            append([]Vec2(nil), e.path...),
		Items:           append([]Item(nil), e.items...),
		Particles:       append([]Particle(nil), e.particles...),
		Dust:            append([]Dust(nil), e.dust...),
		Score:           e.score,
		Lives:           e.lives,
		Coins:           e.coins,
		Invulnerability: e.invuln,
		Magnet:          e.magnet,
		Style:           e.style,
	}
}

// Draw hands a snapshot to r. It never mutates the engine.
func (e *Engine) Draw(r Renderer) {
	if r == nil {
		return
	}
	r.Render(e.Snapshot())
}
