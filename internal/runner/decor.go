package runner

// Dust is an ambient parallax speck in screen space. Cosmetic only.
type Dust struct {
	Pos   Vec2    // Screen coordinates
	Depth float64 // Parallax factor, nearer specks move faster
	Size  float64
	Alpha float64
	Drift float64 // Horizontal drift per reference frame
}

const dustCount = 40

// scatterDust places the dust field uniformly over the playfield.
func (e *Engine) scatterDust() {
	e.dust = e.dust[:0]
	for i := 0; i < dustCount; i++ {
		e.dust = append(e.dust, Dust{
			Pos:   Vec2{e.rng.Float64() * e.width, e.rng.Float64() * e.height},
			Depth: e.rng.Float64()*1.5 + 0.2,
			Size:  e.rng.Float64()*2 + 0.5,
			Alpha: e.rng.Float64()*0.4 + 0.1,
			Drift: (e.rng.Float64() - 0.5) * 0.2,
		})
	}
}

// updateDust scrolls the dust field with the ball's speed, or slowly when
// the ball is not moving.
func (e *Engine) updateDust(f float64) {
	moving := e.state == StatePlaying && e.phaseKind() == PhaseActive
	speed := e.cfg.Physics.BaseSpeed * 0.1 * f
	parallax := 0.0
	if moving {
		speed = absF(e.ball.Vel.Y()) * f
		parallax = e.ball.Vel.X() * 0.8 * f
	}

	for i := range e.dust {
		d := &e.dust[i]
		x := d.Pos.X() + d.Drift*f - parallax*d.Depth
		y := d.Pos.Y() + speed*d.Depth
		if y > e.height {
			y = -10
			x = e.rng.Float64() * e.width
		}
		if x > e.width {
			x = 0
		} else if x < 0 {
			x = e.width
		}
		d.Pos = Vec2{x, y}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
