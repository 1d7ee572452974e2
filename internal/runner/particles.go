package runner

// Tint is the semantic color class of a particle. Renderers map tints to
// concrete colors.
type Tint int

const (
	TintCoin Tint = iota
	TintShield
	TintMagnet
	TintObstacle
	TintNearMiss
	TintScore
	TintTrailGlow // Active style's glow color
	TintRespawn
)

// Particle is a short-lived cosmetic spark. Game logic never reads it.
type Particle struct {
	Pos   Vec2
	Vel   Vec2
	Life  float64 // 1 at spawn, removed at <= 0
	Decay float64 // Life lost per reference frame
	Size  float64
	Tint  Tint
}

// burst describes a particle spawn.
type burst struct {
	count int
	size  float64
	speed float64
	decay float64
}

var (
	burstCoin     = burst{count: 8, size: 3, speed: 6, decay: 0.04}
	burstPowerUp  = burst{count: 15, size: 4, speed: 8, decay: 0.02}
	burstObstacle = burst{count: 10, size: 4, speed: 8, decay: 0.02}
	burstBounce   = burst{count: 20, size: 3, speed: 8, decay: 0.03}
	burstNearMiss = burst{count: 2, size: 4, speed: 6, decay: 0.03}
	burstScore    = burst{count: 1, size: 2, speed: 2, decay: 0.05}
	burstDeath    = burst{count: 40, size: 6, speed: 10, decay: 0.015}
	burstRespawn  = burst{count: 20, size: 4, speed: 5, decay: 0.05}
)

// maxParticles caps the pool during long near-miss streaks.
const maxParticles = 600

// spawnParticles emits b.count particles at pos with randomized velocity,
// size and decay.
func (e *Engine) spawnParticles(pos Vec2, tint Tint, b burst) {
	for i := 0; i < b.count; i++ {
		if len(e.particles) >= maxParticles {
			return
		}
		size := b.size + (e.rng.Float64()-0.5)*(b.size*0.5)
		if size < 1 {
			size = 1
		}
		e.particles = append(e.particles, Particle{
			Pos:   pos,
			Vel:   Vec2{(e.rng.Float64() - 0.5) * b.speed, (e.rng.Float64() - 0.5) * b.speed},
			Life:  1.0,
			Decay: b.decay * (0.8 + e.rng.Float64()*0.4),
			Size:  size,
			Tint:  tint,
		})
	}
}

// updateParticles integrates and ages particles, dropping dead ones.
func (e *Engine) updateParticles(f float64) {
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.Pos = p.Pos.Add(p.Vel.Mul(f))
		p.Life -= p.Decay * f
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	e.particles = alive
}
