package config

import "math"

// DifficultyManager derives speed and steering from the current score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	physics      RunnerPhysics
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, physics RunnerPhysics) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		physics:      physics,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the difficulty level (0.0 to 1.0) reached at the given score.
// Level 1.0 is reached when base speed plus accumulated acceleration hits max speed.
func (d *DifficultyManager) Level(score float64) float64 {
	span := d.physics.MaxSpeed - d.physics.BaseSpeed
	if !d.cfg.Enabled || span <= 0 {
		return d.initialLevel
	}

	progress := clampF(score*d.physics.Accel/span, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the forward speed for the given score, per reference frame.
func (d *DifficultyManager) Speed(score float64) float64 {
	span := math.Max(0, d.physics.MaxSpeed-d.physics.BaseSpeed)
	return d.physics.BaseSpeed + d.Level(score)*span
}

// SteerForce returns the heading lag rate for the given score.
// Steering tightens as the ball speeds up.
func (d *DifficultyManager) SteerForce(score float64) float64 {
	return d.physics.SteerForce + d.Level(score)*d.physics.SteerBonus
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
