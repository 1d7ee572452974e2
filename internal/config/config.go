// Package config provides YAML-based configuration loading and difficulty
// management for the runner simulation and its terminal host.
package config

import "time"

// RunnerConfig contains all tuning for the runner simulation.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Path       RunnerPath       `yaml:"path"`
	Combo      RunnerCombo      `yaml:"combo"`
	Items      RunnerItems      `yaml:"items"`
	Lives      RunnerLives      `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines speed and steering parameters.
// Speeds are world units per reference frame (1/60 s).
type RunnerPhysics struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	Accel         float64 `yaml:"accel"`          // Speed gained per point of score
	SteerForce    float64 `yaml:"steer_force"`    // Heading lag rate at base speed
	SteerBonus    float64 `yaml:"steer_bonus"`    // Extra steer rate at max speed
	TurnAngle     float64 `yaml:"turn_angle"`     // Target heading while turning, fraction of pi
	StraightAngle float64 `yaml:"straight_angle"` // Target heading otherwise, fraction of pi
	TrailLength   int     `yaml:"trail_length"`
	BallSize      float64 `yaml:"ball_size"`
	ScoreRate     float64 `yaml:"score_rate"` // Score per unit of forward speed
}

// MaxLookahead is the largest accepted path.lookahead, in screen heights.
const MaxLookahead = 4.0

// RunnerPath defines corridor geometry and generator behavior.
type RunnerPath struct {
	Width            float64 `yaml:"width"`
	Margin           float64 `yaml:"margin"`             // Generator edge margin
	Lookahead        float64 `yaml:"lookahead"`          // Screen heights generated ahead of the ball
	MaxWaypoints     int     `yaml:"max_waypoints"`      // Trim threshold; waypoints near the ball are always kept
	SegmentPadding   float64 `yaml:"segment_padding"`    // Y band around a segment tested for containment
	SwitchBase       float64 `yaml:"switch_base"`        // Direction switch probability at streak 0
	SwitchPerSegment float64 `yaml:"switch_per_segment"` // Added per segment of streak
	HardTurnChance   float64 `yaml:"hard_turn_chance"`
	SeedPoints       int     `yaml:"seed_points"`  // Straight waypoints at session start
	SeedSpacing      float64 `yaml:"seed_spacing"` // Spacing of the straight waypoints
	LeadPoints       int     `yaml:"lead_points"`  // Generated waypoints at session start
}

// RunnerCombo defines the proximity combo multiplier.
type RunnerCombo struct {
	Threshold      float64 `yaml:"threshold"` // Edge margin below which a near-miss counts
	Gain           float64 `yaml:"gain"`
	Decay          float64 `yaml:"decay"`
	Max            float64 `yaml:"max"`
	ScoreBonus     float64 `yaml:"score_bonus"`      // Score rate bonus per combo point above 1
	NearMissChance float64 `yaml:"near_miss_chance"` // Particle chance per reference frame
}

// RunnerItems defines item spawning and pickup.
type RunnerItems struct {
	SpawnChance     float64       `yaml:"spawn_chance"` // Per new segment
	PowerupRate     float64       `yaml:"powerup_rate"`
	ObstacleRate    float64       `yaml:"obstacle_rate"`
	CoinOffset      float64       `yaml:"coin_offset"`
	HazardOffset    float64       `yaml:"hazard_offset"` // Obstacles and power-ups
	CoinPickupDist  float64       `yaml:"coin_pickup_dist"`
	ObstacleHitDist float64       `yaml:"obstacle_hit_dist"`
	CoinValue       float64       `yaml:"coin_value"`
	ShieldDuration  time.Duration `yaml:"shield_duration"`
	MagnetDuration  time.Duration `yaml:"magnet_duration"`
	MagnetRange     float64       `yaml:"magnet_range"`
	MagnetPull      float64       `yaml:"magnet_pull"` // Fraction of remaining distance per reference frame
	KillMargin      float64       `yaml:"kill_margin"` // Distance below the screen before items are dropped
}

// RunnerLives defines the life and respawn timings.
type RunnerLives struct {
	Starting        int           `yaml:"starting"`
	Invulnerability time.Duration `yaml:"invulnerability"` // Shield granted on respawn
	Clearance       time.Duration `yaml:"clearance"`       // Shield granted when leaving the respawn wait
	CrashDuration   time.Duration `yaml:"crash_duration"`
	GameOverDelay   time.Duration `yaml:"game_over_delay"`
	BouncePenalty   time.Duration `yaml:"bounce_penalty"`
	BouncePadding   float64       `yaml:"bounce_padding"`
}

// DifficultyConfig defines the score-driven speed progression.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = base speed, 1.0 = max speed
}

// TUIConfig contains terminal host settings.
type TUIConfig struct {
	CellWidth   float64       // World units per terminal column
	CellHeight  float64       // World units per terminal row
	Control     ControlMode   // How key presses map to the turning signal
	HoldRelease time.Duration // Hold mode: turning ends this long after the last press
	MaxDelta    time.Duration // Frame delta clamp
}

// ControlMode selects how the terminal reduces key presses to a turning signal.
type ControlMode string

const (
	ControlToggle ControlMode = "toggle"
	ControlHold   ControlMode = "hold"
)

// ParseControlMode returns the control mode for a flag value, defaulting to toggle.
func ParseControlMode(s string) ControlMode {
	if ControlMode(s) == ControlHold {
		return ControlHold
	}
	return ControlToggle
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.35
	default:
		return 0.0
	}
}
