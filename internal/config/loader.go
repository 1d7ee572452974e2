package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.zigzag/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Missing keys keep their default values; the result is always sanitized.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Sanitize()
		return cfg, nil
	}

	candidates := []string{userConfigPath("runner.yaml"), filepath.Join("configs", "runner.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultRunnerConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			fileCfg.Sanitize()
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Sanitize()
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zigzag", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Lives.Starting = 5
		cfg.Path.Width = 160
		cfg.Physics.Accel = 0.002
	case DifficultyHard:
		cfg.Lives.Starting = 2
		cfg.Path.Width = 120
		cfg.Physics.Accel = 0.004
	}
}

// Sanitize replaces malformed values with their defaults and returns the
// yaml keys that were corrected.
func (c *RunnerConfig) Sanitize() []string {
	def := DefaultRunnerConfig()
	var fixed []string

	positive := func(name string, v *float64, d float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			*v = d
			fixed = append(fixed, name)
		}
	}
	nonNegative := func(name string, v *float64, d float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			*v = d
			fixed = append(fixed, name)
		}
	}
	unit := func(name string, v *float64, d float64) {
		if math.IsNaN(*v) || *v < 0 || *v > 1 {
			*v = d
			fixed = append(fixed, name)
		}
	}
	count := func(name string, v *int, d int) {
		if *v <= 0 {
			*v = d
			fixed = append(fixed, name)
		}
	}

	p := &c.Physics
	positive("physics.base_speed", &p.BaseSpeed, def.Physics.BaseSpeed)
	positive("physics.max_speed", &p.MaxSpeed, def.Physics.MaxSpeed)
	if p.MaxSpeed < p.BaseSpeed {
		p.MaxSpeed = p.BaseSpeed
		fixed = append(fixed, "physics.max_speed")
	}
	nonNegative("physics.accel", &p.Accel, def.Physics.Accel)
	positive("physics.steer_force", &p.SteerForce, def.Physics.SteerForce)
	nonNegative("physics.steer_bonus", &p.SteerBonus, def.Physics.SteerBonus)
	unit("physics.turn_angle", &p.TurnAngle, def.Physics.TurnAngle)
	unit("physics.straight_angle", &p.StraightAngle, def.Physics.StraightAngle)
	count("physics.trail_length", &p.TrailLength, def.Physics.TrailLength)
	positive("physics.ball_size", &p.BallSize, def.Physics.BallSize)
	positive("physics.score_rate", &p.ScoreRate, def.Physics.ScoreRate)

	pa := &c.Path
	positive("path.width", &pa.Width, def.Path.Width)
	positive("path.margin", &pa.Margin, def.Path.Margin)
	positive("path.lookahead", &pa.Lookahead, def.Path.Lookahead)
	if pa.Lookahead > MaxLookahead {
		pa.Lookahead = def.Path.Lookahead
		fixed = append(fixed, "path.lookahead")
	}
	count("path.max_waypoints", &pa.MaxWaypoints, def.Path.MaxWaypoints)
	if pa.MaxWaypoints < 4 {
		pa.MaxWaypoints = def.Path.MaxWaypoints
		fixed = append(fixed, "path.max_waypoints")
	}
	nonNegative("path.segment_padding", &pa.SegmentPadding, def.Path.SegmentPadding)
	unit("path.switch_base", &pa.SwitchBase, def.Path.SwitchBase)
	unit("path.switch_per_segment", &pa.SwitchPerSegment, def.Path.SwitchPerSegment)
	unit("path.hard_turn_chance", &pa.HardTurnChance, def.Path.HardTurnChance)
	count("path.seed_points", &pa.SeedPoints, def.Path.SeedPoints)
	positive("path.seed_spacing", &pa.SeedSpacing, def.Path.SeedSpacing)
	count("path.lead_points", &pa.LeadPoints, def.Path.LeadPoints)

	co := &c.Combo
	nonNegative("combo.threshold", &co.Threshold, def.Combo.Threshold)
	nonNegative("combo.gain", &co.Gain, def.Combo.Gain)
	nonNegative("combo.decay", &co.Decay, def.Combo.Decay)
	if math.IsNaN(co.Max) || co.Max < 1 {
		co.Max = def.Combo.Max
		fixed = append(fixed, "combo.max")
	}
	nonNegative("combo.score_bonus", &co.ScoreBonus, def.Combo.ScoreBonus)
	unit("combo.near_miss_chance", &co.NearMissChance, def.Combo.NearMissChance)

	it := &c.Items
	unit("items.spawn_chance", &it.SpawnChance, def.Items.SpawnChance)
	unit("items.powerup_rate", &it.PowerupRate, def.Items.PowerupRate)
	unit("items.obstacle_rate", &it.ObstacleRate, def.Items.ObstacleRate)
	if it.PowerupRate+it.ObstacleRate > 1 {
		it.PowerupRate = def.Items.PowerupRate
		it.ObstacleRate = def.Items.ObstacleRate
		fixed = append(fixed, "items.powerup_rate", "items.obstacle_rate")
	}
	nonNegative("items.coin_offset", &it.CoinOffset, def.Items.CoinOffset)
	nonNegative("items.hazard_offset", &it.HazardOffset, def.Items.HazardOffset)
	positive("items.coin_pickup_dist", &it.CoinPickupDist, def.Items.CoinPickupDist)
	positive("items.obstacle_hit_dist", &it.ObstacleHitDist, def.Items.ObstacleHitDist)
	nonNegative("items.coin_value", &it.CoinValue, def.Items.CoinValue)
	nonNegative("items.magnet_range", &it.MagnetRange, def.Items.MagnetRange)
	unit("items.magnet_pull", &it.MagnetPull, def.Items.MagnetPull)
	nonNegative("items.kill_margin", &it.KillMargin, def.Items.KillMargin)
	if it.ShieldDuration <= 0 {
		it.ShieldDuration = def.Items.ShieldDuration
		fixed = append(fixed, "items.shield_duration")
	}
	if it.MagnetDuration <= 0 {
		it.MagnetDuration = def.Items.MagnetDuration
		fixed = append(fixed, "items.magnet_duration")
	}

	l := &c.Lives
	count("lives.starting", &l.Starting, def.Lives.Starting)
	durations := []struct {
		name string
		v    *time.Duration
		d    time.Duration
	}{
		{"lives.invulnerability", &l.Invulnerability, def.Lives.Invulnerability},
		{"lives.clearance", &l.Clearance, def.Lives.Clearance},
		{"lives.crash_duration", &l.CrashDuration, def.Lives.CrashDuration},
		{"lives.bounce_penalty", &l.BouncePenalty, def.Lives.BouncePenalty},
	}
	for _, d := range durations {
		if *d.v <= 0 {
			*d.v = d.d
			fixed = append(fixed, d.name)
		}
	}
	if l.GameOverDelay < 0 {
		l.GameOverDelay = def.Lives.GameOverDelay
		fixed = append(fixed, "lives.game_over_delay")
	}
	nonNegative("lives.bounce_padding", &l.BouncePadding, def.Lives.BouncePadding)
	if l.BouncePadding >= pa.Width/2 {
		l.BouncePadding = math.Min(def.Lives.BouncePadding, pa.Width/4)
		fixed = append(fixed, "lives.bounce_padding")
	}

	unit("difficulty.initial_level", &c.Difficulty.InitialLevel, def.Difficulty.InitialLevel)

	return fixed
}
