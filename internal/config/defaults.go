package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			BaseSpeed:     6.0,
			MaxSpeed:      22.0,
			Accel:         0.003,
			SteerForce:    0.11,
			SteerBonus:    0.08,
			TurnAngle:     0.8,
			StraightAngle: 0.2,
			TrailLength:   20,
			BallSize:      9,
			ScoreRate:     0.05,
		},
		Path: RunnerPath{
			Width:            140,
			Margin:           120,
			Lookahead:        1.5,
			MaxWaypoints:     50,
			SegmentPadding:   100,
			SwitchBase:       0.1,
			SwitchPerSegment: 0.2,
			HardTurnChance:   0.6,
			SeedPoints:       5,
			SeedSpacing:      150,
			LeadPoints:       10,
		},
		Combo: RunnerCombo{
			Threshold:      30,
			Gain:           0.05,
			Decay:          0.02,
			Max:            5.0,
			ScoreBonus:     0.1,
			NearMissChance: 0.4,
		},
		Items: RunnerItems{
			SpawnChance:     0.4,
			PowerupRate:     0.05,
			ObstacleRate:    0.1,
			CoinOffset:      60,
			HazardOffset:    80,
			CoinPickupDist:  35,
			ObstacleHitDist: 24, // ball size + 15
			CoinValue:       5,
			ShieldDuration:  5 * time.Second,
			MagnetDuration:  10 * time.Second,
			MagnetRange:     400,
			MagnetPull:      0.15,
			KillMargin:      100,
		},
		Lives: RunnerLives{
			Starting:        3,
			Invulnerability: 2 * time.Second,
			Clearance:       200 * time.Millisecond,
			CrashDuration:   800 * time.Millisecond,
			GameOverDelay:   800 * time.Millisecond,
			BouncePenalty:   time.Second,
			BouncePadding:   8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}

// DefaultTUIConfig returns the default terminal host configuration.
func DefaultTUIConfig() TUIConfig {
	return TUIConfig{
		CellWidth:   10,
		CellHeight:  20,
		Control:     ControlToggle,
		HoldRelease: 150 * time.Millisecond,
		MaxDelta:    100 * time.Millisecond,
	}
}

// GetDefaultYAML returns the embedded default runner YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
