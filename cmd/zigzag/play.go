package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
	"github.com/vovakirdan/neon-zigzag/internal/config"
	"github.com/vovakirdan/neon-zigzag/internal/core"
	"github.com/vovakirdan/neon-zigzag/internal/platform/tui"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagControl    string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game with the menu, the trail shop and the scoreboard.

Controls:
  Space/Left/Right - Turn
  Enter            - Start / play again
  P/Esc            - Pause
  S                - Trail shop
  H                - High scores
  M                - Mute
  Q/Ctrl+C         - Quit

Terminals report key presses but not releases, so turning is either a
toggle (each press flips it) or a hold that ends shortly after the last
key repeat.

Difficulty options:
  easy   - Wide corridor, five lives, gentle speed-up
  normal - Default corridor and lives
  hard   - Narrow corridor, two lives, starts fast
  fixed  - No progression, stays at config's initial level

Examples:
  zigzag play
  zigzag play --difficulty easy
  zigzag play --control hold
  zigzag play --config ./my-runner.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagControl, "control", "toggle", "Turn control: toggle or hold")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

// loadRunnerConfig loads the runner config and applies --difficulty.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyRunnerPreset(&cfg, preset)
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogFile("zigzag")
	defer closeLog()

	tuiCfg := config.DefaultTUIConfig()
	tuiCfg.Control = config.ParseControlMode(flagControl)

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	// Get terminal size
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("playing without storage", "error", err)
		// Continue without storage - coins last for this session only
		store = nil
	}

	player := audio.NewPlayer(audio.DefaultGain)
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	if player.Silent() {
		logger.Info("no audio backend, playing silently")
	} else {
		logger.Debug("audio started", "backend", player.BackendName())
	}

	opts := tui.Options{
		Runner:  runnerCfg,
		TUI:     tuiCfg,
		Runtime: cfg,
		Store:   store,
		Audio:   player,
		Logger:  logger,
		Muted:   flagMute,
	}

	runErr := tui.Run(opts)

	played, dropped := player.Stats()
	logger.Debug("audio stopped", "played", played, "dropped", dropped)
	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
