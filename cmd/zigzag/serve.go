package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-zigzag/internal/config"
	"github.com/vovakirdan/neon-zigzag/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeFPS    int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the zigzag SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Coins and unlocks are kept per
user name while the server runs. Runs are stored per-server (all users
share the same scoreboard).
Remote sessions have no sound.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.zigzag/host_key

Examples:
  zigzag serve                           # Listen on :23234 with auto-generated key
  zigzag serve --ssh :2222               # Listen on port 2222
  zigzag serve --host-key ./my_host_key  # Use specific host key
  zigzag serve --db ./zigzag.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeFPS, "session-fps", 30, "Tick rate of remote sessions")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 32, "Maximum concurrent players (0 = unlimited)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The server owns no terminal UI, so it logs to stderr
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "zigzag-ssh",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagServeFPS
	cfg.MaxSessions = flagMaxSessions
	cfg.Runner = runnerCfg
	cfg.TUI = config.DefaultTUIConfig()

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		logger.Error("could not create server", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i+1:]
	}
	return addr
}
