// zigzag is a neon endless runner for the terminal: steer the ball along a
// winding corridor, collect coins and power-ups, and unlock trail styles.
//
// Usage:
//
//	zigzag play              - Play in this terminal
//	zigzag serve             - Start SSH server for remote play
//	zigzag scores            - Show the best runs
//	zigzag styles            - List trail styles and what you own
//	zigzag config            - Print the default runner config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible paths
//	--db <path>     - Set database path (default: ~/.zigzag/zigzag.db)
//	--log <path>    - Set log file (default: ~/.zigzag/zigzag.log)
//	--debug         - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zigzag",
	Short: "Neon Zigzag - an endless runner in your terminal",
	Long: `Neon Zigzag is a one-button endless runner. The ball moves forward on
its own; hold a turn to steer it along a procedural neon corridor.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View the best runs
  styles   - List trail styles
  config   - Print the default runner config

Examples:
  zigzag play
  zigzag play --difficulty hard --control hold
  zigzag serve --ssh :2222
  zigzag scores --interactive`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.zigzag/zigzag.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.zigzag/zigzag.log", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(configCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogFile returns a logger writing to the --log file. The terminal is
// owned by the game, so nothing is logged to stderr while playing. The
// returned close function is never nil.
func openLogFile(prefix string) (*log.Logger, func()) {
	opts := log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           log.InfoLevel,
	}
	if flagDebug {
		opts.Level = log.DebugLevel
	}

	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	opts.Formatter = log.LogfmtFormatter
	return log.NewWithOptions(f, opts), func() { f.Close() }
}
