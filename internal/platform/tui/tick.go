// Package tui hosts the runner in a terminal through Bubble Tea.
// It handles the frame loop, input reduction, rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-zigzag/internal/core"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends the next frame's tick.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
