package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
	"github.com/vovakirdan/neon-zigzag/internal/config"
	"github.com/vovakirdan/neon-zigzag/internal/core"
	"github.com/vovakirdan/neon-zigzag/internal/runner"
	"github.com/vovakirdan/neon-zigzag/internal/shop"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type recordSink struct {
	cues  []audio.Cue
	muted bool
}

func (r *recordSink) Play(c audio.Cue)    { r.cues = append(r.cues, c) }
func (r *recordSink) SetMuted(muted bool) { r.muted = muted }

func (r *recordSink) has(c audio.Cue) bool {
	for _, got := range r.cues {
		if got == c {
			return true
		}
	}
	return false
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Runner.Path.Width == 0 {
		opts.Runner = config.DefaultRunnerConfig()
	}
	opts.TUI = config.DefaultTUIConfig()
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	return NewModel(opts)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// tick runs n frames of 1/60 s starting after start.
func tick(m Model, start time.Time, n int) (Model, time.Time) {
	now := start
	for i := 0; i < n; i++ {
		now = now.Add(time.Second / 60)
		m = send(m, TickMsg(now))
	}
	return m, now
}

func TestModelStartsInMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.Current() != ScreenMenu {
		t.Fatalf("screen = %v", m.Current())
	}
	if m.engine.State() != runner.StateMenu {
		t.Errorf("engine state = %v", m.engine.State())
	}

	// Menu ticks only move the background
	m, _ = tick(m, time.Unix(0, 0), 30)
	view := m.View()
	if !strings.Contains(view, "N E O N") {
		t.Errorf("menu title missing from view")
	}
}

func TestModelRunPauseResume(t *testing.T) {
	sink := &recordSink{}
	m := newTestModel(t, Options{Audio: sink})

	m = send(m, keyEnter)
	if m.Current() != ScreenPlaying || m.engine.State() != runner.StatePlaying {
		t.Fatalf("screen=%v engine=%v", m.Current(), m.engine.State())
	}
	if !sink.has(audio.CueSessionStart) {
		t.Error("no start cue")
	}

	// The ball drifts off the straight start after about 20 frames
	m, now := tick(m, time.Unix(0, 0), 10)
	if m.sess.telemetry.Lives != 3 {
		t.Errorf("telemetry lives = %d", m.sess.telemetry.Lives)
	}

	m = send(m, runeKey('p'))
	if m.Current() != ScreenPaused || m.engine.State() != runner.StatePaused {
		t.Fatalf("pause: screen=%v engine=%v", m.Current(), m.engine.State())
	}
	before := m.engine.Snapshot().Ball.Pos
	m, now = tick(m, now, 30)
	if m.engine.Snapshot().Ball.Pos != before {
		t.Error("ball moved while paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("pause panel missing")
	}

	m = send(m, keyEsc)
	if m.Current() != ScreenPlaying {
		t.Fatalf("esc did not resume: %v", m.Current())
	}
	m, _ = tick(m, now, 1)
	if m.engine.Snapshot().Ball.Pos == before {
		t.Error("ball frozen after resume")
	}

	m = send(m, runeKey('p'))
	m = send(m, runeKey('b'))
	if m.Current() != ScreenMenu || m.engine.State() != runner.StateMenu {
		t.Errorf("back: screen=%v engine=%v", m.Current(), m.engine.State())
	}
}

func TestModelRunEndsAndBooksCoins(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultRunnerConfig()
	cfg.Lives.Starting = 1
	sink := &recordSink{}
	m := newTestModel(t, Options{Runner: cfg, Store: store, Audio: sink})

	m = send(m, keyEnter)
	m = send(m, keySpace) // Turn forever until the ball leaves the corridor

	now := time.Unix(0, 0)
	for i := 0; i < 3000 && m.Current() == ScreenPlaying; i++ {
		m, now = tick(m, now, 1)
	}
	if m.Current() != ScreenGameOver {
		t.Fatalf("run never ended, screen = %v", m.Current())
	}
	if m.engine.State() != runner.StateGameOver {
		t.Errorf("engine state = %v", m.engine.State())
	}

	res := m.lastRun
	if res == nil {
		t.Fatal("no run result")
	}
	runs, err := store.TopScores(10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("stored runs = %v, %v", runs, err)
	}
	if runs[0].Score != res.Score || runs[0].Coins != res.Coins {
		t.Errorf("stored %+v, result %+v", runs[0], res)
	}
	if coins, _ := store.Coins(); coins != res.Coins {
		t.Errorf("wallet = %d, want %d", coins, res.Coins)
	}
	if res.Score > 0 && (!res.NewBest || !sink.has(audio.CueHighScoreMilestone)) {
		t.Error("first scoring run is not a new best")
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("game over panel missing")
	}

	// Restart from game over
	m = send(m, keyEnter)
	if m.Current() != ScreenPlaying || m.engine.Phase() != runner.PhaseActive {
		t.Errorf("restart: screen=%v phase=%v", m.Current(), m.engine.Phase())
	}
	if m.sess.telemetry.Score != 0 || m.sess.telemetry.Lives != 1 {
		t.Errorf("restart telemetry = %+v", m.sess.telemetry)
	}
}

func TestModelShop(t *testing.T) {
	wallet := shop.NewMemoryStore()
	wallet.AddCoins(150)
	m := newTestModel(t, Options{Wallet: wallet})

	m = send(m, runeKey('s'))
	if m.Current() != ScreenShop || m.engine.State() != runner.StateShop {
		t.Fatalf("screen=%v engine=%v", m.Current(), m.engine.State())
	}

	// Second entry is plasma at 100
	m = send(m, keyDown)
	m = send(m, keyEnter)
	if coins, _ := wallet.Coins(); coins != 50 {
		t.Errorf("coins = %d, want 50", coins)
	}
	if m.shop.Selected().ID != "plasma" {
		t.Errorf("selected = %q", m.shop.Selected().ID)
	}
	if !strings.Contains(m.View(), "TRAIL SHOP") {
		t.Error("shop view missing title")
	}

	// Void costs 250
	m = send(m, keyDown)
	m = send(m, keyEnter)
	if !strings.Contains(m.message, "Not enough coins") {
		t.Errorf("message = %q", m.message)
	}

	m = send(m, keyEsc)
	if m.Current() != ScreenMenu {
		t.Errorf("screen = %v", m.Current())
	}

	m = send(m, keyEnter)
	if m.engine.Snapshot().Style.ID != "plasma" {
		t.Errorf("run style = %q", m.engine.Snapshot().Style.ID)
	}
}

func TestModelMutePersists(t *testing.T) {
	wallet := shop.NewMemoryStore()
	sink := &recordSink{}
	m := newTestModel(t, Options{Wallet: wallet, Audio: sink})

	m = send(m, runeKey('m'))
	if !sink.muted {
		t.Fatal("sink not muted")
	}
	if v, _ := wallet.Setting(settingMuted); v != "true" {
		t.Errorf("muted setting = %q", v)
	}

	sink2 := &recordSink{}
	newTestModel(t, Options{Wallet: wallet, Audio: sink2})
	if !sink2.muted {
		t.Error("mute not restored")
	}
}

func TestModelScoresScreen(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runeKey('h'))
	if m.Current() != ScreenScores {
		t.Fatalf("screen = %v", m.Current())
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scores title missing")
	}
	m = send(m, runeKey('b'))
	if m.Current() != ScreenMenu {
		t.Errorf("screen = %v", m.Current())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if next.(Model).View() != "" {
		t.Error("view after quit not empty")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 40-hudRows {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	s := m.engine.Snapshot()
	if s.Width != 1200 || s.Height != float64(40-hudRows)*20 {
		t.Errorf("playfield = %vx%v", s.Width, s.Height)
	}

	// Tiny terminals keep the minimum playfield and scroll instead
	m = send(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	s = m.engine.Snapshot()
	if s.Width != runner.MinWidth || s.Height != runner.MinHeight {
		t.Errorf("playfield = %vx%v", s.Width, s.Height)
	}
}

func TestModelStartMuted(t *testing.T) {
	sink := &recordSink{}
	m := newTestModel(t, Options{Audio: sink, Muted: true})
	if !sink.muted || !m.muted {
		t.Error("Muted option ignored")
	}
}
