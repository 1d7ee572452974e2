package tui

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
	"github.com/vovakirdan/neon-zigzag/internal/config"
	"github.com/vovakirdan/neon-zigzag/internal/core"
	"github.com/vovakirdan/neon-zigzag/internal/runner"
	"github.com/vovakirdan/neon-zigzag/internal/shop"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

// Screen identifies what the host is showing.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
	ScreenShop
	ScreenScores
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "gameover"
	case ScreenShop:
		return "shop"
	case ScreenScores:
		return "scores"
	default:
		return "unknown"
	}
}

// settingMuted is the settings key of the mute toggle.
const settingMuted = "muted"

// hudRows is the number of terminal rows not used by the playfield.
const hudRows = 2

// Wallet persists coins, unlocks and settings. *storage.Store and
// *shop.MemoryStore implement it.
type Wallet interface {
	shop.Store
	AddCoins(n int) (int, error)
}

// Options configures a Model.
type Options struct {
	Runner  config.RunnerConfig
	TUI     config.TUIConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Run history; nil plays without saving runs
	Wallet  Wallet         // Defaults to Store, or a memory wallet without one
	Audio   audio.Sink     // Nil is silent
	Logger  *log.Logger
	Player  string // Shown in the HUD, e.g. the SSH user
	Muted   bool   // Start muted regardless of the saved setting
}

// session is written by engine callbacks, which run inside Engine.Update.
type session struct {
	telemetry runner.Telemetry
	ended     bool
	final     float64
}

// runResult is what the game over screen shows.
type runResult struct {
	Score   int
	Coins   int
	Balance int
	NewBest bool
	Stats   runner.RunStats
}

// Model is the Bubble Tea model for a full game session: menu, runs, shop
// and scores.
type Model struct {
	opts    Options
	engine  *runner.Engine
	sess    *session
	shop    *shop.Shop
	wallet  Wallet
	sink    audio.Sink
	logger  *log.Logger
	screen  *core.Screen
	painter *painter
	cam     *camera
	control *turnControl
	keys    *KeyMapper
	help    help.Model

	current  Screen
	shopView shopView
	scores   ScoreboardModel
	width    int
	height   int
	lastTick time.Time
	frame    int
	muted    bool
	best     int
	lastRun  *runResult
	message  string
	quitting bool
}

// NewModel creates a session model in the menu screen.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	def := core.DefaultConfig()
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = def.TickRate
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.TUI.CellWidth <= 0 || opts.TUI.CellHeight <= 0 {
		opts.TUI = config.DefaultTUIConfig()
	}
	wallet := opts.Wallet
	if wallet == nil {
		if opts.Store != nil {
			wallet = opts.Store
		} else {
			wallet = shop.NewMemoryStore()
		}
	}

	sess := &session{}
	engine := runner.New(opts.Runner,
		runner.WithSeed(opts.Runtime.Seed),
		runner.WithAudio(opts.Audio),
		runner.WithLogger(opts.Logger),
		runner.WithCallbacks(runner.Callbacks{
			OnTelemetry: func(t runner.Telemetry) { sess.telemetry = t },
			OnSessionEnd: func(score float64) {
				sess.ended = true
				sess.final = score
			},
		}),
	)

	control := newTurnControl(opts.TUI.Control, opts.TUI.HoldRelease)
	m := Model{
		opts:    opts,
		engine:  engine,
		sess:    sess,
		shop:    shop.New(wallet, opts.Audio),
		wallet:  wallet,
		sink:    opts.Audio,
		logger:  opts.Logger,
		screen:  core.NewScreen(opts.Runtime.ScreenW, max(1, opts.Runtime.ScreenH-hudRows)),
		cam:     &camera{},
		control: &control,
		keys:    NewKeyMapper(),
		help:    help.New(),
	}
	m.painter = &painter{screen: m.screen, cellW: opts.TUI.CellWidth, cellH: opts.TUI.CellHeight}

	if v, err := wallet.Setting(settingMuted); opts.Muted || (err == nil && v == "true") {
		m.muted = true
		m.sink.SetMuted(true)
	}
	if opts.Store != nil {
		if best, err := opts.Store.HighScore(); err == nil {
			m.best = best
		} else {
			m.logger.Warn("could not read high score", "error", err)
		}
	}
	engine.SetControlStyle(m.shop.Selected())
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.current == ScreenScores {
			next, _ := m.scores.Update(msg)
			m.scores = next.(ScoreboardModel)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyMsg:
		if m.current == ScreenScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg, time.Now())
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.help.Width = width
	m.screen.Resize(width, max(1, height-hudRows))
	m.engine.Resize(float64(m.screen.Width())*m.opts.TUI.CellWidth, float64(m.screen.Height())*m.opts.TUI.CellHeight)
	m.cam.snap(m.engine.Snapshot().Ball.Pos.X(), m.viewWidth(), m.worldWidth())
}

func (m Model) viewWidth() float64 {
	return float64(m.screen.Width()) * m.opts.TUI.CellWidth
}

func (m Model) worldWidth() float64 {
	return m.engine.Snapshot().Width
}

// handleKey applies a key press to the current screen.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	m.keys.MapKeyToFrame(msg, &frame)

	if frame.Has(core.ActionQuit) {
		m.quitting = true
		m.engine.Destroy()
		return m, tea.Quit
	}
	if frame.Has(core.ActionMute) {
		m.toggleMute()
		return m, nil
	}

	switch m.current {
	case ScreenMenu:
		switch {
		case frame.Has(core.ActionConfirm), frame.Has(core.ActionTurn):
			m.startRun()
		case frame.Has(core.ActionShop):
			m.openShop()
		case frame.Has(core.ActionScores):
			m.current = ScreenScores
			m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
			m.sink.Play(audio.CueUIClick)
		}

	case ScreenPlaying:
		switch {
		case frame.Has(core.ActionTurn):
			m.press(now)
		case frame.Has(core.ActionPause):
			m.current = ScreenPaused
			m.engine.SetState(runner.StatePaused)
			m.sink.Play(audio.CueUIClick)
		}

	case ScreenPaused:
		switch {
		case frame.Has(core.ActionPause):
			m.current = ScreenPlaying
			m.engine.SetState(runner.StatePlaying)
			m.sink.Play(audio.CueUIClick)
		case frame.Has(core.ActionBack):
			m.toMenu()
		}

	case ScreenGameOver:
		switch {
		case frame.Has(core.ActionConfirm):
			m.startRun()
		case frame.Has(core.ActionShop):
			m.openShop()
		case frame.Has(core.ActionBack):
			m.toMenu()
		}

	case ScreenShop:
		switch {
		case frame.Has(core.ActionUp):
			m.shopView.move(-1)
			m.sink.Play(audio.CueUIHover)
		case frame.Has(core.ActionDown):
			m.shopView.move(1)
			m.sink.Play(audio.CueUIHover)
		case frame.Has(core.ActionConfirm):
			m.buySelected()
		case frame.Has(core.ActionBack):
			m.toMenu()
		}
	}
	return m, nil
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)
	if m.scores.IsQuitting() {
		m.quitting = true
		m.engine.Destroy()
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

// press feeds a turn key press to the engine. A press while waiting after a
// respawn always resumes, whatever the toggle state was.
func (m *Model) press(now time.Time) {
	if m.engine.Phase() == runner.PhaseWaiting {
		m.control.Set(true)
		m.engine.SetTurning(true)
		return
	}
	m.control.Press(now)
	m.engine.SetTurning(m.control.Turning(now))
}

// handleTick advances the simulation by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.opts.Runtime.FrameInterval()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	dt = max(0, min(dt, m.opts.TUI.MaxDelta))
	m.lastTick = now
	m.frame++

	if m.current == ScreenPlaying && m.engine.Phase() == runner.PhaseActive {
		m.engine.SetTurning(m.control.Turning(now))
	}
	m.engine.Update(dt)

	if m.sess.ended {
		if m.current == ScreenPlaying || m.current == ScreenPaused {
			m.finishRun()
		} else {
			// Run abandoned from the pause menu
			m.sess.ended = false
		}
	}

	m.cam.follow(m.engine.Snapshot().Ball.Pos.X(), m.viewWidth(), m.worldWidth(), dt.Seconds())
	return m, tickCmd(m.opts.Runtime)
}

func (m *Model) startRun() {
	m.sess.ended = false
	m.control.Reset()
	m.lastRun = nil
	m.message = ""
	m.engine.SetControlStyle(m.shop.Selected())
	m.engine.SetState(runner.StatePlaying)
	m.current = ScreenPlaying
	m.cam.snap(m.engine.Snapshot().Ball.Pos.X(), m.viewWidth(), m.worldWidth())
	m.sink.Play(audio.CueSessionStart)
}

// finishRun books the ended session: coins, run history and high score.
func (m *Model) finishRun() {
	m.sess.ended = false
	stats := m.engine.Stats()
	score := int(math.Floor(m.sess.final))
	m.engine.SetState(runner.StateGameOver)

	res := &runResult{Score: score, Coins: stats.Coins, Stats: stats}
	balance, err := m.wallet.AddCoins(stats.Coins)
	if err != nil {
		m.logger.Warn("could not credit coins", "error", err)
	}
	res.Balance = balance

	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveRun(storage.RunSummary{
			Score:     m.sess.final,
			Coins:     stats.Coins,
			LivesLost: stats.LivesLost,
			Bounces:   stats.Bounces,
			MaxCombo:  stats.MaxCombo,
			Duration:  stats.Duration,
			Style:     stats.Style,
		})
		if err != nil {
			m.logger.Warn("could not save run", "error", err)
		}
	}

	if score > m.best {
		m.best = score
		res.NewBest = true
		m.sink.Play(audio.CueHighScoreMilestone)
	}

	m.logger.Info("run finished", "player", m.opts.Player, "score", score, "coins", stats.Coins, "best", res.NewBest)
	m.lastRun = res
	m.current = ScreenGameOver
}

func (m *Model) toMenu() {
	m.current = ScreenMenu
	m.message = ""
	m.engine.SetState(runner.StateMenu)
	m.sink.Play(audio.CueUIClick)
}

func (m *Model) openShop() {
	m.current = ScreenShop
	m.message = ""
	m.engine.SetState(runner.StateShop)
	if err := m.shopView.refresh(m.shop); err != nil {
		m.message = err.Error()
	}
	m.sink.Play(audio.CueUIClick)
}

func (m *Model) buySelected() {
	it, ok := m.shopView.selected()
	if !ok {
		return
	}

	var err error
	if it.Unlocked {
		err = m.shop.Select(it.Style.ID)
	} else {
		err = m.shop.Unlock(it.Style.ID)
	}

	switch {
	case errors.Is(err, shop.ErrInsufficientCoins):
		m.message = fmt.Sprintf("Not enough coins for %s", it.Style.Name)
	case err != nil:
		m.message = err.Error()
		m.logger.Warn("shop error", "style", it.Style.ID, "error", err)
	case it.Unlocked:
		m.message = fmt.Sprintf("%s selected", it.Style.Name)
	default:
		m.message = fmt.Sprintf("%s unlocked", it.Style.Name)
	}

	m.engine.SetControlStyle(m.shop.Selected())
	if err := m.shopView.refresh(m.shop); err != nil {
		m.message = err.Error()
	}
}

func (m *Model) toggleMute() {
	m.muted = !m.muted
	m.sink.SetMuted(m.muted)
	if err := m.wallet.SetSetting(settingMuted, strconv.FormatBool(m.muted)); err != nil {
		m.logger.Warn("could not save mute setting", "error", err)
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.current {
	case ScreenScores:
		return m.scores.View()
	case ScreenShop:
		body = m.shopView.View(m.width, m.height-hudRows)
	default:
		m.painter.viewX = m.cam.x
		m.painter.blink = (m.frame/15)%2 == 0
		m.engine.Draw(m.painter)
		m.drawOverlay()
		body = RenderScreen(m.screen)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.hud() + "\n" + body + "\n" + helpStyle.Render(m.help.View(m.keys.Keys().helpFor(m.current)))
}

// hud renders the status line.
func (m Model) hud() string {
	t := m.sess.telemetry
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	value := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	parts := []string{
		label.Render("SCORE ") + value.Render(strconv.Itoa(int(math.Floor(t.Score)))),
		label.Render("BEST ") + value.Render(strconv.Itoa(m.best)),
	}

	if m.current == ScreenPlaying || m.current == ScreenPaused {
		combo := lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorNearMiss)))
		coins := lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorCoin)))
		hearts := lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorObstacle)))
		parts = append(parts,
			combo.Render(fmt.Sprintf("x%.1f", t.Combo)),
			coins.Render(fmt.Sprintf("$%d", t.Coins)),
			hearts.Render(strings.Repeat("♥", max(0, t.Lives))),
		)

		snap := m.engine.Snapshot()
		if snap.Invulnerability > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorShield))).
				Render(fmt.Sprintf("◆ %.1fs", snap.Invulnerability.Seconds())))
		}
		if snap.Magnet > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(string(colorMagnet))).
				Render(fmt.Sprintf("∪ %.1fs", snap.Magnet.Seconds())))
		}
	}

	if m.muted {
		parts = append(parts, label.Render("muted"))
	}
	if m.opts.Player != "" {
		parts = append(parts, label.Render(m.opts.Player))
	}
	return strings.Join(parts, "  ")
}

// drawOverlay writes screen-specific text over the playfield.
func (m Model) drawOverlay() {
	s := m.screen
	mid := s.Height() / 2

	switch m.current {
	case ScreenMenu:
		s.DrawTextCentered(mid-3, "N E O N   Z I G Z A G", colorTitle)
		s.DrawTextCentered(mid-1, "Stay on the path. Turn with space.", colorDim)
		style := m.shop.Selected()
		coins, _ := m.wallet.Coins()
		s.DrawTextCentered(mid+1, fmt.Sprintf("Style: %s   Coins: %d", style.Name, coins), core.Color(style.Colors.Glow))
		s.DrawTextCentered(mid+3, "Press ENTER to play", colorTitle)

	case ScreenPlaying:
		if m.engine.Phase() == runner.PhaseWaiting {
			s.DrawTextCentered(mid+2, "Press SPACE to continue", colorTitle)
		}

	case ScreenPaused:
		m.drawPanel([]string{"PAUSED", "", "P to resume, B for menu"})

	case ScreenGameOver:
		lines := []string{"GAME OVER", ""}
		if r := m.lastRun; r != nil {
			lines = append(lines, fmt.Sprintf("Score  %d", r.Score), fmt.Sprintf("Coins  +%d (%d)", r.Coins, r.Balance))
			if r.NewBest {
				lines = append(lines, "", "NEW BEST!")
			}
		}
		lines = append(lines, "", "ENTER to play again")
		m.drawPanel(lines)
	}

	if m.message != "" {
		s.DrawTextCentered(s.Height()-1, m.message, colorDim)
	}
}

// drawPanel draws centered lines inside a box.
func (m Model) drawPanel(lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w = core.Clamp(w+4, 4, m.screen.Width())
	r := m.screen.Bounds().Centered(w, len(lines)+2)

	m.screen.DrawRect(r.Inset(1), ' ')
	m.screen.DrawBox(r, colorTitle)
	for i, l := range lines {
		m.screen.DrawTextCentered(r.Y+1+i, l, colorTitle)
	}
}

// Current returns the screen being shown.
func (m Model) Current() Screen {
	return m.current
}

// Run starts the Bubble Tea program with a session model.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.engine.Destroy()
	}
	return err
}
