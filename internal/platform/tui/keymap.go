package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-zigzag/internal/core"
)

// KeyMap defines the key bindings of every screen.
type KeyMap struct {
	Turn    key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Back    key.Binding
	Shop    key.Binding
	Scores  key.Binding
	Mute    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Turn: key.NewBinding(
			key.WithKeys(" ", "left", "right", "a", "d"),
			key.WithHelp("space", "turn"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "back"),
		),
		Shop: key.NewBinding(
			key.WithKeys("s", "tab"),
			key.WithHelp("s", "shop"),
		),
		Scores: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "scores"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to host actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKeyToFrame marks every action bound to the key. A key may carry several
// actions (esc is both Pause and Back); the screen decides which applies.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) {
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{km.keys.Turn, core.ActionTurn},
		{km.keys.Up, core.ActionUp},
		{km.keys.Down, core.ActionDown},
		{km.keys.Confirm, core.ActionConfirm},
		{km.keys.Pause, core.ActionPause},
		{km.keys.Back, core.ActionBack},
		{km.keys.Shop, core.ActionShop},
		{km.keys.Scores, core.ActionScores},
		{km.keys.Mute, core.ActionMute},
		{km.keys.Quit, core.ActionQuit},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			frame.Set(kb.a)
		}
	}
}

// screenHelp adapts a screen's bindings to help.KeyMap.
type screenHelp []key.Binding

func (h screenHelp) ShortHelp() []key.Binding  { return h }
func (h screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// helpFor returns the bindings shown on a screen's help line.
func (k KeyMap) helpFor(s Screen) screenHelp {
	switch s {
	case ScreenMenu:
		return screenHelp{withHelp(k.Confirm, "enter", "play"), k.Shop, k.Scores, k.Mute, k.Quit}
	case ScreenPlaying:
		return screenHelp{k.Turn, k.Pause, k.Mute, k.Quit}
	case ScreenPaused:
		return screenHelp{withHelp(k.Pause, "p", "resume"), withHelp(k.Back, "b", "menu"), k.Quit}
	case ScreenGameOver:
		return screenHelp{withHelp(k.Confirm, "enter", "again"), k.Shop, withHelp(k.Back, "esc/b", "menu"), k.Quit}
	case ScreenShop:
		return screenHelp{k.Up, k.Down, withHelp(k.Confirm, "enter", "buy/select"), k.Back}
	case ScreenScores:
		return screenHelp{k.Up, k.Down, k.Back}
	}
	return nil
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}
