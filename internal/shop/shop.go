// Package shop sells and selects cosmetic trail styles for coins.
package shop

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
	"github.com/vovakirdan/neon-zigzag/internal/runner"
	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

// SettingStyle is the settings key holding the selected style ID.
const SettingStyle = "style"

var (
	ErrUnknownStyle      = errors.New("shop: unknown style")
	ErrLocked            = errors.New("shop: style is locked")
	ErrInsufficientCoins = errors.New("shop: insufficient coins")
)

// Store is the persistence the shop needs. *storage.Store implements it.
type Store interface {
	Coins() (int, error)
	Unlocked() ([]string, error)
	Purchase(styleID string, cost int) (int, error)
	Setting(key string) (string, error)
	SetSetting(key, value string) error
}

var _ Store = (*storage.Store)(nil)

// Item is a catalog entry as seen by the player.
type Item struct {
	Style    runner.TrailStyle
	Unlocked bool
	Selected bool
}

// Shop combines the style catalog with the player's wallet.
type Shop struct {
	store Store
	sink  audio.Sink
}

// New creates a shop. A nil sink plays nothing.
func New(store Store, sink audio.Sink) *Shop {
	if sink == nil {
		sink = audio.Nop{}
	}
	return &Shop{store: store, sink: sink}
}

// Coins returns the wallet balance.
func (s *Shop) Coins() (int, error) {
	return s.store.Coins()
}

// Items lists the catalog in display order with unlock and selection state.
func (s *Shop) Items() ([]Item, error) {
	unlocked, err := s.unlockedSet()
	if err != nil {
		return nil, err
	}
	selected := s.Selected()

	styles := runner.Styles()
	items := make([]Item, len(styles))
	for i, st := range styles {
		items[i] = Item{
			Style:    st,
			Unlocked: unlocked[st.ID],
			Selected: st.ID == selected.ID,
		}
	}
	return items, nil
}

// Unlock buys the style and selects it. Unlocking an owned style only
// selects it.
func (s *Shop) Unlock(id string) error {
	st, ok := runner.StyleByID(id)
	if !ok {
		s.sink.Play(audio.CueCrash)
		return fmt.Errorf("%w: %s", ErrUnknownStyle, id)
	}

	if id != runner.DefaultStyleID {
		if _, err := s.store.Purchase(id, st.Cost); err != nil {
			s.sink.Play(audio.CueCrash)
			if errors.Is(err, storage.ErrInsufficientCoins) {
				return fmt.Errorf("%w: %s costs %d", ErrInsufficientCoins, st.Name, st.Cost)
			}
			return fmt.Errorf("shop: cannot unlock %s: %w", id, err)
		}
	}

	if err := s.store.SetSetting(SettingStyle, id); err != nil {
		return fmt.Errorf("shop: cannot select %s: %w", id, err)
	}
	s.sink.Play(audio.CuePickup)
	return nil
}

// Select switches to an owned style.
func (s *Shop) Select(id string) error {
	if _, ok := runner.StyleByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStyle, id)
	}
	unlocked, err := s.unlockedSet()
	if err != nil {
		return err
	}
	if !unlocked[id] {
		return fmt.Errorf("%w: %s", ErrLocked, id)
	}

	if err := s.store.SetSetting(SettingStyle, id); err != nil {
		return fmt.Errorf("shop: cannot select %s: %w", id, err)
	}
	s.sink.Play(audio.CueUIClick)
	return nil
}

// Selected returns the selected style. Missing, unknown or no longer owned
// selections fall back to the default style.
func (s *Shop) Selected() runner.TrailStyle {
	id, err := s.store.Setting(SettingStyle)
	if err != nil {
		return runner.DefaultStyle()
	}
	st, ok := runner.StyleByID(id)
	if !ok {
		return runner.DefaultStyle()
	}
	unlocked, err := s.unlockedSet()
	if err != nil || !unlocked[id] {
		return runner.DefaultStyle()
	}
	return st
}

func (s *Shop) unlockedSet() (map[string]bool, error) {
	ids, err := s.store.Unlocked()
	if err != nil {
		return nil, fmt.Errorf("shop: cannot list unlocks: %w", err)
	}
	set := map[string]bool{runner.DefaultStyleID: true}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
