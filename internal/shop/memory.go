package shop

import (
	"sync"

	"github.com/vovakirdan/neon-zigzag/internal/storage"
)

// MemoryStore is a process-local Store for hosts running without a database.
type MemoryStore struct {
	mu       sync.Mutex
	coins    int
	unlocked []string
	settings map[string]string
}

// NewMemoryStore returns an empty wallet.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]string)}
}

// Coins returns the balance.
func (m *MemoryStore) Coins() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coins, nil
}

// AddCoins credits n coins and returns the new balance.
func (m *MemoryStore) AddCoins(n int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > 0 {
		m.coins += n
	}
	return m.coins, nil
}

// Unlocked returns the unlocked style IDs in unlock order.
func (m *MemoryStore) Unlocked() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.unlocked...), nil
}

// Purchase charges cost and unlocks styleID; owned styles are free.
func (m *MemoryStore) Purchase(styleID string, cost int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.unlocked {
		if id == styleID {
			return m.coins, nil
		}
	}
	if m.coins < cost {
		return 0, storage.ErrInsufficientCoins
	}
	m.coins -= cost
	m.unlocked = append(m.unlocked, styleID)
	return m.coins, nil
}

// Setting returns the value under key or storage.ErrNotFound.
func (m *MemoryStore) Setting(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

// SetSetting stores value under key.
func (m *MemoryStore) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}
