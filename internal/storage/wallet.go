package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrInsufficientCoins is returned when a spend exceeds the balance.
var ErrInsufficientCoins = errors.New("storage: insufficient coins")

// Coins returns the wallet balance.
func (s *Store) Coins() (int, error) {
	var coins int
	if err := s.db.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&coins); err != nil {
		return 0, fmt.Errorf("storage: cannot read wallet: %w", err)
	}
	return coins, nil
}

// AddCoins credits n coins and returns the new balance. n must not be negative.
func (s *Store) AddCoins(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("storage: cannot add %d coins", n)
	}
	var balance int
	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE wallet SET coins = coins + ? WHERE id = 1", n); err != nil {
			return err
		}
		return tx.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&balance)
	})
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add coins: %w", err)
	}
	return balance, nil
}

// SpendCoins debits n coins and returns the new balance. The balance is left
// unchanged and ErrInsufficientCoins returned when it is below n.
func (s *Store) SpendCoins(n int) (int, error) {
	var balance int
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		balance, err = spend(tx, n)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCoins) {
			return 0, err
		}
		return 0, fmt.Errorf("storage: cannot spend coins: %w", err)
	}
	return balance, nil
}

// Unlocked returns the unlocked style IDs in unlock order.
func (s *Store) Unlocked() ([]string, error) {
	rows, err := s.db.Query("SELECT style_id FROM unlocks ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// IsUnlocked reports whether styleID has been unlocked.
func (s *Store) IsUnlocked(styleID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM unlocks WHERE style_id = ?", styleID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query unlock %s: %w", styleID, err)
	}
	return n > 0, nil
}

// Unlock marks styleID as unlocked without charging for it.
func (s *Store) Unlock(styleID string) error {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO unlocks (style_id) VALUES (?)", styleID); err != nil {
		return fmt.Errorf("storage: cannot unlock %s: %w", styleID, err)
	}
	return nil
}

// Purchase charges cost coins and unlocks styleID in one transaction.
// Buying an already unlocked style charges nothing.
func (s *Store) Purchase(styleID string, cost int) (int, error) {
	var balance int
	err := s.withTx(func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRow("SELECT COUNT(*) FROM unlocks WHERE style_id = ?", styleID).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return tx.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&balance)
		}

		var err error
		if balance, err = spend(tx, cost); err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO unlocks (style_id) VALUES (?)", styleID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCoins) {
			return 0, err
		}
		return 0, fmt.Errorf("storage: cannot purchase %s: %w", styleID, err)
	}
	return balance, nil
}

func spend(tx *sql.Tx, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("cannot spend %d coins", n)
	}
	var balance int
	if err := tx.QueryRow("SELECT coins FROM wallet WHERE id = 1").Scan(&balance); err != nil {
		return 0, err
	}
	if balance < n {
		return balance, ErrInsufficientCoins
	}
	if _, err := tx.Exec("UPDATE wallet SET coins = coins - ? WHERE id = 1", n); err != nil {
		return 0, err
	}
	return balance - n, nil
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
