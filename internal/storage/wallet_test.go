package storage

import (
	"errors"
	"testing"
)

func TestWallet(t *testing.T) {
	store := openTestStore(t)

	coins, err := store.Coins()
	if err != nil || coins != 0 {
		t.Fatalf("Coins() = %d, %v; want 0", coins, err)
	}

	if balance, err := store.AddCoins(30); err != nil || balance != 30 {
		t.Fatalf("AddCoins() = %d, %v", balance, err)
	}
	if _, err := store.AddCoins(-1); err == nil {
		t.Error("AddCoins(-1) succeeded")
	}

	tests := []struct {
		name    string
		spend   int
		balance int
		wantErr error
	}{
		{"partial", 10, 20, nil},
		{"zero", 0, 20, nil},
		{"too much", 21, 20, ErrInsufficientCoins},
		{"exact", 20, 0, nil},
		{"empty", 1, 0, ErrInsufficientCoins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SpendCoins(tt.spend)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SpendCoins(%d) error = %v, want %v", tt.spend, err, tt.wantErr)
			}
			if coins, _ := store.Coins(); coins != tt.balance {
				t.Errorf("balance = %d, want %d", coins, tt.balance)
			}
		})
	}
}

func TestUnlocks(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.Unlocked()
	if err != nil || len(ids) != 0 {
		t.Fatalf("Unlocked() = %v, %v", ids, err)
	}

	store.Unlock("void")
	store.Unlock("plasma")
	store.Unlock("void")

	ids, _ = store.Unlocked()
	if len(ids) != 2 || ids[0] != "void" || ids[1] != "plasma" {
		t.Errorf("Unlocked() = %v", ids)
	}
	if ok, _ := store.IsUnlocked("midas"); ok {
		t.Error("midas reported unlocked")
	}
}

func TestPurchase(t *testing.T) {
	store := openTestStore(t)
	store.AddCoins(120)

	if _, err := store.Purchase("void", 250); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("Purchase() error = %v, want ErrInsufficientCoins", err)
	}
	if ok, _ := store.IsUnlocked("void"); ok {
		t.Error("failed purchase unlocked the style")
	}
	if coins, _ := store.Coins(); coins != 120 {
		t.Errorf("failed purchase changed balance to %d", coins)
	}

	balance, err := store.Purchase("plasma", 100)
	if err != nil || balance != 20 {
		t.Fatalf("Purchase() = %d, %v; want 20", balance, err)
	}
	if ok, _ := store.IsUnlocked("plasma"); !ok {
		t.Error("purchase did not unlock")
	}

	// Buying again is free
	balance, err = store.Purchase("plasma", 100)
	if err != nil || balance != 20 {
		t.Errorf("repeat Purchase() = %d, %v; want 20", balance, err)
	}
}
