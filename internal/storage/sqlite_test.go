package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.AddCoins(7); err != nil {
		t.Fatalf("AddCoins() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	coins, err := store.Coins()
	if err != nil || coins != 7 {
		t.Errorf("Coins() = %d, %v; want 7", coins, err)
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunSummary{
		{Score: 100.9, Coins: 3, Duration: 20 * time.Second, Style: "default"},
		{Score: 50, Coins: 1, Duration: 5 * time.Second, Style: "plasma"},
		{Score: 200.2, Coins: 9, LivesLost: 3, Bounces: 2, MaxCombo: 4.5, Duration: time.Minute, Style: "void"},
	}
	ids := make(map[uuid.UUID]bool)
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == uuid.Nil || ids[id] {
			t.Fatalf("SaveRun() returned bad id %v", id)
		}
		ids[id] = true
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending, floored
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	top := scores[0]
	if !ids[top.RunID] {
		t.Errorf("unknown run id %v", top.RunID)
	}
	if top.Coins != 9 || top.Duration != time.Minute || top.Style != "void" {
		t.Errorf("top run = %+v", top)
	}
	if top.Summary != runs[2] {
		t.Errorf("summary = %+v, want %+v", top.Summary, runs[2])
	}

	got, err := store.Run(top.RunID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got.ID != top.ID {
		t.Errorf("Run() = %+v", got)
	}
	if _, err := store.Run(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunSummary{Score: float64((i + 1) * 100)})
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	for i := 0; i < 10; i++ {
		store.SaveRun(RunSummary{Score: 1})
	}
	scores, _ = store.TopScores(0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) returned %d rows, want 10", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no runs, got %d", high)
	}

	store.SaveRun(RunSummary{Score: 100})
	store.SaveRun(RunSummary{Score: 300.7})
	store.SaveRun(RunSummary{Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 0 || !st.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", st)
	}

	store.SaveRun(RunSummary{Score: 100, Coins: 2})
	store.SaveRun(RunSummary{Score: 300, Coins: 5})

	st, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.HighScore != 300 || st.AvgScore != 200 || st.TotalCoins != 7 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunSummary{Score: 100})
	store.AddCoins(4)
	store.Unlock("plasma")

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if coins, _ := store.Coins(); coins != 4 {
		t.Errorf("coins = %d, clear must keep the wallet", coins)
	}
	if ok, _ := store.IsUnlocked("plasma"); !ok {
		t.Error("clear must keep unlocks")
	}
}

func TestSummaryEncoding(t *testing.T) {
	in := RunSummary{Score: 12.5, Coins: 2, LivesLost: 1, Bounces: 3, MaxCombo: 2.25, Duration: 1500 * time.Millisecond, Style: "frost"}
	b, err := EncodeSummary(in)
	if err != nil {
		t.Fatalf("EncodeSummary() failed: %v", err)
	}
	out, err := DecodeSummary(b)
	if err != nil {
		t.Fatalf("DecodeSummary() failed: %v", err)
	}
	if out != in {
		t.Errorf("DecodeSummary() = %+v, want %+v", out, in)
	}

	if _, err := DecodeSummary([]byte{0xc1}); err == nil {
		t.Error("DecodeSummary() accepted garbage")
	}
}

func TestSettings(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Setting("style"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Setting(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SetSetting("style", "void"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}
	if err := store.SetSetting("style", "midas"); err != nil {
		t.Fatalf("SetSetting() overwrite failed: %v", err)
	}

	v, err := store.Setting("style")
	if err != nil || v != "midas" {
		t.Errorf("Setting() = %q, %v; want midas", v, err)
	}
}
