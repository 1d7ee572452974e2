package storage

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// RunSummary is the full result of one session. It is stored msgpack-encoded
// next to the indexed score columns.
type RunSummary struct {
	Score     float64       `msgpack:"score"`
	Coins     int           `msgpack:"coins"`
	LivesLost int           `msgpack:"lives_lost"`
	Bounces   int           `msgpack:"bounces"`
	MaxCombo  float64       `msgpack:"max_combo"`
	Duration  time.Duration `msgpack:"duration"`
	Style     string        `msgpack:"style"`
}

// EncodeSummary serializes a summary for the summary column.
func EncodeSummary(s RunSummary) ([]byte, error) {
	b, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode summary: %w", err)
	}
	return b, nil
}

// DecodeSummary reads back a summary written by EncodeSummary.
func DecodeSummary(b []byte) (RunSummary, error) {
	var s RunSummary
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return RunSummary{}, fmt.Errorf("storage: cannot decode summary: %w", err)
	}
	return s, nil
}

// RunEntry is a stored run.
type RunEntry struct {
	ID        int64
	RunID     uuid.UUID
	Score     int
	Coins     int
	Duration  time.Duration
	Style     string
	Summary   RunSummary
	CreatedAt time.Time
}

// SaveRun records a finished session under a fresh run ID.
func (s *Store) SaveRun(sum RunSummary) (uuid.UUID, error) {
	blob, err := EncodeSummary(sum)
	if err != nil {
		return uuid.Nil, err
	}

	runID := uuid.New()
	_, err = s.db.Exec(
		`INSERT INTO scores (run_id, score, coins, duration_ms, style, summary)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID.String(), int(math.Floor(sum.Score)), sum.Coins, sum.Duration.Milliseconds(), sum.Style, blob,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return runID, nil
}

// TopScores retrieves the best N runs ordered by score descending.
func (s *Store) TopScores(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, score, coins, duration_ms, style, summary, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Run retrieves a run by its run ID, or ErrNotFound.
func (s *Store) Run(runID uuid.UUID) (RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, score, coins, duration_ms, style, summary, created_at
		 FROM scores WHERE run_id = ?`,
		runID.String(),
	)
	if err != nil {
		return RunEntry{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return RunEntry{}, fmt.Errorf("storage: cannot query run: %w", err)
		}
		return RunEntry{}, ErrNotFound
	}
	return scanRun(rows)
}

func scanRun(rows *sql.Rows) (RunEntry, error) {
	var (
		e         RunEntry
		runID     string
		durMS     int64
		blob      []byte
		createdAt any
	)
	if err := rows.Scan(&e.ID, &runID, &e.Score, &e.Coins, &durMS, &e.Style, &blob, &createdAt); err != nil {
		return RunEntry{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	id, err := uuid.Parse(runID)
	if err != nil {
		return RunEntry{}, fmt.Errorf("storage: bad run id %q: %w", runID, err)
	}
	e.RunID = id
	e.Duration = time.Duration(durMS) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)

	if len(blob) > 0 {
		if e.Summary, err = DecodeSummary(blob); err != nil {
			return RunEntry{}, err
		}
	}
	return e, nil
}

// HighScore returns the highest stored score, or 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalCoins int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics over all stored runs.
func (s *Store) Stats() (RunStats, error) {
	var (
		st         RunStats
		lastPlayed any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(coins), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &st.TotalCoins, &lastPlayed)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// ClearScores deletes all stored runs. Coins and unlocks are kept.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
