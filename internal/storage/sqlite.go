// Package storage provides SQLite-based persistence for attempts, per-level
// statistics and the leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Attempt is one finished run of a level.
type Attempt struct {
	ID         string // assigned by RecordAttempt
	LevelID    string
	Player     string
	Coins      int
	TotalCoins int
	Completed  bool
	// TimeMs is the play time of a completed run; ignored otherwise.
	TimeMs    int64
	CreatedAt time.Time
}

// LevelStats aggregates every attempt of one level.
type LevelStats struct {
	LevelID string
	// BestTimeMs is only meaningful when HasBestTime is set.
	BestTimeMs  int64
	HasBestTime bool
	BestCoins   int
	Attempts    int
	Completions int
	LastPlayed  time.Time
}

// Totals aggregates completed runs across all levels.
type Totals struct {
	PlayTimeMs int64
	Coins      int64
}

// LeaderboardEntry is one qualifying completed run.
type LeaderboardEntry struct {
	AttemptID string
	LevelID   string
	Player    string
	Coins     int
	TimeMs    int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			coins INTEGER NOT NULL,
			total_coins INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			time_ms INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_level_id ON attempts(level_id);
		CREATE INDEX IF NOT EXISTS idx_attempts_board ON attempts(completed, coins, time_ms);

		CREATE TABLE IF NOT EXISTS level_stats (
			level_id TEXT PRIMARY KEY,
			best_time_ms INTEGER,
			best_coins INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			completions INTEGER NOT NULL DEFAULT 0,
			last_played DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS totals (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			play_time_ms INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO totals (id) VALUES (1);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// improvesBest reports whether a completed run replaces the level's best.
// More coins always win; equal or more coins win with a faster time.
func improvesBest(st *LevelStats, coins int, timeMs int64) bool {
	if st == nil || !st.HasBestTime {
		return true
	}
	if coins > st.BestCoins {
		return true
	}
	return coins >= st.BestCoins && timeMs < st.BestTimeMs
}

// RecordAttempt stores a finished run and folds it into the level and global
// statistics. Returns the generated attempt ID.
func (s *Store) RecordAttempt(a Attempt) (string, error) {
	if a.LevelID == "" {
		return "", errors.New("storage: attempt without level id")
	}
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	completed := 0
	var timeMs sql.NullInt64
	if a.Completed {
		completed = 1
		timeMs = sql.NullInt64{Int64: a.TimeMs, Valid: true}
	}
	if _, err := tx.Exec(
		`INSERT INTO attempts (id, level_id, player, coins, total_coins, completed, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, a.LevelID, a.Player, a.Coins, a.TotalCoins, completed, timeMs,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	st, err := levelStats(tx, a.LevelID)
	if err != nil {
		return "", err
	}
	if st == nil {
		st = &LevelStats{LevelID: a.LevelID}
	}

	st.Attempts++
	if a.Completed {
		st.Completions++
		if improvesBest(st, a.Coins, a.TimeMs) {
			st.BestTimeMs = a.TimeMs
			st.HasBestTime = true
			st.BestCoins = a.Coins
		}
	}

	var best sql.NullInt64
	if st.HasBestTime {
		best = sql.NullInt64{Int64: st.BestTimeMs, Valid: true}
	}
	if _, err := tx.Exec(
		`INSERT INTO level_stats (level_id, best_time_ms, best_coins, attempts, completions, last_played)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET
		   best_time_ms = excluded.best_time_ms,
		   best_coins = excluded.best_coins,
		   attempts = excluded.attempts,
		   completions = excluded.completions,
		   last_played = excluded.last_played`,
		st.LevelID, best, st.BestCoins, st.Attempts, st.Completions,
	); err != nil {
		return "", fmt.Errorf("storage: cannot update level stats: %w", err)
	}

	if a.Completed {
		if _, err := tx.Exec(
			"UPDATE totals SET play_time_ms = play_time_ms + ?, coins = coins + ? WHERE id = 1",
			a.TimeMs, a.Coins,
		); err != nil {
			return "", fmt.Errorf("storage: cannot update totals: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit attempt: %w", err)
	}
	return id, nil
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func levelStats(q queryRower, levelID string) (*LevelStats, error) {
	st := LevelStats{LevelID: levelID}
	var best sql.NullInt64
	var lastPlayed any

	err := q.QueryRow(
		`SELECT best_time_ms, best_coins, attempts, completions, last_played
		 FROM level_stats WHERE level_id = ?`,
		levelID,
	).Scan(&best, &st.BestCoins, &st.Attempts, &st.Completions, &lastPlayed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}

	st.BestTimeMs, st.HasBestTime = best.Int64, best.Valid
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// LevelStats returns the statistics of one level, or nil if it was never played.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	return levelStats(s.db, levelID)
}

// AllLevelStats returns statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, best_time_ms, best_coins, attempts, completions, last_played
		 FROM level_stats`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var best sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &best, &st.BestCoins, &st.Attempts, &st.Completions, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTimeMs, st.HasBestTime = best.Int64, best.Valid
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Totals returns play time and coins summed over completed runs.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	err := s.db.QueryRow("SELECT play_time_ms, coins FROM totals WHERE id = 1").Scan(&t.PlayTimeMs, &t.Coins)
	if err != nil {
		return t, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	return t, nil
}

// Leaderboard returns completed runs with at least minCoins coins, fastest
// first, ties broken by more coins. An empty levelID spans all levels.
func (s *Store) Leaderboard(levelID string, minCoins, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, coins, time_ms, created_at
		 FROM attempts
		 WHERE completed = 1 AND coins >= ? AND (? = '' OR level_id = ?)
		 ORDER BY time_ms ASC, coins DESC, created_at ASC
		 LIMIT ?`,
		minCoins, levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var createdAt any
		if err := rows.Scan(&e.AttemptID, &e.LevelID, &e.Player, &e.Coins, &e.TimeMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RecentAttempts returns the latest attempts, newest first.
func (s *Store) RecentAttempts(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, coins, total_coins, completed, time_ms, created_at
		 FROM attempts
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var timeMs sql.NullInt64
		var createdAt any
		if err := rows.Scan(&a.ID, &a.LevelID, &a.Player, &a.Coins, &a.TotalCoins, &a.Completed, &timeMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.TimeMs = timeMs.Int64
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return attempts, nil
}

// ClearLevel deletes the attempts and statistics of one level.
// Global totals are kept.
func (s *Store) ClearLevel(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM attempts WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM level_stats WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear level stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// Reset deletes everything, totals included.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`
		DELETE FROM attempts;
		DELETE FROM level_stats;
		UPDATE totals SET play_time_ms = 0, coins = 0 WHERE id = 1;
	`)
	if err != nil {
		return fmt.Errorf("storage: cannot reset: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
