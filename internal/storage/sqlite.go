// Package storage provides SQLite-based persistence for rounds, failed letters and errors.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

// Store manages the SQLite database connection. It is safe for concurrent
// use by several sessions.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID           string
	GameID       string
	Difficulty   string
	Stage        int
	Score        int
	Accuracy     int
	WPM          float64
	Seconds      float64
	Errors       int
	MaxCombo     int
	LettersTyped int
	Won          bool
	Phrase       string
	Category     string
	CreatedAt    time.Time
}

// LetterStat counts how often a letter was expected when a wrong key was pressed.
type LetterStat struct {
	Letter     rune
	Misses     int
	LastMissed time.Time
}

// Stats contains aggregated statistics for one difficulty, or all of them.
type Stats struct {
	Difficulty  string
	Rounds      int
	Wins        int
	HighScore   int
	AvgScore    float64
	AvgAccuracy float64
	BestWPM     float64
	LastPlayed  time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			stage INTEGER NOT NULL DEFAULT 1,
			score INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			wpm REAL NOT NULL DEFAULT 0,
			seconds REAL NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			letters_typed INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			phrase TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS failed_letters (
			letter TEXT PRIMARY KEY,
			misses INTEGER NOT NULL DEFAULT 0,
			last_missed DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);
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

// SaveRound records a finished round and returns its ID.
// A new UUID is assigned when rec.ID is empty.
func (s *Store) SaveRound(rec RoundRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, game_id, difficulty, stage, score, accuracy, wpm, seconds, errors, max_combo, letters_typed, won, phrase, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.GameID,
		rec.Difficulty,
		rec.Stage,
		rec.Score,
		rec.Accuracy,
		rec.WPM,
		rec.Seconds,
		rec.Errors,
		rec.MaxCombo,
		rec.LettersTyped,
		rec.Won,
		rec.Phrase,
		rec.Category,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return rec.ID, nil
}

// SaveResult records a round result delivered by the crusher game.
func (s *Store) SaveResult(gameID string, res crusher.Result) (string, error) {
	return s.SaveRound(RoundRecord{
		GameID:       gameID,
		Difficulty:   string(res.Difficulty),
		Stage:        res.Stage,
		Score:        res.Score,
		Accuracy:     res.Accuracy,
		WPM:          res.WPM,
		Seconds:      res.Time,
		Errors:       res.Errors,
		MaxCombo:     res.MaxCombo,
		LettersTyped: res.LettersTyped,
		Won:          res.Won,
		Phrase:       res.Phrase.Text,
		Category:     res.Phrase.Category,
	})
}

const roundColumns = `id, game_id, difficulty, stage, score, accuracy, wpm, seconds,
	errors, max_combo, letters_typed, won, phrase, category, created_at`

// TopRounds retrieves the best N rounds for a difficulty, or across all
// difficulties when difficulty is empty. Results are ordered by score descending.
func (s *Store) TopRounds(difficulty string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Difficulty, &r.Stage, &r.Score, &r.Accuracy, &r.WPM, &r.Seconds,
			&r.Errors, &r.MaxCombo, &r.LettersTyped, &r.Won, &r.Phrase, &r.Category, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Round retrieves a round by ID. It returns nil when no such round exists.
func (s *Store) Round(id string) (*RoundRecord, error) {
	var r RoundRecord
	var createdAt any
	err := s.db.QueryRow(
		`SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id,
	).Scan(
		&r.ID, &r.GameID, &r.Difficulty, &r.Stage, &r.Score, &r.Accuracy, &r.WPM, &r.Seconds,
		&r.Errors, &r.MaxCombo, &r.LettersTyped, &r.Won, &r.Phrase, &r.Category, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// HighScore returns the highest score for the difficulty, or across all
// difficulties when it is empty. Returns 0 if no rounds exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE ? = '' OR difficulty = ?",
		difficulty, difficulty,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for the difficulty, or across all
// difficulties when it is empty.
func (s *Store) Stats(difficulty string) (*Stats, error) {
	stats := &Stats{Difficulty: difficulty}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(accuracy), 0), COALESCE(MAX(wpm), 0), MAX(created_at)
		 FROM rounds WHERE ? = '' OR difficulty = ?`,
		difficulty, difficulty,
	).Scan(&stats.Rounds, &stats.Wins, &stats.HighScore, &stats.AvgScore,
		&stats.AvgAccuracy, &stats.BestWPM, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRounds deletes the rounds of a difficulty, or all rounds when it is empty.
func (s *Store) ClearRounds(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// RecordFailedLetter increments the miss counter of the letter the player
// should have typed.
func (s *Store) RecordFailedLetter(ch rune) error {
	_, err := s.db.Exec(
		`INSERT INTO failed_letters (letter, misses, last_missed) VALUES (?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(letter) DO UPDATE SET misses = misses + 1, last_missed = CURRENT_TIMESTAMP`,
		strings.ToUpper(string(ch)),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record failed letter: %w", err)
	}
	return nil
}

// WeakestLetters returns the most missed letters, worst first.
func (s *Store) WeakestLetters(limit int) ([]LetterStat, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT letter, misses, last_missed FROM failed_letters
		 ORDER BY misses DESC, letter ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query failed letters: %w", err)
	}
	defer rows.Close()

	var stats []LetterStat
	for rows.Next() {
		var letter string
		var last any
		var st LetterStat
		if err := rows.Scan(&letter, &st.Misses, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		for _, r := range letter {
			st.Letter = r
			break
		}
		st.LastMissed = parseTime(last)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

const errorCounter = "errors"

// RecordError increments the lifetime error counter.
func (s *Store) RecordError() error {
	_, err := s.db.Exec(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1`,
		errorCounter,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record error: %w", err)
	}
	return nil
}

// ErrorCount returns the lifetime error counter.
func (s *Store) ErrorCount() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT value FROM counters WHERE name = ?", errorCounter).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query error count: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
