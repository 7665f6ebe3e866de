// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sqlx.DB
}

// Result is a finished game to be recorded.
type Result struct {
	GameID    string
	SessionID string // Identifies one play session across restarts
	Score     int    // Final snake length
	Steps     uint64
	Cause     string // "wall", "self", "cleared" or "quit"
	At        time.Time
}

// ScoreEntry represents a single stored game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	SessionID string
	Score     int
	Steps     int64
	Cause     string
	CreatedAt time.Time
}

// scoreRow mirrors the scores table.
type scoreRow struct {
	ID        int64  `db:"id"`
	GameID    string `db:"game_id"`
	SessionID string `db:"session_id"`
	Score     int    `db:"score"`
	Steps     int64  `db:"steps"`
	Cause     string `db:"cause"`
	CreatedAt int64  `db:"created_at"`
}

func (r scoreRow) entry() ScoreEntry {
	return ScoreEntry{
		ID:        r.ID,
		GameID:    r.GameID,
		SessionID: r.SessionID,
		Score:     r.Score,
		Steps:     r.Steps,
		Cause:     r.Cause,
		CreatedAt: time.Unix(r.CreatedAt, 0),
	}
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

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			cause TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_session ON scores(session_id);
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

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(r Result) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: cannot save score: empty game id")
	}
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}

	row := scoreRow{
		GameID:    r.GameID,
		SessionID: r.SessionID,
		Score:     r.Score,
		Steps:     int64(r.Steps),
		Cause:     r.Cause,
		CreatedAt: at.Unix(),
	}
	result, err := s.db.NamedExec(
		`INSERT INTO scores (game_id, session_id, score, steps, cause, created_at)
		 VALUES (:game_id, :session_id, :score, :steps, :cause, :created_at)`,
		row,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending, then by fewer steps, then oldest first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []scoreRow
	err := s.db.Select(&rows,
		`SELECT id, game_id, session_id, score, steps, cause, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, steps ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return entries(rows), nil
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	var rows []scoreRow
	err := s.db.Select(&rows,
		`SELECT id, game_id, session_id, score, steps, cause, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, steps ASC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return entries(rows), nil
}

// SessionScores retrieves the games of one play session, oldest first.
func (s *Store) SessionScores(sessionID string) ([]ScoreEntry, error) {
	var rows []scoreRow
	err := s.db.Select(&rows,
		`SELECT id, game_id, session_id, score, steps, cause, created_at
		 FROM scores
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return entries(rows), nil
}

func entries(rows []scoreRow) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry())
	}
	return out
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.Get(&score, "SELECT MAX(score) FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalSteps int64
	Wins       int // Games that ended with a cleared board
	LastPlayed time.Time
}

type statsRow struct {
	GameID     string  `db:"game_id"`
	GamesCount int     `db:"games"`
	HighScore  int     `db:"high"`
	AvgScore   float64 `db:"avg"`
	TotalSteps int64   `db:"steps"`
	Wins       int     `db:"wins"`
	LastPlayed int64   `db:"last"`
}

func (r statsRow) stats() *GameStats {
	st := &GameStats{
		GameID:     r.GameID,
		GamesCount: r.GamesCount,
		HighScore:  r.HighScore,
		AvgScore:   r.AvgScore,
		TotalSteps: r.TotalSteps,
		Wins:       r.Wins,
	}
	if r.LastPlayed > 0 {
		st.LastPlayed = time.Unix(r.LastPlayed, 0)
	}
	return st
}

const statsColumns = `COUNT(*) AS games,
	COALESCE(MAX(score), 0) AS high,
	COALESCE(AVG(score), 0) AS avg,
	COALESCE(SUM(steps), 0) AS steps,
	COALESCE(SUM(cause = 'cleared'), 0) AS wins,
	COALESCE(MAX(created_at), 0) AS last`

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	var row statsRow
	err := s.db.Get(&row,
		`SELECT ? AS game_id, `+statsColumns+` FROM scores WHERE game_id = ?`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return row.stats(), nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	var rows []statsRow
	err := s.db.Select(&rows,
		`SELECT game_id, `+statsColumns+` FROM scores GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*GameStats, len(rows))
	for _, r := range rows {
		stats[r.GameID] = r.stats()
	}
	return stats, nil
}
