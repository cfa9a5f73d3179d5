// Package storage provides SQLite-based persistence for benchmark
// session telemetry. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session telemetry.
type Store struct {
	db *sql.DB
}

// Session is the recorded outcome of one benchmark run.
type Session struct {
	ID           int64
	Strategy     string  // loop strategy name
	Duration     float64 // wall seconds the loop ran
	Frames       uint64  // iterations completed
	FixedUpdates uint64  // fixed steps taken (0 for variable)
	AvgFPS       float64
	MinFPS       float64
	MaxFPS       float64
	DroppedTime  float64 // simulation seconds discarded by clamping
	Errors       uint64  // callback errors contained
	CreatedAt    time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			strategy TEXT NOT NULL,
			duration_secs REAL NOT NULL,
			frames INTEGER NOT NULL,
			fixed_updates INTEGER NOT NULL DEFAULT 0,
			avg_fps REAL NOT NULL,
			min_fps REAL NOT NULL,
			max_fps REAL NOT NULL,
			dropped_secs REAL NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_strategy ON sessions(strategy);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(created_at DESC);
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

// SaveSession records a benchmark session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (strategy, duration_secs, frames, fixed_updates, avg_fps, min_fps, max_fps, dropped_secs, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Strategy, sess.Duration, sess.Frames, sess.FixedUpdates,
		sess.AvgFPS, sess.MinFPS, sess.MaxFPS, sess.DroppedTime, sess.Errors,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent N sessions across all
// strategies, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.querySessions(
		`SELECT id, strategy, duration_secs, frames, fixed_updates,
		        avg_fps, min_fps, max_fps, dropped_secs, errors, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// SessionsByStrategy retrieves sessions for one strategy, newest first.
func (s *Store) SessionsByStrategy(strategy string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.querySessions(
		`SELECT id, strategy, duration_secs, frames, fixed_updates,
		        avg_fps, min_fps, max_fps, dropped_secs, errors, created_at
		 FROM sessions
		 WHERE strategy = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		strategy, limit,
	)
}

// BestAvgFPS returns the highest recorded average FPS for a strategy.
// Returns 0 if no sessions exist.
func (s *Store) BestAvgFPS(strategy string) (float64, error) {
	var fps sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(avg_fps) FROM sessions WHERE strategy = ?",
		strategy,
	).Scan(&fps)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best fps: %w", err)
	}

	if !fps.Valid {
		return 0, nil
	}

	return fps.Float64, nil
}

// ClearSessions deletes all sessions for the given strategy. An empty
// strategy deletes every session.
func (s *Store) ClearSessions(strategy string) error {
	var err error
	if strategy == "" {
		_, err = s.db.Exec("DELETE FROM sessions")
	} else {
		_, err = s.db.Exec("DELETE FROM sessions WHERE strategy = ?", strategy)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func (s *Store) querySessions(query string, args ...any) ([]Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(&sess.ID, &sess.Strategy, &sess.Duration, &sess.Frames,
			&sess.FixedUpdates, &sess.AvgFPS, &sess.MinFPS, &sess.MaxFPS,
			&sess.DroppedTime, &sess.Errors, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			sess.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				sess.CreatedAt = parsed
			}
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}
