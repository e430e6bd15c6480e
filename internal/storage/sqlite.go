// Package storage provides SQLite-based persistence for reading history.
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

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for reading history.
type Store struct {
	db *sql.DB
}

// Read is one completed reveal: how long the reader took from the first
// typed character to confirming.
type Read struct {
	ID        int64
	SessionID string // Groups reads of one program run or SSH session
	ScriptID  string
	Chars     int
	Elapsed   time.Duration
	Skipped   bool // The reader cut the typing short
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
		CREATE TABLE IF NOT EXISTS reads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			script_id TEXT NOT NULL,
			chars INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reads_script_id ON reads(script_id);
		CREATE INDEX IF NOT EXISTS idx_reads_session_id ON reads(session_id);
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

// NewSessionID returns a fresh identifier for grouping reads.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveRead records a completed reveal. A missing session ID is generated.
// Returns the ID of the inserted record.
func (s *Store) SaveRead(r Read) (int64, error) {
	if r.ScriptID == "" {
		return 0, errors.New("storage: read has no script ID")
	}
	if r.SessionID == "" {
		r.SessionID = NewSessionID()
	}

	result, err := s.db.Exec(
		"INSERT INTO reads (session_id, script_id, chars, elapsed_ms, skipped) VALUES (?, ?, ?, ?, ?)",
		r.SessionID, r.ScriptID, r.Chars, r.Elapsed.Milliseconds(), r.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save read: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentReads retrieves the latest reads, newest first. An empty scriptID
// matches every script.
func (s *Store) RecentReads(scriptID string, limit int) ([]Read, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, script_id, chars, elapsed_ms, skipped, created_at
		 FROM reads
		 WHERE ? = '' OR script_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scriptID, scriptID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reads: %w", err)
	}
	return scanReads(rows)
}

// FastestReads retrieves the quickest reads of a script that were not
// skipped, fastest first.
func (s *Store) FastestReads(scriptID string, limit int) ([]Read, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, script_id, chars, elapsed_ms, skipped, created_at
		 FROM reads
		 WHERE script_id = ? AND skipped = 0
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		scriptID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reads: %w", err)
	}
	return scanReads(rows)
}

// SessionReads retrieves every read of one session, oldest first.
func (s *Store) SessionReads(sessionID string) ([]Read, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, script_id, chars, elapsed_ms, skipped, created_at
		 FROM reads
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session reads: %w", err)
	}
	return scanReads(rows)
}

func scanReads(rows *sql.Rows) ([]Read, error) {
	defer rows.Close()

	var reads []Read
	for rows.Next() {
		var (
			r         Read
			elapsedMS int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ScriptID, &r.Chars, &elapsedMS, &r.Skipped, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		reads = append(reads, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return reads, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Clear deletes the reads of the given script, or all reads when scriptID
// is empty.
func (s *Store) Clear(scriptID string) error {
	_, err := s.db.Exec("DELETE FROM reads WHERE ? = '' OR script_id = ?", scriptID, scriptID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear reads: %w", err)
	}
	return nil
}

// ReadStats contains aggregated statistics for a script.
type ReadStats struct {
	ScriptID    string
	Reads       int
	Skipped     int
	AvgElapsed  time.Duration
	BestElapsed time.Duration // Fastest read that was not skipped
	LastRead    time.Time
}

// Stats retrieves aggregated statistics for a specific script.
func (s *Store) Stats(scriptID string) (*ReadStats, error) {
	stats := &ReadStats{ScriptID: scriptID}

	var (
		avgMS    float64
		bestMS   sql.NullInt64
		lastRead any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(skipped), 0), COALESCE(AVG(elapsed_ms), 0),
		        MIN(CASE WHEN skipped = 0 THEN elapsed_ms END), MAX(created_at)
		 FROM reads WHERE script_id = ?`,
		scriptID,
	).Scan(&stats.Reads, &stats.Skipped, &avgMS, &bestMS, &lastRead)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get read stats: %w", err)
	}

	stats.AvgElapsed = time.Duration(avgMS * float64(time.Millisecond))
	if bestMS.Valid {
		stats.BestElapsed = time.Duration(bestMS.Int64) * time.Millisecond
	}
	stats.LastRead = parseTime(lastRead)

	return stats, nil
}

// AllStats retrieves statistics for every script that has been read.
func (s *Store) AllStats() (map[string]*ReadStats, error) {
	rows, err := s.db.Query(
		`SELECT script_id, COUNT(*), SUM(skipped), AVG(elapsed_ms),
		        MIN(CASE WHEN skipped = 0 THEN elapsed_ms END), MAX(created_at)
		 FROM reads
		 GROUP BY script_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all read stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ReadStats)
	for rows.Next() {
		var (
			st       ReadStats
			avgMS    float64
			bestMS   sql.NullInt64
			lastRead any
		)
		if err := rows.Scan(&st.ScriptID, &st.Reads, &st.Skipped, &avgMS, &bestMS, &lastRead); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.AvgElapsed = time.Duration(avgMS * float64(time.Millisecond))
		if bestMS.Valid {
			st.BestElapsed = time.Duration(bestMS.Int64) * time.Millisecond
		}
		st.LastRead = parseTime(lastRead)
		stats[st.ScriptID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
