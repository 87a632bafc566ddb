// Package store provides the SQLite-backed session state store.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/statline/internal/session"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB persists one row per session id. Each Put is a single INSERT OR
// REPLACE, so records are atomic at the granularity of one complete state
// and a racing writer yields last-writer-wins, never a torn record.
type DB struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(200)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get implements session.Store.
func (d *DB) Get(sessionID string) (session.State, bool, error) {
	var st session.State
	var startStr string

	err := d.db.QueryRow(`SELECT
		session_id, start_time, last_cumulative_tokens, message_count,
		tool_call_count, files_edited_count, bash_command_count
		FROM session_state WHERE session_id = ?`, sessionID).Scan(
		&st.SessionID, &startStr, &st.LastCumulativeTokens, &st.MessageCount,
		&st.ToolCallCount, &st.FilesEditedCount, &st.BashCommandCount,
	)
	if err == sql.ErrNoRows {
		return session.State{}, false, nil
	}
	if err != nil {
		return session.State{}, false, err
	}

	st.StartTime, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		// A corrupt record is treated like a missing one.
		return session.State{}, false, nil
	}
	return st, true, nil
}

// Put implements session.Store.
func (d *DB) Put(st session.State) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO session_state
		(session_id, start_time, last_cumulative_tokens, message_count,
		 tool_call_count, files_edited_count, bash_command_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		st.SessionID, st.StartTime.UTC().Format(time.RFC3339),
		st.LastCumulativeTokens, st.MessageCount,
		st.ToolCallCount, st.FilesEditedCount, st.BashCommandCount,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Count returns the number of persisted sessions.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM session_state").Scan(&n)
	return n, err
}

// Prune deletes records not updated since the cutoff. The engine never
// deletes state on its own; this is the housekeeping hook used by setup.
func (d *DB) Prune(olderThan time.Time) (int64, error) {
	res, err := d.db.Exec("DELETE FROM session_state WHERE updated_at < ?",
		olderThan.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DefaultPath returns the state database location, honoring XDG_STATE_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "statline", "sessions.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "statline", "sessions.db")
}
