package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"auction-draft-service/internal/domain/draft"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	key       TEXT PRIMARY KEY,
	payload   TEXT NOT NULL,
	synced_at TEXT NOT NULL DEFAULT ''
);`

// SQLiteStore persists sessions in a single-file SQLite database. It survives
// restarts like the filesystem store but keeps all sessions in one artifact,
// which is easier to back up mid-draft.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// sessions table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session db path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure sessions table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(key string) (draft.Session, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM sessions WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return draft.Session{}, false, nil
	}
	if err != nil {
		return draft.Session{}, false, err
	}

	var session draft.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return draft.Session{}, false, fmt.Errorf("decode session %s: %w", key, err)
	}
	return session, true, nil
}

func (s *SQLiteStore) Save(key string, session draft.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO sessions (key, payload, synced_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, synced_at = excluded.synced_at`,
		key, string(payload), session.SyncedAt)
	return err
}

func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM sessions ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
