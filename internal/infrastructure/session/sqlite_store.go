package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/burst-go/burst/internal/domain"
)

// SQLiteStore persists named sessions in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the sessions database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sessions db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sessions db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		updated_at TEXT,
		variables TEXT
	);`)
	return err
}

// Names lists stored sessions by name.
func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM sessions ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Get returns the named session. found is false when it was never saved.
func (s *SQLiteStore) Get(ctx context.Context, name string) (rec domain.SessionRecord, found bool, err error) {
	var ts, raw string
	row := s.db.QueryRowContext(ctx, "SELECT id, name, updated_at, variables FROM sessions WHERE name = ?", name)
	if err := row.Scan(&rec.ID, &rec.Name, &ts, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SessionRecord{}, false, nil
		}
		return domain.SessionRecord{}, false, err
	}
	if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
		rec.UpdatedAt = t
	}
	vars := map[string]json.RawMessage{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &vars); err != nil {
			return domain.SessionRecord{}, false, fmt.Errorf("decode session %s: %w", name, err)
		}
	}
	rec.Variables = make(map[string][]byte, len(vars))
	for k, v := range vars {
		rec.Variables[k] = v
	}
	return rec, true, nil
}

// Save upserts a session by name.
func (s *SQLiteStore) Save(ctx context.Context, rec domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vars := make(map[string]json.RawMessage, len(rec.Variables))
	for k, v := range rec.Variables {
		vars[k] = v
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions (id, name, updated_at, variables)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at, variables = excluded.variables`,
		rec.ID,
		rec.Name,
		rec.UpdatedAt.Format(domain.TimestampFormat),
		string(raw),
	)
	return err
}

// Delete removes a session.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", name)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
