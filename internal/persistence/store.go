// Package persistence provides SQLite-based storage for named map
// snapshots.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexcity/internal/world"
)

// ErrNoSnapshot is returned when a named snapshot does not exist.
var ErrNoSnapshot = errors.New("snapshot not found")

// Store wraps a SQLite connection holding saved map snapshots.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		data TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SnapshotInfo describes a stored snapshot without its tile data.
type SnapshotInfo struct {
	Name    string `db:"name" json:"name"`
	Version int    `db:"version" json:"version"`
	Width   int    `db:"width" json:"width"`
	Height  int    `db:"height" json:"height"`
	SavedAt string `db:"saved_at" json:"saved_at"`
}

// Save writes the grid's snapshot under the given name, replacing any
// previous snapshot with that name.
func (s *Store) Save(name string, g *world.Grid) error {
	snap := g.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT OR REPLACE INTO snapshots (name, version, width, height, data, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, snap.Version, snap.Width, snap.Height, string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %q: %w", name, err)
	}
	return nil
}

// Load reads the named snapshot and rebuilds its grid, applying the same
// validation as a file load.
func (s *Store) Load(name string) (*world.Grid, error) {
	var data string
	err := s.conn.Get(&data, "SELECT data FROM snapshots WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %q: %w", name, ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	var snap world.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", world.ErrMalformedSnapshot, err)
	}
	return world.FromSnapshot(&snap)
}

// List returns metadata for every stored snapshot, newest first.
func (s *Store) List() ([]SnapshotInfo, error) {
	var infos []SnapshotInfo
	err := s.conn.Select(&infos,
		"SELECT name, version, width, height, saved_at FROM snapshots ORDER BY saved_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return infos, nil
}

// Delete removes the named snapshot. Deleting a missing snapshot returns
// ErrNoSnapshot.
func (s *Store) Delete(name string) error {
	res, err := s.conn.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrNoSnapshot)
	}
	return nil
}
