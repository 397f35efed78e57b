// Package store handles SQLite persistence of settings, palette edits and
// render history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tagcloud/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a key or record does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps SQLite access.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS palette_overrides (
			name TEXT NOT NULL,
			idx INTEGER NOT NULL,
			color TEXT NOT NULL,
			PRIMARY KEY (name, idx)
		);`,
		`CREATE TABLE IF NOT EXISTS renders (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			words INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			palette TEXT NOT NULL,
			output_path TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_ended_at ON renders(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get decodes the JSON value stored under key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode setting %q: %w", key, err)
	}
	return nil
}

// Set stores value under key as JSON.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	return err
}

// Load returns the stored value for key, or def when nothing is stored.
func Load[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	var v T
	err := s.Get(ctx, key, &v)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

// SetPaletteColor records a user edit of one palette entry.
func (s *Store) SetPaletteColor(ctx context.Context, name string, index int, color string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO palette_overrides (name, idx, color) VALUES (?, ?, ?)
		 ON CONFLICT(name, idx) DO UPDATE SET color = excluded.color`,
		name, index, color)
	return err
}

// PaletteOverrides returns the edited entries of a palette by index.
func (s *Store) PaletteOverrides(ctx context.Context, name string) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, color FROM palette_overrides WHERE name = ? ORDER BY idx`, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[int]string{}
	for rows.Next() {
		var idx int
		var color string
		if err := rows.Scan(&idx, &color); err != nil {
			return nil, err
		}
		result[idx] = color
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ResetPalette drops every edit of a palette.
func (s *Store) ResetPalette(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM palette_overrides WHERE name = ?`, name)
	return err
}

// InsertRender stores a render record and returns its generated id.
func (s *Store) InsertRender(ctx context.Context, rec model.RenderRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (id, started_at, ended_at, words, placed, width, height, palette, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Words,
		rec.Placed,
		rec.Width,
		rec.Height,
		rec.Palette,
		rec.OutputPath,
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// FindRender loads the render whose id starts with prefix. A full id
// always matches; a prefix shared by several renders is an error.
func (s *Store) FindRender(ctx context.Context, prefix string) (model.RenderRecord, error) {
	if prefix == "" {
		return model.RenderRecord{}, fmt.Errorf("render id is empty")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, words, placed, width, height, palette, output_path
		 FROM renders WHERE substr(id, 1, length(?)) = ? LIMIT 2`, prefix, prefix)
	if err != nil {
		return model.RenderRecord{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var found []model.RenderRecord
	for rows.Next() {
		rec, err := scanRender(rows)
		if err != nil {
			return model.RenderRecord{}, err
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return model.RenderRecord{}, err
	}
	switch len(found) {
	case 0:
		return model.RenderRecord{}, fmt.Errorf("render %q: %w", prefix, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return model.RenderRecord{}, fmt.Errorf("render id %q is ambiguous", prefix)
	}
}

// ListRenders returns the most recent renders first. limit <= 0 returns all.
func (s *Store) ListRenders(ctx context.Context, limit int) ([]model.RenderRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, words, placed, width, height, palette, output_path
		 FROM renders ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RenderRecord
	for rows.Next() {
		rec, err := scanRender(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRender(row scanner) (model.RenderRecord, error) {
	var rec model.RenderRecord
	var startedAt, endedAt string
	if err := row.Scan(&rec.ID, &startedAt, &endedAt, &rec.Words, &rec.Placed,
		&rec.Width, &rec.Height, &rec.Palette, &rec.OutputPath); err != nil {
		return model.RenderRecord{}, err
	}
	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return model.RenderRecord{}, err
	}
	if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return model.RenderRecord{}, err
	}
	return rec, nil
}
