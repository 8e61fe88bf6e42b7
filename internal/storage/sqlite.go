// Package storage provides a SQLite-backed library of saved board layouts.
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

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LayoutRecord is a stored board layout. Rows use the layout alphabet
// ('.' empty, color characters).
type LayoutRecord struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Colors    int
	Rows      []string
	Metadata  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS layouts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			colors INTEGER NOT NULL,
			rows TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases created before layouts carried metadata lack the column.
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('layouts') WHERE name = 'metadata'`,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		_, err = s.db.Exec(`ALTER TABLE layouts ADD COLUMN metadata TEXT NOT NULL DEFAULT ''`)
	}
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLayout inserts a layout or replaces the stored layout with the same ID.
func (s *Store) SaveLayout(rec LayoutRecord) error {
	if rec.ID == "" {
		return errors.New("storage: layout id is empty")
	}
	if len(rec.Rows) != rec.Height {
		return fmt.Errorf("storage: layout %s has %d rows, height is %d", rec.ID, len(rec.Rows), rec.Height)
	}

	meta, err := encodeMetadata(rec.Metadata)
	if err != nil {
		return fmt.Errorf("storage: cannot encode metadata of %s: %w", rec.ID, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO layouts (id, name, width, height, colors, rows, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			width = excluded.width,
			height = excluded.height,
			colors = excluded.colors,
			rows = excluded.rows,
			metadata = excluded.metadata,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.Name, rec.Width, rec.Height, rec.Colors, strings.Join(rec.Rows, "\n"), meta,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save layout %s: %w", rec.ID, err)
	}
	return nil
}

// Layout retrieves a layout by ID. Returns nil without error if none exists.
func (s *Store) Layout(id string) (*LayoutRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, name, width, height, colors, rows, metadata, created_at, updated_at
		 FROM layouts
		 WHERE id = ?`,
		id,
	)

	rec, err := scanLayout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout %s: %w", id, err)
	}
	return &rec, nil
}

// Layouts retrieves all stored layouts ordered by ID.
func (s *Store) Layouts() ([]LayoutRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, name, width, height, colors, rows, metadata, created_at, updated_at
		 FROM layouts
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var records []LayoutRecord
	for rows.Next() {
		rec, err := scanLayout(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteLayout removes a layout and reports whether it existed.
func (s *Store) DeleteLayout(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM layouts WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete layout %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLayout(row scanner) (LayoutRecord, error) {
	var rec LayoutRecord
	var rowsText, metaText string
	var createdAt, updatedAt any

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.Colors, &rowsText, &metaText, &createdAt, &updatedAt); err != nil {
		return rec, err
	}

	rec.Rows = strings.Split(rowsText, "\n")
	if metaText != "" {
		if err := yaml.Unmarshal([]byte(metaText), &rec.Metadata); err != nil {
			return rec, fmt.Errorf("layout %s metadata: %w", rec.ID, err)
		}
	}
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

// encodeMetadata stores metadata as a YAML mapping, empty when there is none.
func encodeMetadata(meta map[string]string) (string, error) {
	if len(meta) == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
