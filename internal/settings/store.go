package settings

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/nostromo/mother/internal/file"
)

// StorageKey under which the settings blob is persisted.
const StorageKey = "mother-ai-settings"

// Store persists settings.
type Store interface {
	// Load returns the stored settings merged over the defaults.
	Load(ctx context.Context) (Settings, error)
	// Save settings.
	Save(ctx context.Context, settings Settings) error
	// Reset removes the stored settings.
	Reset(ctx context.Context) error
}

// SQLiteStore implements a SQLite store for settings.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and creates if needed) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := file.CreateParentDirectory(path); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating settings table")
	}

	return &SQLiteStore{db: db}, nil
}

// ErrCorruptSettings is returned by Load when the stored blob cannot be decoded.
var ErrCorruptSettings = errors.New("corrupt settings")

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (Settings, error) {
	settings := Default()
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, StorageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, errors.Wrap(err, "querying settings")
	}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return Default(), errors.Wrapf(ErrCorruptSettings, "unmarshaling settings: %v", err)
	}
	return settings, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, settings Settings) error {
	bytes, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}
	_, err = s.db.ExecContext(ctx, `REPLACE INTO settings (key, value) VALUES (?, ?)`, StorageKey, string(bytes))
	if err != nil {
		return errors.Wrap(err, "writing settings to database")
	}
	return nil
}

// Reset implements Store.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, StorageKey); err != nil {
		return errors.Wrap(err, "deleting settings")
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
