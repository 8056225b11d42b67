package settings

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createSettingsTable = `CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteBackend stores settings as key/value rows.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createSettingsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &SQLiteBackend{path: path, db: db}, nil
}

func (b *SQLiteBackend) String() string {
	return "sqlite:" + b.path
}

// Load returns defaults for any key that has not been written yet.
func (b *SQLiteBackend) Load() (Settings, error) {
	rows, err := b.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	s := defaultSettings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "chimes_frequency":
			if _, err := fmt.Sscanf(value, "%d", &s.ChimesFrequency); err != nil {
				return Settings{}, fmt.Errorf("parsing chimes_frequency: %w", err)
			}
		case "chimes_duration":
			if _, err := fmt.Sscanf(value, "%d", &s.ChimesDuration); err != nil {
				return Settings{}, fmt.Errorf("parsing chimes_duration: %w", err)
			}
		case "device_id":
			s.DeviceID = value
		}
	}
	if err := rows.Err(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func (b *SQLiteBackend) Write(s Settings) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("chimes_frequency", fmt.Sprintf("%d", s.ChimesFrequency)); err != nil {
		return err
	}
	if _, err := stmt.Exec("chimes_duration", fmt.Sprintf("%d", s.ChimesDuration)); err != nil {
		return err
	}
	if _, err := stmt.Exec("device_id", s.DeviceID); err != nil {
		return err
	}

	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
