package storage

import (
	"database/sql"
	"errors"
)

// SettingsStore is a small key-value persistence port backed by the
// settings table. The custom-domains list, credit counters, and service
// endpoints live here, so nothing in the app depends on a process-wide
// singleton and tests can run against a throwaway database.
type SettingsStore struct {
	db *DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key, or "" (and found=false) when unset.
func (s *SettingsStore) Get(key string) (value string, found bool, err error) {
	err = s.db.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes the value for key, inserting or replacing.
func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes a key. Missing keys are not an error.
func (s *SettingsStore) Delete(key string) error {
	_, err := s.db.conn.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}
