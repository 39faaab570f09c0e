package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned by GetSetting for keys that were never stored.
var ErrNotFound = errors.New("setting not found")

// GetSetting retrieves a setting value by key.
func (d *Database) GetSetting(ctx context.Context, key string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	start := time.Now()
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		recordQuery("get_setting", start, nil)
		return "", ErrNotFound
	}
	recordQuery("get_setting", start, err)
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores a setting, replacing any previous value.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	start := time.Now()
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	recordQuery("set_setting", start, err)
	return err
}
