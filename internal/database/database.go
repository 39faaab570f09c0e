package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"phototag/internal/logging"
	"phototag/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// schemaVersion is the current settings schema.
const schemaVersion = 1

// Database holds persisted user preferences in a SQLite file next to the
// library index.
type Database struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// New opens (creating if needed) the settings database at dbPath. The parent
// directory must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Debug("Settings database path: %s", dbPath)

	if err := diagnoseDatabasePermissions(dbPath); err != nil {
		logging.Warn("Settings database permission diagnostics: %v", err)
	}

	// busy_timeout helps prevent "database is locked" errors
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close settings database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to settings database: %w", err)
	}

	// A CLI process needs one connection.
	db.SetMaxOpenConns(1)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close settings database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize settings schema: %w", err)
	}

	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE TABLE IF NOT EXISTS schema_info (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL
	);
	`
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	var version int
	err := d.db.QueryRowContext(ctx, "SELECT version FROM schema_info WHERE id = 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = d.db.ExecContext(ctx, "INSERT INTO schema_info (id, version) VALUES (1, ?)", schemaVersion)
		return err
	case err != nil:
		return err
	case version > schemaVersion:
		return fmt.Errorf("settings schema version %d is newer than supported version %d", version, schemaVersion)
	}
	return nil
}

// Path returns the database file location.
func (d *Database) Path() string {
	return d.dbPath
}

// Close closes the database.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db.Close()
}

func recordQuery(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// diagnoseDatabasePermissions checks the directory is writable and warns
// about read-only database files, repairing WAL/SHM modes when possible.
func diagnoseDatabasePermissions(dbPath string) error {
	dir := filepath.Dir(dbPath)

	dirInfo, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot stat settings directory: %w", err)
	}
	logging.Debug("Settings directory: %s (mode: %v)", dir, dirInfo.Mode())

	testFile := filepath.Join(dir, ".perm-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("settings directory not writable: %w", err)
	}
	_ = os.Remove(testFile)

	if info, err := os.Stat(dbPath); err == nil && info.Mode().Perm()&0o200 == 0 {
		logging.Warn("Settings database is read-only! Mode: %v", info.Mode())
	}

	for _, side := range []string{dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(side)
		if err != nil || info.Mode().Perm()&0o200 != 0 {
			continue
		}
		logging.Warn("%s is read-only (mode %v), this will cause write failures", filepath.Base(side), info.Mode())
		if chmodErr := os.Chmod(side, 0o600); chmodErr != nil {
			logging.Error("Failed to fix permissions of %s: %v", side, chmodErr)
		}
	}

	return nil
}
