package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGetSettingMissing(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetSetting(context.Background(), "focal_mode"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSetting() error = %v, want ErrNotFound", err)
	}
}

func TestSetSettingUpserts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, value := range []string{"off", "always15"} {
		if err := db.SetSetting(ctx, "focal_mode", value); err != nil {
			t.Fatalf("SetSetting(%q) error = %v", value, err)
		}
		got, err := db.GetSetting(ctx, "focal_mode")
		if err != nil {
			t.Fatalf("GetSetting() error = %v", err)
		}
		if got != value {
			t.Errorf("GetSetting() = %q, want %q", got, value)
		}
	}
}

func TestSettingsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	db, err := New(ctx, path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.SetSetting(ctx, "focal_mode", "off"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(ctx, path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetSetting(ctx, "focal_mode")
	if err != nil || got != "off" {
		t.Errorf("GetSetting() after reopen = %q, %v; want off", got, err)
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "settings.db")
	if db, err := New(context.Background(), path); err == nil {
		db.Close()
		t.Error("New() succeeded in a missing directory")
	}
}
