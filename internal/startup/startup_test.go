package startup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LIBRARY_DIR", "THUMBNAIL_SIZE", "THUMBNAIL_QUALITY", "IMPORT_WORKERS", "VIPS_ENABLED", "METRICS_TEXTFILE"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "lib")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LibraryDir != dir {
		t.Errorf("LibraryDir = %q, want %q", cfg.LibraryDir, dir)
	}
	if cfg.ThumbnailSize != 900 || cfg.ThumbnailQuality != 78 {
		t.Errorf("thumbnail settings = %d/%d, want 900/78", cfg.ThumbnailSize, cfg.ThumbnailQuality)
	}
	if cfg.ImportWorkers != 0 || cfg.VipsEnabled || cfg.MetricsTextfile != "" {
		t.Errorf("unexpected optional settings: %+v", cfg)
	}

	paths := map[string]string{
		"IndexPath":    filepath.Join(dir, "library_index.json"),
		"ThumbnailDir": filepath.Join(dir, "ThumbCache"),
		"SettingsPath": filepath.Join(dir, "settings.db"),
		"LockPath":     filepath.Join(dir, "library.lock"),
	}
	got := map[string]string{
		"IndexPath":    cfg.IndexPath,
		"ThumbnailDir": cfg.ThumbnailDir,
		"SettingsPath": cfg.SettingsPath,
		"LockPath":     cfg.LockPath,
	}
	for name, want := range paths {
		if got[name] != want {
			t.Errorf("%s = %q, want %q", name, got[name], want)
		}
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("library directory not created: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("LIBRARY_DIR", dir)
	t.Setenv("THUMBNAIL_SIZE", "1200")
	t.Setenv("THUMBNAIL_QUALITY", "90")
	t.Setenv("IMPORT_WORKERS", "3")
	t.Setenv("VIPS_ENABLED", "true")
	t.Setenv("METRICS_TEXTFILE", "/tmp/phototag.prom")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LibraryDir != dir {
		t.Errorf("LibraryDir = %q, want %q", cfg.LibraryDir, dir)
	}
	if cfg.ThumbnailSize != 1200 || cfg.ThumbnailQuality != 90 || cfg.ImportWorkers != 3 {
		t.Errorf("numeric settings = %+v", cfg)
	}
	if !cfg.VipsEnabled || cfg.MetricsTextfile != "/tmp/phototag.prom" {
		t.Errorf("optional settings = %+v", cfg)
	}
}

func TestLoadConfigOverrideWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIBRARY_DIR", filepath.Join(t.TempDir(), "env"))
	flagDir := filepath.Join(t.TempDir(), "flag")

	cfg, err := LoadConfig(flagDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LibraryDir != flagDir {
		t.Errorf("LibraryDir = %q, want %q", cfg.LibraryDir, flagDir)
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("THUMBNAIL_SIZE", "huge")
	t.Setenv("THUMBNAIL_QUALITY", "150")
	t.Setenv("IMPORT_WORKERS", "-2")
	t.Setenv("VIPS_ENABLED", "maybe")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ThumbnailSize != DefaultThumbnailSize || cfg.ThumbnailQuality != DefaultThumbnailQuality {
		t.Errorf("thumbnail settings = %d/%d, want defaults", cfg.ThumbnailSize, cfg.ThumbnailQuality)
	}
	if cfg.ImportWorkers != 0 || cfg.VipsEnabled {
		t.Errorf("invalid values not ignored: %+v", cfg)
	}
}

func TestLoadConfigRejectsFile(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := LoadConfig(file); err == nil {
		t.Error("LoadConfig() accepted a regular file as library directory")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PHOTOTAG_TEST_VAR", "")
	if got := getEnv("PHOTOTAG_TEST_VAR", "default"); got != "default" {
		t.Errorf("getEnv(unset) = %q, want default", got)
	}
	t.Setenv("PHOTOTAG_TEST_VAR", "custom")
	if got := getEnv("PHOTOTAG_TEST_VAR", "default"); got != "custom" {
		t.Errorf("getEnv(set) = %q, want custom", got)
	}
}
