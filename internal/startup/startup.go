package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"phototag/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Defaults for numeric settings.
const (
	DefaultThumbnailSize    = 900
	DefaultThumbnailQuality = 78
)

// File and directory names under the library directory.
const (
	IndexFileName    = "library_index.json"
	ThumbnailDirName = "ThumbCache"
	SettingsFileName = "settings.db"
	LockFileName     = "library.lock"
)

// Config holds all application configuration
type Config struct {
	LibraryDir       string
	ThumbnailSize    int
	ThumbnailQuality int
	ImportWorkers    int // 0 = derive from CPUs
	VipsEnabled      bool
	MetricsTextfile  string

	// Derived paths
	IndexPath    string
	ThumbnailDir string
	SettingsPath string
	LockPath     string
}

// LoadConfig reads configuration from the environment. A non-empty
// libraryDir overrides LIBRARY_DIR. The library directory is created and
// must be writable.
func LoadConfig(libraryDir string) (*Config, error) {
	logSystemInfo()

	if libraryDir == "" {
		libraryDir = getEnv("LIBRARY_DIR", defaultLibraryDir())
	}
	libraryDir, err := filepath.Abs(libraryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library directory path: %w", err)
	}

	config := &Config{
		LibraryDir:       libraryDir,
		ThumbnailSize:    getEnvInt("THUMBNAIL_SIZE", DefaultThumbnailSize, 1, 10000),
		ThumbnailQuality: getEnvInt("THUMBNAIL_QUALITY", DefaultThumbnailQuality, 1, 100),
		ImportWorkers:    getEnvInt("IMPORT_WORKERS", 0, 1, 256),
		VipsEnabled:      getEnvBool("VIPS_ENABLED", false),
		MetricsTextfile:  getEnv("METRICS_TEXTFILE", ""),
		IndexPath:        filepath.Join(libraryDir, IndexFileName),
		ThumbnailDir:     filepath.Join(libraryDir, ThumbnailDirName),
		SettingsPath:     filepath.Join(libraryDir, SettingsFileName),
		LockPath:         filepath.Join(libraryDir, LockFileName),
	}

	logging.Debug("Configuration:")
	logging.Debug("  LIBRARY_DIR:       %s", config.LibraryDir)
	logging.Debug("  THUMBNAIL_SIZE:    %d", config.ThumbnailSize)
	logging.Debug("  THUMBNAIL_QUALITY: %d", config.ThumbnailQuality)
	logging.Debug("  IMPORT_WORKERS:    %d", config.ImportWorkers)
	logging.Debug("  VIPS_ENABLED:      %v", config.VipsEnabled)
	logging.Debug("  METRICS_TEXTFILE:  %s", config.MetricsTextfile)
	logging.Debug("  LOG_LEVEL:         %s", logging.GetLevel())

	if err := ensureDirectory(libraryDir, "library"); err != nil {
		return nil, fmt.Errorf("library directory error: %w", err)
	}
	if err := testWriteAccess(libraryDir); err != nil {
		return nil, fmt.Errorf("library directory is not writable: %w", err)
	}

	return config, nil
}

func defaultLibraryDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "phototag")
	}
	return "phototag"
}

func logSystemInfo() {
	if !logging.IsDebugEnabled() {
		return
	}
	logging.Debug("phototag %s (commit %s, built %s)", Version, Commit, BuildTime)
	logging.Debug("  Go version:      %s", runtime.Version())
	logging.Debug("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Debug("  CPUs available:  %d", runtime.NumCPU())
	logging.Debug("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))
	if wd, err := os.Getwd(); err == nil {
		logging.Debug("  Working dir:     %s", wd)
	}
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvInt parses an integer in [minValue, maxValue]. Missing, malformed or
// out-of-range values yield defaultValue.
func getEnvInt(key string, defaultValue, minValue, maxValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < minValue || parsed > maxValue {
		logging.Warn("Invalid value for %s: %q (want %d-%d), using default: %d", key, value, minValue, maxValue, defaultValue)
		return defaultValue
	}
	return parsed
}
