package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"phototag/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

var errVipsUnavailable = errors.New("libvips not available")

// vipsVerbosity maps the application log level to the most verbose libvips
// level that should reach the logger.
func vipsVerbosity(level logging.LogLevel) vips.LogLevel {
	switch level {
	case logging.LevelDebug:
		return vips.LogLevelInfo
	case logging.LevelWarn:
		return vips.LogLevelError
	case logging.LevelError:
		return vips.LogLevelCritical
	default:
		return vips.LogLevelWarning
	}
}

func vipsLogHandler(domain string, level vips.LogLevel, msg string) {
	switch level {
	case vips.LogLevelError, vips.LogLevelCritical:
		logging.Error("[%s] %s", domain, msg)
	case vips.LogLevelWarning:
		logging.Warn("[%s] %s", domain, msg)
	default:
		logging.Debug("[%s] %s", domain, msg)
	}
}

// InitVips starts libvips. Call once at startup when VIPS_ENABLED is set.
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Logging must be configured before Startup.
	vips.LoggingSettings(vipsLogHandler, vipsVerbosity(logging.GetLevel()))

	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1, // the import pool provides parallelism
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
	return nil
}

// ShutdownVips releases libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Debug("libvips shutdown complete")
	}
}

// IsVipsAvailable reports whether libvips is initialized.
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// renderWithVips produces a JPEG thumbnail entirely inside libvips:
// auto-rotate, convert to sRGB, flatten alpha onto white, shrink to fit
// maxEdge (never enlarging), export.
func renderWithVips(path string, maxEdge, quality int) ([]byte, error) {
	if !IsVipsAvailable() {
		return nil, errVipsUnavailable
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips load: %w", err)
	}
	defer ref.Close()

	if err := ref.AutoRotate(); err != nil {
		return nil, fmt.Errorf("vips autorotate: %w", err)
	}
	if err := ref.ToColorSpace(vips.InterpretationSRGB); err != nil {
		return nil, fmt.Errorf("vips colourspace: %w", err)
	}
	if ref.HasAlpha() {
		if err := ref.Flatten(&vips.Color{R: 255, G: 255, B: 255}); err != nil {
			return nil, fmt.Errorf("vips flatten: %w", err)
		}
	}

	if ref.Width() > maxEdge || ref.Height() > maxEdge {
		if err := ref.Thumbnail(maxEdge, maxEdge, vips.InterestingNone); err != nil {
			return nil, fmt.Errorf("vips thumbnail: %w", err)
		}
	}

	params := vips.NewJpegExportParams()
	params.Quality = quality
	params.StripMetadata = true
	params.OptimizeCoding = true

	data, _, err := ref.ExportJpeg(params)
	if err != nil {
		return nil, fmt.Errorf("vips export: %w", err)
	}

	logging.Debug("vips rendered %s: %dx%d, %d bytes", filepath.Base(path), ref.Width(), ref.Height(), len(data))
	return data, nil
}
