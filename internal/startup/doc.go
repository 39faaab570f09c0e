// Package startup loads configuration and prepares the library directory.
//
// # Configuration
//
// [LoadConfig] reads the environment:
//
//   - LIBRARY_DIR: root of all persisted state (default: <UserConfigDir>/phototag)
//   - THUMBNAIL_SIZE: longer thumbnail edge in pixels (default: 900)
//   - THUMBNAIL_QUALITY: JPEG quality 1-100 (default: 78)
//   - IMPORT_WORKERS: import pool size (default: derived from GOMAXPROCS)
//   - VIPS_ENABLED: render thumbnails with libvips when available (default: false)
//   - METRICS_TEXTFILE: write Prometheus metrics to this file on exit (default: off)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//
// Invalid values log a warning and fall back to the default.
//
// # Library Layout
//
//	<LIBRARY_DIR>/library_index.json   photo index
//	<LIBRARY_DIR>/ThumbCache/<id>.jpg  thumbnails
//	<LIBRARY_DIR>/settings.db          preferences
//	<LIBRARY_DIR>/library.lock         single-process lock
//
// The library directory is created if missing and must be writable.
package startup
