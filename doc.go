// Command phototag imports photos into a local library, tags them and shows
// what their EXIF data says.
//
// Originals are never copied or modified. The library keeps an index of
// imported photos, a thumbnail per photo and a small preferences database,
// all under one directory:
//
//	<LIBRARY_DIR>/library_index.json
//	<LIBRARY_DIR>/ThumbCache/<id>.jpg
//	<LIBRARY_DIR>/settings.db
//
// # Commands
//
//	phototag import <paths...> [--tags "a, b"]   import files or directories
//	phototag list [--tag T | --untagged]         list photos, newest first
//	phototag tags                                list tags with photo counts
//	phototag tag add <tags> <ids...>             add tags to photos
//	phototag tag set <id> <tags>                 replace a photo's tags
//	phototag tag delete <tag>                    remove a tag from every photo
//	phototag delete <ids...> [--keep-thumbnails] remove photos from the library
//	phototag show <id>                           show a photo's details
//	phototag settings focal [mode]               show or set the focal length mode
//	phototag prune                               delete orphaned thumbnails
//	phototag version                             print build information
//
// Tag lists accept ASCII and full-width commas as separators.
//
// # Concurrency
//
// Only one phototag process may use a library at a time. A lock file in the
// library directory enforces this; a second process fails fast instead of
// waiting.
//
// # Configuration
//
// See package startup for environment variables. The --library flag
// overrides LIBRARY_DIR.
//
// # Metrics
//
// When METRICS_TEXTFILE is set, Prometheus metrics for the run are written to
// that file on exit in text exposition format, suitable for the node_exporter
// textfile collector.
package main
