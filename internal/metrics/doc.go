// Package metrics provides Prometheus instrumentation for phototag.
//
// All metrics are prefixed with "phototag_". phototag has no network surface,
// so metrics are not scraped over HTTP; instead the CLI writes the default
// registry to a file with WriteTextfile when METRICS_TEXTFILE is set, in the
// format understood by the node_exporter textfile collector.
//
// # Metric Categories
//
// ## Library Metrics
//
//   - LibraryWritesTotal / LibraryWriteDuration: index rewrites per mutating operation
//   - LibraryEntries, LibraryTags, LibraryUntagged, LibraryMissingThumbnails: gauges set by Collect
//   - LibraryListenerPanics: change listeners that panicked
//   - LibraryCorruptIndexRecoveries: unreadable index files moved aside
//
// ## Import Metrics
//
//   - ImportFilesTotal: files processed, by outcome
//   - ImportBatchDuration, ImportWorkers
//
// ## Thumbnail Metrics
//
//   - ThumbnailRendersTotal / ThumbnailRenderDuration: by backend (vips, imaging)
//   - ThumbnailBytesWritten
//
// ## Settings Database Metrics
//
//   - DBQueryTotal / DBQueryDuration: settings queries by operation and status
//
// ## Filesystem Metrics
//
// Retry behaviour for stale NFS handles, recorded through the observer returned
// by NewFilesystemObserver.
package metrics
