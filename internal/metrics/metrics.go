package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Library store metrics
var (
	LibraryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_library_writes_total",
			Help: "Total number of index writes by mutating operation",
		},
		[]string{"operation", "status"},
	)

	LibraryWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phototag_library_write_duration_seconds",
			Help:    "Index serialization and atomic replace duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	LibraryEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "phototag_library_entries",
			Help: "Number of photos in the library index",
		},
	)

	LibraryTags = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "phototag_library_tags",
			Help: "Number of distinct tags in the library",
		},
	)

	LibraryUntagged = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "phototag_library_untagged_entries",
			Help: "Number of photos without any tag",
		},
	)

	LibraryMissingThumbnails = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "phototag_library_missing_thumbnails",
			Help: "Number of photos without a generated thumbnail",
		},
	)

	LibraryListenerPanics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phototag_library_listener_panics_total",
			Help: "Total number of change listeners that panicked",
		},
	)

	LibraryCorruptIndexRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phototag_library_corrupt_index_recoveries_total",
			Help: "Total number of unreadable index files moved aside at load",
		},
	)
)

// Import pipeline metrics
var (
	ImportFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_import_files_total",
			Help: "Total number of files processed by the import pipeline",
		},
		[]string{"status"}, // "success", "failure"
	)

	ImportBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "phototag_import_batch_duration_seconds",
			Help:    "Duration of an import batch in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	ImportWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "phototag_import_workers",
			Help: "Number of workers used by the last import batch",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_thumbnail_renders_total",
			Help: "Total number of thumbnail renders by backend and status",
		},
		[]string{"backend", "status"}, // backend: "vips", "imaging"
	)

	ThumbnailRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phototag_thumbnail_render_duration_seconds",
			Help:    "Thumbnail render duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)

	ThumbnailBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phototag_thumbnail_bytes_written_total",
			Help: "Total bytes of thumbnail data written to the cache",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts after stale file handle errors",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_filesystem_stale_errors_total",
			Help: "Total number of stale file handle errors encountered",
		},
		[]string{"operation"},
	)

	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phototag_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration including retries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// Settings database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phototag_db_query_total",
			Help: "Total number of settings database queries by operation and status",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phototag_db_query_duration_seconds",
			Help:    "Settings database query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// WriteTextfile writes every registered metric to path in the Prometheus text
// exposition format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
