package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is present in the first textfile dump.
// Call this once at startup.
func InitializeMetrics() {
	for _, op := range []string{"add_imported", "set_tags", "add_tags", "delete_tag", "delete_photos", "set_thumbnail"} {
		for _, status := range []string{"success", "error"} {
			LibraryWritesTotal.WithLabelValues(op, status)
		}
		LibraryWriteDuration.WithLabelValues(op)
	}

	for _, status := range []string{"success", "failure"} {
		ImportFilesTotal.WithLabelValues(status)
	}

	for _, backend := range []string{"vips", "imaging"} {
		for _, status := range []string{"success", "error"} {
			ThumbnailRendersTotal.WithLabelValues(backend, status)
		}
		ThumbnailRenderDuration.WithLabelValues(backend)
	}

	for _, op := range []string{"get_setting", "set_setting"} {
		for _, status := range []string{"success", "error"} {
			DBQueryTotal.WithLabelValues(op, status)
		}
		DBQueryDuration.WithLabelValues(op)
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemOperationDuration.WithLabelValues(op)
	}
}
