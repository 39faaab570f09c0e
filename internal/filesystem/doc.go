/*
Package filesystem provides resilient filesystem operations: automatic retry
for NFS stale file handle errors and atomic file replacement.

# Retry

StatWithRetry and OpenWithRetry wrap os.Stat and os.Open. Only ESTALE
(errno 116) triggers a retry; every other error is returned immediately.
Photo libraries frequently live on network shares, and a stale handle during
import would otherwise be reported as a failed file.

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

Defaults: 3 retries, 50ms initial backoff doubling up to 500ms.

# Atomic writes

WriteFileAtomic writes to a temp file in the target directory, fsyncs it and
renames it into place. The library index and thumbnail cache both use it so a
crash mid-write never leaves a truncated file behind.

# Metrics

Install an Observer with SetObserver (metrics.NewFilesystemObserver) to record
retry counts and durations. Without one, recording is skipped.
*/
package filesystem
