package workers

import (
	"os"
	"runtime"
	"strconv"
)

// OverrideEnv names the environment variable that pins the worker count.
const OverrideEnv = "IMPORT_WORKERS"

// Count returns the number of workers for a task type, derived from
// GOMAXPROCS so container CPU limits are respected.
//
// The multiplier reflects the task: 1.0 CPU-bound, 2.0 I/O-bound, 1.5 mixed.
// limit caps the result; 0 means no cap. A positive IMPORT_WORKERS value
// replaces the calculation but is still capped by limit.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(OverrideEnv); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	workers := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}
	return workers
}

// ForMixed returns worker count for mixed tasks such as photo import, which
// reads files, decodes and encodes images, and writes thumbnails.
func ForMixed(limit int) int {
	return Count(1.5, limit)
}
