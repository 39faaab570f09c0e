package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"phototag/internal/logging"
)

const (
	// DefaultMemoryRatio is the share of the memory limit given to the Go heap.
	// The rest is left for libvips, which allocates outside the Go heap.
	DefaultMemoryRatio = 0.85
)

// ConfigResult holds the result of memory configuration
type ConfigResult struct {
	// Configured indicates whether a Go memory limit is in effect
	Configured bool

	// Source indicates where the configuration came from
	Source string // "GOMEMLIMIT", "MEMORY_LIMIT", or "none"

	// ContainerLimit is the MEMORY_LIMIT value in bytes (0 if not set)
	ContainerLimit int64

	// GoMemLimit is the Go memory limit in bytes (0 if not set)
	GoMemLimit int64

	// Ratio is the memory ratio used (0 if not applicable)
	Ratio float64
}

// ConfigureFromEnv sets the Go soft memory limit before an import decodes
// large images. Call it early in main.
//
// Environment variables:
//   - GOMEMLIMIT: If set, this takes precedence (standard Go env var)
//   - MEMORY_LIMIT: Memory available to the process in bytes
//   - MEMORY_RATIO: Optional share of MEMORY_LIMIT for the Go heap (default: 0.85)
func ConfigureFromEnv() ConfigResult {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := ConfigResult{Source: "none"}
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result = ConfigResult{Configured: true, Source: "GOMEMLIMIT", GoMemLimit: limit}
		}
		logging.Debug("GOMEMLIMIT set via environment: %s", env)
		return result
	}

	result, ok := limitFromEnv()
	if !ok {
		return result
	}
	debug.SetMemoryLimit(result.GoMemLimit)
	logging.Debug("Configured GOMEMLIMIT: %s (%.1f%% of %s)",
		formatBytes(result.GoMemLimit), result.Ratio*100, formatBytes(result.ContainerLimit))
	return result
}

// limitFromEnv computes the heap limit from MEMORY_LIMIT and MEMORY_RATIO
// without applying it. ok is false when MEMORY_LIMIT is unset or invalid.
func limitFromEnv() (result ConfigResult, ok bool) {
	result.Source = "none"

	raw := os.Getenv("MEMORY_LIMIT")
	if raw == "" {
		return result, false
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return result, false
	}

	result = ConfigResult{
		Configured:     true,
		Source:         "MEMORY_LIMIT",
		ContainerLimit: limit,
		Ratio:          ratioFromEnv(),
	}
	result.GoMemLimit = int64(float64(limit) * result.Ratio)
	return result, true
}

func ratioFromEnv() float64 {
	raw := os.Getenv("MEMORY_RATIO")
	if raw == "" {
		return DefaultMemoryRatio
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio <= 0 || ratio > 1.0 {
		logging.Warn("Ignoring MEMORY_RATIO %q (want 0.0-1.0), using %.2f", raw, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	return ratio
}

// formatBytes formats bytes into human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
