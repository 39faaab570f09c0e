package metrics

import (
	"phototag/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	Stats() Stats
}

// Stats holds a point-in-time summary of the library.
type Stats struct {
	TotalPhotos       int
	TotalTags         int
	Untagged          int
	MissingThumbnails int
}

// Collect copies the provider's current stats into the library gauges.
func Collect(provider StatsProvider) {
	if provider == nil {
		return
	}

	stats := provider.Stats()

	LibraryEntries.Set(float64(stats.TotalPhotos))
	LibraryTags.Set(float64(stats.TotalTags))
	LibraryUntagged.Set(float64(stats.Untagged))
	LibraryMissingThumbnails.Set(float64(stats.MissingThumbnails))

	logging.Debug("Metrics collected: photos=%d, tags=%d, untagged=%d, missing thumbnails=%d",
		stats.TotalPhotos, stats.TotalTags, stats.Untagged, stats.MissingThumbnails)
}
