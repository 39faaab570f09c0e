package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"phototag/internal/filesystem"
	"phototag/internal/library"
	"phototag/internal/logging"
	"phototag/internal/metadata"
	"phototag/internal/metrics"
	"phototag/internal/tags"
	"phototag/internal/thumbcache"
	"phototag/internal/workers"
)

const (
	// DefaultMaxEdge bounds the longer thumbnail edge in pixels.
	DefaultMaxEdge = 900
	// DefaultQuality is the JPEG quality of generated thumbnails.
	DefaultQuality = 78
	// maxWorkers caps the automatic pool size.
	maxWorkers = 8
)

// Extractor reads capture metadata from a source file.
type Extractor interface {
	Extract(path string) (metadata.Metadata, error)
}

// Renderer produces encoded thumbnail bytes for a source file.
type Renderer interface {
	Render(path string, maxEdge, quality int) ([]byte, error)
}

// Thumbnails stores rendered thumbnails and returns their paths.
type Thumbnails interface {
	Write(id string, data []byte) (string, error)
}

// Options configures a Pipeline.
type Options struct {
	MaxEdge int
	Quality int
	// Workers is the pool size; 0 derives it from available CPUs.
	Workers int
	// Progress, when set, is called after each path finishes. Calls are
	// serialized.
	Progress func(done, total int)
}

// Failure names a path that could not be imported and why.
type Failure struct {
	Path   string
	Reason string
}

// Result is the outcome of one batch. Both lists follow input order.
type Result struct {
	Imported []library.PhotoEntry
	Failures []Failure
}

// Pipeline turns source paths into library entries with thumbnails. It never
// touches the library store; callers add Result.Imported themselves.
type Pipeline struct {
	extractor  Extractor
	renderer   Renderer
	thumbnails Thumbnails
	opts       Options
	retry      filesystem.RetryConfig

	now   func() time.Time
	newID func() string
}

// New creates a pipeline. Zero option values take the package defaults.
func New(extractor Extractor, renderer Renderer, thumbnails Thumbnails, opts Options) *Pipeline {
	if opts.MaxEdge <= 0 {
		opts.MaxEdge = DefaultMaxEdge
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Workers <= 0 {
		opts.Workers = workers.ForMixed(maxWorkers)
	}
	return &Pipeline{
		extractor:  extractor,
		renderer:   renderer,
		thumbnails: thumbnails,
		opts:       opts,
		retry:      filesystem.DefaultRetryConfig(),
		now:        time.Now,
		newID:      thumbcache.NewID,
	}
}

type outcome struct {
	entry *library.PhotoEntry
	err   error
}

// Import processes every path independently. A failure in one path is
// recorded and the batch continues. Paths not yet started when ctx is
// cancelled fail with the context error.
func (p *Pipeline) Import(ctx context.Context, paths []string, initialTags []string) Result {
	start := time.Now()
	initial := tags.Dedupe(initialTags)

	numWorkers := p.opts.Workers
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}
	metrics.ImportWorkers.Set(float64(numWorkers))
	logging.Info("Importing %d files with %d workers", len(paths), numWorkers)

	outcomes := make([]outcome, len(paths))
	jobs := make(chan int)

	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
		done       int
	)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry, err := p.importOne(ctx, paths[i], initial)
				outcomes[i] = outcome{entry: entry, err: err}

				if p.opts.Progress != nil {
					progressMu.Lock()
					done++
					p.opts.Progress(done, len(paths))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var result Result
	for i, o := range outcomes {
		if o.err != nil {
			metrics.ImportFilesTotal.WithLabelValues("failure").Inc()
			logging.Warn("Import failed for %s: %v", paths[i], o.err)
			result.Failures = append(result.Failures, Failure{Path: paths[i], Reason: o.err.Error()})
			continue
		}
		metrics.ImportFilesTotal.WithLabelValues("success").Inc()
		result.Imported = append(result.Imported, *o.entry)
	}

	metrics.ImportBatchDuration.Observe(time.Since(start).Seconds())
	logging.Info("Import finished: %d imported, %d failed in %v",
		len(result.Imported), len(result.Failures), time.Since(start).Round(time.Millisecond))
	return result
}

// importOne runs the per-path sequence. Panics become errors.
func (p *Pipeline) importOne(ctx context.Context, path string, initialTags []string) (entry *library.PhotoEntry, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			entry, err = nil, fmt.Errorf("unexpected failure: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	info, err := filesystem.StatWithRetry(abs, p.retry)
	if err != nil {
		return nil, fmt.Errorf("source not accessible: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("not a regular file")
	}

	md, err := p.extractor.Extract(abs)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	e := library.PhotoEntry{
		ID:          p.newID(),
		FileName:    filepath.Base(abs),
		SourcePath:  abs,
		CaptureDate: md.CaptureDate,
		ImportDate:  p.now(),
		EXIF:        md.Facts.EXIF(),
		Tags:        append(make([]string, 0, len(initialTags)), initialTags...),
	}

	e.ThumbnailPath = p.thumbnail(e.ID, abs)
	return &e, nil
}

// thumbnail renders and stores the thumbnail for id. Failures are logged and
// yield an empty path; the entry is still imported.
func (p *Pipeline) thumbnail(id, source string) string {
	data, err := p.renderer.Render(source, p.opts.MaxEdge, p.opts.Quality)
	if err != nil {
		logging.Warn("No thumbnail for %s: %v", filepath.Base(source), err)
		return ""
	}

	path, err := p.thumbnails.Write(id, data)
	if err != nil {
		logging.Warn("Could not store thumbnail for %s: %v", filepath.Base(source), err)
		return ""
	}
	return path
}
