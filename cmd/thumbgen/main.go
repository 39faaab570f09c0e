package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"phototag/internal/filesystem"
	"phototag/internal/library"
	"phototag/internal/logging"
	"phototag/internal/media"
	"phototag/internal/metrics"
	"phototag/internal/startup"
	"phototag/internal/thumbcache"
)

// Renderer produces thumbnail bytes for a source file.
type Renderer interface {
	Render(path string, maxEdge, quality int) ([]byte, error)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command != "regenerate" && command != "status" {
		// Sanitize command input using allowlist to break taint chain
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	cfg, err := startup.LoadConfig("")
	if err != nil {
		logging.Fatal("Failed to load configuration: %v", err)
	}

	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	lock, err := library.Lock(cfg.LockPath)
	if err != nil {
		logging.Fatal("%v", err)
	}

	store := library.New(cfg.IndexPath)
	if err := store.Load(); err != nil && !errors.Is(err, library.ErrCorruptIndex) {
		_ = lock.Release()
		logging.Fatal("Failed to load library index: %v", err)
	}

	ok := true
	switch command {
	case "regenerate":
		if cfg.VipsEnabled {
			if err := media.InitVips(); err != nil {
				logging.Warn("libvips unavailable: %v", err)
			}
		}
		renderer := media.NewRenderer(media.RendererOptions{UseVips: media.IsVipsAvailable()})
		cache := thumbcache.New(cfg.ThumbnailDir)
		_, failed := regenerate(ctx, os.Stdout, store, cache, renderer, cfg.ThumbnailSize, cfg.ThumbnailQuality)
		ok = failed == 0 && ctx.Err() == nil
	case "status":
		showStatus(os.Stdout, store)
	}

	media.ShutdownVips()
	metrics.Collect(store)
	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logging.Warn("Failed to write metrics textfile: %v", err)
		}
	}
	if err := lock.Release(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if !ok {
		os.Exit(1)
	}
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("phototag thumbnail maintenance")
	fmt.Println("")
	fmt.Println("Usage: thumbgen <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  regenerate - Render thumbnails that are missing")
	fmt.Println("  status     - Report how many photos lack a thumbnail")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Println("  LIBRARY_DIR - Path to the library directory")
}

// missingThumbnail reports whether entry has no usable thumbnail file.
func missingThumbnail(entry library.PhotoEntry) bool {
	if entry.ThumbnailPath == "" {
		return true
	}
	info, err := os.Stat(entry.ThumbnailPath)
	return err != nil || info.Size() == 0
}

// regenerate renders a thumbnail for every entry that lacks one and records
// it in the store. Entries whose source cannot be rendered are counted as
// failed and left unchanged.
func regenerate(ctx context.Context, w io.Writer, store *library.Store, cache *thumbcache.Cache, renderer Renderer, maxEdge, quality int) (regenerated, failed int) {
	for _, entry := range store.All() {
		if ctx.Err() != nil {
			break
		}
		if !missingThumbnail(entry) {
			continue
		}

		data, err := renderer.Render(entry.SourcePath, maxEdge, quality)
		if err != nil {
			fmt.Fprintf(w, "  %s: %v\n", entry.ID, err)
			failed++
			continue
		}
		path, err := cache.Write(entry.ID, data)
		if err != nil {
			fmt.Fprintf(w, "  %s: %v\n", entry.ID, err)
			failed++
			continue
		}
		if err := store.SetThumbnail(entry.ID, path); err != nil {
			fmt.Fprintf(w, "  %s: %v\n", entry.ID, err)
			failed++
			continue
		}
		regenerated++
	}

	fmt.Fprintf(w, "Regenerated %d thumbnails, %d failed\n", regenerated, failed)
	return regenerated, failed
}

func showStatus(w io.Writer, store *library.Store) int {
	missing := 0
	entries := store.All()
	for _, entry := range entries {
		if missingThumbnail(entry) {
			missing++
		}
	}
	if missing == 0 {
		fmt.Fprintf(w, "Status: all %d photos have thumbnails\n", len(entries))
	} else {
		fmt.Fprintf(w, "Status: %d of %d photos have no thumbnail\n", missing, len(entries))
	}
	return missing
}
