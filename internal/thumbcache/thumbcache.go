// Package thumbcache allocates photo identifiers and maps them to thumbnail
// files under a cache root. The mapping is derived from the identifier alone;
// there is no index file.
package thumbcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"phototag/internal/filesystem"
	"phototag/internal/logging"
	"phototag/internal/metrics"

	"github.com/google/uuid"
)

// DefaultExt is the extension of generated thumbnails.
const DefaultExt = ".jpg"

// ErrInvalidID is returned for identifiers that cannot be used as file names.
var ErrInvalidID = errors.New("invalid photo id")

// NewID returns a new random 128-bit identifier (UUID v4).
func NewID() string {
	return uuid.NewString()
}

// Cache maps photo identifiers to thumbnail paths under root.
type Cache struct {
	root string
	ext  string

	once    sync.Once
	rootErr error
}

// New creates a Cache rooted at root. The directory is created on first use.
func New(root string) *Cache {
	return &Cache{root: root, ext: DefaultExt}
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// Path returns the thumbnail path for id: <root>/<id>.jpg.
func (c *Cache) Path(id string) string {
	return filepath.Join(c.root, id+c.ext)
}

// EnsureRoot creates the cache directory if it does not exist.
func (c *Cache) EnsureRoot() error {
	c.once.Do(func() {
		if err := os.MkdirAll(c.root, 0o755); err != nil {
			c.rootErr = fmt.Errorf("create thumbnail cache %s: %w", c.root, err)
			return
		}
		logging.Debug("Thumbnail cache ready: %s", c.root)
	})
	return c.rootErr
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// Write stores thumbnail bytes for id and returns the file path.
func (c *Cache) Write(id string, data []byte) (string, error) {
	if !validID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if err := c.EnsureRoot(); err != nil {
		return "", err
	}

	path := c.Path(id)
	if err := filesystem.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail %s: %w", path, err)
	}
	metrics.ThumbnailBytesWritten.Add(float64(len(data)))

	logging.Debug("Thumbnail cached: %s (%d bytes)", path, len(data))
	return path, nil
}

// Remove deletes a thumbnail file. A missing file is not an error.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Prune deletes thumbnails whose identifier is not in known and returns how
// many were removed. Files without the cache extension are left alone.
func (c *Cache) Prune(known map[string]bool) (int, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read thumbnail cache: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, c.ext) {
			continue
		}
		id := strings.TrimSuffix(name, c.ext)
		if known[id] {
			continue
		}
		if err := Remove(filepath.Join(c.root, name)); err != nil {
			logging.Warn("Failed to prune thumbnail %s: %v", name, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logging.Info("Pruned %d orphaned thumbnails from %s", removed, c.root)
	}
	return removed, nil
}
