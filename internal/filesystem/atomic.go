package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"phototag/internal/logging"
)

// WriteFileAtomic writes data to a temporary file in the destination
// directory, syncs it, and renames it over path before syncing the directory.
// Readers observe either the old contents or the new contents, never a
// partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logging.Debug("failed to remove temp file %s: %v", tmpPath, err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true

	if err := syncDir(dir); err != nil {
		logging.Debug("failed to sync directory %s: %v", dir, err)
	}
	return nil
}

// syncDir flushes the directory entry so the rename survives a crash. Some
// platforms cannot fsync a directory, so callers treat failure as advisory.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
