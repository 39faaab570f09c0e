package importer

import (
	"io/fs"
	"path/filepath"
	"strings"

	"phototag/internal/filesystem"
	"phototag/internal/logging"
	"phototag/internal/mediatypes"
)

// ExpandPaths resolves command-line inputs to files. Directories are walked
// recursively for image files, skipping hidden entries. Named files pass
// through whatever their extension. Duplicates are dropped, first occurrence
// wins. Inputs that cannot be read are returned as failures.
func ExpandPaths(inputs []string) ([]string, []Failure) {
	var (
		files    []string
		failures []Failure
	)
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, abs)
	}

	for _, input := range inputs {
		info, err := filesystem.StatWithRetry(input, filesystem.DefaultRetryConfig())
		if err != nil {
			failures = append(failures, Failure{Path: input, Reason: err.Error()})
			continue
		}
		if !info.IsDir() {
			add(input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logging.Warn("Error accessing path %s: %v", path, err)
				return nil
			}
			if path != input && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && mediatypes.IsImage(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			failures = append(failures, Failure{Path: input, Reason: err.Error()})
		}
	}
	return files, failures
}
