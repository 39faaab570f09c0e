package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"phototag/internal/library"
	"phototag/internal/media"
	"phototag/internal/thumbcache"
)

// TestPrintUsage tests that printUsage doesn't panic
func TestPrintUsage(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printUsage panicked: %v", r)
		}
	}()

	printUsage()
}

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase letters", input: "regenerate", expected: "regenerate"},
		{name: "mixed case", input: "StAtUs", expected: "StAtUs"},
		{name: "allowed punctuation", input: "my_cmd-v2", expected: "my_cmd-v2"},
		{name: "spaces replaced", input: "my command", expected: "my_command"},
		{name: "shell metacharacters", input: "cmd; rm -rf /", expected: "cmd__rm_-rf__"},
		{name: "newline injection", input: "a\nb", expected: "a_b"},
		{name: "unicode", input: "café", expected: "caf_"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeCommand(tt.input); got != tt.expected {
				t.Errorf("sanitizeCommand(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

type testLibrary struct {
	store *library.Store
	cache *thumbcache.Cache
	src   string
}

func setupLibrary(t *testing.T) *testLibrary {
	t.Helper()
	dir := t.TempDir()
	store := library.New(filepath.Join(dir, "library_index.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return &testLibrary{store: store, cache: thumbcache.New(filepath.Join(dir, "ThumbCache")), src: src}
}

func (l *testLibrary) add(t *testing.T, id, source, thumbnail string) {
	t.Helper()
	entry := library.PhotoEntry{
		ID:            id,
		FileName:      filepath.Base(source),
		SourcePath:    source,
		ThumbnailPath: thumbnail,
		ImportDate:    time.Now(),
	}
	if err := l.store.AddImported(entry); err != nil {
		t.Fatalf("AddImported(%s) error = %v", id, err)
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(string, int, int) ([]byte, error) {
	return nil, errors.New("decoder exploded")
}

func TestRegenerateRendersMissingThumbnails(t *testing.T) {
	lib := setupLibrary(t)

	present := filepath.Join(lib.src, "present.jpg")
	writeJPEG(t, present, 40, 40)
	existing, err := lib.cache.Write("present", []byte("thumb"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	lib.add(t, "present", present, existing)

	never := filepath.Join(lib.src, "never.jpg")
	writeJPEG(t, never, 400, 200)
	lib.add(t, "never", never, "")

	deleted := filepath.Join(lib.src, "deleted.jpg")
	writeJPEG(t, deleted, 60, 30)
	lib.add(t, "deleted", deleted, filepath.Join(lib.cache.Root(), "deleted.jpg"))

	var out bytes.Buffer
	regenerated, failed := regenerate(context.Background(), &out, lib.store, lib.cache,
		media.NewRenderer(media.RendererOptions{}), 100, 80)

	if regenerated != 2 || failed != 0 {
		t.Fatalf("regenerate() = %d, %d, want 2, 0\n%s", regenerated, failed, out.String())
	}
	for _, id := range []string{"never", "deleted"} {
		entry, _ := lib.store.Get(id)
		if entry.ThumbnailPath != lib.cache.Path(id) {
			t.Errorf("%s ThumbnailPath = %q, want %q", id, entry.ThumbnailPath, lib.cache.Path(id))
		}
		if missingThumbnail(entry) {
			t.Errorf("%s still missing a thumbnail", id)
		}
	}

	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "thumb" {
		t.Errorf("present thumbnail was rewritten: %q, %v", data, err)
	}

	var status bytes.Buffer
	if missing := showStatus(&status, lib.store); missing != 0 {
		t.Errorf("showStatus() = %d, want 0", missing)
	}
	if !strings.Contains(status.String(), "all 3 photos") {
		t.Errorf("status output = %q", status.String())
	}
}

func TestRegenerateCountsFailures(t *testing.T) {
	lib := setupLibrary(t)
	lib.add(t, "a", filepath.Join(lib.src, "a.jpg"), "")
	lib.add(t, "b", filepath.Join(lib.src, "b.jpg"), "")

	var out bytes.Buffer
	regenerated, failed := regenerate(context.Background(), &out, lib.store, lib.cache, failingRenderer{}, 100, 80)
	if regenerated != 0 || failed != 2 {
		t.Errorf("regenerate() = %d, %d, want 0, 2", regenerated, failed)
	}
	if !strings.Contains(out.String(), "decoder exploded") {
		t.Errorf("output does not name the failure: %q", out.String())
	}

	var status bytes.Buffer
	if missing := showStatus(&status, lib.store); missing != 2 {
		t.Errorf("showStatus() = %d, want 2", missing)
	}
}

func TestRegenerateStopsWhenCancelled(t *testing.T) {
	lib := setupLibrary(t)
	lib.add(t, "a", filepath.Join(lib.src, "a.jpg"), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	regenerated, failed := regenerate(ctx, &out, lib.store, lib.cache, failingRenderer{}, 100, 80)
	if regenerated != 0 || failed != 0 {
		t.Errorf("regenerate() after cancel = %d, %d, want 0, 0", regenerated, failed)
	}
}

func TestMissingThumbnail(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.jpg")
	full := filepath.Join(dir, "full.jpg")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"no path", "", true},
		{"file gone", filepath.Join(dir, "gone.jpg"), true},
		{"empty file", empty, true},
		{"present", full, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := missingThumbnail(library.PhotoEntry{ThumbnailPath: tt.path}); got != tt.want {
				t.Errorf("missingThumbnail(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
