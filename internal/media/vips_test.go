package media

import (
	"bytes"
	"image/jpeg"
	"path/filepath"
	"testing"

	"phototag/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
)

// govips cannot restart after Shutdown, so no test here shuts it down.

func TestVipsVerbosity(t *testing.T) {
	tests := []struct {
		level logging.LogLevel
		want  vips.LogLevel
	}{
		{logging.LevelDebug, vips.LogLevelInfo},
		{logging.LevelInfo, vips.LogLevelWarning},
		{logging.LevelWarn, vips.LogLevelError},
		{logging.LevelError, vips.LogLevelCritical},
	}
	for _, tt := range tests {
		if got := vipsVerbosity(tt.level); got != tt.want {
			t.Errorf("vipsVerbosity(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestInitVipsIdempotency(t *testing.T) {
	if err := InitVips(); err != nil {
		t.Skipf("libvips not available: %v", err)
	}
	if err := InitVips(); err != nil {
		t.Errorf("second InitVips() error = %v", err)
	}
	if !IsVipsAvailable() {
		t.Error("IsVipsAvailable() = false after InitVips")
	}
}

func TestRenderWithVips(t *testing.T) {
	if err := InitVips(); err != nil {
		t.Skipf("libvips not available: %v", err)
	}

	path := filepath.Join(t.TempDir(), "vips.jpg")
	createTestImage(t, path, 1600, 800, "jpeg")

	data, err := NewRenderer(RendererOptions{UseVips: true}).Render(path, 400, 80)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("Render() = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}
