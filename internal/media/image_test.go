package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage writes a gradient image so resizing is observable.
func createTestImage(t *testing.T, path string, width, height int, format string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: 128,
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image file: %v", err)
	}
	defer f.Close()

	switch format {
	case "jpeg", "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(f, img)
	default:
		t.Fatalf("Unsupported test image format: %s", format)
	}
	if err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func TestGetImageDimensions(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name   string
		width  int
		height int
		format string
	}{
		{name: "Small JPEG", width: 100, height: 100, format: "jpeg"},
		{name: "Wide JPEG", width: 1200, height: 300, format: "jpeg"},
		{name: "Tall PNG", width: 200, height: 700, format: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+"."+tt.format)
			createTestImage(t, path, tt.width, tt.height, tt.format)

			dims, err := GetImageDimensions(path)
			if err != nil {
				t.Fatalf("GetImageDimensions() error = %v", err)
			}
			if dims.Width != tt.width || dims.Height != tt.height {
				t.Errorf("GetImageDimensions() = %dx%d, want %dx%d", dims.Width, dims.Height, tt.width, tt.height)
			}
		})
	}
}

func TestGetImageDimensionsErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := GetImageDimensions(filepath.Join(tmpDir, "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}

	text := filepath.Join(tmpDir, "notes.jpg")
	if err := os.WriteFile(text, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := GetImageDimensions(text); err == nil {
		t.Error("expected error for non-image content")
	}
}

func TestLoadImageConstrained(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name         string
		width        int
		height       int
		maxDimension int
		maxPixels    int
		wantWidth    int
		wantHeight   int
	}{
		{name: "within limits", width: 300, height: 200, maxDimension: 1000, maxPixels: 1_000_000, wantWidth: 300, wantHeight: 200},
		{name: "wide over dimension", width: 800, height: 400, maxDimension: 400, maxPixels: 1_000_000, wantWidth: 400, wantHeight: 200},
		{name: "tall over dimension", width: 300, height: 600, maxDimension: 300, maxPixels: 1_000_000, wantWidth: 150, wantHeight: 300},
		{name: "over pixel budget", width: 400, height: 400, maxDimension: 1000, maxPixels: 40_000, wantWidth: 100, wantHeight: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".png")
			createTestImage(t, path, tt.width, tt.height, "png")

			img, err := LoadImageConstrained(path, tt.maxDimension, tt.maxPixels)
			if err != nil {
				t.Fatalf("LoadImageConstrained() error = %v", err)
			}

			b := img.Bounds()
			if b.Dx() != tt.wantWidth || b.Dy() != tt.wantHeight {
				t.Errorf("LoadImageConstrained() = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{name: "jpeg", header: []byte{0xFF, 0xD8, 0xFF, 0xE0}, want: "jpeg"},
		{name: "png", header: []byte("\x89PNG\r\n\x1a\n"), want: "png"},
		{name: "webp", header: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: "webp"},
		{name: "tiff little endian", header: []byte("II*\x00"), want: "tiff"},
		{name: "heic", header: []byte("\x00\x00\x00\x18ftypheic"), want: "heif"},
		{name: "text", header: []byte("hello world"), want: "unknown"},
		{name: "empty", header: nil, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniff(tt.header); got != tt.want {
				t.Errorf("sniff() = %q, want %q", got, tt.want)
			}
		})
	}
}
