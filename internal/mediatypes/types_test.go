package mediatypes

import "testing"

func TestGetFileType(t *testing.T) {
	tests := []struct {
		ext  string
		want FileType
	}{
		{ext: ".jpg", want: FileTypeImage},
		{ext: ".png", want: FileTypeImage},
		{ext: ".heic", want: FileTypeImage},
		{ext: ".mp4", want: FileTypeOther},
		{ext: ".xyz", want: FileTypeOther},
		{ext: "", want: FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetFileType(tt.ext); got != tt.want {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestGetMimeType(t *testing.T) {
	tests := map[string]string{
		".jpg":  "image/jpeg",
		".webp": "image/webp",
		".tif":  "image/tiff",
		".exe":  "application/octet-stream",
	}
	for ext, want := range tests {
		if got := GetMimeType(ext); got != want {
			t.Errorf("GetMimeType(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/photos/IMG_0001.JPG", want: true},
		{path: "holiday.Jpeg", want: true},
		{path: "scan.tiff", want: true},
		{path: "notes.txt", want: false},
		{path: "README", want: false},
		{path: "/photos/.jpg/file", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImage(tt.path); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
