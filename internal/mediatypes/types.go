package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the kind of a file found during import.
type FileType string

const (
	// FileTypeFolder represents a directory.
	FileTypeFolder FileType = "folder"
	// FileTypeImage represents a still image the renderer can attempt.
	FileTypeImage FileType = "image"
	// FileTypeOther represents anything else.
	FileTypeOther FileType = "other"
)

// ImageExtensions maps lowercase extensions to whether they are picked up
// when a directory is imported.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
	".heic": true,
	".heif": true,
}

// MimeTypes maps image extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
}

// GetFileType returns the FileType for a lowercase extension with its
// leading dot (".jpg").
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	return FileTypeOther
}

// GetMimeType returns the MIME type for a lowercase extension, or
// "application/octet-stream" when unknown.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsImage reports whether path has an image extension, ignoring case.
func IsImage(path string) bool {
	return GetFileType(strings.ToLower(filepath.Ext(path))) == FileTypeImage
}
