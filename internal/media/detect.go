package media

import (
	"bytes"

	"phototag/internal/filesystem"
)

// detectFileType sniffs the leading bytes of a file. Only used to make
// render errors explain what was actually on disk.
func detectFileType(path string) (string, error) {
	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return "unreadable", err
	}
	defer file.Close()

	header := make([]byte, 16)
	n, err := file.Read(header)
	if err != nil {
		return "empty", err
	}
	return sniff(header[:n]), nil
}

func sniff(h []byte) string {
	switch {
	case bytes.HasPrefix(h, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(h, []byte("\x89PNG")):
		return "png"
	case bytes.HasPrefix(h, []byte("GIF8")):
		return "gif"
	case len(h) >= 12 && bytes.HasPrefix(h, []byte("RIFF")) && string(h[8:12]) == "WEBP":
		return "webp"
	case bytes.HasPrefix(h, []byte("BM")):
		return "bmp"
	case bytes.HasPrefix(h, []byte("II*\x00")), bytes.HasPrefix(h, []byte("MM\x00*")):
		return "tiff"
	case len(h) >= 12 && string(h[4:8]) == "ftyp":
		switch string(h[8:12]) {
		case "heic", "heix", "hevc", "hevx", "mif1", "msf1":
			return "heif"
		case "avif", "avis":
			return "avif"
		}
		return "mp4-container"
	}
	return "unknown"
}
