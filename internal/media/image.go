package media

import (
	"fmt"
	"image"

	"phototag/internal/filesystem"
	"phototag/internal/logging"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxImageDimension is the largest width or height decoded at full size.
	// Larger images are downscaled right after decoding.
	MaxImageDimension = 8192

	// MaxImagePixels bounds width*height. A 40MP image uses ~160MB as RGBA.
	MaxImagePixels = 40_000_000
)

// LoadImageConstrained decodes path with EXIF auto-orientation, downscaling
// when the image exceeds maxDimension on either edge or maxPixels in total.
func LoadImageConstrained(path string, maxDimension, maxPixels int) (image.Image, error) {
	dimensions, err := GetImageDimensions(path)
	if err != nil {
		logging.Debug("Could not read dimensions of %s: %v, decoding unconstrained", path, err)
		return openOriented(path)
	}

	width, height := dimensions.Width, dimensions.Height
	pixels := width * height

	if width <= maxDimension && height <= maxDimension && pixels <= maxPixels {
		return openOriented(path)
	}

	targetWidth, targetHeight := width, height
	if width > maxDimension || height > maxDimension {
		if width > height {
			targetWidth = maxDimension
			targetHeight = height * maxDimension / width
		} else {
			targetHeight = maxDimension
			targetWidth = width * maxDimension / height
		}
	}

	if targetPixels := targetWidth * targetHeight; targetPixels > maxPixels {
		scale := float64(maxPixels) / float64(targetPixels)
		targetWidth = int(float64(targetWidth) * scale)
		targetHeight = int(float64(targetHeight) * scale)
	}

	logging.Debug("Constraining large image %s from %dx%d to %dx%d", path, width, height, targetWidth, targetHeight)

	img, err := openOriented(path)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos), nil
}

func openOriented(path string) (image.Image, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ImageDimensions holds image width and height.
type ImageDimensions struct {
	Width  int
	Height int
}

// GetImageDimensions reads the image header without decoding pixels.
func GetImageDimensions(path string) (*ImageDimensions, error) {
	file, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
	}, nil
}
