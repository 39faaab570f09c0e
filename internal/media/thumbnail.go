package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"time"

	"phototag/internal/logging"
	"phototag/internal/metrics"

	"github.com/disintegration/imaging"
)

// ErrRenderFailed is wrapped by every Render error: the source could not be
// decoded or the thumbnail could not be encoded.
var ErrRenderFailed = errors.New("thumbnail render failed")

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// UseVips tries libvips first when it has been initialized.
	UseVips bool
	// MaxDimension and MaxPixels bound full-size decodes on the imaging path.
	MaxDimension int
	MaxPixels    int
}

// Renderer turns image files into JPEG thumbnails. Safe for concurrent use.
type Renderer struct {
	opts RendererOptions
}

// NewRenderer creates a renderer. Zero limits take the package defaults.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = MaxImageDimension
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = MaxImagePixels
	}
	return &Renderer{opts: opts}
}

// Render decodes path and returns JPEG bytes whose longer edge is at most
// maxEdge. Smaller images keep their size. Transparent areas become white.
// Decoder panics are recovered and reported as ErrRenderFailed.
func (r *Renderer) Render(path string, maxEdge, quality int) (data []byte, err error) {
	if maxEdge <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrRenderFailed, maxEdge)
	}
	quality = clampQuality(quality)

	if r.opts.UseVips && IsVipsAvailable() {
		data, err := r.timed("vips", func() ([]byte, error) {
			return renderWithVips(path, maxEdge, quality)
		})
		if err == nil {
			return data, nil
		}
		logging.Debug("vips render failed for %s, falling back to imaging: %v", filepath.Base(path), err)
	}

	data, err = r.timed("imaging", func() ([]byte, error) {
		return r.renderWithImaging(path, maxEdge, quality)
	})
	if err != nil {
		format, _ := detectFileType(path)
		return nil, fmt.Errorf("%w: %s (detected %s): %v", ErrRenderFailed, filepath.Base(path), format, err)
	}
	return data, nil
}

// timed runs one backend with panic recovery and records its metrics.
func (r *Renderer) timed(backend string, fn func() ([]byte, error)) (data []byte, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			data, err = nil, fmt.Errorf("decoder panic: %v", rec)
		}
		metrics.ThumbnailRenderDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ThumbnailRendersTotal.WithLabelValues(backend, status).Inc()
	}()
	return fn()
}

func (r *Renderer) renderWithImaging(path string, maxEdge, quality int) ([]byte, error) {
	img, err := LoadImageConstrained(path, r.opts.MaxDimension, r.opts.MaxPixels)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(flattenOnWhite(img), maxEdge, maxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	logging.Debug("imaging rendered %s: %dx%d, %d bytes", filepath.Base(path), thumb.Bounds().Dx(), thumb.Bounds().Dy(), buf.Len())
	return buf.Bytes(), nil
}

// flattenOnWhite composites img over an opaque white RGB canvas, which also
// normalises palette, grayscale and CMYK inputs.
func flattenOnWhite(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)
	return canvas
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}
