// Package media renders JPEG thumbnails from image files.
//
// Renderer.Render decodes with EXIF auto-orientation, flattens transparency
// onto white, fits the result inside a square bound without enlarging and
// encodes JPEG. When libvips has been started with InitVips the whole
// pipeline runs in vips first and falls back to the pure Go path
// (disintegration/imaging plus golang.org/x/image decoders) on any error.
//
// Very large sources are downscaled right after decoding to bound memory; see
// LoadImageConstrained.
package media
