package metadata

import (
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"phototag/internal/filesystem"
	"phototag/internal/logging"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// captureDateFields are consulted in order; the first that parses wins.
var captureDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// Extractor reads capture metadata from image files.
type Extractor struct {
	retry filesystem.RetryConfig
}

// NewExtractor returns an Extractor that opens files with the default retry policy.
func NewExtractor() *Extractor {
	return &Extractor{retry: filesystem.DefaultRetryConfig()}
}

// Extract reads capture date and camera facts from path. It does not fail:
// unreadable files, non-images and files without metadata all produce an
// empty Metadata. The error result exists to satisfy callers that treat
// extraction as fallible.
func (e *Extractor) Extract(path string) (Metadata, error) {
	f, err := filesystem.OpenWithRetry(path, e.retry)
	if err != nil {
		logging.Debug("metadata: cannot open %s: %v", path, err)
		return Metadata{}, nil
	}
	defer f.Close()

	return Decode(f, path), nil
}

// Decode extracts metadata from r. name is used for logging only.
func Decode(r io.Reader, name string) (md Metadata) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn("metadata: decoder panicked on %s: %v", name, rec)
			md = Metadata{}
		}
	}()

	x, err := exif.Decode(r)
	if err != nil {
		if exif.IsCriticalError(err) || x == nil {
			if !errors.Is(err, io.EOF) {
				logging.Debug("metadata: no exif in %s: %v", name, err)
			}
			return Metadata{}
		}
		logging.Debug("metadata: partial exif in %s: %v", name, err)
	}

	md.CaptureDate = captureDate(x)

	facts := &Facts{
		CameraModel:  stringField(x, exif.Model),
		LensModel:    stringField(x, exif.LensModel),
		FocalLength:  rationalField(x, exif.FocalLength),
		FNumber:      rationalField(x, exif.FNumber),
		ExposureTime: rationalField(x, exif.ExposureTime),
		ISO:          intField(x, exif.ISOSpeedRatings),
	}
	if facts.CameraModel != "" || facts.LensModel != "" || facts.FocalLength != nil ||
		facts.FNumber != nil || facts.ExposureTime != nil || facts.ISO != nil {
		md.Facts = facts
	}
	return md
}

func captureDate(x *exif.Exif) *time.Time {
	for _, field := range captureDateFields {
		s := stringField(x, field)
		if s == "" {
			continue
		}
		if t, ok := ParseTimestamp(s); ok {
			return &t
		}
	}
	return nil
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	if tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// rationalField reads the first value of a numeric tag. Integer and float
// encodings are lifted to rationals.
func rationalField(x *exif.Exif, name exif.FieldName) *Rational {
	tag, err := x.Get(name)
	if err != nil || tag.Count == 0 {
		return nil
	}

	switch tag.Format() {
	case tiff.RatVal:
		num, den, err := tag.Rat2(0)
		if err != nil {
			return nil
		}
		return &Rational{Num: num, Den: den}
	case tiff.IntVal:
		v, err := tag.Int64(0)
		if err != nil {
			return nil
		}
		return &Rational{Num: v, Den: 1}
	case tiff.FloatVal:
		v, err := tag.Float(0)
		if err != nil {
			return nil
		}
		return floatToRational(v)
	}
	return nil
}

// floatToRational approximates v with a fixed denominator.
func floatToRational(v float64) *Rational {
	const den = 1_000_000
	return &Rational{Num: int64(math.Round(v * den)), Den: den}
}

func intField(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil || tag.Count == 0 {
		return nil
	}

	switch tag.Format() {
	case tiff.IntVal:
		v, err := tag.Int(0)
		if err != nil {
			return nil
		}
		return &v
	case tiff.RatVal, tiff.FloatVal:
		r := rationalField(x, name)
		if r == nil {
			return nil
		}
		if f, ok := r.Float(); ok {
			v := int(math.Round(f))
			return &v
		}
	}
	return nil
}
