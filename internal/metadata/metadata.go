package metadata

import (
	"fmt"
	"strings"
	"time"

	"phototag/internal/library"
)

// timestampLayout is the EXIF date format, always local time.
const timestampLayout = "2006:01:02 15:04:05"

// Rational is an EXIF numerator/denominator pair.
type Rational struct {
	Num int64
	Den int64
}

// Float converts r. A zero denominator yields false.
func (r Rational) Float() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Facts holds raw capture facts as read from the file. Numeric fields keep
// their rational form until converted by EXIF.
type Facts struct {
	CameraModel  string
	LensModel    string
	FocalLength  *Rational
	FNumber      *Rational
	ExposureTime *Rational
	ISO          *int
}

// EXIF converts f into the persisted form. Rationals with a zero denominator
// are dropped. Returns nil when nothing usable remains.
func (f *Facts) EXIF() *library.EXIF {
	if f == nil {
		return nil
	}
	e := &library.EXIF{
		CameraModel:  strings.TrimSpace(f.CameraModel),
		LensModel:    strings.TrimSpace(f.LensModel),
		FocalLength:  ratToFloat(f.FocalLength),
		FNumber:      ratToFloat(f.FNumber),
		ExposureTime: ratToFloat(f.ExposureTime),
	}
	if f.ISO != nil {
		iso := *f.ISO
		e.ISO = &iso
	}
	if e.IsEmpty() {
		return nil
	}
	return e
}

func ratToFloat(r *Rational) *float64 {
	if r == nil {
		return nil
	}
	v, ok := r.Float()
	if !ok {
		return nil
	}
	return &v
}

// Metadata is the result of extraction. Either field may be nil.
type Metadata struct {
	CaptureDate *time.Time
	Facts       *Facts
}

// ParseTimestamp parses an EXIF "YYYY:MM:DD HH:MM:SS" value in local time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimRight(strings.TrimSpace(s), "\x00")
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(timestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
