package library

import (
	"encoding/json"
	"time"
)

// EXIF holds the capture facts recorded for a photo. Every field is
// independently optional; partial metadata is normal.
type EXIF struct {
	CameraModel  string   `json:"camera_model,omitempty"`
	LensModel    string   `json:"lens_model,omitempty"`
	FocalLength  *float64 `json:"focal_length"`  // mm
	FNumber      *float64 `json:"f_number"`      // f/1.8 -> 1.8
	ExposureTime *float64 `json:"exposure_time"` // seconds
	ISO          *int     `json:"iso"`
}

// IsEmpty reports whether no fact is set.
func (e *EXIF) IsEmpty() bool {
	return e == nil || (e.CameraModel == "" && e.LensModel == "" &&
		e.FocalLength == nil && e.FNumber == nil && e.ExposureTime == nil && e.ISO == nil)
}

// Clone returns a deep copy.
func (e *EXIF) Clone() *EXIF {
	if e == nil {
		return nil
	}
	c := &EXIF{CameraModel: e.CameraModel, LensModel: e.LensModel}
	c.FocalLength = clonePtr(e.FocalLength)
	c.FNumber = clonePtr(e.FNumber)
	c.ExposureTime = clonePtr(e.ExposureTime)
	c.ISO = clonePtr(e.ISO)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// PhotoEntry is one imported photo in the library index.
type PhotoEntry struct {
	ID            string     `json:"id"`
	FileName      string     `json:"file_name"`
	SourcePath    string     `json:"source_path"`
	ThumbnailPath string     `json:"thumbnail_path,omitempty"` // empty when rendering failed
	CaptureDate   *time.Time `json:"capture_date"`
	ImportDate    time.Time  `json:"import_date"`
	EXIF          *EXIF      `json:"exif"`
	Tags          []string   `json:"tags"`
}

// SortDate is the capture date when known, otherwise the import date.
func (p *PhotoEntry) SortDate() time.Time {
	if p.CaptureDate != nil {
		return *p.CaptureDate
	}
	return p.ImportDate
}

// HasTag reports whether the entry carries tag (exact match).
func (p *PhotoEntry) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no memory with p.
func (p PhotoEntry) Clone() PhotoEntry {
	c := p
	c.CaptureDate = clonePtr(p.CaptureDate)
	c.EXIF = p.EXIF.Clone()
	c.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	return c
}

// UnmarshalJSON decodes an entry and guarantees a non-nil tag slice.
func (p *PhotoEntry) UnmarshalJSON(data []byte) error {
	type rawEntry PhotoEntry
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PhotoEntry(raw)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

// MarshalJSON encodes an entry, writing an empty tag list as [] rather than null.
func (p PhotoEntry) MarshalJSON() ([]byte, error) {
	type rawEntry PhotoEntry
	raw := rawEntry(p)
	if raw.Tags == nil {
		raw.Tags = []string{}
	}
	return json.Marshal(raw)
}

// TagSummary pairs a tag with the number of entries carrying it.
type TagSummary struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
