// Package display formats photo entries for people to read.
package display

import (
	"fmt"
	"math"
	"strconv"
	"path/filepath"
	"strings"

	"phototag/internal/library"
	"phototag/internal/mediatypes"
	"phototag/internal/settings"
)

// DateLayout is used for capture and import timestamps.
const DateLayout = "2006-01-02 15:04"

// TrimNumber formats x with two decimals, then drops a trailing ".00" or a
// single trailing zero: 2.50 -> "2.5", 4.00 -> "4", 1.25 -> "1.25".
func TrimNumber(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	if strings.HasSuffix(s, ".00") {
		return s[:len(s)-3]
	}
	return strings.TrimSuffix(s, "0")
}

// ShutterText renders an exposure time: whole seconds as "2 s", fractions as
// "1/250 s". Non-positive values render as "".
func ShutterText(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	if seconds >= 1 {
		return TrimNumber(seconds) + " s"
	}
	denom := math.Max(1, math.Round(1/seconds))
	return fmt.Sprintf("1/%d s", int64(denom))
}

// FNumberText renders an aperture as "f/1.8".
func FNumberText(f float64) string {
	return "f/" + TrimNumber(f)
}

// FocalText renders a focal length scaled by multiplier, marking crop-factor
// equivalents.
func FocalText(mm, multiplier float64) string {
	text := TrimNumber(mm*multiplier) + " mm"
	if multiplier == settings.CropFactor {
		text += " (equiv.)"
	}
	return text
}

// Row is one labelled line of photo details.
type Row struct {
	Label string
	Value string
}

// Details lists what is known about entry. Optional facts are omitted when
// absent. mode decides how the focal length is shown.
func Details(entry library.PhotoEntry, mode settings.FocalMode) []Row {
	rows := []Row{
		{Label: "ID", Value: entry.ID},
		{Label: "File", Value: entry.FileName},
		{Label: "Type", Value: mediatypes.GetMimeType(strings.ToLower(filepath.Ext(entry.FileName)))},
	}
	if entry.CaptureDate != nil {
		rows = append(rows, Row{Label: "Captured", Value: entry.CaptureDate.Local().Format(DateLayout)})
	}
	rows = append(rows,
		Row{Label: "Source", Value: entry.SourcePath},
		Row{Label: "Imported", Value: entry.ImportDate.Local().Format(DateLayout)},
	)

	thumb := entry.ThumbnailPath
	if thumb == "" {
		thumb = "(none)"
	}
	rows = append(rows, Row{Label: "Thumbnail", Value: thumb})

	tagText := "(untagged)"
	if len(entry.Tags) > 0 {
		tagText = strings.Join(entry.Tags, ", ")
	}
	rows = append(rows, Row{Label: "Tags", Value: tagText})

	e := entry.EXIF
	if e == nil {
		return rows
	}
	if e.CameraModel != "" {
		rows = append(rows, Row{Label: "Camera", Value: e.CameraModel})
	}
	if e.LensModel != "" {
		rows = append(rows, Row{Label: "Lens", Value: e.LensModel})
	}
	if e.FNumber != nil {
		rows = append(rows, Row{Label: "Aperture", Value: FNumberText(*e.FNumber)})
	}
	if e.ExposureTime != nil {
		if text := ShutterText(*e.ExposureTime); text != "" {
			rows = append(rows, Row{Label: "Shutter", Value: text})
		}
	}
	if e.ISO != nil {
		rows = append(rows, Row{Label: "ISO", Value: strconv.Itoa(*e.ISO)})
	}
	if e.FocalLength != nil {
		mul := settings.Multiplier(mode, e.CameraModel)
		rows = append(rows, Row{Label: "Focal length", Value: FocalText(*e.FocalLength, mul)})
	}
	return rows
}
