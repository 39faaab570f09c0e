// Package settings holds user preferences that change how photos are
// presented, currently the focal length display mode.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"phototag/internal/database"
	"phototag/internal/logging"
)

// FocalMode controls whether focal lengths are shown as 35mm equivalents.
type FocalMode string

const (
	// FocalOff shows the recorded focal length.
	FocalOff FocalMode = "off"
	// FocalAlways15 applies a 1.5x crop factor to every photo.
	FocalAlways15 FocalMode = "always15"
	// FocalAutoByCamera applies 1.5x when the camera model looks like an
	// APS-C body.
	FocalAutoByCamera FocalMode = "autoByCamera"

	// DefaultFocalMode is used when nothing valid is stored.
	DefaultFocalMode = FocalAutoByCamera

	// CropFactor is the APS-C multiplier.
	CropFactor = 1.5

	focalModeKey = "focal_mode"
)

// FocalModes lists every mode in display order.
var FocalModes = []FocalMode{FocalOff, FocalAlways15, FocalAutoByCamera}

// cropSensorHints are lower-case fragments of APS-C camera model names.
var cropSensorHints = []string{
	"zv-e10", "a6000", "a6100", "a6300", "a6400", "a6500", "a6600",
	"x-t", "xpro", "x-pro", "x100",
	"eos m", "eos-m", "m50", "m6",
	"d3", "d5", "d7",
}

// ParseFocalMode returns the mode named by s, or DefaultFocalMode and false
// when s is not a known mode.
func ParseFocalMode(s string) (FocalMode, bool) {
	for _, m := range FocalModes {
		if string(m) == s {
			return m, true
		}
	}
	return DefaultFocalMode, false
}

// Title is the human-readable name of the mode.
func (m FocalMode) Title() string {
	switch m {
	case FocalOff:
		return "Off (actual focal length)"
	case FocalAlways15:
		return "Always 1.5x"
	case FocalAutoByCamera:
		return "Auto by camera model"
	}
	return string(m)
}

// Multiplier returns the factor applied to a focal length taken with
// cameraModel under mode.
func Multiplier(mode FocalMode, cameraModel string) float64 {
	switch mode {
	case FocalOff:
		return 1.0
	case FocalAlways15:
		return CropFactor
	case FocalAutoByCamera:
		if IsCropSensor(cameraModel) {
			return CropFactor
		}
	}
	return 1.0
}

// IsCropSensor reports whether the model name matches a known APS-C body.
func IsCropSensor(cameraModel string) bool {
	model := strings.ToLower(strings.TrimSpace(cameraModel))
	if model == "" {
		return false
	}
	for _, hint := range cropSensorHints {
		if strings.Contains(model, hint) {
			return true
		}
	}
	return false
}

// Settings is the persisted preference document.
type Settings struct {
	FocalMode FocalMode
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{FocalMode: DefaultFocalMode}
}

// Backend is the key/value store behind Settings. GetSetting reports absent
// keys with database.ErrNotFound.
type Backend interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Load reads settings from b. Absent or unrecognised values fall back to the
// defaults; only backend failures are returned.
func Load(ctx context.Context, b Backend) (Settings, error) {
	s := Defaults()

	value, err := b.GetSetting(ctx, focalModeKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("load settings: %w", err)
	}

	mode, ok := ParseFocalMode(value)
	if !ok {
		logging.Warn("Ignoring unknown focal mode %q, using %s", value, DefaultFocalMode)
	}
	s.FocalMode = mode
	return s, nil
}

// Save writes s to b.
func Save(ctx context.Context, b Backend, s Settings) error {
	if _, ok := ParseFocalMode(string(s.FocalMode)); !ok {
		return fmt.Errorf("save settings: unknown focal mode %q", s.FocalMode)
	}
	if err := b.SetSetting(ctx, focalModeKey, string(s.FocalMode)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
