package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		expected LogLevel
	}{
		{name: "Debug via LOG_LEVEL", envVar: "LOG_LEVEL", envValue: "debug", expected: LevelDebug},
		{name: "Info via LOG_LEVEL", envVar: "LOG_LEVEL", envValue: "info", expected: LevelInfo},
		{name: "Warn via LOG_LEVEL", envVar: "LOG_LEVEL", envValue: "warn", expected: LevelWarn},
		{name: "Error via LOG_LEVEL", envVar: "LOG_LEVEL", envValue: "error", expected: LevelError},
		{name: "Case insensitive", envVar: "LOG_LEVEL", envValue: "DEBUG", expected: LevelDebug},
		{name: "Warning alias", envVar: "LOG_LEVEL", envValue: "warning", expected: LevelWarn},
		{name: "Unknown defaults to info", envVar: "LOG_LEVEL", envValue: "chatty", expected: LevelInfo},
		{name: "DEBUG flag", envVar: "DEBUG", envValue: "true", expected: LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv(tt.envVar, tt.envValue)
			ResetLevel()
			defer ResetLevel()

			if got := GetLevel(); got != tt.expected {
				t.Errorf("GetLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSetLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetLevel(LevelWarn)
	defer ResetLevel()

	Debug("hidden debug")
	Info("hidden info")
	Warn("shown %s", "warning")
	Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warning") {
		t.Errorf("output missing warning: %q", out)
	}
	if !strings.Contains(out, "[ERROR] shown error") {
		t.Errorf("output missing error: %q", out)
	}
}

func TestLogLevelString(t *testing.T) {
	tests := map[LogLevel]string{
		LevelDebug:   "debug",
		LevelInfo:    "info",
		LevelWarn:    "warn",
		LevelError:   "error",
		LogLevel(42): "unknown(42)",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if _, ok := ParseLevel("nope"); ok {
		t.Error("ParseLevel(nope) reported ok")
	}
	if level, ok := ParseLevel(" Error "); !ok || level != LevelError {
		t.Errorf("ParseLevel(Error) = %v, %v", level, ok)
	}
}
