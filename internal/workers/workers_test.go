package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv(OverrideEnv, "")
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		maxExpect  int
	}{
		{name: "CPU-bound", multiplier: 1.0, maxExpect: available},
		{name: "I/O-bound", multiplier: 2.0, maxExpect: available * 2},
		{name: "mixed", multiplier: 1.5, maxExpect: max(1, int(float64(available)*1.5))},
		{name: "limit below calculated", multiplier: 2.0, limit: 2, maxExpect: 2},
		{name: "tiny multiplier", multiplier: 0.01, maxExpect: max(1, int(float64(available)*0.01))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.multiplier, tt.limit)
			if got < 1 {
				t.Errorf("Count(%v, %d) = %d, want >= 1", tt.multiplier, tt.limit, got)
			}
			if got > tt.maxExpect {
				t.Errorf("Count(%v, %d) = %d, want <= %d", tt.multiplier, tt.limit, got, tt.maxExpect)
			}
		})
	}
}

func TestCountWithEnvOverride(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		limit    int
		expected int // 0 means fall back to calculation
	}{
		{name: "valid override", envValue: "8", expected: 8},
		{name: "override capped by limit", envValue: "20", limit: 10, expected: 10},
		{name: "override below limit", envValue: "5", limit: 10, expected: 5},
		{name: "non-numeric", envValue: "many"},
		{name: "zero", envValue: "0"},
		{name: "negative", envValue: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(OverrideEnv, tt.envValue)

			got := Count(1.0, tt.limit)
			if tt.expected == 0 {
				if got < 1 {
					t.Errorf("Count() with invalid override = %d, want >= 1", got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("Count(1.0, %d) with %s=%s = %d, want %d", tt.limit, OverrideEnv, tt.envValue, got, tt.expected)
			}
		})
	}
}

func TestForMixedRespectsLimit(t *testing.T) {
	t.Setenv(OverrideEnv, "")

	if got := ForMixed(1); got != 1 {
		t.Errorf("ForMixed(1) = %d, want 1", got)
	}
	if got := ForMixed(0); got < 1 {
		t.Errorf("ForMixed(0) = %d, want >= 1", got)
	}
}
