package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(42, 0, 10))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
	assert.Equal(t, -1.3, RoundTo(-1.25, 1))
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{"bottom of range", 10, 10, 30, 0},
		{"middle of range", 20, 10, 30, 0.5},
		{"top of range", 30, 10, 30, 1},
		{"below range clamps", 0, 10, 30, 0},
		{"above range clamps", 99, 10, 30, 1},
		{"degenerate range", 10, 10, 10, 0},
		{"inverted range treated as degenerate", 5, 10, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Rescale(tc.value, tc.lo, tc.hi), 1e-9)
		})
	}
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.5, SafeDiv(5, 2))
	assert.Equal(t, 0.0, SafeDiv(5, 0))
	assert.Equal(t, 0.0, SafeDiv(0, 0))
}
