package utils

import (
	"math"
	"testing"
)

func TestEaseInCubic(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.125},
		{1, 1},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInCubic(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseInCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(255, 0, 0.25); got != 191.25 {
		t.Errorf("Lerp(255, 0, 0.25) = %v, want 191.25", got)
	}
}
