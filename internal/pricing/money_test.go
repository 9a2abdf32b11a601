package pricing

import (
	"math"
	"testing"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{99.995, 100.00},
		{1.005, 1.01},
		{2.675, 2.68},
		{10.004, 10.00},
		{-1.005, -1.01},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		if got := RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatAUD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{49, "$49.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{math.NaN(), "$0.00"},
	}

	for _, tt := range tests {
		if got := FormatAUD(tt.in); got != tt.want {
			t.Errorf("FormatAUD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
