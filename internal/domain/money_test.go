package domain

import "testing"

func TestCentsToDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  float64
	}{
		{0, 0},
		{1, 0.01},
		{150, 1.5},
		{15100, 151.00},
		{12345678, 123456.78},
		{-350, -3.50},
	}
	for _, tt := range tests {
		if got := CentsToDollars(tt.cents); got != tt.want {
			t.Errorf("CentsToDollars(%d) = %v, want %v", tt.cents, got, tt.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{75000, "$750.00"},
		{15100, "$151.00"},
		{1, "$0.01"},
		{0, "$0.00"},
		{-350, "-$3.50"},
	}
	for _, tt := range tests {
		if got := FormatDollars(tt.cents); got != tt.want {
			t.Errorf("FormatDollars(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
