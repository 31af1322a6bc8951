package utils

import (
	"math"
	"testing"
)

func TestMeanAndStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		stddev float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3}, 3, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.mean {
				t.Errorf("Mean = %f, want %f", got, tt.mean)
			}
			if got := StdDev(tt.values); math.Abs(got-tt.stddev) > 1e-12 {
				t.Errorf("StdDev = %f, want %f", got, tt.stddev)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.123456, 4); got != 0.1235 {
		t.Fatalf("Round = %f, want 0.1235", got)
	}
}

func TestPiMultiple(t *testing.T) {
	if got := PiMultiple(math.Pi / 4); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("PiMultiple(pi/4) = %f, want 0.25", got)
	}
}
