package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if NearlyEqual(math.NaN(), math.NaN(), 1) {
		t.Fatal("NaN must not compare nearly equal")
	}
}

func TestFirstNonIncreasing(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{name: "empty", in: nil, want: -1},
		{name: "single", in: []float64{3}, want: -1},
		{name: "increasing", in: []float64{0, 1, 2.5}, want: -1},
		{name: "flat", in: []float64{0, 1, 1}, want: 2},
		{name: "decreasing", in: []float64{0, -1}, want: 1},
		{name: "nan", in: []float64{0, math.NaN(), 2}, want: 1},
		{name: "single nan", in: []float64{math.NaN()}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstNonIncreasing(tt.in); got != tt.want {
				t.Fatalf("FirstNonIncreasing(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstNonFinite(t *testing.T) {
	if got := FirstNonFinite([]float64{1, 2, 3}); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
	if got := FirstNonFinite([]float64{1, math.Inf(1), math.NaN()}); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestFirstNegative(t *testing.T) {
	if got := FirstNegative([]float64{0, 1, -0.5}); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := FirstNegative([]float64{0, 1}); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestEqual(t *testing.T) {
	if !Equal([]float64{1, 2}, []float64{1, 2}) {
		t.Fatal("expected equal slices")
	}
	if Equal([]float64{1, 2}, []float64{1, 2.0000001}) {
		t.Fatal("expected different slices")
	}
	if Equal([]float64{1}, []float64{1, 2}) {
		t.Fatal("expected length mismatch to differ")
	}
}

func TestKahanSum(t *testing.T) {
	x := make([]float64, 0, 10001)
	x = append(x, 1e8)
	for i := 0; i < 10000; i++ {
		x = append(x, 1e-8)
	}
	got := KahanSum(x)
	if math.Abs(got-(1e8+1e-4)) > 1e-9 {
		t.Fatalf("KahanSum = %.12f, want %.12f", got, 1e8+1e-4)
	}
}
