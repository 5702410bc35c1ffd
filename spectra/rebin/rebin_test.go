package rebin

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestRebinMergeAndSplit(t *testing.T) {
	tests := []struct {
		name     string
		counts   []float64
		inEdges  []float64
		outEdges []float64
		slopes   []float64
		want     []float64
	}{
		{
			name:     "merge",
			counts:   []float64{10, 10},
			inEdges:  []float64{0, 1, 2},
			outEdges: []float64{0, 2},
			slopes:   []float64{0, 0},
			want:     []float64{20},
		},
		{
			name:     "even split",
			counts:   []float64{10},
			inEdges:  []float64{0, 2},
			outEdges: []float64{0, 1, 2},
			slopes:   []float64{0},
			want:     []float64{5, 5},
		},
		{
			name:     "nil slopes",
			counts:   []float64{10},
			inEdges:  []float64{0, 2},
			outEdges: []float64{0, 1, 2},
			want:     []float64{5, 5},
		},
		{
			name:     "linear trend",
			counts:   []float64{10},
			inEdges:  []float64{0, 2},
			outEdges: []float64{0, 1, 2},
			slopes:   []float64{1},
			want:     []float64{4.5, 5.5},
		},
		{
			name:     "tiny slope is flat",
			counts:   []float64{10},
			inEdges:  []float64{0, 2},
			outEdges: []float64{0, 1, 2},
			slopes:   []float64{1e-7},
			want:     []float64{5, 5},
		},
		{
			name:     "straddling output bins",
			counts:   []float64{4, 8, 12},
			inEdges:  []float64{0, 1, 2, 3},
			outEdges: []float64{0, 1.5, 3},
			want:     []float64{8, 16},
		},
		{
			name:     "output beyond input range",
			counts:   []float64{4, 4},
			inEdges:  []float64{0, 1, 2},
			outEdges: []float64{1, 2, 3, 4},
			want:     []float64{4, 0, 0},
		},
		{
			name:     "output left of input range",
			counts:   []float64{4, 4},
			inEdges:  []float64{10, 11, 12},
			outEdges: []float64{0, 5, 10.5, 12},
			want:     []float64{0, 2, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rebin(tt.counts, tt.inEdges, tt.outEdges, tt.slopes)
			if err != nil {
				t.Fatalf("Rebin: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestRebinIdentity(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		counts := testutil.DeterministicCounts(seed, 257, 1000)
		edges := testutil.JitteredEdges(seed, 257, 3, 0.25)

		got, err := Rebin(counts, edges, edges, make([]float64, len(counts)))
		if err != nil {
			t.Fatalf("seed %d: Rebin: %v", seed, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, counts, 1e-9)
	}
}

func TestRebinConservation(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		counts := testutil.DeterministicCounts(seed, 300, 500)
		inEdges := testutil.JitteredEdges(seed, 300, 0, 1)
		lo, hi := inEdges[0], inEdges[len(inEdges)-1]
		outEdges := testutil.LinearEdges(97, lo, hi)

		got, err := Rebin(counts, inEdges, outEdges, nil)
		if err != nil {
			t.Fatalf("seed %d: Rebin: %v", seed, err)
		}
		rep := Report(counts, got)
		if !rep.Lossless(1e-12) {
			t.Fatalf("seed %d: not conserved: %v", seed, rep)
		}
	}
}

func TestRebinConservationWithSlopes(t *testing.T) {
	counts := testutil.PeakCounts(128, 10, 500, 64, 5)
	inEdges := testutil.LinearEdges(128, 0, 128)
	slopes := make([]float64, len(counts))
	for i := 1; i < len(counts)-1; i++ {
		slopes[i] = (counts[i+1] - counts[i-1]) / 4
	}
	outEdges := make([]float64, 61)
	for i := range outEdges {
		outEdges[i] = 128 * math.Pow(float64(i)/60, 1.3)
	}

	got, err := Rebin(counts, inEdges, outEdges, slopes)
	if err != nil {
		t.Fatalf("Rebin: %v", err)
	}
	// outEdges spans [0, 128], covering every input bin.
	testutil.RequireNearlyEqual(t, testutil.Sum(got), testutil.Sum(counts), 1e-8)
}

func TestRebinSubsetConservation(t *testing.T) {
	counts := []float64{1, 2, 3, 4, 5, 6}
	inEdges := []float64{0, 1, 2, 3, 4, 5, 6}
	outEdges := []float64{1, 2.5, 4}

	got, err := Rebin(counts, inEdges, outEdges, nil)
	if err != nil {
		t.Fatalf("Rebin: %v", err)
	}
	// bins 1..3 lie inside [1, 4)
	testutil.RequireNearlyEqual(t, testutil.Sum(got), 2+3+4, 1e-12)
	rep := Report(counts, got)
	testutil.RequireNearlyEqual(t, rep.Dropped, 1+5+6, 1e-12)
}

func TestIntoReusesAndZeroes(t *testing.T) {
	dst := []float64{99, 99}
	err := Into(dst, []float64{10}, []float64{0, 2}, []float64{0, 1, 2}, nil)
	if err != nil {
		t.Fatalf("Into: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, dst, []float64{5, 5}, 1e-12)

	if err := Into(make([]float64, 3), []float64{10}, []float64{0, 2}, []float64{0, 1, 2}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRebinValidation(t *testing.T) {
	tests := []struct {
		name     string
		counts   []float64
		inEdges  []float64
		outEdges []float64
		slopes   []float64
	}{
		{name: "empty counts", counts: nil, inEdges: []float64{0}, outEdges: []float64{0, 1}},
		{name: "length mismatch", counts: []float64{1, 2}, inEdges: []float64{0, 1}, outEdges: []float64{0, 1}},
		{name: "slopes shape", counts: []float64{1}, inEdges: []float64{0, 1}, outEdges: []float64{0, 1}, slopes: []float64{0, 0}},
		{name: "in edges flat", counts: []float64{1, 1}, inEdges: []float64{0, 1, 1}, outEdges: []float64{0, 1}},
		{name: "out edges decreasing", counts: []float64{1}, inEdges: []float64{0, 1}, outEdges: []float64{1, 0}},
		{name: "out edges too short", counts: []float64{1}, inEdges: []float64{0, 1}, outEdges: []float64{0}},
		{name: "nan edge", counts: []float64{1}, inEdges: []float64{0, math.NaN()}, outEdges: []float64{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rebin(tt.counts, tt.inEdges, tt.outEdges, tt.slopes)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if got != nil {
				t.Fatalf("expected no partial result, got %v", got)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name     string
		inVar    []float64
		inEdges  []float64
		outEdges []float64
		want     []float64
	}{
		{name: "identity", inVar: []float64{1, 4, 9}, inEdges: []float64{0, 1, 2, 3}, outEdges: []float64{0, 1, 2, 3}, want: []float64{1, 4, 9}},
		{name: "merge", inVar: []float64{1, 1}, inEdges: []float64{0, 1, 2}, outEdges: []float64{0, 2}, want: []float64{2}},
		{name: "split", inVar: []float64{4}, inEdges: []float64{0, 2}, outEdges: []float64{0, 1, 2}, want: []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Variance(tt.inVar, tt.inEdges, tt.outEdges)
			if err != nil {
				t.Fatalf("Variance: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}
