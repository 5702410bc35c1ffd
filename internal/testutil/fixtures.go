package testutil

import (
	"math"
	"math/rand"
)

// LinearEdges returns n+1 evenly spaced edges from lo to hi.
func LinearEdges(n int, lo, hi float64) []float64 {
	out := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n] = hi
	return out
}

// JitteredEdges returns n+1 strictly increasing edges starting at lo whose
// widths vary deterministically in [minWidth, 2*minWidth).
func JitteredEdges(seed int64, n int, lo, minWidth float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n+1)
	out[0] = lo
	for i := 1; i <= n; i++ {
		out[i] = out[i-1] + minWidth*(1+rng.Float64())
	}
	return out
}

// PeakCounts returns n channels of a flat background plus a Gaussian peak.
func PeakCounts(n int, background, amplitude, center, sigma float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		d := (float64(i) - center) / sigma
		out[i] = background + amplitude*math.Exp(-0.5*d*d)
	}
	return out
}

// DeterministicCounts returns n non-negative integer-valued counts in [0, max)
// with a fixed seed for reproducibility.
func DeterministicCounts(seed int64, n int, max int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(rng.Intn(max))
	}
	return out
}
