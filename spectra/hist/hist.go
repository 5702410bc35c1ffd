package hist

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectra/spectra/core"
)

var (
	// ErrEmpty indicates a histogram without bins.
	ErrEmpty = errors.New("hist: empty histogram")
	// ErrLengthMismatch indicates len(counts) != len(edges)-1.
	ErrLengthMismatch = errors.New("hist: counts/edges length mismatch")
	// ErrNotIncreasing indicates bin edges that are not strictly increasing.
	ErrNotIncreasing = errors.New("hist: edges not strictly increasing")
	// ErrNonFinite indicates a NaN or infinite bin value or edge.
	ErrNonFinite = errors.New("hist: non-finite value")
)

// Histogram is an ordered sequence of bin values with their edges.
// Edges has one more element than Counts; bin i spans [Edges[i], Edges[i+1]).
type Histogram struct {
	Counts []float64
	Edges  []float64
}

// New validates counts and edges and returns a Histogram that owns copies of them.
func New(counts, edges []float64) (Histogram, error) {
	h := Histogram{Counts: core.Clone(counts), Edges: core.Clone(edges)}
	if err := h.Validate(); err != nil {
		return Histogram{}, err
	}
	return h, nil
}

// Len returns the number of bins.
func (h Histogram) Len() int { return len(h.Counts) }

// Validate checks the histogram invariants.
func (h Histogram) Validate() error {
	if len(h.Counts) == 0 {
		return ErrEmpty
	}
	if len(h.Counts) != len(h.Edges)-1 {
		return fmt.Errorf("%w: %d counts, %d edges", ErrLengthMismatch, len(h.Counts), len(h.Edges))
	}
	if i := core.FirstNonFinite(h.Counts); i >= 0 {
		return fmt.Errorf("%w: counts[%d] = %v", ErrNonFinite, i, h.Counts[i])
	}
	return ValidateEdges(h.Edges)
}

// ValidateEdges checks that edges are finite and strictly increasing.
func ValidateEdges(edges []float64) error {
	if i := core.FirstNonFinite(edges); i >= 0 {
		return fmt.Errorf("%w: edges[%d] = %v", ErrNonFinite, i, edges[i])
	}
	if i := core.FirstNonIncreasing(edges); i >= 0 {
		return fmt.Errorf("%w: edges[%d] = %v after %v", ErrNotIncreasing, i, edges[i], edges[i-1])
	}
	return nil
}

// Total returns the compensated sum of all bin values.
func (h Histogram) Total() float64 {
	return core.KahanSum(h.Counts)
}

// Range returns the low and high edges.
func (h Histogram) Range() (lo, hi float64) {
	if len(h.Edges) == 0 {
		return 0, 0
	}
	return h.Edges[0], h.Edges[len(h.Edges)-1]
}

// Centers returns the midpoint of every bin defined by edges.
func Centers(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return out
}

// Widths returns edges[i+1]-edges[i] for every bin.
func Widths(edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = edges[i+1] - edges[i]
	}
	return out
}
