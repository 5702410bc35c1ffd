package rebin

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type config struct {
	workers int
}

// Option configures batched rebinning.
type Option func(*config)

// WithWorkers limits the number of rows rebinned concurrently.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

func defaultConfig() config {
	return config{workers: runtime.GOMAXPROCS(0)}
}

// Rebin2D rebins every row of inCounts, defined over the matching row of
// inEdges, onto the shared outEdges. slopes may be nil, or must hold one row
// per input row with the matching length.
//
// All rows are validated before any work starts. Rows are independent and are
// processed concurrently.
func Rebin2D(inCounts, inEdges [][]float64, outEdges []float64, slopes [][]float64, opts ...Option) ([][]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(inCounts) == 0 {
		return nil, fmt.Errorf("%w: in_counts has no rows", ErrValidation)
	}
	if len(inCounts) != len(inEdges) {
		return nil, fmt.Errorf("%w: number of in_counts rows(%d) differs from in_edges rows(%d)",
			ErrValidation, len(inCounts), len(inEdges))
	}
	if slopes != nil && len(slopes) != len(inCounts) {
		return nil, fmt.Errorf("%w: number of slopes rows(%d) differs from in_counts rows(%d)",
			ErrValidation, len(slopes), len(inCounts))
	}
	for i := range inCounts {
		if err := validate(inCounts[i], inEdges[i], outEdges, rowSlopes(slopes, i)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	nOut := len(outEdges) - 1
	out := make([][]float64, len(inCounts))
	backing := make([]float64, len(inCounts)*nOut)

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for i := range inCounts {
		out[i] = backing[i*nOut : (i+1)*nOut : (i+1)*nOut]
		g.Go(func() error {
			kernel(out[i], inCounts[i], inEdges[i], outEdges, rowSlopes(slopes, i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func rowSlopes(slopes [][]float64, i int) []float64 {
	if slopes == nil {
		return nil
	}
	return slopes[i]
}
