package spectrum

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-spectra/spectra/core"
	"github.com/cwbudde/algo-spectra/spectra/rebin"
	"github.com/cwbudde/algo-spectra/spectra/uncertain"
)

// RebinAll rebins every spectrum onto outEdgesKeV. The values of all spectra
// go through one batched engine call using up to workers goroutines (0 means
// GOMAXPROCS). Each spectrum keeps its livetime and acquisition metadata, as
// with [Spectrum.Rebin]. Dropped content is reported per spectrum.
func RebinAll(spectra []*Spectrum, outEdgesKeV []float64, workers int) ([]*Spectrum, Warnings, error) {
	if len(spectra) == 0 {
		return nil, nil, nil
	}
	inCounts := make([][]float64, len(spectra))
	inEdges := make([][]float64, len(spectra))
	for i, s := range spectra {
		if s == nil {
			return nil, nil, fmt.Errorf("%w: spectrum %d is nil", ErrDomain, i)
		}
		if !s.IsCalibrated() {
			return nil, nil, fmt.Errorf("%w: spectrum %d has no energy bin edges", ErrUncalibrated, i)
		}
		inCounts[i] = s.native().Values
		inEdges[i] = s.binEdgesKeV
	}

	var opts []rebin.Option
	if workers > 0 {
		opts = append(opts, rebin.WithWorkers(workers))
	}
	rows, err := rebin.Rebin2D(inCounts, inEdges, outEdgesKeV, nil, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}

	out := make([]*Spectrum, len(spectra))
	var warns Warnings
	for i, s := range spectra {
		variances, err := rebin.Variance(s.native().Variances(), s.binEdgesKeV, outEdgesKeV)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: spectrum %d: %w", ErrDomain, i, err)
		}
		series, err := uncertain.FromVariances(rows[i], variances)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: spectrum %d: %w", ErrDomain, i, err)
		}
		r := s.withSeries(series)
		r.binEdgesKeV = core.Clone(outEdgesKeV)
		out[i] = r

		if rep := rebin.Report(inCounts[i], rows[i]); !rep.Lossless(1e-9) {
			warns = append(warns, newWarning(WarnCountsDropped,
				"rebin dropped content outside the input energy range",
				slog.Int("spectrum", i), slog.Float64("in", rep.In), slog.Float64("out", rep.Out),
				slog.Float64("dropped", rep.Dropped)))
		}
	}
	return out, warns, nil
}
