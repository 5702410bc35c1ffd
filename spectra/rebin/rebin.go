package rebin

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/spectra/core"
)

// FlatSlope is the magnitude below which an input-bin slope is treated as zero.
const FlatSlope = 1e-6

// ErrValidation indicates malformed rebinning input.
var ErrValidation = errors.New("rebin: invalid input")

// Rebin maps inCounts, defined over inEdges, onto outEdges.
// slopes may be nil for a flat density in every input bin.
func Rebin(inCounts, inEdges, outEdges, slopes []float64) ([]float64, error) {
	if err := validate(inCounts, inEdges, outEdges, slopes); err != nil {
		return nil, err
	}
	out := make([]float64, len(outEdges)-1)
	kernel(out, inCounts, inEdges, outEdges, slopes)
	return out, nil
}

// Into is [Rebin] writing into dst, which must have length len(outEdges)-1.
// dst is overwritten.
func Into(dst, inCounts, inEdges, outEdges, slopes []float64) error {
	if err := validate(inCounts, inEdges, outEdges, slopes); err != nil {
		return err
	}
	if len(dst) != len(outEdges)-1 {
		return fmt.Errorf("%w: dst has %d bins, out_edges define %d", ErrValidation, len(dst), len(outEdges)-1)
	}
	core.Zero(dst)
	kernel(dst, inCounts, inEdges, outEdges, slopes)
	return nil
}

func validate(inCounts, inEdges, outEdges, slopes []float64) error {
	if len(inCounts) == 0 {
		return fmt.Errorf("%w: in_counts is empty", ErrValidation)
	}
	if len(inCounts) != len(inEdges)-1 {
		return fmt.Errorf("%w: in_counts(%d) is not 1 channel shorter than in_edges(%d)",
			ErrValidation, len(inCounts), len(inEdges))
	}
	if slopes != nil && len(slopes) != len(inCounts) {
		return fmt.Errorf("%w: shape of slopes(%d) differs from in_counts(%d)",
			ErrValidation, len(slopes), len(inCounts))
	}
	if len(outEdges) < 2 {
		return fmt.Errorf("%w: out_edges needs at least 2 edges, got %d", ErrValidation, len(outEdges))
	}
	if err := increasing(inEdges, "in_edges"); err != nil {
		return err
	}
	return increasing(outEdges, "out_edges")
}

func increasing(edges []float64, name string) error {
	if i := core.FirstNonFinite(edges); i >= 0 {
		return fmt.Errorf("%w: %s[%d] = %v is not finite", ErrValidation, name, i, edges[i])
	}
	if i := core.FirstNonIncreasing(edges); i > 0 {
		return fmt.Errorf("%w: %s is not strictly increasing at index %d (%v after %v)",
			ErrValidation, name, i, edges[i], edges[i-1])
	}
	return nil
}

// linearOffset solves the density intercept so that the bin integral equals cts.
func linearOffset(slope, cts, low, high float64) float64 {
	if math.Abs(slope) < FlatSlope {
		return cts / (high - low)
	}
	return (cts - slope/2*(high*high-low*low)) / (high - low)
}

// kernel accumulates into out, which must be zeroed. Inputs are validated.
func kernel(out, inCounts, inEdges, outEdges, slopes []float64) {
	nIn := len(inCounts)
	last := inEdges[nIn]
	inIdx := 1

	for outIdx := range out {
		outLo := outEdges[outIdx]
		outHi := outEdges[outIdx+1]
		if outLo > last {
			continue
		}

		for inEdges[inIdx] < outLo {
			inIdx++
		}
		inIdx--

		for inIdx < nIn && inEdges[inIdx] < outHi {
			binLo := inEdges[inIdx]
			binHi := inEdges[inIdx+1]
			cts := inCounts[inIdx]

			slope := 0.0
			if slopes != nil {
				slope = slopes[inIdx]
			}
			if math.Abs(slope) < FlatSlope {
				slope = 0
			}
			offset := linearOffset(slope, cts, binLo, binHi)

			lo := math.Max(binLo, outLo)
			hi := math.Min(binHi, outHi)
			out[outIdx] += slope*(hi*hi-lo*lo)/2 + offset*(hi-lo)

			inIdx++
		}
		if inIdx == 0 {
			inIdx = 1
		}
	}
}
