package rebin

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/spectra/core"
)

// Conservation compares input and output totals of one rebin.
type Conservation struct {
	In      float64 // total of the input histogram
	Out     float64 // total of the rebinned histogram
	Dropped float64 // In - Out, counts outside the output grid or the input range
}

// Report computes the conservation totals for a rebin of inCounts into outCounts.
func Report(inCounts, outCounts []float64) Conservation {
	in := core.KahanSum(inCounts)
	out := core.KahanSum(outCounts)
	return Conservation{In: in, Out: out, Dropped: in - out}
}

// Lossless reports whether the dropped amount is within a relative tolerance.
func (c Conservation) Lossless(relTol float64) bool {
	return core.NearlyEqual(c.In, c.Out, relTol)
}

func (c Conservation) String() string {
	return fmt.Sprintf("in=%g out=%g dropped=%g", c.In, c.Out, c.Dropped)
}
