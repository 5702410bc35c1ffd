package rebin

import "math"

// Variance propagates per-bin variances through a flat-density rebin.
//
// An input bin contributing a fraction f of its content to an output bin
// contributes f^2 times its variance. Contributions from different input bins
// are independent and add.
func Variance(inVar, inEdges, outEdges []float64) ([]float64, error) {
	if err := validate(inVar, inEdges, outEdges, nil); err != nil {
		return nil, err
	}
	out := make([]float64, len(outEdges)-1)
	varianceKernel(out, inVar, inEdges, outEdges)
	return out, nil
}

func varianceKernel(out, inVar, inEdges, outEdges []float64) {
	nIn := len(inVar)
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
			lo := math.Max(binLo, outLo)
			hi := math.Min(binHi, outHi)
			frac := (hi - lo) / (binHi - binLo)
			out[outIdx] += frac * frac * inVar[inIdx]
			inIdx++
		}
		if inIdx == 0 {
			inIdx = 1
		}
	}
}
