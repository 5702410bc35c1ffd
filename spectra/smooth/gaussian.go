package smooth

import (
	"fmt"
	"math"
)

// fwhmPerSigma is 2*sqrt(2*ln 2).
var fwhmPerSigma = 2 * math.Sqrt(2*math.Ln2)

// FWHMToSigma converts a full width at half maximum to a Gaussian sigma.
func FWHMToSigma(fwhm float64) float64 {
	return fwhm / fwhmPerSigma
}

// GaussianKernel returns a unit-sum Gaussian of odd length 2*ceil(4*sigma)+1.
func GaussianKernel(sigma float64) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: sigma %v", ErrInvalidWidth, sigma)
	}
	half := int(math.Ceil(4 * sigma))
	k := make([]float64, 2*half+1)
	var sum float64
	for i := range k {
		d := float64(i-half) / sigma
		k[i] = math.Exp(-0.5 * d * d)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k, nil
}

// Gaussian smooths values with a Gaussian of the given sigma in channels.
func Gaussian(values []float64, sigma float64) ([]float64, error) {
	k, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return ConvolveSame(values, k)
}

// GaussianVariance propagates independent per-channel variances through
// [Gaussian] by convolving them with the squared kernel.
func GaussianVariance(variances []float64, sigma float64) ([]float64, error) {
	k, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	for i := range k {
		k[i] *= k[i]
	}
	out, err := ConvolveSame(variances, k)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	return out, nil
}
