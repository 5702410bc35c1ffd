// Package smooth provides FFT-based Gaussian smoothing of per-channel spectrum
// data.
//
// Values are convolved with a unit-sum Gaussian kernel; variances of
// independent channels are convolved with the squared kernel so that
// uncertainties stay consistent with the smoothed values. Convolution uses
// zero padding, so content within a few sigma of either end leaks out of the
// channel range.
//
//	out, err := smooth.Gaussian(counts, 2.0)
//	vars, err := smooth.GaussianVariance(variances, 2.0)
package smooth
