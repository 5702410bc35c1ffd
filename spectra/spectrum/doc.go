// Package spectrum implements the detector energy spectrum: a histogram of
// counts (or count rates) per channel with optional energy calibration and
// acquisition-time bookkeeping.
//
// A [Spectrum] is either counts-based or rate-based, never both. The other
// view is derived on demand through the livetime. Arithmetic, resampling and
// smoothing return new instances; only [Spectrum.ApplyCalibration],
// [Spectrum.CalibrateLike] and [Spectrum.RmCalibration] mutate a spectrum,
// and they touch nothing but the calibration.
//
// Non-fatal conditions, such as a livetime lost while adding spectra, are
// returned as [Warnings] next to the result. Nothing is logged implicitly;
// callers that want log output pass the warnings to [Warnings.LogTo].
//
//	a, _ := spectrum.New(spectrum.WithCounts(counts), spectrum.WithLivetime(60))
//	b, _ := spectrum.New(spectrum.WithCounts(background), spectrum.WithLivetime(600))
//	net, warns, err := a.Subtract(b)
package spectrum
