// Package calib models the channel-to-energy calibration capability used by
// spectra.
//
// A [Calibration] maps channel positions to energies in keV and must be
// strictly increasing on the range it is evaluated over. Channel-edge
// positions sit at half-integer offsets, so an N-channel spectrum evaluates
// the calibration at -0.5, 0.5, ..., N-0.5 to obtain N+1 bin edges.
package calib
