// Package hist defines the histogram primitive shared by spectra and the
// rebinning engine: N finite bin values paired with N+1 strictly increasing
// bin edges.
package hist
