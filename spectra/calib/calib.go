package calib

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/cwbudde/algo-spectra/spectra/hist"
)

var (
	// ErrBadCoefficients indicates an unusable set of calibration coefficients.
	ErrBadCoefficients = errors.New("calib: invalid coefficients")
	// ErrNotMonotonic indicates a calibration whose output is not strictly increasing.
	ErrNotMonotonic = errors.New("calib: output not strictly increasing")
	// ErrBadOutput indicates a calibration that returned the wrong number of energies.
	ErrBadOutput = errors.New("calib: wrong output length")
)

// Calibration converts channel positions to energies in keV.
type Calibration interface {
	ChannelsToKeV(channels []float64) []float64
}

// Func adapts an ordinary function to [Calibration].
type Func func(channel float64) float64

// ChannelsToKeV applies f to every channel.
func (f Func) ChannelsToKeV(channels []float64) []float64 {
	out := make([]float64, len(channels))
	for i, ch := range channels {
		out[i] = f(ch)
	}
	return out
}

// Polynomial is E(ch) = c0 + c1*ch + c2*ch^2 + ...
type Polynomial struct {
	coeffs []float64
}

// NewPolynomial returns a polynomial calibration with coefficients in
// ascending order. At least one coefficient is required and all must be finite.
func NewPolynomial(coeffs ...float64) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrBadCoefficients)
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coeffs[%d] = %v", ErrBadCoefficients, i, c)
		}
	}
	return &Polynomial{coeffs: append([]float64(nil), coeffs...)}, nil
}

// NewLinear returns E(ch) = offset + slope*ch. slope must be positive.
func NewLinear(offset, slope float64) (*Polynomial, error) {
	if !(slope > 0) {
		return nil, fmt.Errorf("%w: slope %v must be > 0", ErrBadCoefficients, slope)
	}
	return NewPolynomial(offset, slope)
}

// Coefficients returns a copy of the coefficients in ascending order.
func (p *Polynomial) Coefficients() []float64 {
	return append([]float64(nil), p.coeffs...)
}

// ChannelToKeV evaluates the polynomial with Horner's scheme.
func (p *Polynomial) ChannelToKeV(ch float64) float64 {
	e := 0.0
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		e = e*ch + p.coeffs[i]
	}
	return e
}

// ChannelsToKeV evaluates the polynomial at every channel.
func (p *Polynomial) ChannelsToKeV(channels []float64) []float64 {
	out := make([]float64, len(channels))
	for i, ch := range channels {
		out[i] = p.ChannelToKeV(ch)
	}
	return out
}

// ChannelEdges returns the n+1 channel-edge positions -0.5, 0.5, ..., n-0.5.
func ChannelEdges(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n+1)
	for i := range out {
		out[i] = float64(i) - 0.5
	}
	return out
}

// BinEdges evaluates cal over the channel edges of an n-channel spectrum and
// checks that the result is a valid set of n+1 strictly increasing edges.
func BinEdges(cal Calibration, n int) ([]float64, error) {
	if cal == nil {
		return nil, fmt.Errorf("%w: nil calibration", ErrBadCoefficients)
	}
	edges := cal.ChannelsToKeV(ChannelEdges(n))
	if len(edges) != n+1 {
		return nil, fmt.Errorf("%w: got %d energies for %d channel edges", ErrBadOutput, len(edges), n+1)
	}
	if err := hist.ValidateEdges(edges); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMonotonic, err)
	}
	return edges, nil
}

// Fingerprint returns a 64-bit hash of the exact bit patterns of edges.
// Identical edge arrays always share a fingerprint; nil and empty hash to 0.
func Fingerprint(edges []float64) uint64 {
	if len(edges) == 0 {
		return 0
	}
	d := xxhash.New()
	var buf [8]byte
	for _, e := range edges {
		bits := math.Float64bits(e)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
