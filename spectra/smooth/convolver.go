package smooth

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by smoothing functions.
var (
	ErrEmptyInput     = errors.New("smooth: empty input")
	ErrEmptyKernel    = errors.New("smooth: empty kernel")
	ErrInvalidWidth   = errors.New("smooth: invalid kernel width")
	ErrLengthMismatch = errors.New("smooth: signal length mismatch")
)

// Convolver computes centred linear convolutions of fixed-length signals with
// one kernel. The kernel spectrum is computed once.
type Convolver struct {
	kernelFFT []complex128
	kernelLen int
	signalLen int
	fftSize   int

	plan *algofft.Plan[complex128]
	work []complex128
}

// NewConvolver prepares a convolver for signals of length signalLen.
func NewConvolver(kernel []float64, signalLen int) (*Convolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if signalLen <= 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(signalLen + len(kernel) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	c := &Convolver{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		signalLen: signalLen,
		fftSize:   fftSize,
		plan:      plan,
		work:      make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(c.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("smooth: failed to compute kernel FFT: %w", err)
	}

	return c, nil
}

// FFTSize returns the transform length in use.
func (c *Convolver) FFTSize() int {
	return c.fftSize
}

// Same returns the convolution of signal with the kernel, trimmed to the
// signal length and centred on the kernel midpoint.
func (c *Convolver) Same(signal []float64) ([]float64, error) {
	if len(signal) != c.signalLen {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, c.signalLen, len(signal))
	}

	for i := range c.work {
		c.work[i] = 0
	}
	for i, v := range signal {
		c.work[i] = complex(v, 0)
	}

	if err := c.plan.Forward(c.work, c.work); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}
	for i := range c.work {
		c.work[i] *= c.kernelFFT[i]
	}
	if err := c.plan.Inverse(c.work, c.work); err != nil {
		return nil, fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	shift := (c.kernelLen - 1) / 2
	out := make([]float64, c.signalLen)
	for i := range out {
		out[i] = real(c.work[i+shift])
	}
	return out, nil
}

// ConvolveSame is a one-shot [Convolver.Same].
func ConvolveSame(signal, kernel []float64) ([]float64, error) {
	c, err := NewConvolver(kernel, len(signal))
	if err != nil {
		return nil, err
	}
	return c.Same(signal)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
