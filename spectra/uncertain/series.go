package uncertain

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/spectra/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch indicates series or slices of different length.
var ErrLengthMismatch = errors.New("uncertain: length mismatch")

// Series holds parallel nominal values and standard deviations.
// Series values are treated as immutable; every operation returns a new Series.
type Series struct {
	Values []float64
	Sigmas []float64
}

// NewSeries pairs values with sigmas. Both slices are copied.
func NewSeries(values, sigmas []float64) (Series, error) {
	if len(values) != len(sigmas) {
		return Series{}, fmt.Errorf("%w: %d values, %d sigmas", ErrLengthMismatch, len(values), len(sigmas))
	}
	return Series{Values: core.Clone(values), Sigmas: core.Clone(sigmas)}, nil
}

// FromValues copies values and derives each sigma with sigmaOf.
func FromValues(values []float64, sigmaOf func(v float64) float64) Series {
	s := Series{Values: core.Clone(values), Sigmas: make([]float64, len(values))}
	for i, v := range values {
		s.Sigmas[i] = sigmaOf(v)
	}
	return s
}

// PoissonSigma is the default counting uncertainty: sqrt(n), floored at 1.
func PoissonSigma(n float64) float64 {
	return math.Max(math.Sqrt(n), 1)
}

// UnknownSigma marks an uncertainty as unavailable.
func UnknownSigma(float64) float64 {
	return math.NaN()
}

// Zeros returns a series of n exact zeros.
func Zeros(n int) Series {
	return Series{Values: make([]float64, n), Sigmas: make([]float64, n)}
}

// Len returns the number of elements.
func (s Series) Len() int { return len(s.Values) }

// At returns element i as a Value.
func (s Series) At(i int) Value {
	return Value{Nominal: s.Values[i], Sigma: s.Sigmas[i]}
}

// Clone returns a deep copy.
func (s Series) Clone() Series {
	return Series{Values: core.Clone(s.Values), Sigmas: core.Clone(s.Sigmas)}
}

// Variances returns sigma^2 for every element.
func (s Series) Variances() []float64 {
	out := make([]float64, len(s.Sigmas))
	vecmath.MulBlock(out, s.Sigmas, s.Sigmas)
	return out
}

// FromVariances builds a series from values and variances.
func FromVariances(values, variances []float64) (Series, error) {
	if len(values) != len(variances) {
		return Series{}, fmt.Errorf("%w: %d values, %d variances", ErrLengthMismatch, len(values), len(variances))
	}
	s := Series{Values: core.Clone(values), Sigmas: make([]float64, len(variances))}
	for i, v := range variances {
		s.Sigmas[i] = math.Sqrt(v)
	}
	return s, nil
}

// Add returns a+b element-wise.
func Add(a, b Series) (Series, error) {
	return combine(a, b, 1)
}

// Sub returns a-b element-wise.
func Sub(a, b Series) (Series, error) {
	return combine(a, b, -1)
}

func combine(a, b Series, sign float64) (Series, error) {
	n := a.Len()
	if b.Len() != n {
		return Series{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, b.Len())
	}
	out := Series{Values: make([]float64, n), Sigmas: make([]float64, n)}
	for i := range out.Values {
		out.Values[i] = a.Values[i] + sign*b.Values[i]
	}
	vecmath.Magnitude(out.Sigmas, a.Sigmas, b.Sigmas)
	return out, nil
}

// Scale returns k*s for an exact k.
func (s Series) Scale(k float64) Series {
	out := Series{Values: make([]float64, s.Len()), Sigmas: make([]float64, s.Len())}
	ak := math.Abs(k)
	for i := range out.Values {
		out.Values[i] = k * s.Values[i]
		out.Sigmas[i] = ak * s.Sigmas[i]
	}
	return out
}

// Div returns s/k for an exact k.
func (s Series) Div(k float64) Series {
	return s.Scale(1 / k)
}

// ScaleUncertain returns k*s where k is independent of every element of s.
func (s Series) ScaleUncertain(k Value) Series {
	if k.IsExact() {
		return s.Scale(k.Nominal)
	}
	n := s.Len()
	out := Series{Values: make([]float64, n), Sigmas: make([]float64, n)}
	fromSeries := make([]float64, n)
	fromFactor := make([]float64, n)
	for i := range out.Values {
		out.Values[i] = k.Nominal * s.Values[i]
		fromSeries[i] = k.Nominal * s.Sigmas[i]
		fromFactor[i] = s.Values[i] * k.Sigma
	}
	vecmath.Magnitude(out.Sigmas, fromSeries, fromFactor)
	return out
}

// DivUncertain returns s/k where k is independent of every element of s.
func (s Series) DivUncertain(k Value) Series {
	return s.ScaleUncertain(k.Reciprocal())
}

// MulExact multiplies element i by the exact factor f[i].
func (s Series) MulExact(f []float64) (Series, error) {
	n := s.Len()
	if len(f) != n {
		return Series{}, fmt.Errorf("%w: %d elements, %d factors", ErrLengthMismatch, n, len(f))
	}
	out := Series{Values: make([]float64, n), Sigmas: make([]float64, n)}
	abs := make([]float64, n)
	for i, v := range f {
		abs[i] = math.Abs(v)
	}
	vecmath.MulBlock(out.Values, s.Values, f)
	vecmath.MulBlock(out.Sigmas, s.Sigmas, abs)
	return out, nil
}

// Sum returns the total with its quadrature uncertainty.
func (s Series) Sum() Value {
	var sq float64
	for _, sg := range s.Sigmas {
		sq += sg * sg
	}
	return Value{Nominal: core.KahanSum(s.Values), Sigma: math.Sqrt(sq)}
}
