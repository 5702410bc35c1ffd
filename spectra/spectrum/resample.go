package spectrum

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-spectra/spectra/core"
	"github.com/cwbudde/algo-spectra/spectra/rebin"
	"github.com/cwbudde/algo-spectra/spectra/smooth"
	"github.com/cwbudde/algo-spectra/spectra/uncertain"
)

// CombineBins sums every f consecutive channels into one. The tail is padded
// with zeros, so the result has ceil(N/f) channels. Uncertainties combine in
// quadrature. Calibrated spectra keep every f-th edge plus the last edge, so
// the energy range is unchanged. Livetime and acquisition metadata are kept.
func (s *Spectrum) CombineBins(f int) (*Spectrum, error) {
	if f < 1 {
		return nil, fmt.Errorf("%w: combine factor %d must be >= 1", ErrValidation, f)
	}

	in := s.native()
	n := (in.Len() + f - 1) / f
	out := uncertain.Zeros(n)
	for j := range n {
		var sum, sq float64
		for i := j * f; i < min((j+1)*f, in.Len()); i++ {
			sum += in.Values[i]
			sq += in.Sigmas[i] * in.Sigmas[i]
		}
		out.Values[j] = sum
		out.Sigmas[j] = math.Sqrt(sq)
	}

	c := s.withSeries(out)
	if s.IsCalibrated() {
		edges := make([]float64, 0, n+1)
		for i := 0; i < len(s.binEdgesKeV); i += f {
			edges = append(edges, s.binEdgesKeV[i])
		}
		if last := s.binEdgesKeV[len(s.binEdgesKeV)-1]; edges[len(edges)-1] != last {
			edges = append(edges, last)
		}
		c.binEdgesKeV = edges
	}
	return c, nil
}

// withSeries returns a spectrum of the same kind and acquisition metadata
// as s but holding series. Calibration is copied.
func (s *Spectrum) withSeries(series uncertain.Series) *Spectrum {
	c := *s
	c.data = wrap(s.Kind(), series)
	c.binEdgesKeV = core.Clone(s.binEdgesKeV)
	return &c
}

// LivetimeMode selects what [Spectrum.Downsample] does with the livetime.
type LivetimeMode int

const (
	// LivetimeDiscard leaves the result without livetime.
	LivetimeDiscard LivetimeMode = iota
	// LivetimePreserve copies the livetime.
	LivetimePreserve
	// LivetimeReduce divides the livetime by the downsampling factor.
	LivetimeReduce
)

func (m LivetimeMode) String() string {
	switch m {
	case LivetimeDiscard:
		return "none"
	case LivetimePreserve:
		return "preserve"
	case LivetimeReduce:
		return "reduce"
	default:
		return fmt.Sprintf("LivetimeMode(%d)", int(m))
	}
}

// ParseLivetimeMode parses "", "none", "preserve" or "reduce" in any case.
func ParseLivetimeMode(s string) (LivetimeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return LivetimeDiscard, nil
	case "preserve":
		return LivetimePreserve, nil
	case "reduce":
		return LivetimeReduce, nil
	default:
		return 0, fmt.Errorf("%w: illegal livetime mode %q", ErrValidation, s)
	}
}

// Downsample thins a counts-based spectrum by factor f: every truncated
// channel count n is replaced by a Binomial(n, 1/f) draw. The result keeps
// the calibration and has Poisson uncertainties. A nil rng uses the
// math/rand global source.
func (s *Spectrum) Downsample(f float64, mode LivetimeMode, rng *rand.Rand) (*Spectrum, error) {
	d, ok := s.data.(countsData)
	if !ok {
		return nil, fmt.Errorf("%w: cannot downsample a cps-based spectrum", ErrDomain)
	}
	if !(f >= 1) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: downsample factor %v must be finite and >= 1", ErrValidation, f)
	}

	var livetime optional[float64]
	switch mode {
	case LivetimeDiscard:
	case LivetimePreserve:
		livetime = s.livetime
	case LivetimeReduce:
		if !s.livetime.ok {
			return nil, fmt.Errorf("%w: cannot reduce an unknown livetime", ErrMissingLivetime)
		}
		livetime = some(s.livetime.v / f)
	default:
		return nil, fmt.Errorf("%w: illegal livetime mode %v", ErrValidation, mode)
	}

	if i := core.FirstNegative(d.counts.Values); i >= 0 {
		return nil, fmt.Errorf("%w: counts[%d] = %v cannot be downsampled", ErrValidation, i, d.counts.Values[i])
	}

	var src randSource = globalRand{}
	if rng != nil {
		src = rng
	}
	p := 1 / f
	thinned := make([]float64, len(d.counts.Values))
	for i, c := range d.counts.Values {
		thinned[i] = float64(binomial(src, int64(c), p))
	}

	out := derived(KindCounts, uncertain.FromValues(thinned, uncertain.PoissonSigma), s.binEdgesKeV)
	out.livetime = livetime
	return out, nil
}

type rebinConfig struct {
	slopes []float64
}

// RebinOption configures [Spectrum.Rebin].
type RebinOption func(*rebinConfig)

// WithSlopes sets a linear trend per input channel, in counts per keV
// squared. Slopes below [rebin.FlatSlope] in magnitude are treated as flat.
func WithSlopes(slopes []float64) RebinOption {
	return func(c *rebinConfig) { c.slopes = slopes }
}

// Rebin redistributes the native series of a calibrated spectrum onto
// outEdgesKeV. Values go through the rebinning engine, uncertainties through
// its variance form. Livetime and acquisition metadata are kept. Content
// outside the input energy range is dropped and reported with a
// [WarnCountsDropped] warning.
func (s *Spectrum) Rebin(outEdgesKeV []float64, opts ...RebinOption) (*Spectrum, Warnings, error) {
	if !s.IsCalibrated() {
		return nil, nil, fmt.Errorf("%w: rebin needs energy bin edges", ErrUncalibrated)
	}
	var cfg rebinConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	in := s.native()
	values, err := rebin.Rebin(in.Values, s.binEdgesKeV, outEdgesKeV, cfg.slopes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}
	variances, err := rebin.Variance(in.Variances(), s.binEdgesKeV, outEdgesKeV)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}
	series, err := uncertain.FromVariances(values, variances)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}

	out := s.withSeries(series)
	out.binEdgesKeV = core.Clone(outEdgesKeV)

	var warns Warnings
	if rep := rebin.Report(in.Values, values); !rep.Lossless(1e-9) {
		warns = append(warns, newWarning(WarnCountsDropped,
			"rebin dropped content outside the input energy range",
			slog.Float64("in", rep.In), slog.Float64("out", rep.Out), slog.Float64("dropped", rep.Dropped)))
	}
	return out, warns, nil
}

// RebinLike rebins s onto the bin edges of other.
func (s *Spectrum) RebinLike(other *Spectrum, opts ...RebinOption) (*Spectrum, Warnings, error) {
	if other == nil || !other.IsCalibrated() {
		return nil, nil, fmt.Errorf("%w: other spectrum has no calibration", ErrUncalibrated)
	}
	return s.Rebin(other.binEdgesKeV, opts...)
}

// Smooth applies a Gaussian of the given full width at half maximum, in
// channels. Kind, calibration, livetime and acquisition metadata are kept.
// Unknown uncertainties stay unknown.
func (s *Spectrum) Smooth(fwhmChannels float64) (*Spectrum, error) {
	if !(fwhmChannels > 0) || math.IsInf(fwhmChannels, 0) {
		return nil, fmt.Errorf("%w: smoothing width %v must be positive and finite", ErrValidation, fwhmChannels)
	}
	sigma := smooth.FWHMToSigma(fwhmChannels)

	in := s.native()
	values, err := smooth.Gaussian(in.Values, sigma)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	sigmas := make([]float64, len(values))
	if core.FirstNonFinite(in.Sigmas) >= 0 {
		for i := range sigmas {
			sigmas[i] = math.NaN()
		}
	} else {
		variances, err := smooth.GaussianVariance(in.Variances(), sigma)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		for i, v := range variances {
			sigmas[i] = math.Sqrt(v)
		}
	}

	series, err := uncertain.NewSeries(values, sigmas)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.withSeries(series), nil
}
