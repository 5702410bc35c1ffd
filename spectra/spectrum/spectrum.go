package spectrum

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cwbudde/algo-spectra/spectra/calib"
	"github.com/cwbudde/algo-spectra/spectra/core"
	"github.com/cwbudde/algo-spectra/spectra/hist"
	"github.com/cwbudde/algo-spectra/spectra/uncertain"
	"github.com/cwbudde/algo-spectra/stats/summary"
)

// Kind is the native representation of a spectrum.
type Kind int

const (
	// KindCounts is a spectrum of counts per channel.
	KindCounts Kind = iota + 1
	// KindRate is a spectrum of counts per second per channel.
	KindRate
)

func (k Kind) String() string {
	switch k {
	case KindCounts:
		return "counts"
	case KindRate:
		return "cps"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// data is the counts/rate union. Exactly one variant is stored.
type data interface {
	kind() Kind
	series() uncertain.Series
}

type countsData struct{ counts uncertain.Series }

type rateData struct{ cps uncertain.Series }

func (d countsData) kind() Kind               { return KindCounts }
func (d countsData) series() uncertain.Series { return d.counts }
func (d rateData) kind() Kind                 { return KindRate }
func (d rateData) series() uncertain.Series   { return d.cps }

func wrap(k Kind, s uncertain.Series) data {
	if k == KindRate {
		return rateData{cps: s}
	}
	return countsData{counts: s}
}

// Spectrum is an energy spectrum. Construct it with [New] or [FromFile].
type Spectrum struct {
	data        data
	binEdgesKeV []float64

	livetime  optional[float64]
	realtime  optional[float64]
	startTime optional[time.Time]
	stopTime  optional[time.Time]

	sourceFilename string
}

// New validates the options and builds a spectrum.
func New(opts ...Option) (*Spectrum, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return build(cfg)
}

func build(cfg config) (*Spectrum, error) {
	if cfg.counts.ok == cfg.cps.ok {
		return nil, fmt.Errorf("%w: give exactly one of counts or cps", ErrConstruction)
	}

	kind, values := KindCounts, cfg.counts.v
	if cfg.cps.ok {
		kind, values = KindRate, cfg.cps.v
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty %s", ErrConstruction, kind)
	}
	if i := core.FirstNonFinite(values); i >= 0 {
		return nil, fmt.Errorf("%w: %s[%d] = %v is not finite", ErrConstruction, kind, i, values[i])
	}

	var series uncertain.Series
	switch {
	case cfg.uncs.ok:
		s, err := uncertain.NewSeries(values, cfg.uncs.v)
		if err != nil {
			return nil, fmt.Errorf("%w: uncs: %w", ErrConstruction, err)
		}
		for i, u := range s.Sigmas {
			if u < 0 || math.IsInf(u, 0) {
				return nil, fmt.Errorf("%w: uncs[%d] = %v", ErrConstruction, i, u)
			}
		}
		series = s
	case kind == KindCounts:
		if i := core.FirstNegative(values); i >= 0 {
			return nil, fmt.Errorf("%w: counts[%d] = %v is negative; give uncs for non-Poisson data",
				ErrConstruction, i, values[i])
		}
		series = uncertain.FromValues(values, uncertain.PoissonSigma)
	default:
		series = uncertain.FromValues(values, uncertain.UnknownSigma)
	}

	s := &Spectrum{
		data:           wrap(kind, series),
		livetime:       cfg.livetime,
		sourceFilename: cfg.sourceFilename,
	}

	if cfg.edges.ok {
		edges := cfg.edges.v
		if len(edges) != len(values)+1 {
			return nil, fmt.Errorf("%w: %d bin edges for %d channels", ErrConstruction, len(edges), len(values))
		}
		if err := hist.ValidateEdges(edges); err != nil {
			return nil, fmt.Errorf("%w: bin edges: %w", ErrConstruction, err)
		}
		s.binEdgesKeV = core.Clone(edges)
	}

	if err := checkDuration("livetime", cfg.livetime); err != nil {
		return nil, err
	}
	if err := checkDuration("realtime", cfg.realtime); err != nil {
		return nil, err
	}

	start, stop := cfg.start, cfg.stop
	if cfg.startRaw.ok {
		t, err := ParseTimestamp(cfg.startRaw.v)
		if err != nil {
			return nil, fmt.Errorf("start time: %w", err)
		}
		start = some(t)
	}
	if cfg.stopRaw.ok {
		t, err := ParseTimestamp(cfg.stopRaw.v)
		if err != nil {
			return nil, fmt.Errorf("stop time: %w", err)
		}
		stop = some(t)
	}

	start, stop, realtime, err := reconcileTimes(start, stop, cfg.realtime)
	if err != nil {
		return nil, err
	}
	if s.livetime.ok && realtime.ok && s.livetime.v > realtime.v {
		return nil, fmt.Errorf("%w: livetime %v exceeds realtime %v", ErrConstruction, s.livetime.v, realtime.v)
	}
	s.startTime, s.stopTime, s.realtime = start, stop, realtime

	return s, nil
}

// derived builds a spectrum from an already validated series.
func derived(k Kind, series uncertain.Series, edges []float64) *Spectrum {
	return &Spectrum{data: wrap(k, series), binEdgesKeV: core.Clone(edges)}
}

// Kind reports the native representation.
func (s *Spectrum) Kind() Kind { return s.data.kind() }

// Len returns the number of channels.
func (s *Spectrum) Len() int { return s.data.series().Len() }

// IsCalibrated reports whether energy bin edges are attached.
func (s *Spectrum) IsCalibrated() bool { return s.binEdgesKeV != nil }

// Livetime returns the livetime in seconds, if known.
func (s *Spectrum) Livetime() (float64, bool) { return s.livetime.v, s.livetime.ok }

// Realtime returns the realtime in seconds, if known.
func (s *Spectrum) Realtime() (float64, bool) { return s.realtime.v, s.realtime.ok }

// StartTime returns the acquisition start, if known.
func (s *Spectrum) StartTime() (time.Time, bool) { return s.startTime.v, s.startTime.ok }

// StopTime returns the acquisition stop, if known.
func (s *Spectrum) StopTime() (time.Time, bool) { return s.stopTime.v, s.stopTime.ok }

// SourceFilename returns the file the spectrum was loaded from, or "".
func (s *Spectrum) SourceFilename() string { return s.sourceFilename }

// Copy returns a deep copy.
func (s *Spectrum) Copy() *Spectrum {
	c := *s
	c.data = wrap(s.Kind(), s.data.series().Clone())
	c.binEdgesKeV = core.Clone(s.binEdgesKeV)
	return &c
}

// native returns the stored series without copying.
func (s *Spectrum) native() uncertain.Series { return s.data.series() }

func (s *Spectrum) countsSeries() (uncertain.Series, error) {
	switch d := s.data.(type) {
	case countsData:
		return d.counts, nil
	case rateData:
		if !s.livetime.ok {
			return uncertain.Series{}, fmt.Errorf("%w: cannot derive counts from cps", ErrMissingLivetime)
		}
		return d.cps.Scale(s.livetime.v), nil
	}
	panic("spectrum: unknown data variant")
}

func (s *Spectrum) cpsSeries() (uncertain.Series, error) {
	switch d := s.data.(type) {
	case rateData:
		return d.cps, nil
	case countsData:
		if !s.livetime.ok {
			return uncertain.Series{}, fmt.Errorf("%w: cannot derive cps from counts", ErrMissingLivetime)
		}
		return d.counts.Div(s.livetime.v), nil
	}
	panic("spectrum: unknown data variant")
}

func (s *Spectrum) cpsKeVSeries() (uncertain.Series, error) {
	widths, err := s.BinWidths()
	if err != nil {
		return uncertain.Series{}, err
	}
	cps, err := s.cpsSeries()
	if err != nil {
		return uncertain.Series{}, err
	}
	inv := make([]float64, len(widths))
	for i, w := range widths {
		inv[i] = 1 / w
	}
	return cps.MulExact(inv)
}

// Counts returns counts with uncertainties, derived from cps and livetime for
// rate-based spectra.
func (s *Spectrum) Counts() (uncertain.Series, error) {
	c, err := s.countsSeries()
	return c.Clone(), err
}

// CountsVals returns the nominal counts.
func (s *Spectrum) CountsVals() ([]float64, error) {
	c, err := s.countsSeries()
	return core.Clone(c.Values), err
}

// CountsUncs returns the counts uncertainties.
func (s *Spectrum) CountsUncs() ([]float64, error) {
	c, err := s.countsSeries()
	return core.Clone(c.Sigmas), err
}

// CPS returns counts per second, derived from counts and livetime for
// counts-based spectra.
func (s *Spectrum) CPS() (uncertain.Series, error) {
	c, err := s.cpsSeries()
	return c.Clone(), err
}

// CPSVals returns the nominal counts per second.
func (s *Spectrum) CPSVals() ([]float64, error) {
	c, err := s.cpsSeries()
	return core.Clone(c.Values), err
}

// CPSUncs returns the counts per second uncertainties.
func (s *Spectrum) CPSUncs() ([]float64, error) {
	c, err := s.cpsSeries()
	return core.Clone(c.Sigmas), err
}

// CPSKeV returns counts per second per keV of bin width.
func (s *Spectrum) CPSKeV() (uncertain.Series, error) {
	return s.cpsKeVSeries()
}

// CPSKeVVals returns the nominal counts per second per keV.
func (s *Spectrum) CPSKeVVals() ([]float64, error) {
	c, err := s.cpsKeVSeries()
	return c.Values, err
}

// CPSKeVUncs returns the counts per second per keV uncertainties.
func (s *Spectrum) CPSKeVUncs() ([]float64, error) {
	c, err := s.cpsKeVSeries()
	return c.Sigmas, err
}

// Channels returns the channel indices 0..N-1.
func (s *Spectrum) Channels() []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// BinEdgesKeV returns a copy of the energy bin edges, or nil.
func (s *Spectrum) BinEdgesKeV() []float64 { return core.Clone(s.binEdgesKeV) }

// EnergiesKeV returns the energy bin centres.
func (s *Spectrum) EnergiesKeV() ([]float64, error) {
	if !s.IsCalibrated() {
		return nil, ErrUncalibrated
	}
	return hist.Centers(s.binEdgesKeV), nil
}

// BinWidths returns the energy width of every bin in keV.
func (s *Spectrum) BinWidths() ([]float64, error) {
	if !s.IsCalibrated() {
		return nil, ErrUncalibrated
	}
	return hist.Widths(s.binEdgesKeV), nil
}

// CalibrationID returns a fingerprint of the bin edges; 0 when uncalibrated.
// Spectra with equal non-zero IDs share their calibration.
func (s *Spectrum) CalibrationID() uint64 { return calib.Fingerprint(s.binEdgesKeV) }

// Summary returns statistics of the native series. Centroid and Spread are
// in keV when calibrated and in channels otherwise.
func (s *Spectrum) Summary() summary.Stats {
	var pos []float64
	if s.IsCalibrated() {
		pos = hist.Centers(s.binEdgesKeV)
	}
	return summary.Calculate(s.native().Values, pos)
}

func (s *Spectrum) String() string {
	var b strings.Builder
	b.WriteString("Spectrum")
	line := func(k string, v any) {
		fmt.Fprintf(&b, "\n    %-16s%v", k+":", v)
	}
	line("kind", s.Kind())
	line("start_time", formatTime(s.startTime))
	line("stop_time", formatTime(s.stopTime))
	line("realtime", formatFloat(s.realtime))
	line("livetime", formatFloat(s.livetime))
	line("is_calibrated", s.IsCalibrated())
	if s.IsCalibrated() {
		line("calibration", fmt.Sprintf("%016x", s.CalibrationID()))
	}
	line("num_channels", s.Len())
	if c, err := s.countsSeries(); err == nil {
		line("gross_counts", core.KahanSum(c.Values))
	} else {
		line("gross_counts", "<none>")
	}
	if c, err := s.cpsSeries(); err == nil {
		line("gross_cps", core.KahanSum(c.Values))
	} else {
		line("gross_cps", "<none>")
	}
	if s.sourceFilename != "" {
		line("filename", s.sourceFilename)
	} else {
		line("filename", "<none>")
	}
	return b.String()
}

func formatTime(t optional[time.Time]) string {
	if !t.ok {
		return "<none>"
	}
	return t.v.Format(time.RFC3339)
}

func formatFloat(v optional[float64]) string {
	if !v.ok {
		return "<none>"
	}
	return fmt.Sprintf("%g", v.v)
}
