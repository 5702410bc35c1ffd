package spectrum

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-spectra/spectra/core"
	"github.com/cwbudde/algo-spectra/spectra/uncertain"
)

// compatible checks that s and other can be combined channel by channel.
func (s *Spectrum) compatible(other *Spectrum) error {
	if other == nil {
		return fmt.Errorf("%w: nil spectrum", ErrDomain)
	}
	if s.Len() != other.Len() {
		return fmt.Errorf("%w: %d channels vs %d", ErrDomain, s.Len(), other.Len())
	}
	if s.IsCalibrated() != other.IsCalibrated() {
		return fmt.Errorf("%w: only one spectrum is calibrated; use CalibrateLike if both share a calibration", ErrDomain)
	}
	if s.IsCalibrated() && !core.Equal(s.binEdgesKeV, other.binEdgesKeV) {
		return fmt.Errorf("%w: spectra have different calibrations (%016x vs %016x); rebin one onto the other's edges first",
			ErrNotImplemented, s.CalibrationID(), other.CalibrationID())
	}
	return nil
}

// Add returns s+other. Two counts-based spectra give a counts-based sum whose
// livetime is the sum of both livetimes, or absent with a
// [WarnLivetimeDropped] warning when either is unknown. Two rate-based
// spectra give a rate-based sum. Mixing the kinds fails with [ErrDomain].
func (s *Spectrum) Add(other *Spectrum) (*Spectrum, Warnings, error) {
	if err := s.compatible(other); err != nil {
		return nil, nil, err
	}
	if s.Kind() != other.Kind() {
		return nil, nil, fmt.Errorf("%w: adding counts-based and cps-based spectra is ambiguous; "+
			"use New(WithCounts(a.CountsVals()+b.CountsVals())) or New(WithCPS(a.CPSVals()+b.CPSVals()))", ErrDomain)
	}

	sum, err := uncertain.Add(s.native(), other.native())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}
	out := derived(s.Kind(), sum, s.binEdgesKeV)
	if s.Kind() == KindRate {
		return out, nil, nil
	}

	var warns Warnings
	if s.livetime.ok && other.livetime.ok {
		out.livetime = some(s.livetime.v + other.livetime.v)
	} else {
		warns = append(warns, newWarning(WarnLivetimeDropped,
			"addition of counts with missing livetime; livetime set to none",
			slog.Bool("left_livetime", s.livetime.ok), slog.Bool("right_livetime", other.livetime.ok)))
	}
	return out, warns, nil
}

// Sum adds spectra left to right and collects the warnings of every step.
func Sum(spectra ...*Spectrum) (*Spectrum, Warnings, error) {
	if len(spectra) == 0 {
		return nil, nil, fmt.Errorf("%w: no spectra to sum", ErrValidation)
	}
	if spectra[0] == nil {
		return nil, nil, fmt.Errorf("%w: nil spectrum", ErrDomain)
	}
	acc := spectra[0].Copy()
	var warns Warnings
	for i, sp := range spectra[1:] {
		next, w, err := acc.Add(sp)
		if err != nil {
			return nil, nil, fmt.Errorf("spectrum %d: %w", i+1, err)
		}
		acc = next
		warns = append(warns, w...)
	}
	return acc, warns, nil
}

// rateOperand converts one subtraction operand to counts per second. nominal
// reports that a counts-based operand without livetime was used as is.
func rateOperand(sp *Spectrum, side string) (cps uncertain.Series, nominal bool, w *Warning) {
	switch d := sp.data.(type) {
	case rateData:
		return d.cps, false, nil
	case countsData:
		if sp.livetime.ok {
			warn := newWarning(WarnCountsConvertedToRate,
				"counts-based spectrum converted to cps for subtraction",
				slog.String("operand", side), slog.Float64("livetime", sp.livetime.v))
			return d.counts.Div(sp.livetime.v), false, &warn
		}
		warn := newWarning(WarnLivetimeIgnored,
			"counts-based spectrum without livetime subtracted with unit livetime; livetimes ignored",
			slog.String("operand", side))
		return d.counts, true, &warn
	}
	panic("spectrum: unknown data variant")
}

// Subtract returns s-other as a rate-based spectrum without livetime.
// Counts-based operands are divided by their livetime. A counts-based
// operand without livetime is used at unit livetime with a
// [WarnLivetimeIgnored] warning; when neither operand has a rate or a
// livetime the subtraction fails with [ErrDomain].
func (s *Spectrum) Subtract(other *Spectrum) (*Spectrum, Warnings, error) {
	if err := s.compatible(other); err != nil {
		return nil, nil, err
	}

	a, aNominal, aw := rateOperand(s, "left")
	b, bNominal, bw := rateOperand(other, "right")
	if aNominal && bNominal {
		return nil, nil, fmt.Errorf("%w: subtraction of counts-based spectra without livetimes is not possible; "+
			"set a livetime or subtract the counts explicitly", ErrDomain)
	}

	diff, err := uncertain.Sub(a, b)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDomain, err)
	}

	var warns Warnings
	for _, w := range []*Warning{aw, bw} {
		if w != nil {
			warns = append(warns, *w)
		}
	}
	return derived(KindRate, diff, s.binEdgesKeV), warns, nil
}

func checkFactor(k uncertain.Value) error {
	if k.Nominal == 0 || math.IsNaN(k.Nominal) || math.IsInf(k.Nominal, 0) {
		return fmt.Errorf("%w: scaling factor %v must be nonzero and finite", ErrValidation, k.Nominal)
	}
	if k.Sigma < 0 || math.IsNaN(k.Sigma) || math.IsInf(k.Sigma, 0) {
		return fmt.Errorf("%w: scaling factor uncertainty %v must be finite and non-negative", ErrValidation, k.Sigma)
	}
	return nil
}

// Scale returns k*s. The kind and calibration are kept; livetime and
// acquisition times are dropped.
func (s *Spectrum) Scale(k uncertain.Value) (*Spectrum, error) {
	if err := checkFactor(k); err != nil {
		return nil, err
	}
	return derived(s.Kind(), s.native().ScaleUncertain(k), s.binEdgesKeV), nil
}

// Mul returns k*s for an exact factor.
func (s *Spectrum) Mul(k float64) (*Spectrum, error) {
	return s.Scale(uncertain.Exact(k))
}

// Div returns s/k for an exact factor.
func (s *Spectrum) Div(k float64) (*Spectrum, error) {
	return s.DivUncertain(uncertain.Exact(k))
}

// DivUncertain returns s/k.
func (s *Spectrum) DivUncertain(k uncertain.Value) (*Spectrum, error) {
	if err := checkFactor(k); err != nil {
		return nil, err
	}
	return s.Scale(k.Reciprocal())
}
