package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/spectra/calib"
	"github.com/cwbudde/algo-spectra/spectra/core"
)

// ApplyCalibration evaluates cal at the channel edges -0.5 ... N-0.5 and
// attaches the result as bin edges. The spectrum is unchanged on error.
func (s *Spectrum) ApplyCalibration(cal calib.Calibration) error {
	edges, err := calib.BinEdges(cal, s.Len())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.binEdgesKeV = edges
	return nil
}

// CalibrateLike copies the bin edges of other.
func (s *Spectrum) CalibrateLike(other *Spectrum) error {
	if other == nil || !other.IsCalibrated() {
		return fmt.Errorf("%w: other spectrum has no calibration", ErrUncalibrated)
	}
	if other.Len() != s.Len() {
		return fmt.Errorf("%w: cannot copy calibration of %d channels onto %d", ErrDomain, other.Len(), s.Len())
	}
	s.binEdgesKeV = core.Clone(other.binEdgesKeV)
	return nil
}

// RmCalibration removes the bin edges.
func (s *Spectrum) RmCalibration() {
	s.binEdgesKeV = nil
}
