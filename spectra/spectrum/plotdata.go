package spectrum

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spectra/spectra/uncertain"
)

// XMode selects the abscissa of [Spectrum.PlotData].
type XMode int

const (
	// XAuto plots energy when calibrated and channels otherwise.
	XAuto XMode = iota
	// XChannel plots channel indices.
	XChannel
	// XEnergy plots energy bin centres.
	XEnergy
)

// YMode selects the ordinate of [Spectrum.PlotData].
type YMode int

const (
	// YCounts plots counts per channel.
	YCounts YMode = iota
	// YCPS plots counts per second.
	YCPS
	// YCPSKeV plots counts per second per keV.
	YCPSKeV
)

// ParseXMode parses "auto", "channel" or "energy".
func ParseXMode(s string) (XMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return XAuto, nil
	case "channel", "channels":
		return XChannel, nil
	case "energy", "kev":
		return XEnergy, nil
	}
	return 0, fmt.Errorf("%w: unknown x mode %q", ErrValidation, s)
}

// ParseYMode parses "counts", "cps" or "cpskev".
func ParseYMode(s string) (YMode, error) {
	switch strings.ToLower(s) {
	case "", "counts":
		return YCounts, nil
	case "cps":
		return YCPS, nil
	case "cpskev":
		return YCPSKeV, nil
	}
	return 0, fmt.Errorf("%w: unknown y mode %q", ErrValidation, s)
}

// PlotSeries holds the arrays a plotting collaborator draws.
type PlotSeries struct {
	X      []float64
	Y      []float64
	YErr   []float64
	XLabel string
	YLabel string
}

// PlotData returns x, y and y-uncertainty arrays for the requested modes.
func (s *Spectrum) PlotData(x XMode, y YMode) (PlotSeries, error) {
	var ps PlotSeries

	if x == XAuto {
		x = XChannel
		if s.IsCalibrated() {
			x = XEnergy
		}
	}
	switch x {
	case XChannel:
		ps.X = make([]float64, s.Len())
		for i := range ps.X {
			ps.X[i] = float64(i)
		}
		ps.XLabel = "Channel"
	case XEnergy:
		e, err := s.EnergiesKeV()
		if err != nil {
			return PlotSeries{}, err
		}
		ps.X = e
		ps.XLabel = "Energy [keV]"
	default:
		return PlotSeries{}, fmt.Errorf("%w: unknown x mode %d", ErrValidation, x)
	}

	var err error
	switch y {
	case YCounts:
		if ps.Y, err = s.CountsVals(); err == nil {
			ps.YErr, err = s.CountsUncs()
		}
		ps.YLabel = "Counts"
	case YCPS:
		if ps.Y, err = s.CPSVals(); err == nil {
			ps.YErr, err = s.CPSUncs()
		}
		ps.YLabel = "Countrate [1/s]"
	case YCPSKeV:
		var sr uncertain.Series
		if sr, err = s.CPSKeV(); err == nil {
			ps.Y, ps.YErr = sr.Values, sr.Sigmas
		}
		ps.YLabel = "Countrate [1/s/keV]"
	default:
		return PlotSeries{}, fmt.Errorf("%w: unknown y mode %d", ErrValidation, y)
	}
	if err != nil {
		return PlotSeries{}, err
	}
	return ps, nil
}
