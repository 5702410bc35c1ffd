package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectra/spectra/calib"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

// ErrInvalidJob reports a job file that cannot be run.
var ErrInvalidJob = errors.New("config: invalid job")

// Job describes one specrebin run.
type Job struct {
	Spectra []SpectrumInput `yaml:"spectra"`

	// Output grid: either explicit OutEdges or a linear Grid.
	OutEdges []float64 `yaml:"outEdges,omitempty"`
	Grid     *Grid     `yaml:"grid,omitempty"`

	CombineBins int     `yaml:"combineBins,omitempty"`
	SmoothFWHM  float64 `yaml:"smoothFwhm,omitempty"`
	Sum         bool    `yaml:"sum,omitempty"`

	X string `yaml:"x,omitempty"`
	Y string `yaml:"y,omitempty"`
}

// Grid is a linear output grid of Bins bins from Lo to Hi keV.
type Grid struct {
	Lo   float64 `yaml:"lo"`
	Hi   float64 `yaml:"hi"`
	Bins int     `yaml:"bins"`
}

// Edges returns the Bins+1 grid edges.
func (g Grid) Edges() []float64 {
	out := make([]float64, g.Bins+1)
	step := (g.Hi - g.Lo) / float64(g.Bins)
	for i := range out {
		out[i] = g.Lo + step*float64(i)
	}
	out[g.Bins] = g.Hi
	return out
}

// SpectrumInput is one spectrum given inline in a job.
type SpectrumInput struct {
	Name   string    `yaml:"name"`
	Counts []float64 `yaml:"counts,omitempty"`
	CPS    []float64 `yaml:"cps,omitempty"`
	Uncs   []float64 `yaml:"uncs,omitempty"`

	// Either explicit edges or polynomial calibration coefficients in
	// ascending order.
	BinEdgesKeV []float64 `yaml:"binEdgesKeV,omitempty"`
	Calibration []float64 `yaml:"calibration,omitempty"`

	Livetime  *float64 `yaml:"livetime,omitempty"`
	Realtime  *float64 `yaml:"realtime,omitempty"`
	StartTime string   `yaml:"startTime,omitempty"`
	StopTime  string   `yaml:"stopTime,omitempty"`
}

// LoadJob reads and validates a YAML job file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return ParseJob(data)
}

// ParseJob decodes and validates a YAML job.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate checks the parts of a job that do not depend on spectrum data.
func (j *Job) Validate() error {
	if len(j.Spectra) == 0 {
		return fmt.Errorf("%w: no spectra", ErrInvalidJob)
	}
	if len(j.OutEdges) > 0 && j.Grid != nil {
		return fmt.Errorf("%w: give either outEdges or grid", ErrInvalidJob)
	}
	if j.Grid != nil && (j.Grid.Bins < 1 || !(j.Grid.Hi > j.Grid.Lo)) {
		return fmt.Errorf("%w: grid needs bins >= 1 and hi > lo", ErrInvalidJob)
	}
	if j.CombineBins < 0 {
		return fmt.Errorf("%w: combineBins %d is negative", ErrInvalidJob, j.CombineBins)
	}
	if j.SmoothFWHM < 0 {
		return fmt.Errorf("%w: smoothFwhm %v is negative", ErrInvalidJob, j.SmoothFWHM)
	}
	for i, in := range j.Spectra {
		if len(in.BinEdgesKeV) > 0 && len(in.Calibration) > 0 {
			return fmt.Errorf("%w: spectra[%d]: give either binEdgesKeV or calibration", ErrInvalidJob, i)
		}
	}
	return nil
}

// OutputEdges returns the job's output grid, or nil when the spectra are
// kept on their own edges.
func (j *Job) OutputEdges() []float64 {
	if j.Grid != nil {
		return j.Grid.Edges()
	}
	return j.OutEdges
}

// Label returns the spectrum name, or its position when unnamed.
func (in SpectrumInput) Label(i int) string {
	if in.Name != "" {
		return in.Name
	}
	return fmt.Sprintf("spectrum%d", i)
}

// Build constructs the spectrum described by in.
func (in SpectrumInput) Build() (*spectrum.Spectrum, error) {
	var opts []spectrum.Option
	n := len(in.Counts)
	if in.Counts != nil {
		opts = append(opts, spectrum.WithCounts(in.Counts))
	}
	if in.CPS != nil {
		opts = append(opts, spectrum.WithCPS(in.CPS))
		n = len(in.CPS)
	}
	if in.Uncs != nil {
		opts = append(opts, spectrum.WithUncs(in.Uncs))
	}
	if in.BinEdgesKeV != nil {
		opts = append(opts, spectrum.WithBinEdgesKeV(in.BinEdgesKeV))
	}
	if len(in.Calibration) > 0 && n > 0 {
		cal, err := calib.NewPolynomial(in.Calibration...)
		if err != nil {
			return nil, err
		}
		edges, err := calib.BinEdges(cal, n)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spectrum.WithBinEdgesKeV(edges))
	}
	if in.Livetime != nil {
		opts = append(opts, spectrum.WithLivetime(*in.Livetime))
	}
	if in.Realtime != nil {
		opts = append(opts, spectrum.WithRealtime(*in.Realtime))
	}
	if in.StartTime != "" {
		opts = append(opts, spectrum.WithStartTimeString(in.StartTime))
	}
	if in.StopTime != "" {
		opts = append(opts, spectrum.WithStopTimeString(in.StopTime))
	}
	return spectrum.New(opts...)
}
