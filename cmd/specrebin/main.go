// Command specrebin runs a spectrum rebin job and prints the result as a
// table.
//
// Usage:
//
//	specrebin [flags] job.yaml
//
// A job lists spectra inline (counts or cps, calibration, livetime, times)
// and an output grid. Every spectrum is optionally combined and smoothed,
// then rebinned onto the grid and printed one column per spectrum.
//
// Environment:
//
//	SPECREBIN_WORKERS     rebin worker count (0 = GOMAXPROCS)
//	SPECREBIN_LOG_LEVEL   debug, info, warn or error
//	SPECREBIN_LOG_FORMAT  text or json
//
// Flags override the environment.
//
// Examples:
//
//	specrebin job.yaml
//	specrebin -y cpskev -workers 4 job.yaml
//	specrebin -summary job.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectra/internal/config"
	"github.com/cwbudde/algo-spectra/internal/cpu"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	workers := flag.Int("workers", envCfg.Workers, "rebin worker count (0 = GOMAXPROCS)")
	logLevel := flag.String("log-level", envCfg.LogLevel, "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", envCfg.LogFormat, "log format: text or json")
	xMode := flag.String("x", "", "x column: auto, channel or energy (overrides job)")
	yMode := flag.String("y", "", "y columns: counts, cps or cpskev (overrides job)")
	showSummary := flag.Bool("summary", false, "print per-spectrum summary instead of the table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specrebin [flags] job.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Rebins the spectra of a YAML job onto a common grid.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  specrebin job.yaml\n")
		fmt.Fprintf(os.Stderr, "  specrebin -y cpskev -workers 4 job.yaml\n")
		fmt.Fprintf(os.Stderr, "  specrebin -summary job.yaml\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := config.NewLogger(os.Stderr, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger.Debug("cpu features", "cpu", cpu.Detect())

	job, err := config.LoadJob(flag.Arg(0))
	if err != nil {
		logger.Error("load job", "path", flag.Arg(0), "err", err)
		os.Exit(1)
	}
	if *xMode != "" {
		job.X = *xMode
	}
	if *yMode != "" {
		job.Y = *yMode
	}

	res, err := run(job, *workers, logger)
	if err != nil {
		logger.Error("run job", "err", err)
		os.Exit(1)
	}

	if *showSummary {
		err = printSummary(os.Stdout, res)
	} else {
		err = printTable(os.Stdout, res, job)
	}
	if err != nil {
		logger.Error("write output", "err", err)
		os.Exit(1)
	}
}

type result struct {
	labels  []string
	spectra []*spectrum.Spectrum
}

func run(job *config.Job, workers int, logger *slog.Logger) (*result, error) {
	res := &result{}
	for i, in := range job.Spectra {
		s, err := in.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Label(i), err)
		}
		if job.CombineBins > 1 {
			if s, err = s.CombineBins(job.CombineBins); err != nil {
				return nil, fmt.Errorf("%s: %w", in.Label(i), err)
			}
		}
		if job.SmoothFWHM > 0 {
			if s, err = s.Smooth(job.SmoothFWHM); err != nil {
				return nil, fmt.Errorf("%s: %w", in.Label(i), err)
			}
		}
		logger.Debug("loaded spectrum", "name", in.Label(i), "channels", s.Len(), "kind", s.Kind().String(),
			"calibration", fmt.Sprintf("%016x", s.CalibrationID()))
		res.labels = append(res.labels, in.Label(i))
		res.spectra = append(res.spectra, s)
	}

	if edges := job.OutputEdges(); edges != nil {
		rebinned, warns, err := spectrum.RebinAll(res.spectra, edges, workers)
		if err != nil {
			return nil, err
		}
		warns.LogTo(logger)
		res.spectra = rebinned
		logger.Info("rebinned spectra", "count", len(rebinned), "bins", len(edges)-1, "workers", workers)
	}

	if job.Sum {
		total, warns, err := spectrum.Sum(res.spectra...)
		if err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}
		warns.LogTo(logger)
		res.labels = append(res.labels, "sum")
		res.spectra = append(res.spectra, total)
	}
	return res, nil
}

func printTable(w io.Writer, res *result, job *config.Job) error {
	x, err := spectrum.ParseXMode(job.X)
	if err != nil {
		return err
	}
	y, err := spectrum.ParseYMode(job.Y)
	if err != nil {
		return err
	}

	series := make([]spectrum.PlotSeries, len(res.spectra))
	for i, s := range res.spectra {
		if series[i], err = s.PlotData(x, y); err != nil {
			return fmt.Errorf("%s: %w", res.labels[i], err)
		}
	}
	n := len(series[0].X)
	for i, ps := range series {
		if len(ps.X) != n {
			return fmt.Errorf("%s has %d bins, %s has %d; give an output grid", res.labels[i], len(ps.X), res.labels[0], n)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s", series[0].XLabel)
	for _, l := range res.labels {
		fmt.Fprintf(tw, "\t%s\t+/-", l)
	}
	fmt.Fprintf(tw, "\n")
	for row := range n {
		fmt.Fprintf(tw, "%.4f", series[0].X[row])
		for _, ps := range series {
			fmt.Fprintf(tw, "\t%.6g\t%.3g", ps.Y[row], ps.YErr[row])
		}
		fmt.Fprintf(tw, "\n")
	}
	return tw.Flush()
}

func printSummary(w io.Writer, res *result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum\tKind\tChannels\tTotal\tPeak Ch\tCentroid\tSpread\tLivetime [s]\n")
	fmt.Fprintf(tw, "--------\t----\t--------\t-----\t-------\t--------\t------\t------------\n")
	for i, s := range res.spectra {
		sum := s.Summary()
		lt := "-"
		if v, ok := s.Livetime(); ok {
			lt = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.6g\t%d\t%.4f\t%.4f\t%s\n",
			res.labels[i], s.Kind(), s.Len(), sum.Total, sum.MaxPos, sum.Centroid, sum.Spread, lt)
	}
	return tw.Flush()
}
