package spectrum

import "time"

// optional is a value that may be absent.
type optional[T any] struct {
	v  T
	ok bool
}

func some[T any](v T) optional[T] { return optional[T]{v: v, ok: true} }

type config struct {
	counts optional[[]float64]
	cps    optional[[]float64]
	uncs   optional[[]float64]
	edges  optional[[]float64]

	livetime optional[float64]
	realtime optional[float64]

	start    optional[time.Time]
	startRaw optional[string]
	stop     optional[time.Time]
	stopRaw  optional[string]

	sourceFilename string
}

// Option configures [New].
type Option func(*config)

// WithCounts sets counts per channel. The slice is copied.
func WithCounts(counts []float64) Option {
	return func(c *config) { c.counts = some(counts) }
}

// WithCPS sets counts per second per channel. The slice is copied.
func WithCPS(cps []float64) Option {
	return func(c *config) { c.cps = some(cps) }
}

// WithUncs sets explicit per-channel standard deviations for the counts or
// rates. NaN marks an unknown uncertainty.
func WithUncs(uncs []float64) Option {
	return func(c *config) { c.uncs = some(uncs) }
}

// WithBinEdgesKeV sets the energy calibration as N+1 strictly increasing
// bin edges.
func WithBinEdgesKeV(edges []float64) Option {
	return func(c *config) { c.edges = some(edges) }
}

// WithLivetime sets the livetime in seconds.
func WithLivetime(seconds float64) Option {
	return func(c *config) { c.livetime = some(seconds) }
}

// WithRealtime sets the realtime in seconds.
func WithRealtime(seconds float64) Option {
	return func(c *config) { c.realtime = some(seconds) }
}

// WithStartTime sets the acquisition start.
func WithStartTime(t time.Time) Option {
	return func(c *config) {
		c.start = some(t)
		c.startRaw = optional[string]{}
	}
}

// WithStopTime sets the acquisition stop.
func WithStopTime(t time.Time) Option {
	return func(c *config) {
		c.stop = some(t)
		c.stopRaw = optional[string]{}
	}
}

// WithStartTimeString sets the acquisition start from a timestamp string.
// See [ParseTimestamp] for the accepted layouts.
func WithStartTimeString(s string) Option {
	return func(c *config) {
		c.startRaw = some(s)
		c.start = optional[time.Time]{}
	}
}

// WithStopTimeString sets the acquisition stop from a timestamp string.
func WithStopTimeString(s string) Option {
	return func(c *config) {
		c.stopRaw = some(s)
		c.stop = optional[time.Time]{}
	}
}

// WithSourceFilename records the file the data came from.
func WithSourceFilename(name string) Option {
	return func(c *config) { c.sourceFilename = name }
}
