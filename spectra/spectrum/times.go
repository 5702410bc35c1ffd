package spectrum

import (
	"fmt"
	"math"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an acquisition timestamp. Layouts without a zone are
// read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparsable timestamp %q", ErrConstruction, s)
}

// reconcileTimes derives the missing one of start, stop and realtime. At
// most two may be given.
func reconcileTimes(start, stop optional[time.Time], realtime optional[float64]) (optional[time.Time], optional[time.Time], optional[float64], error) {
	given := 0
	for _, ok := range []bool{start.ok, stop.ok, realtime.ok} {
		if ok {
			given++
		}
	}
	if given > 2 {
		return start, stop, realtime, fmt.Errorf("%w: give at most two of start time, stop time and realtime", ErrConstruction)
	}

	switch {
	case start.ok && stop.ok:
		if start.v.After(stop.v) {
			return start, stop, realtime, fmt.Errorf("%w: start time %s is after stop time %s",
				ErrConstruction, start.v.Format(time.RFC3339), stop.v.Format(time.RFC3339))
		}
		realtime = some(stop.v.Sub(start.v).Seconds())
	case start.ok && realtime.ok:
		stop = some(start.v.Add(secondsToDuration(realtime.v)))
	case stop.ok && realtime.ok:
		start = some(stop.v.Add(-secondsToDuration(realtime.v)))
	}
	return start, stop, realtime, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func checkDuration(name string, v optional[float64]) error {
	if !v.ok {
		return nil
	}
	if math.IsNaN(v.v) || math.IsInf(v.v, 0) || v.v < 0 {
		return fmt.Errorf("%w: %s %v must be finite and non-negative", ErrConstruction, name, v.v)
	}
	return nil
}
