// Package summary computes summary statistics of per-channel spectrum data.
package summary

import "math"

// Stats holds single-pass statistics of a spectrum-like series.
type Stats struct {
	Length   int
	Total    float64 // Kahan sum of all values
	Mean     float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	NonZero  int
	Centroid float64 // weighted mean position over positive values
	Spread   float64 // weighted standard deviation of position over positive values
}

// emptyStats returns the statistics of an empty series.
func emptyStats() Stats {
	return Stats{
		MaxPos:   -1,
		MinPos:   -1,
		Centroid: math.NaN(),
		Spread:   math.NaN(),
	}
}

// Calculate computes all statistics in a single pass. Positions default to
// the channel index when positions is nil; otherwise it must have the same
// length as values. Centroid and Spread are NaN when no value is positive.
//
// The position moments use West's weighted variant of Welford's algorithm.
func Calculate(values, positions []float64) Stats {
	n := len(values)
	if n == 0 {
		return emptyStats()
	}
	if positions != nil && len(positions) != n {
		panic("summary: positions length mismatch")
	}

	var (
		sum, comp float64
		maxVal    = values[0]
		maxPos    int
		minVal    = values[0]
		minPos    int
		nonZero   int
	)

	var (
		wSum float64
		mean float64
		m2   float64
	)

	for i, v := range values {
		y := v - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t

		if v > maxVal {
			maxVal = v
			maxPos = i
		}
		if v < minVal {
			minVal = v
			minPos = i
		}
		if v != 0 {
			nonZero++
		}

		if v > 0 {
			x := float64(i)
			if positions != nil {
				x = positions[i]
			}
			wSum += v
			delta := x - mean
			r := delta * v / wSum
			mean += r
			m2 += (wSum - v) * delta * r
		}
	}

	s := Stats{
		Length:   n,
		Total:    sum,
		Mean:     sum / float64(n),
		Max:      maxVal,
		MaxPos:   maxPos,
		Min:      minVal,
		MinPos:   minPos,
		NonZero:  nonZero,
		Centroid: math.NaN(),
		Spread:   math.NaN(),
	}
	if wSum > 0 {
		s.Centroid = mean
		s.Spread = math.Sqrt(m2 / wSum)
	}
	return s
}

// Total returns the compensated sum of values.
func Total(values []float64) float64 {
	var sum, c float64
	for _, x := range values {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}
