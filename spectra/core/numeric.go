package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
// NaN is never nearly equal to anything, including NaN.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf in x, or -1.
func FirstNonFinite(x []float64) int {
	for i, v := range x {
		if !IsFinite(v) {
			return i
		}
	}
	return -1
}

// FirstNonIncreasing returns the first index i > 0 where x[i] is not strictly
// greater than x[i-1], or -1 if x is strictly increasing. NaN values always
// break monotonicity; a lone NaN element reports index 0.
func FirstNonIncreasing(x []float64) int {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return i
		}
	}
	if len(x) == 1 && math.IsNaN(x[0]) {
		return 0
	}
	return -1
}

// FirstNegative returns the index of the first value below zero, or -1.
func FirstNegative(x []float64) int {
	for i, v := range x {
		if v < 0 {
			return i
		}
	}
	return -1
}

// Equal reports whether a and b have the same length and identical elements.
func Equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// KahanSum returns the compensated sum of x.
func KahanSum(x []float64) float64 {
	var sum, c float64
	for _, v := range x {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}
