package spectrum

import (
	"math"
	"math/rand"
)

// randSource is the subset of *rand.Rand used for sampling.
type randSource interface {
	Float64() float64
	NormFloat64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64     { return rand.Float64() }
func (globalRand) NormFloat64() float64 { return rand.NormFloat64() }

// directBinomialMax bounds the trial count sampled Bernoulli by Bernoulli.
const directBinomialMax = 64

// binomial draws from Binomial(n, p). Large n are reduced by the beta
// splitting of Knuth (TAOCP 3.4.1) until direct sampling is cheap.
func binomial(r randSource, n int64, p float64) int64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}

	var k int64
	for n > directBinomialMax {
		a := 1 + n/2
		b := n + 1 - a
		x := betaSample(r, float64(a), float64(b))
		if x >= p {
			n = a - 1
			p /= x
		} else {
			k += a
			n = b - 1
			p = (p - x) / (1 - x)
		}
	}
	for range n {
		if r.Float64() < p {
			k++
		}
	}
	return k
}

func betaSample(r randSource, a, b float64) float64 {
	x := gammaSample(r, a)
	y := gammaSample(r, b)
	return x / (x + y)
}

// gammaSample draws from Gamma(shape, 1) for shape >= 1 (Marsaglia-Tsang).
func gammaSample(r randSource, shape float64) float64 {
	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
