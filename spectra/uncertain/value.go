package uncertain

import (
	"fmt"
	"math"
)

// Value is a nominal value with a standard deviation.
type Value struct {
	Nominal float64
	Sigma   float64
}

// Exact returns a Value with zero uncertainty.
func Exact(v float64) Value {
	return Value{Nominal: v}
}

// IsExact reports whether v carries no uncertainty.
func (v Value) IsExact() bool {
	return v.Sigma == 0
}

// Reciprocal returns 1/v with sigma/v^2.
func (v Value) Reciprocal() Value {
	inv := 1 / v.Nominal
	return Value{Nominal: inv, Sigma: math.Abs(v.Sigma) * inv * inv}
}

// Add returns v+o for independent v and o.
func (v Value) Add(o Value) Value {
	return Value{Nominal: v.Nominal + o.Nominal, Sigma: math.Hypot(v.Sigma, o.Sigma)}
}

// Sub returns v-o for independent v and o.
func (v Value) Sub(o Value) Value {
	return Value{Nominal: v.Nominal - o.Nominal, Sigma: math.Hypot(v.Sigma, o.Sigma)}
}

// Mul returns v*o for independent v and o.
func (v Value) Mul(o Value) Value {
	return Value{
		Nominal: v.Nominal * o.Nominal,
		Sigma:   math.Hypot(o.Nominal*v.Sigma, v.Nominal*o.Sigma),
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%g+/-%g", v.Nominal, v.Sigma)
}
