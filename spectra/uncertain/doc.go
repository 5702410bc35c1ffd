// Package uncertain implements (nominal value, standard deviation) pairs and
// parallel series of them with first-order propagation for independent
// quantities:
//
//	sum:        v1+v2, sqrt(s1^2 + s2^2)
//	difference: v1-v2, sqrt(s1^2 + s2^2)
//	scale by k: k*v,   |k|*s
//	divide by k: scale by 1/k
//
// Scaling by an uncertain factor (kv, ks) gives kv*v with
// sqrt((kv*s)^2 + (v*ks)^2).
//
// Quadrature sums and element-wise products dispatch to the SIMD kernels of
// algo-vecmath.
package uncertain
