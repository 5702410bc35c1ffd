// Package rebin redistributes histogram counts from one set of bin edges onto
// another while conserving counts over the overlapping domain.
//
// Within input bin i, spanning [lo, hi) with total cts and trend slope m,
// counts are assumed to follow a linear density
//
//	density(x) = m*x + b,   b = (cts - m/2*(hi^2 - lo^2)) / (hi - lo)
//
// and every output bin receives the integral of that density over its overlap
// with each input bin. A slope with |m| below [FlatSlope] is treated as a
// uniform density.
//
// The kernel is a single monotonic two-pointer scan over input and output
// edges, O(n_in + n_out), with no allocations in [Into].
//
// Output bins outside the input edge range receive zero; nothing is
// extrapolated. Use [Report] to see how many counts were clipped.
//
// Common workflows:
//   - Rebin(counts, edges, outEdges, slopes)
//   - Into(dst, counts, edges, outEdges, slopes) for reuse of dst
//   - Variance(variances, edges, outEdges) for uncertainty propagation
//   - Rebin2D(rows, rowEdges, outEdges, rowSlopes, opts...) for many spectra
package rebin
