// Package core holds small numeric helpers shared by the spectrum packages:
// tolerance comparison, finiteness and monotonicity scans, and slice reuse.
package core
