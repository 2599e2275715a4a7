// Package engine computes order compliance for tiered buyers.
//
// Everything here is pure and synchronous: ComputeSummary and
// ProjectQuantities take in-memory inputs, perform no I/O, and are safe to
// call on every input change. Persistence and presentation live elsewhere.
package engine
