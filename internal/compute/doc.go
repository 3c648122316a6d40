// Package compute provides the sweep backends for the relaxation
// engine.
//
// A Jacobi sweep reads every neighbor from the previous-iteration
// snapshot, so interior cells can be updated in any order, or in
// parallel, without changing the result. The package exploits that:
//
//   - Serial: a plain row-major loop
//   - CPU: interior rows partitioned across worker goroutines
//
// Both backends produce bit-identical grids and convergence metrics;
// AutoSelect chooses between them by interior size.
package compute
