// Package solve iterates the discrete Laplace equation on a heated
// plate by Jacobi relaxation: each sweep replaces every interior cell
// with the average of its four neighbors from the previous sweep's
// snapshot, and iteration stops once the largest change in a sweep
// falls below the tolerance.
//
// Reading neighbors only from the snapshot (never from the grid being
// written) makes a sweep independent of traversal order, which is what
// lets the compute backends split it across workers without changing a
// single bit of the output.
package solve
