package solve

// Config controls a solve.
type Config struct {
	// Epsilon is the convergence tolerance: iteration stops once the
	// largest per-sweep change drops below it. Must be >= 0.
	Epsilon float64

	// MaxSweeps bounds the iteration count; 0 means unbounded. When
	// the bound is hit before convergence the solver returns
	// ErrDidNotConverge.
	MaxSweeps int

	// Workers sets the sweep parallelism: 1 forces the serial backend,
	// 0 picks automatically by grid size, anything else runs that many
	// workers.
	Workers int

	// Progress, when non-nil, is called after sweeps 1, 2, 4, 8, ...
	// with the sweep number and the sweep's convergence metric. The
	// doubling cadence keeps long solves quiet without losing the
	// early iterations.
	Progress ProgressFunc

	// OnSweep, when non-nil, is called after every sweep. It runs on
	// the solver goroutine and must return quickly; the live view uses
	// it to mirror progress without slowing the solve.
	OnSweep ProgressFunc

	// KeepTrace records every sweep's convergence metric in
	// Result.Trace. Off by default: a 1000x1000 solve at a tight
	// tolerance runs tens of thousands of sweeps.
	KeepTrace bool
}

// ProgressFunc receives the sweep number and that sweep's maximum
// absolute change.
type ProgressFunc func(sweep int, diff float64)

// Result reports how a solve ended.
type Result struct {
	// Sweeps is the number of completed Jacobi sweeps.
	Sweeps int

	// FinalDiff is the last sweep's maximum absolute change. On a
	// converged solve it is < Epsilon.
	FinalDiff float64

	// Trace holds every sweep's diff when Config.KeepTrace is set.
	Trace []float64
}
