package compute

import "github.com/san-kum/heatlab/internal/grid"

// Backend executes one Jacobi sweep: every interior cell of cur is
// rewritten as the average of its four neighbors in prev, and the
// return value is the largest absolute change across the sweep.
//
// All neighbor reads come from prev, so the outcome is independent of
// traversal order and every backend must produce bit-identical grids
// and diff values.
type Backend interface {
	Name() string
	Sweep(prev, cur *grid.Grid) float64
}

// parallelThreshold is the interior cell count below which goroutine
// fan-out costs more than it saves.
const parallelThreshold = 4096

// AutoSelect picks a backend for the given grid size: serial for small
// plates, worker-partitioned otherwise.
func AutoSelect(rows, cols int) Backend {
	if (rows-2)*(cols-2) < parallelThreshold {
		return NewSerial()
	}
	return NewCPU(0)
}
