package solve

import (
	"context"

	"github.com/san-kum/heatlab/internal/compute"
	"github.com/san-kum/heatlab/internal/grid"
)

// Solver iterates Jacobi sweeps over a grid until the largest
// per-sweep change drops below the tolerance.
type Solver struct {
	backend compute.Backend
}

func New(backend compute.Backend) *Solver {
	return &Solver{backend: backend}
}

// NewForGrid picks a backend from the config and grid dimensions.
func NewForGrid(s *grid.State, cfg Config) *Solver {
	switch {
	case cfg.Workers == 1:
		return New(compute.NewSerial())
	case cfg.Workers > 1:
		return New(compute.NewCPU(cfg.Workers))
	default:
		return New(compute.AutoSelect(s.Rows(), s.Cols()))
	}
}

// Run relaxes the grid in place until convergence, the sweep cap, or
// context cancellation. The grid must already carry its boundary
// values and interior guess (plate.Init).
//
// diff starts at epsilon so at least one sweep always runs, and
// iteration continues while epsilon <= diff. Each sweep snapshots the
// full grid (edges feed
// interior updates), recomputes every interior cell from the snapshot,
// and takes the maximum absolute change as the new diff. With
// epsilon = 0 the loop only exits if a sweep leaves the grid exactly
// unchanged; bounding that risk is the caller's job via MaxSweeps.
func (s *Solver) Run(ctx context.Context, gs *grid.State, cfg Config) (*Result, error) {
	if cfg.Epsilon < 0 {
		return nil, ErrInvalidTolerance
	}

	result := &Result{}
	diff := cfg.Epsilon
	nextReport := 1

	for cfg.Epsilon <= diff {
		select {
		case <-ctx.Done():
			result.FinalDiff = diff
			return result, ctx.Err()
		default:
		}

		gs.Snapshot()
		diff = s.backend.Sweep(gs.Previous(), gs.Current())
		result.Sweeps++
		result.FinalDiff = diff

		if cfg.KeepTrace {
			result.Trace = append(result.Trace, diff)
		}
		if cfg.OnSweep != nil {
			cfg.OnSweep(result.Sweeps, diff)
		}
		if cfg.Progress != nil && result.Sweeps == nextReport {
			cfg.Progress(result.Sweeps, diff)
			nextReport *= 2
		}

		if cfg.MaxSweeps > 0 && result.Sweeps >= cfg.MaxSweeps && cfg.Epsilon <= diff {
			return result, &ConvergenceError{Sweeps: result.Sweeps, Diff: diff}
		}
	}

	return result, nil
}
