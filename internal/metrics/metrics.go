// Package metrics computes diagnostics over a solved plate and its
// convergence trace. The values travel with each stored run as a
// flat name-to-value map.
package metrics

import (
	"math"

	"github.com/san-kum/heatlab/internal/grid"
)

// Summary reports min, max, and mean temperature over the whole grid.
func Summary(g *grid.Grid) map[string]float64 {
	m, n := g.Rows(), g.Cols()

	min := g.At(0, 0)
	max := min
	sum := 0.0
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := g.At(i, j)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
	}

	return map[string]float64{
		"t_min":  min,
		"t_max":  max,
		"t_mean": sum / float64(m*n),
	}
}

// Residual is the largest deviation of an interior cell from the
// average of its four neighbors. Zero means the grid is an exact
// steady state of the discrete Laplace equation.
func Residual(g *grid.Grid) float64 {
	m, n := g.Rows(), g.Cols()
	res := 0.0
	for i := 1; i < m-1; i++ {
		for j := 1; j < n-1; j++ {
			avg := (g.At(i-1, j) + g.At(i+1, j) + g.At(i, j-1) + g.At(i, j+1)) / 4.0
			if d := math.Abs(g.At(i, j) - avg); d > res {
				res = d
			}
		}
	}
	return res
}

// ConvergenceRate estimates the geometric decay ratio of the diff
// trace from its second half, where the transient has died out. A
// Jacobi solve contracts with a constant asymptotic factor below 1;
// returns 0 when the trace is too short to estimate.
func ConvergenceRate(trace []float64) float64 {
	if len(trace) < 4 {
		return 0
	}

	start := len(trace) / 2
	ratios := 0.0
	count := 0
	for i := start; i < len(trace); i++ {
		if trace[i-1] <= 0 {
			continue
		}
		ratios += trace[i] / trace[i-1]
		count++
	}
	if count == 0 {
		return 0
	}
	return ratios / float64(count)
}
