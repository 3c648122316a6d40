// Package plate sets up the heated-plate boundary conditions: fixed
// Dirichlet temperatures on the four edges of the grid and an interior
// first guess equal to the mean of the boundary cells.
package plate

import "github.com/san-kum/heatlab/internal/grid"

// Boundary holds the fixed edge temperatures. North is the top row
// (i = 0), South the bottom row (i = M-1), West the left column and
// East the right column.
type Boundary struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}

// DefaultBoundary is the classic configuration: one cold edge on top,
// the other three held at 100 degrees.
func DefaultBoundary() Boundary {
	return Boundary{North: 0, South: 100, East: 100, West: 100}
}

// Apply stamps the edge temperatures onto g. The west and east columns
// cover interior rows only; the south and north rows cover the full
// width and therefore own the four corners. That ordering fixes the
// corner values and must not change, or stored plates stop matching
// earlier solves of the same problem.
func (b Boundary) Apply(g *grid.Grid) {
	m, n := g.Rows(), g.Cols()
	for i := 1; i < m-1; i++ {
		g.Set(i, 0, b.West)
	}
	for i := 1; i < m-1; i++ {
		g.Set(i, n-1, b.East)
	}
	for j := 0; j < n; j++ {
		g.Set(m-1, j, b.South)
	}
	for j := 0; j < n; j++ {
		g.Set(0, j, b.North)
	}
}

// Mean averages the stamped boundary cells of g: the two partial edge
// columns plus the two full edge rows, each cell counted once, for a
// total of 2M + 2N - 4 cells.
func Mean(g *grid.Grid) float64 {
	m, n := g.Rows(), g.Cols()
	mean := 0.0
	for i := 1; i < m-1; i++ {
		mean += g.At(i, 0)
	}
	for i := 1; i < m-1; i++ {
		mean += g.At(i, n-1)
	}
	for j := 0; j < n; j++ {
		mean += g.At(m-1, j)
	}
	for j := 0; j < n; j++ {
		mean += g.At(0, j)
	}
	return mean / float64(2*m+2*n-4)
}

// Init applies the boundary to the current grid and fills every
// interior cell with the boundary mean, a first guess that cuts the
// sweep count well below a cold start.
func Init(s *grid.State, b Boundary) {
	cur := s.Current()
	b.Apply(cur)

	mean := Mean(cur)
	m, n := cur.Rows(), cur.Cols()
	for i := 1; i < m-1; i++ {
		for j := 1; j < n-1; j++ {
			cur.Set(i, j, mean)
		}
	}
}
