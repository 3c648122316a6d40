package grid

import "fmt"

// Grid is a rectangular field of temperatures stored row-major in a
// single slice.
type Grid struct {
	rows, cols int
	cells      []float64
}

func New(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]float64, rows*cols),
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// At returns the value at (row i, column j). Out-of-range indexes
// panic via the usual slice bounds check.
func (g *Grid) At(i, j int) float64 {
	return g.cells[i*g.cols+j]
}

func (g *Grid) Set(i, j int, v float64) {
	g.cells[i*g.cols+j] = v
}

// Row returns the backing slice for row i. The slice aliases the grid;
// callers must not hold it across a CopyFrom.
func (g *Grid) Row(i int) []float64 {
	return g.cells[i*g.cols : (i+1)*g.cols]
}

func (g *Grid) Clone() *Grid {
	c := New(g.rows, g.cols)
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites every cell with the values of src.
func (g *Grid) CopyFrom(src *Grid) error {
	if g.rows != src.rows || g.cols != src.cols {
		return fmt.Errorf("grid: copy %dx%d from %dx%d", g.rows, g.cols, src.rows, src.cols)
	}
	copy(g.cells, src.cells)
	return nil
}

// State holds the two buffers the relaxation sweep reads and writes.
// Current is the estimate being refined; Previous is the full snapshot
// taken at the start of each sweep, so interior updates never observe a
// partially updated neighbor.
type State struct {
	prev, cur *Grid
}

// NewState allocates both buffers. Dimensions below 3x3 leave no
// interior cell to relax and are rejected.
func NewState(rows, cols int) (*State, error) {
	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("grid: %dx%d has no interior: %w", rows, cols, ErrInvalidDimension)
	}
	return &State{
		prev: New(rows, cols),
		cur:  New(rows, cols),
	}, nil
}

func (s *State) Rows() int { return s.cur.rows }
func (s *State) Cols() int { return s.cur.cols }

func (s *State) Current() *Grid  { return s.cur }
func (s *State) Previous() *Grid { return s.prev }

// Snapshot copies the whole of Current into Previous, edges included.
// Edge values feed interior updates, so the copy must cover all cells,
// not just the interior.
func (s *State) Snapshot() {
	copy(s.prev.cells, s.cur.cells)
}
