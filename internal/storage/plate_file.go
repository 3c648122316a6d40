package storage

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/heatlab/internal/grid"
)

// WritePlate serializes a grid in the classic heated-plate text
// layout: the row count and column count on their own lines, then one
// line per row with each temperature preceded by two spaces.
func WritePlate(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", g.Rows())
	fmt.Fprintf(bw, "%d\n", g.Cols())

	for i := 0; i < g.Rows(); i++ {
		for _, v := range g.Row(i) {
			fmt.Fprintf(bw, "  %g", v)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// ReadPlate parses the layout written by WritePlate.
func ReadPlate(r io.Reader) (*grid.Grid, error) {
	br := bufio.NewReader(r)

	var rows, cols int
	if _, err := fmt.Fscan(br, &rows); err != nil {
		return nil, fmt.Errorf("storage: reading row count: %w", err)
	}
	if _, err := fmt.Fscan(br, &cols); err != nil {
		return nil, fmt.Errorf("storage: reading column count: %w", err)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("storage: invalid plate dimensions %dx%d", rows, cols)
	}

	g := grid.New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var v float64
			if _, err := fmt.Fscan(br, &v); err != nil {
				return nil, fmt.Errorf("storage: reading cell [%d][%d]: %w", i, j, err)
			}
			g.Set(i, j, v)
		}
	}

	return g, nil
}
