package compute

import (
	"math"

	"github.com/san-kum/heatlab/internal/grid"
)

// Serial sweeps the interior in row-major order on the calling
// goroutine. The parallel backend must match its output exactly.
type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (s *Serial) Name() string { return "serial" }

func (s *Serial) Sweep(prev, cur *grid.Grid) float64 {
	m, n := cur.Rows(), cur.Cols()
	diff := 0.0
	for i := 1; i < m-1; i++ {
		above := prev.Row(i - 1)
		row := prev.Row(i)
		below := prev.Row(i + 1)
		out := cur.Row(i)
		for j := 1; j < n-1; j++ {
			v := (above[j] + below[j] + row[j-1] + row[j+1]) / 4.0
			out[j] = v
			if d := math.Abs(v - row[j]); d > diff {
				diff = d
			}
		}
	}
	return diff
}
