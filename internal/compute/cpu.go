package compute

import (
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/heatlab/internal/grid"
)

// CPU partitions the interior rows of a sweep across worker
// goroutines. Each worker reads only the immutable prev snapshot and
// writes only its own rows of cur, so no synchronization is needed
// beyond the WaitGroup barrier; per-worker diff maxima are combined
// after the barrier.
type CPU struct {
	workers int
}

// NewCPU returns a backend running the sweep on the given number of
// workers; zero or negative means runtime.NumCPU.
func NewCPU(workers int) *CPU {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPU{workers: workers}
}

func (c *CPU) Name() string { return "cpu" }

func (c *CPU) Workers() int { return c.workers }

func (c *CPU) Sweep(prev, cur *grid.Grid) float64 {
	m, n := cur.Rows(), cur.Cols()
	interior := m - 2

	workers := c.workers
	if workers > interior {
		workers = interior
	}
	if workers <= 1 {
		return (&Serial{}).Sweep(prev, cur)
	}

	localDiff := make([]float64, workers)
	chunkSize := (interior + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := 1 + worker*chunkSize
			end := start + chunkSize
			if end > m-1 {
				end = m - 1
			}

			diff := 0.0
			for i := start; i < end; i++ {
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
			localDiff[worker] = diff
		}(w)
	}

	wg.Wait()

	diff := 0.0
	for _, d := range localDiff {
		if d > diff {
			diff = d
		}
	}
	return diff
}
