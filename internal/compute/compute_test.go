package compute

import (
	"math/rand"
	"testing"

	"github.com/san-kum/heatlab/internal/grid"
	"github.com/san-kum/heatlab/internal/plate"
)

func randomState(t *testing.T, rows, cols int, seed int64) *grid.State {
	t.Helper()
	s, err := grid.NewState(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s.Current().Set(i, j, rng.Float64()*100)
		}
	}
	s.Snapshot()
	return s
}

func TestSerialSweep3x3(t *testing.T) {
	s, err := grid.NewState(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	plate.Init(s, plate.DefaultBoundary())
	s.Snapshot()

	diff := NewSerial().Sweep(s.Previous(), s.Current())

	// Single interior cell: (0 + 100 + 100 + 100)/4 = 75, moved from
	// the boundary mean 62.5.
	if got := s.Current().At(1, 1); got != 75 {
		t.Errorf("interior = %v, want 75", got)
	}
	if diff != 12.5 {
		t.Errorf("diff = %v, want 12.5", diff)
	}
}

func TestSweepReadsOnlySnapshot(t *testing.T) {
	s, err := grid.NewState(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	plate.Init(s, plate.DefaultBoundary())
	s.Snapshot()

	before := s.Previous().Clone()
	NewSerial().Sweep(s.Previous(), s.Current())

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if s.Previous().At(i, j) != before.At(i, j) {
				t.Fatalf("previous[%d][%d] mutated during sweep", i, j)
			}
		}
	}
}

// A Jacobi sweep is traversal-order independent, so every backend and
// worker count must yield the exact same grid and diff as the serial
// loop.
func TestBackendsAgree(t *testing.T) {
	sizes := []struct{ rows, cols int }{{3, 3}, {5, 5}, {17, 9}, {64, 33}}
	workerCounts := []int{1, 2, 3, 8, 64}

	for _, size := range sizes {
		ref := randomState(t, size.rows, size.cols, 1)
		wantDiff := NewSerial().Sweep(ref.Previous(), ref.Current())

		for _, workers := range workerCounts {
			s := randomState(t, size.rows, size.cols, 1)
			diff := NewCPU(workers).Sweep(s.Previous(), s.Current())

			if diff != wantDiff {
				t.Errorf("%dx%d workers=%d: diff = %v, want %v",
					size.rows, size.cols, workers, diff, wantDiff)
			}
			for i := 0; i < size.rows; i++ {
				for j := 0; j < size.cols; j++ {
					if s.Current().At(i, j) != ref.Current().At(i, j) {
						t.Fatalf("%dx%d workers=%d: cell [%d][%d] = %v, want %v",
							size.rows, size.cols, workers, i, j,
							s.Current().At(i, j), ref.Current().At(i, j))
					}
				}
			}
		}
	}
}

func TestAutoSelect(t *testing.T) {
	if b := AutoSelect(5, 5); b.Name() != "serial" {
		t.Errorf("small grid backend = %s, want serial", b.Name())
	}
	if b := AutoSelect(1000, 1000); b.Name() != "cpu" {
		t.Errorf("large grid backend = %s, want cpu", b.Name())
	}
}

func benchState(b *testing.B, rows, cols int) *grid.State {
	b.Helper()
	s, err := grid.NewState(rows, cols)
	if err != nil {
		b.Fatal(err)
	}
	plate.Init(s, plate.DefaultBoundary())
	s.Snapshot()
	return s
}

func BenchmarkSerialSweep(b *testing.B) {
	s := benchState(b, 500, 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewSerial().Sweep(s.Previous(), s.Current())
	}
}

func BenchmarkCPUSweep(b *testing.B) {
	s := benchState(b, 500, 500)
	backend := NewCPU(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.Sweep(s.Previous(), s.Current())
	}
}
