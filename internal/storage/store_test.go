package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/grid"
	"github.com/san-kum/heatlab/internal/plate"
	"github.com/san-kum/heatlab/internal/solve"
)

func TestWritePlateLayout(t *testing.T) {
	g := grid.New(3, 3)
	g.Set(1, 1, 75)
	for j := 0; j < 3; j++ {
		g.Set(2, j, 100)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlate(&buf, g))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "3", lines[0])
	assert.Equal(t, "3", lines[1])
	assert.Equal(t, "  0  0  0", lines[2])
	assert.Equal(t, "  0  75  0", lines[3])
	assert.Equal(t, "  100  100  100", lines[4])
}

func TestPlateRoundTrip(t *testing.T) {
	g := grid.New(4, 6)
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			g.Set(i, j, float64(i*10)+float64(j)/8)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlate(&buf, g))

	got, err := ReadPlate(&buf)
	require.NoError(t, err)
	require.Equal(t, 4, got.Rows())
	require.Equal(t, 6, got.Cols())
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			assert.Equal(t, g.At(i, j), got.At(i, j), "cell [%d][%d]", i, j)
		}
	}
}

func TestReadPlateTruncated(t *testing.T) {
	_, err := ReadPlate(strings.NewReader("3\n3\n  1  2\n"))
	assert.Error(t, err)
}

func testRun(t *testing.T) (*config.Config, *solve.Result, *grid.Grid) {
	t.Helper()
	cfg := &config.Config{
		Rows: 5, Cols: 5, Epsilon: 0.5,
		Boundary: plate.DefaultBoundary(),
	}
	result := &solve.Result{
		Sweeps:    6,
		FinalDiff: 0.48828125,
		Trace:     []float64{17.1875, 7.8125, 2.34375, 1.5625, 0.78125, 0.48828125},
	}
	g := grid.New(5, 5)
	g.Set(2, 2, 73.828125)
	return cfg, result, g
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg, result, g := testRun(t)
	runID, err := st.Save(cfg, "serial", result, g, 42*time.Millisecond, map[string]float64{"t_max": 100})
	require.NoError(t, err)
	assert.Contains(t, runID, "plate_5x5_")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, 5, meta.Rows)
	assert.Equal(t, 0.5, meta.Epsilon)
	assert.Equal(t, 6, meta.Sweeps)
	assert.Equal(t, 0.48828125, meta.FinalDiff)
	assert.Equal(t, "serial", meta.Backend)
	assert.Equal(t, plate.DefaultBoundary(), meta.Boundary)
	assert.Equal(t, 100.0, meta.Metrics["t_max"])

	loaded, err := st.LoadPlate(runID)
	require.NoError(t, err)
	assert.Equal(t, 73.828125, loaded.At(2, 2))

	trace, err := st.LoadTrace(runID)
	require.NoError(t, err)
	assert.Equal(t, result.Trace, trace)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg, result, g := testRun(t)
	_, err = st.Save(cfg, "serial", result, g, time.Millisecond, nil)
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 6, runs[0].Sweeps)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("plate_9x9_0")
	assert.Error(t, err)
}
