// Package storage persists solver runs: metadata as JSON, the final
// plate in the classic heated-plate text format, and the per-sweep
// convergence trace as CSV, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/grid"
	"github.com/san-kum/heatlab/internal/plate"
	"github.com/san-kum/heatlab/internal/solve"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Epsilon   float64            `json:"epsilon"`
	Boundary  plate.Boundary     `json:"boundary"`
	Backend   string             `json:"backend"`
	Sweeps    int                `json:"sweeps"`
	FinalDiff float64            `json:"final_diff"`
	ElapsedMS int64              `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, plate.txt, and
// trace.csv when the result carries a trace. Returns the run ID.
func (s *Store) Save(cfg *config.Config, backend string, result *solve.Result, g *grid.Grid, elapsed time.Duration, fieldMetrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("plate_%dx%d_%d", cfg.Rows, cfg.Cols, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Rows:      cfg.Rows,
		Cols:      cfg.Cols,
		Epsilon:   cfg.Epsilon,
		Boundary:  cfg.Boundary,
		Backend:   backend,
		Sweeps:    result.Sweeps,
		FinalDiff: result.FinalDiff,
		ElapsedMS: elapsed.Milliseconds(),
		Metrics:   fieldMetrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	plateFile, err := os.Create(filepath.Join(runDir, "plate.txt"))
	if err != nil {
		return "", err
	}
	defer plateFile.Close()

	if err := WritePlate(plateFile, g); err != nil {
		return "", err
	}

	if len(result.Trace) > 0 {
		if err := s.saveTrace(runDir, result.Trace); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) saveTrace(runDir string, trace []float64) error {
	f, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"sweep", "diff"}); err != nil {
		return err
	}
	for i, diff := range trace {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(diff, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadPlate(runID string) (*grid.Grid, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "plate.txt"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadPlate(f)
}

func (s *Store) LoadTrace(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := make([]float64, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue
		}
		diff, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		trace = append(trace, diff)
	}

	return trace, nil
}
