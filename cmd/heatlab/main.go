package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatlab/internal/compute"
	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/export"
	"github.com/san-kum/heatlab/internal/grid"
	"github.com/san-kum/heatlab/internal/metrics"
	"github.com/san-kum/heatlab/internal/plate"
	"github.com/san-kum/heatlab/internal/solve"
	"github.com/san-kum/heatlab/internal/storage"
	"github.com/san-kum/heatlab/internal/viz"
)

var (
	dataDir    string
	rows       int
	cols       int
	epsilon    float64
	north      float64
	south      float64
	east       float64
	west       float64
	workers    int
	maxSweeps  int
	keepTrace  bool
	outputFile string
	configFile string
	preset     string
	// Display options
	mapWidth  int
	cellSize  float64
	svgOut    string
	benchSize int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heatlab",
		Short: "steady-state heated plate relaxation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatlab", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "relax the plate to steady state",
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().BoolVar(&keepTrace, "trace", false, "record per-sweep diff trace")
	solveCmd.Flags().StringVar(&outputFile, "output", "", "also write the plate file to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "solve with a live convergence view",
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a stored plate as a terminal heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&mapWidth, "width", 80, "heatmap width in columns")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored convergence trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored plate as an SVG heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&cellSize, "cell", 4, "SVG cell size in pixels")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d epsilon=%g\n", name, p.Rows, p.Cols, p.Epsilon)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the sweep backends",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchSize, "size", 500, "grid side length")
	benchCmd.Flags().Float64Var(&epsilon, "epsilon", 0.01, "tolerance")

	rootCmd.AddCommand(solveCmd, liveCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "convergence tolerance")
	cmd.Flags().Float64Var(&north, "north", 0.0, "north edge temperature")
	cmd.Flags().Float64Var(&south, "south", 100.0, "south edge temperature")
	cmd.Flags().Float64Var(&east, "east", 100.0, "east edge temperature")
	cmd.Flags().Float64Var(&west, "west", 100.0, "west edge temperature")
	cmd.Flags().IntVar(&workers, "workers", 0, "sweep workers (0 = auto, 1 = serial)")
	cmd.Flags().IntVar(&maxSweeps, "max-sweeps", 0, "sweep limit (0 = unbounded)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file, and flags into one Config.
// Precedence: explicit flags, then config file, then preset, then
// defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("max-sweeps") {
		cfg.MaxSweeps = maxSweeps
	}
	if cmd.Flags().Changed("north") {
		cfg.Boundary.North = north
	}
	if cmd.Flags().Changed("south") {
		cfg.Boundary.South = south
	}
	if cmd.Flags().Changed("east") {
		cfg.Boundary.East = east
	}
	if cmd.Flags().Changed("west") {
		cfg.Boundary.West = west
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cfg *config.Config) (*grid.State, *solve.Solver, solve.Config, error) {
	gs, err := grid.NewState(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, nil, solve.Config{}, err
	}
	plate.Init(gs, cfg.Boundary)

	solveCfg := solve.Config{
		Epsilon:   cfg.Epsilon,
		MaxSweeps: cfg.MaxSweeps,
		Workers:   cfg.Workers,
	}
	return gs, solve.NewForGrid(gs, solveCfg), solveCfg, nil
}

func backendName(cfg *config.Config) string {
	switch {
	case cfg.Workers == 1:
		return "serial"
	case cfg.Workers > 1:
		return "cpu"
	default:
		return compute.AutoSelect(cfg.Rows, cfg.Cols).Name()
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	gs, solver, solveCfg, err := setup(cfg)
	if err != nil {
		return err
	}
	solveCfg.KeepTrace = keepTrace
	solveCfg.Progress = func(sweep int, diff float64) {
		fmt.Printf("  %8d  %g\n", sweep, diff)
	}

	fmt.Printf("relaxing %dx%d plate until change <= %g\n\n", cfg.Rows, cfg.Cols, cfg.Epsilon)
	fmt.Println("     sweep  change")
	start := time.Now()

	result, err := solver.Run(context.Background(), gs, solveCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("\n  %8d  %g\n", result.Sweeps, result.FinalDiff)
	fmt.Println("\ntolerance achieved")

	fieldMetrics := metrics.Summary(gs.Current())
	fieldMetrics["residual"] = metrics.Residual(gs.Current())
	if rate := metrics.ConvergenceRate(result.Trace); rate > 0 {
		fieldMetrics["convergence_rate"] = rate
	}

	runID, err := st.Save(cfg, backendName(cfg), result, gs.Current(), elapsed, fieldMetrics)
	if err != nil {
		return err
	}

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.WritePlate(f, gs.Current()); err != nil {
			return err
		}
		fmt.Printf("solution written to %q\n", outputFile)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range fieldMetrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	gs, solver, solveCfg, err := setup(cfg)
	if err != nil {
		return err
	}

	return viz.RunLive(gs, solver, solveCfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRID\tEPSILON\tSWEEPS\tFINAL DIFF\tBACKEND\tTIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%g\t%d\t%g\t%s\t%s\n",
			run.ID,
			run.Rows, run.Cols,
			run.Epsilon,
			run.Sweeps,
			run.FinalDiff,
			run.Backend,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	g, err := st.LoadPlate(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d  epsilon: %g  sweeps: %d  final diff: %g\n\n",
		meta.Rows, meta.Cols, meta.Epsilon, meta.Sweeps, meta.FinalDiff)
	fmt.Print(viz.Heatmap(g, mapWidth))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return fmt.Errorf("no trace for run %s (solve with --trace): %w", args[0], err)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sweeps: %d\n\n", meta.Sweeps)
	fmt.Println(viz.PlotTrace(trace, 80, 15))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	g, err := st.LoadPlate(args[0])
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(export.HeatmapSVG(g, cellSize)), 0644); err != nil {
		return err
	}

	fmt.Printf("svg written to %q\n", out)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchSize < 3 {
		return fmt.Errorf("size must be at least 3")
	}

	backends := []compute.Backend{compute.NewSerial(), compute.NewCPU(0)}
	b := plate.DefaultBoundary()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tSWEEPS\tELAPSED\tPER SWEEP")

	for _, backend := range backends {
		gs, err := grid.NewState(benchSize, benchSize)
		if err != nil {
			return err
		}
		plate.Init(gs, b)

		start := time.Now()
		result, err := solve.New(backend).Run(context.Background(), gs, solve.Config{Epsilon: epsilon})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%v\n",
			backend.Name(), result.Sweeps, elapsed.Round(time.Millisecond),
			(elapsed / time.Duration(result.Sweeps)).Round(time.Microsecond))
	}

	return w.Flush()
}
