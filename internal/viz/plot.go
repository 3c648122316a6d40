package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// PlotTrace renders the per-sweep convergence metric as an ASCII
// chart. The diff decays geometrically over thousands of sweeps, so
// the trace is plotted in log10 and downsampled to the chart width.
func PlotTrace(trace []float64, width, height int) string {
	if len(trace) == 0 {
		return ""
	}
	if width < 10 {
		width = 80
	}
	if height < 2 {
		height = 10
	}

	step := 1
	if len(trace) > width {
		step = (len(trace) + width - 1) / width
	}

	data := make([]float64, 0, len(trace)/step+1)
	for i := 0; i < len(trace); i += step {
		v := trace[i]
		if v <= 0 {
			v = math.SmallestNonzeroFloat64
		}
		data = append(data, math.Log10(v))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10(diff) per sweep"),
	)
}
