package export

import (
	"strings"
	"testing"

	"github.com/san-kum/heatlab/internal/grid"
)

func TestHeatmapSVG(t *testing.T) {
	g := grid.New(3, 3)
	g.Set(0, 0, 0)
	g.Set(2, 2, 100)

	svg := HeatmapSVG(g, 4)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated SVG")
	}
	if got := strings.Count(svg, "<rect"); got != 9 {
		t.Errorf("rect count = %d, want 9", got)
	}
	// Coldest and hottest cells hit the ramp endpoints.
	if !strings.Contains(svg, "#1f3b99") {
		t.Error("cold endpoint color missing")
	}
	if !strings.Contains(svg, "#d12f2f") {
		t.Error("hot endpoint color missing")
	}
}

func TestHeatmapSVGDownsamples(t *testing.T) {
	g := grid.New(1000, 1000)

	svg := HeatmapSVG(g, 2)

	if got := strings.Count(svg, "<rect"); got > maxCellsPerSide*maxCellsPerSide {
		t.Errorf("rect count %d exceeds downsample cap", got)
	}
}

func TestRampColorClamped(t *testing.T) {
	if rampColor(-1) != rampColor(0) {
		t.Error("underflow not clamped")
	}
	if rampColor(2) != rampColor(1) {
		t.Error("overflow not clamped")
	}
}
