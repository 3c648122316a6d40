package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatlab/internal/grid"
)

// Cold-to-hot terminal ramp, blue through red.
var rampColors = []lipgloss.Color{
	"#1f3b99", "#2b6cb0", "#2fa6a6", "#3cb371",
	"#b5bd2f", "#e0a52e", "#e06c2e", "#d12f2f",
}

var rampStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(rampColors))
	for i, c := range rampColors {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}()

// Heatmap renders the grid as colored block characters, downsampling
// to at most maxWidth columns. Rows are sampled twice as coarsely as
// columns because terminal cells are roughly twice as tall as wide.
func Heatmap(g *grid.Grid, maxWidth int) string {
	if maxWidth < 1 {
		maxWidth = 80
	}

	colStep := 1
	if g.Cols() > maxWidth {
		colStep = (g.Cols() + maxWidth - 1) / maxWidth
	}
	rowStep := colStep * 2
	if rowStep > g.Rows() {
		rowStep = g.Rows()
	}

	min, max := bounds(g)
	span := max - min
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < g.Rows(); i += rowStep {
		for j := 0; j < g.Cols(); j += colStep {
			idx := int((g.At(i, j) - min) / span * float64(len(rampStyles)-1))
			sb.WriteString(rampStyles[idx].Render("█"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func bounds(g *grid.Grid) (min, max float64) {
	min = g.At(0, 0)
	max = min
	for i := 0; i < g.Rows(); i++ {
		for _, v := range g.Row(i) {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}
