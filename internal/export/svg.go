package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/heatlab/internal/grid"
)

// maxCellsPerSide caps the SVG resolution; larger plates are
// downsampled by striding.
const maxCellsPerSide = 250

// HeatmapSVG renders the plate as an SVG heatmap, one rect per sampled
// cell, colored on a blue-to-red ramp over the grid's own temperature
// range.
func HeatmapSVG(g *grid.Grid, cellSize float64) string {
	if cellSize <= 0 {
		cellSize = 4
	}

	step := 1
	if g.Rows() > maxCellsPerSide || g.Cols() > maxCellsPerSide {
		step = g.Rows() / maxCellsPerSide
		if s := g.Cols() / maxCellsPerSide; s > step {
			step = s
		}
		if step < 1 {
			step = 1
		}
	}

	sampledRows := (g.Rows() + step - 1) / step
	sampledCols := (g.Cols() + step - 1) / step
	width := float64(sampledCols) * cellSize
	height := float64(sampledRows) * cellSize

	min, max := g.At(0, 0), g.At(0, 0)
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
	span := max - min
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, width, height, width, height))

	for i := 0; i < g.Rows(); i += step {
		for j := 0; j < g.Cols(); j += step {
			t := (g.At(i, j) - min) / span
			x := float64(j/step) * cellSize
			y := float64(i/step) * cellSize
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, cellSize, cellSize, rampColor(t)))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// rampColor maps t in [0,1] to a cold-blue through hot-red hex color.
func rampColor(t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	// Blue (0x1f3b99) to red (0xd12f2f), linear per channel.
	r := int(0x1f + t*float64(0xd1-0x1f))
	g := int(0x3b + t*float64(0x2f-0x3b))
	b := int(0x99 + t*float64(0x2f-0x99))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
