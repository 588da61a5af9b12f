// Package chart renders the sensor history as a terminal line chart with
// a shared Y axis, time labels, a color legend and compact sparklines.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/plantmon/internal/history"
	"github.com/luki/plantmon/internal/plant"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorAxis = lipgloss.Color("245")
	colorGrid = lipgloss.Color("237")
	colorDim  = lipgloss.Color("240")
)

const (
	yCaption = "Sensor Readings"
	xCaption = "Time"
	yTicks   = 4
)

// SeriesColor returns the line color for a history series.
func SeriesColor(name string) lipgloss.Color {
	switch name {
	case plant.KeyMoisture:
		return lipgloss.Color("42") // emerald
	case plant.KeyTemperature:
		return lipgloss.Color("204") // rose
	case plant.KeyLight:
		return lipgloss.Color("69") // blue
	default:
		return lipgloss.Color("252")
	}
}

type cell struct {
	ch    rune
	color lipgloss.Color
}

// RenderLineChart draws every series against the same Y axis, with the
// labels spread along the X axis. width and height are the full chart
// size including axes and captions.
func RenderLineChart(labels []string, series []history.Series, width, height int) string {
	n := len(labels)
	if width <= 0 || height <= 0 || n == 0 {
		return ""
	}

	maxY := 0.0
	for _, s := range series {
		if s.Peak > maxY {
			maxY = s.Peak
		}
	}
	step := niceStep(maxY / yTicks)
	top := step * yTicks

	tickW := len(formatTick(top))
	plotW := width - tickW - 1
	plotH := height - 4 // caption, x axis, labels, x caption
	if plotW < n || plotH < 2 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("(chart too small)")
	}

	grid := make([][]cell, plotH)
	for r := range grid {
		grid[r] = make([]cell, plotW)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' '}
		}
	}

	rowOf := func(v float64) int {
		norm := v / top
		norm = math.Max(0, math.Min(1, norm))
		return plotH - 1 - int(math.Round(norm*float64(plotH-1)))
	}

	xs := xPositions(n, plotW)

	tickRows := make(map[int]float64)
	for i := 0; i <= yTicks; i++ {
		v := step * float64(i)
		tickRows[rowOf(v)] = v
	}
	for r := range tickRows {
		for c := 0; c < plotW; c += 2 {
			grid[r][c] = cell{ch: '·', color: colorGrid}
		}
	}
	for _, x := range xs {
		for r := 0; r < plotH; r += 2 {
			grid[r][x] = cell{ch: '·', color: colorGrid}
		}
	}

	for _, s := range series {
		plotSeries(grid, s, xs, rowOf)
	}

	var lines []string

	lines = append(lines, lipgloss.NewStyle().Foreground(colorAxis).Render(yCaption))

	axisS := lipgloss.NewStyle().Foreground(colorAxis)
	for r := 0; r < plotH; r++ {
		var sb strings.Builder
		if v, ok := tickRows[r]; ok {
			sb.WriteString(axisS.Render(fmt.Sprintf("%*s┤", tickW, formatTick(v))))
		} else {
			sb.WriteString(axisS.Render(strings.Repeat(" ", tickW) + "│"))
		}
		for _, c := range grid[r] {
			if c.color == "" {
				sb.WriteRune(c.ch)
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.ch)))
		}
		lines = append(lines, sb.String())
	}

	lines = append(lines, axisS.Render(strings.Repeat(" ", tickW)+"└"+strings.Repeat("─", plotW)))
	lines = append(lines, axisS.Render(strings.Repeat(" ", tickW+1)+labelLine(labels, xs, plotW)))

	pad := tickW + 1 + (plotW-len(xCaption))/2
	if pad < 0 {
		pad = 0
	}
	lines = append(lines, axisS.Render(strings.Repeat(" ", pad)+xCaption))

	return strings.Join(lines, "\n")
}

func plotSeries(grid [][]cell, s history.Series, xs []int, rowOf func(float64) int) {
	if len(s.Values) == 0 {
		return
	}
	color := SeriesColor(s.Name)
	count := min(len(s.Values), len(xs))

	for i := 0; i+1 < count; i++ {
		x0, x1 := xs[i], xs[i+1]
		v0, v1 := s.Values[i], s.Values[i+1]
		prev := rowOf(v0)
		for x := x0 + 1; x < x1; x++ {
			t := float64(x-x0) / float64(x1-x0)
			row := rowOf(v0 + (v1-v0)*t)
			fillVertical(grid, x, prev, row, color)
			grid[row][x] = cell{ch: slope(prev, row), color: color}
			prev = row
		}
		fillVertical(grid, x1, prev, rowOf(v1), color)
	}

	for i := 0; i < count; i++ {
		grid[rowOf(s.Values[i])][xs[i]] = cell{ch: '●', color: color}
	}
}

// fillVertical joins a step between rows from and to in column x.
func fillVertical(grid [][]cell, x, from, to int, color lipgloss.Color) {
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		grid[r][x] = cell{ch: '│', color: color}
	}
}

func slope(prev, row int) rune {
	switch {
	case row < prev:
		return '╱'
	case row > prev:
		return '╲'
	default:
		return '─'
	}
}

// xPositions spreads n points over width columns, first and last on the edges.
func xPositions(n, width int) []int {
	xs := make([]int, n)
	if n == 1 {
		xs[0] = width / 2
		return xs
	}
	for i := range xs {
		xs[i] = int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
	}
	return xs
}

func labelLine(labels []string, xs []int, width int) string {
	line := []rune(strings.Repeat(" ", width))
	lastEnd := -1
	for i, l := range labels {
		r := []rune(l)
		start := xs[i] - len(r)/2
		if start < 0 {
			start = 0
		}
		if start+len(r) > width {
			start = width - len(r)
		}
		if start <= lastEnd || start < 0 {
			continue
		}
		copy(line[start:], r)
		lastEnd = start + len(r)
	}
	return string(line)
}

// niceStep rounds a raw tick step up to 1, 1.5, 2, 2.5, 3 or 5 times a
// power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, f := range []float64{1, 1.5, 2, 2.5, 3, 5, 10} {
		if raw <= f*mag {
			return f * mag
		}
	}
	return 10 * mag
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// RenderLegend renders one color key per series, with a sparkline and
// avg/lo/pk stats.
func RenderLegend(series []history.Series) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	var rows []string
	for _, s := range series {
		color := SeriesColor(s.Name)
		key := lipgloss.NewStyle().Foreground(color).Render("━━")
		name := lipgloss.NewStyle().Foreground(color).Width(12).Render(strings.ToLower(plant.MetricLabel(s.Name)))
		spark := RenderSparkline(s.Values, len(s.Values), s.Min, s.Peak, color)
		stats := dimS.Render("  avg") + valS.Render(fmt.Sprintf("%6.1f", s.Avg())) +
			dimS.Render(" lo") + valS.Render(fmt.Sprintf("%6.1f", s.Min)) +
			dimS.Render(" pk") + valS.Render(fmt.Sprintf("%6.1f", s.Peak))
		rows = append(rows, key+" "+name+" "+spark+stats)
	}
	return strings.Join(rows, "\n")
}

// RenderSparkline renders values as block characters scaled to
// [rangeMin, rangeMax]. Missing columns on the left are dim dashes.
func RenderSparkline(values []float64, width int, rangeMin, rangeMax float64, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(values) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < width-len(values); i++ {
		sb.WriteString(dim.Render("╌"))
	}

	style := lipgloss.NewStyle().Foreground(color)
	for _, v := range values {
		norm := (v - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))
		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}
