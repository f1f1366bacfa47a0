package formatter

import (
	"fmt"
	"strings"
)

const barBlock = "█"

// BarPoint is one labeled value in a bar chart.
type BarPoint struct {
	Label string
	Value float64
}

// RenderBars renders a horizontal bar chart, one line per point:
//
//	2025-03-01  ████████████  5
//
// Bars are scaled against the maximum value so the longest bar fills
// width cells. Labels are right-padded to align the bars; values are
// printed with FormatHours so whole numbers stay whole.
func RenderBars(points []BarPoint, width int) string {
	if len(points) == 0 {
		return Dim("No data to chart.")
	}
	if width < 4 {
		width = 4
	}

	maxLabel := 0
	maxValue := 0.0
	for _, p := range points {
		if len(p.Label) > maxLabel {
			maxLabel = len(p.Label)
		}
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	var b strings.Builder
	for _, p := range points {
		filled := 0
		if maxValue > 0 && p.Value > 0 {
			filled = int(p.Value / maxValue * float64(width))
			if filled < 1 {
				filled = 1
			}
			if filled > width {
				filled = width
			}
		}

		bar := StyleBlue.Render(strings.Repeat(barBlock, filled))
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim(padRight(p.Label, maxLabel)),
			bar,
			StyleFg.Render(FormatHours(p.Value)),
		))
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
