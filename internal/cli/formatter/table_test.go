package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Date", "Task", "Hours"},
		[][]string{
			{"2025-03-01", "coding", "5"},
			{"2025-03-02", "review", "2"},
		},
		0,
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[2], "2025-03-01")
	assert.Contains(t, lines[3], "review")
}

func TestRenderTable_TruncatesWithTrailer(t *testing.T) {
	rows := [][]string{
		{"row1", "1"}, {"row2", "2"}, {"row3", "3"}, {"row4", "4"}, {"row5", "5"},
	}

	out := RenderTable([]string{"Task", "Hours"}, rows, 3)
	assert.Contains(t, out, "… 2 more rows")
	assert.Contains(t, out, "row3")
	assert.NotContains(t, out, "row4")
	assert.NotContains(t, out, "row5")
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"only-a"}}, 0)
	assert.Contains(t, out, "only-a")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil, 0))
}

func TestRenderBars_ScalesAgainstMax(t *testing.T) {
	out := RenderBars([]BarPoint{
		{Label: "2025-03-01", Value: 5},
		{Label: "2025-03-02", Value: 2.5},
	}, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 10, strings.Count(lines[0], barBlock))
	assert.Equal(t, 5, strings.Count(lines[1], barBlock))
	assert.Contains(t, lines[1], "2.5")
}

func TestRenderBars_ZeroAndEmpty(t *testing.T) {
	out := RenderBars([]BarPoint{{Label: "x", Value: 0}}, 10)
	assert.NotContains(t, out, barBlock)

	assert.Contains(t, RenderBars(nil, 10), "No data")
}
