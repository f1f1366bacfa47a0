package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/service"
)

// FormatHours renders a summed time value without spurious decimals:
// 8 renders as "8", 7.5 as "7.5".
func FormatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPercent renders an integer percentage with its sign, e.g. "67%".
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatAnalysis renders the model's activity summary for the terminal.
// The model is asked for markdown-ish output: **Activity** headings with
// nested "-" bullets. Headings get the bold style, bullets are indented
// and dimmed, anything else passes through in the plain foreground.
func FormatAnalysis(result *domain.AnalysisResult) string {
	if result == nil || strings.TrimSpace(result.ActivitySummary) == "" {
		return Dim("No summary available.")
	}

	var b strings.Builder
	for _, line := range strings.Split(result.ActivitySummary, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			b.WriteString("\n")
		case strings.HasPrefix(trimmed, "**"):
			b.WriteString("  " + renderBoldSpans(trimmed) + "\n")
		case strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*"):
			b.WriteString("    " + Dim("·") + " " + StyleFg.Render(strings.TrimSpace(trimmed[1:])) + "\n")
		default:
			b.WriteString("  " + StyleFg.Render(trimmed) + "\n")
		}
	}
	return b.String()
}

// renderBoldSpans replaces **span** markers with the bold style.
func renderBoldSpans(line string) string {
	var b strings.Builder
	rest := line
	for {
		start := strings.Index(rest, "**")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "**")
		if end < 0 {
			break
		}
		b.WriteString(StyleFg.Render(rest[:start]))
		b.WriteString(StyleBold.Render(rest[start+2 : start+2+end]))
		rest = rest[start+2+end+2:]
	}
	b.WriteString(StyleFg.Render(rest))
	return b.String()
}

// FormatMetrics renders the filtered-vs-total time block shown on the
// dashboard and by the analyze command.
func FormatMetrics(m *service.TimeMetrics, timeColumn, filterDesc string) string {
	var b strings.Builder

	label := "All rows"
	if filterDesc != "" {
		label = filterDesc
	}

	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Selection"), StyleGreen.Render(label)))
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		Dim("Time     "),
		Bold(FormatHours(m.Filtered)),
		Dim(fmt.Sprintf("of %s %s", FormatHours(m.Total), timeColumn)),
	))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		Dim("Share    "),
		StylePurple.Render(FormatPercent(m.Percent)),
	))

	return b.String()
}

// MismatchWarning renders the reupload warning shown when the model
// reports columns that mostly do not exist in the uploaded file.
func MismatchWarning() string {
	return StyleYellow.Render("⚠ The analysis does not match this file's columns.") +
		"\n" + Dim("  Please re-upload the sheet with a clean single header row.")
}
