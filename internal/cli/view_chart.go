package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklens/internal/cli/formatter"
	"github.com/alexanderramin/worklens/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chartLoadedMsg carries the per-date totals for the bar chart.
type chartLoadedMsg struct {
	points []repository.DatePoint
	err    error
}

// chartView renders time per date as horizontal bars, honoring the
// active filter.
type chartView struct {
	state   *SessionState
	points  []repository.DatePoint
	loading bool
	err     error
}

func newChartView(state *SessionState) *chartView {
	return &chartView{state: state, loading: true}
}

func (v *chartView) ID() ViewID    { return ViewChart }
func (v *chartView) Title() string { return "Chart" }

func (v *chartView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *chartView) Init() tea.Cmd {
	return v.loadSeries()
}

func (v *chartView) loadSeries() tea.Cmd {
	app := v.state.App
	a := v.state.Analysis
	filter := v.state.Filter()
	return func() tea.Msg {
		points, err := app.Metrics.ChartSeries(context.Background(), a.DateColumn, a.TimeColumn, filter)
		return chartLoadedMsg{points: points, err: err}
	}
}

func (v *chartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chartLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.points = msg.points
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadSeries()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.loadSeries()
		}
	}

	return v, nil
}

func (v *chartView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	heading := fmt.Sprintf("%s per %s", v.state.Analysis.TimeColumn, v.state.Analysis.DateColumn)
	b.WriteString("  " + formatter.Header(heading) + "\n")

	if desc := v.state.FilterDesc(); desc != "" {
		b.WriteString("  " + formatter.Dim("Filtered to ") + formatter.StyleGreen.Render(desc) + "\n")
	}
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	default:
		bars := make([]formatter.BarPoint, len(v.points))
		for i, p := range v.points {
			bars[i] = formatter.BarPoint{Label: p.Date, Value: p.Total}
		}
		chart := formatter.RenderBars(bars, v.barWidth())
		b.WriteString("  " + strings.ReplaceAll(strings.TrimRight(chart, "\n"), "\n", "\n  ") + "\n")
	}

	return b.String()
}

// barWidth scales the bars to the terminal, leaving room for labels
// and values.
func (v *chartView) barWidth() int {
	w := v.state.Width - 30
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}
