package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/worklens/internal/cli/formatter"
	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/llm"
	"github.com/alexanderramin/worklens/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// summaryLoadedMsg signals that the model analysis has finished.
type summaryLoadedMsg struct {
	result   *domain.AnalysisResult
	mismatch bool
	err      error
}

// metricsLoadedMsg signals that the time metrics have been computed.
type metricsLoadedMsg struct {
	metrics *service.TimeMetrics
	err     error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the main screen after upload: activity summary,
// time metrics for the active filter, and jump-off points to the
// filter picker and the chart.
type dashboardView struct {
	state *SessionState

	metrics    *service.TimeMetrics
	summaryErr error
	metricsErr error
}

func newDashboardView(state *SessionState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	}
	if v.chartAvailable() {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")))
	}
	if v.state.FilterColumn != "" {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filter")))
	}
	bindings = append(bindings,
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-analyze")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "new file")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	)
	return bindings
}

func (v *dashboardView) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v.state.Analysis == nil && v.state.App.Summaries != nil && !v.state.Summarizing {
		cmds = append(cmds, v.summarize())
	}
	if cmd := v.loadMetrics(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) summarize() tea.Cmd {
	app := v.state.App
	ds := v.state.Dataset
	v.state.Summarizing = true
	return func() tea.Msg {
		result, mismatch, err := app.Summaries.Summarize(context.Background(), ds)
		return summaryLoadedMsg{result: result, mismatch: mismatch, err: err}
	}
}

func (v *dashboardView) loadMetrics() tea.Cmd {
	timeCol := v.timeColumn()
	if timeCol == "" {
		return nil
	}
	app := v.state.App
	filter := v.state.Filter()
	return func() tea.Msg {
		m, err := app.Metrics.TimeMetrics(context.Background(), timeCol, filter)
		return metricsLoadedMsg{metrics: m, err: err}
	}
}

// timeColumn returns the analysis' time column when it actually exists
// in the uploaded file, "" otherwise.
func (v *dashboardView) timeColumn() string {
	a := v.state.Analysis
	if a == nil || a.TimeColumn == "" || v.state.Dataset == nil {
		return ""
	}
	if !v.state.Dataset.HasColumn(a.TimeColumn) {
		return ""
	}
	return a.TimeColumn
}

func (v *dashboardView) chartAvailable() bool {
	a := v.state.Analysis
	return v.timeColumn() != "" && a != nil && a.DateColumn != "" &&
		v.state.Dataset.HasColumn(a.DateColumn)
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		v.state.Summarizing = false
		if msg.err != nil {
			v.summaryErr = msg.err
			return v, nil
		}
		v.summaryErr = nil
		v.state.Analysis = msg.result
		v.state.HeaderMismatch = msg.mismatch
		return v, v.loadMetrics()

	case metricsLoadedMsg:
		if msg.err != nil {
			v.metricsErr = msg.err
			v.metrics = nil
			return v, nil
		}
		v.metricsErr = nil
		v.metrics = msg.metrics
		return v, nil

	case refreshViewMsg:
		return v, v.loadMetrics()

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			if v.state.Dataset != nil {
				return v, pushView(newFilterView(v.state))
			}
		case "c":
			if v.chartAvailable() {
				return v, pushView(newChartView(v.state))
			}
		case "x":
			if v.state.FilterColumn != "" {
				v.state.ClearFilter()
				return v, v.loadMetrics()
			}
		case "r":
			if v.state.App.Summaries != nil && !v.state.Summarizing {
				v.state.App.Summaries.Invalidate(v.state.Dataset.Hash)
				v.state.Analysis = nil
				v.state.HeaderMismatch = false
				return v, v.summarize()
			}
		case "u":
			return v, replaceView(newUploadView(v.state))
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.state.HeaderMismatch {
		b.WriteString("  " + strings.ReplaceAll(formatter.MismatchWarning(), "\n", "\n  ") + "\n\n")
	}

	b.WriteString("  " + formatter.Header("Summary") + "\n")
	switch {
	case v.state.Summarizing:
		b.WriteString("  " + formatter.Dim("Analyzing timesheet...") + "\n")
	case v.summaryErr != nil:
		b.WriteString("  " + formatter.StyleRed.Render(llm.FailureMessage(v.summaryErr)) + "\n")
	case v.state.App.Summaries == nil:
		b.WriteString("  " + formatter.Dim("Analysis disabled. Set GEMINI_API_KEY to enable it.") + "\n")
	default:
		b.WriteString(formatter.FormatAnalysis(v.state.Analysis))
	}
	b.WriteString("\n")

	b.WriteString("  " + formatter.Header("Time") + "\n")
	switch {
	case v.metricsErr != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.metricsErr.Error()) + "\n")
	case v.timeColumn() == "" && v.state.Analysis != nil:
		b.WriteString("  " + formatter.Dim("No usable time column was identified.") + "\n")
	case v.metrics != nil:
		b.WriteString(formatter.FormatMetrics(v.metrics, v.timeColumn(), v.state.FilterDesc()))
	default:
		b.WriteString("  " + formatter.Dim("Waiting for analysis...") + "\n")
	}

	return b.String()
}
