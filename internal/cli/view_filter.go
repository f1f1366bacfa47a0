package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklens/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// filterValuesMsg carries the distinct values of the chosen column.
type filterValuesMsg struct {
	values []string
	err    error
}

// filterRowsMsg carries the filtered rows for the preview table.
type filterRowsMsg struct {
	rows [][]string
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

type filterPhase int

const (
	phasePickColumn filterPhase = iota
	phasePickValue
	phasePreview
)

// filterView walks the user through column → value → preview. Applying
// a value updates the shared filter immediately, so the dashboard
// underneath recomputes its metrics when this view pops.
type filterView struct {
	state *SessionState
	phase filterPhase

	cursor  int
	column  string
	values  []string
	value   string
	rows    [][]string
	loading bool
	err     error
}

func newFilterView(state *SessionState) *filterView {
	return &filterView{state: state}
}

func (v *filterView) ID() ViewID    { return ViewFilter }
func (v *filterView) Title() string { return "Filter" }

func (v *filterView) ShortHelp() []key.Binding {
	switch v.phase {
	case phasePreview:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "change value")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "back")),
		}
	}
}

func (v *filterView) Init() tea.Cmd { return nil }

// ── data loading ─────────────────────────────────────────────────────────────

func (v *filterView) loadValues(column string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		values, err := app.Datasets.DistinctValues(context.Background(), column)
		return filterValuesMsg{values: values, err: err}
	}
}

func (v *filterView) loadRows() tea.Cmd {
	app := v.state.App
	filter := v.state.Filter()
	return func() tea.Msg {
		rows, err := app.Datasets.Rows(context.Background(), filter)
		return filterRowsMsg{rows: rows, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *filterView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filterValuesMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.phase = phasePickColumn
			return v, nil
		}
		v.values = msg.values
		v.cursor = 0
		v.phase = phasePickValue
		return v, nil

	case filterRowsMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.rows = msg.rows
		v.phase = phasePreview
		// Metrics beneath this view track the filter we just applied.
		notice := formatter.Dim("Filter applied: ") + formatter.StyleGreen.Render(v.state.FilterDesc())
		return v, tea.Batch(refreshViews(), func() tea.Msg { return statusMsg{text: notice} })

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *filterView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := v.currentOptions()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(options)-1 {
			v.cursor++
		}
	case "backspace":
		switch v.phase {
		case phasePickValue:
			v.phase = phasePickColumn
			v.cursor = 0
		case phasePreview:
			v.phase = phasePickValue
			v.cursor = 0
		}
	case "enter":
		switch v.phase {
		case phasePickColumn:
			if v.cursor < len(options) {
				v.column = options[v.cursor]
				v.err = nil
				v.loading = true
				return v, v.loadValues(v.column)
			}
		case phasePickValue:
			if v.cursor < len(options) {
				v.value = options[v.cursor]
				v.state.SetFilter(v.column, v.value)
				v.err = nil
				v.loading = true
				return v, v.loadRows()
			}
		case phasePreview:
			return v, popView()
		}
	}

	return v, nil
}

// currentOptions returns the list the cursor moves over in the current phase.
func (v *filterView) currentOptions() []string {
	switch v.phase {
	case phasePickColumn:
		if v.state.Dataset == nil {
			return nil
		}
		return v.state.Dataset.Header
	case phasePickValue:
		return v.values
	}
	return nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *filterView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n\n")
	}
	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
		return b.String()
	}

	switch v.phase {
	case phasePickColumn:
		b.WriteString("  " + formatter.Header("Filter by column") + "\n")
		b.WriteString(v.renderOptions())
	case phasePickValue:
		b.WriteString("  " + formatter.Header(fmt.Sprintf("Values of %s", v.column)) + "\n")
		b.WriteString(v.renderOptions())
	case phasePreview:
		b.WriteString("  " + formatter.Header(fmt.Sprintf("%s = %s", v.column, v.value)) + "\n")
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d matching rows", len(v.rows))) + "\n\n")
		table := formatter.RenderTable(v.state.Dataset.Header, v.rows, v.previewRows())
		b.WriteString("  " + strings.ReplaceAll(strings.TrimRight(table, "\n"), "\n", "\n  ") + "\n")
	}

	return b.String()
}

func (v *filterView) renderOptions() string {
	options := v.currentOptions()
	if len(options) == 0 {
		return "  " + formatter.Dim("Nothing to choose from.") + "\n"
	}

	var b strings.Builder
	for i, opt := range options {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString("  " + cursor + style.Render(opt) + "\n")
	}
	return b.String()
}

// previewRows caps the preview table to the visible content area.
func (v *filterView) previewRows() int {
	// Header, separator, heading and count lines eat into the budget.
	n := v.state.ContentHeight() - 6
	if n < 5 {
		n = 5
	}
	return n
}
