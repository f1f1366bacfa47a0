package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
// Summaries is nil when no API key is configured; the views degrade to
// data-only mode in that case.
type App struct {
	Datasets  service.DatasetService
	Summaries service.SummaryService
	Metrics   service.MetricsService

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "worklens" command. Run bare (or
// with a file argument) it starts the interactive dashboard; the
// analyze subcommand prints a one-shot report instead.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "worklens [file]",
		Short: "Timesheet analysis dashboard",
		Long: `Upload a timesheet CSV and explore it interactively: an AI-generated
activity summary, time metrics for any column filter, and a per-date
bar chart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("stdin is not a terminal; use 'worklens analyze <file>' for non-interactive output")
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runTUI(app, path)
		},
	}

	root.AddCommand(
		newAnalyzeCmd(app),
	)

	return root
}

// runTUI starts the interactive dashboard. When path is non-empty the
// file is uploaded up front and the session starts on the dashboard
// instead of the upload form.
func runTUI(app *App, path string) error {
	m := newAppModel(app)

	if path != "" {
		ds, err := uploadFile(app, path)
		if err != nil {
			return err
		}
		m.state.SetDataset(ds)
		m.viewStack = []View{newDashboardView(m.state)}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// uploadFile reads a CSV from disk and stores it as the session dataset.
func uploadFile(app *App, path string) (*domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ds, err := app.Datasets.Upload(context.Background(), filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", path, err)
	}
	return ds, nil
}
