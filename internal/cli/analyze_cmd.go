package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklens/internal/cli/formatter"
	"github.com/alexanderramin/worklens/internal/llm"
	"github.com/spf13/cobra"
)

// newAnalyzeCmd creates the "analyze" subcommand: one-shot, scriptable
// output of the same summary, metrics, and chart the TUI shows.
func newAnalyzeCmd(app *App) *cobra.Command {
	var filterSpec string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Print a one-shot analysis of a timesheet CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, app, args[0], filterSpec)
		},
	}

	cmd.Flags().StringVarP(&filterSpec, "filter", "f", "", "restrict metrics to rows where column=value")

	return cmd
}

func runAnalyze(cmd *cobra.Command, app *App, path, filterSpec string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	ds, err := uploadFile(app, path)
	if err != nil {
		return err
	}

	state := &SessionState{App: app}
	state.SetDataset(ds)

	if filterSpec != "" {
		column, value, ok := strings.Cut(filterSpec, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q: expected column=value", filterSpec)
		}
		if !ds.HasColumn(column) {
			return fmt.Errorf("column %q not in %s", column, ds.Name)
		}
		state.SetFilter(column, value)
	}

	fmt.Fprintf(out, "%s %s\n\n", formatter.Bold(ds.Name), formatter.Dim(fmt.Sprintf("%d rows", len(ds.Rows))))

	if app.Summaries == nil {
		fmt.Fprintln(out, formatter.Dim("Analysis disabled. Set GEMINI_API_KEY to enable it."))
		return nil
	}

	result, mismatch, err := app.Summaries.Summarize(ctx, ds)
	if err != nil {
		return fmt.Errorf("%s", llm.FailureMessage(err))
	}
	if mismatch {
		fmt.Fprintln(out, formatter.MismatchWarning())
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, formatter.Header("Summary"))
	fmt.Fprint(out, formatter.FormatAnalysis(result))
	fmt.Fprintln(out)

	if result.TimeColumn == "" || !ds.HasColumn(result.TimeColumn) {
		fmt.Fprintln(out, formatter.Dim("No usable time column was identified."))
		return nil
	}

	metrics, err := app.Metrics.TimeMetrics(ctx, result.TimeColumn, state.Filter())
	if err != nil {
		return fmt.Errorf("computing metrics: %w", err)
	}
	fmt.Fprintln(out, formatter.Header("Time"))
	fmt.Fprint(out, formatter.FormatMetrics(metrics, result.TimeColumn, state.FilterDesc()))
	fmt.Fprintln(out)

	if result.DateColumn == "" || !ds.HasColumn(result.DateColumn) {
		return nil
	}

	points, err := app.Metrics.ChartSeries(ctx, result.DateColumn, result.TimeColumn, state.Filter())
	if err != nil {
		return fmt.Errorf("computing chart: %w", err)
	}
	bars := make([]formatter.BarPoint, len(points))
	for i, p := range points {
		bars[i] = formatter.BarPoint{Label: p.Date, Value: p.Total}
	}
	fmt.Fprintln(out, formatter.Header(fmt.Sprintf("%s per %s", result.TimeColumn, result.DateColumn)))
	fmt.Fprint(out, formatter.RenderBars(bars, 40))

	return nil
}
