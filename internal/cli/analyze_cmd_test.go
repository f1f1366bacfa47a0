package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_FullReport(t *testing.T) {
	app := testApp(t)
	app.Summaries = &fakeSummaries{result: testAnalysis()}

	path := writeTempCSV(t, "Date,Task,Hours\n"+
		"2025-03-01,coding,5\n"+
		"2025-03-01,review,2\n"+
		"2025-03-02,coding,3\n")

	out, err := execute(t, app, "analyze", path)
	require.NoError(t, err)

	assert.Contains(t, out, "timesheet.csv")
	assert.Contains(t, out, "3 rows")
	assert.Contains(t, out, "Dev")
	assert.Contains(t, out, "of 10 Hours")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "2025-03-02")
}

func TestAnalyzeCmd_FilterFlag(t *testing.T) {
	app := testApp(t)
	app.Summaries = &fakeSummaries{result: testAnalysis()}

	path := writeTempCSV(t, "Date,Task,Hours\n"+
		"2025-03-01,coding,5\n"+
		"2025-03-01,review,2\n"+
		"2025-03-02,coding,3\n")

	out, err := execute(t, app, "analyze", path, "--filter", "Task=coding")
	require.NoError(t, err)

	assert.Contains(t, out, "Task = coding")
	assert.Contains(t, out, "80%")
}

func TestAnalyzeCmd_BadFilter(t *testing.T) {
	app := testApp(t)
	app.Summaries = &fakeSummaries{result: testAnalysis()}
	path := writeTempCSV(t, "Date,Task,Hours\n2025-03-01,coding,5\n")

	_, err := execute(t, app, "analyze", path, "--filter", "nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column=value")

	_, err = execute(t, app, "analyze", path, "--filter", "Missing=x")
	require.Error(t, err)
}

func TestAnalyzeCmd_NoSummaries(t *testing.T) {
	app := testApp(t)
	path := writeTempCSV(t, "Date,Task,Hours\n2025-03-01,coding,5\n")

	out, err := execute(t, app, "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, out, "GEMINI_API_KEY")
}

func TestRootCmd_RefusesNonInteractiveStdin(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := execute(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}
