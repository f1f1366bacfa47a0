package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/worklens/internal/cli"
	"github.com/alexanderramin/worklens/internal/db"
	"github.com/alexanderramin/worklens/internal/intelligence"
	"github.com/alexanderramin/worklens/internal/llm"
	"github.com/alexanderramin/worklens/internal/repository"
	"github.com/alexanderramin/worklens/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The dataset lives in an in-memory database scoped to this process;
	// nothing survives the session.
	database, err := db.OpenMemory()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repo := repository.NewSQLiteDatasetRepo(database)

	app := &cli.App{
		Datasets: service.NewDatasetService(repo),
		Metrics:  service.NewMetricsService(repo),
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the analysis service only when an API key is configured.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled() {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewGeminiClient(llmCfg, observer)

		cache := intelligence.NewResultCache()
		analysis := intelligence.NewAnalysisService(llmClient, cache, os.Stderr)
		app.Summaries = service.NewSummaryService(analysis, cache)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
