package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cte/internal/config"
	"cte/internal/diff"
	"cte/internal/discovery"
	"cte/internal/execution"
	"cte/internal/logger"
	"cte/internal/parser"
	"cte/internal/storage"
	"cte/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	parser  *parser.Parser
	storage storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, p *parser.Parser, st storage.Storage) *RunCommand {
	return &RunCommand{
		config:  cfg,
		parser:  p,
		storage: st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.config
	out := cmd.OutOrStdout()

	fixtures, err := rc.fixtures(args)
	if err != nil {
		return err
	}
	fixtures = discovery.NewFilter().FilterByName(fixtures, cfg.Flags.NameFilter)

	if len(fixtures) == 0 {
		fmt.Fprintln(out, color.YellowString("No fixtures to execute"))
		return nil
	}

	reporter := diff.NewReporter(diff.Options{Color: !color.NoColor})
	executor := execution.NewExecutor(execution.NewProcessRunner(cfg), reporter, execution.ExecutorOptions{
		Program:   cfg.Program,
		FeedInput: cfg.FeedInput,
	})
	batch := execution.NewBatch(rc.parser, executor, execution.BatchOptions{FailFast: cfg.Flags.FailFast})
	if !cfg.Flags.NoProgress {
		batch.SetProgress(ui.NewProgressBar(len(fixtures)))
	}

	results, duration := batch.Run(cmd.Context(), fixtures)

	formatter := newFormatter(cfg, rc.parser, cmd)
	if err := formatter.PrintReports(results, reporter); err != nil {
		return err
	}

	output, err := rc.storage.Save(results, duration, cfg.Program)
	if err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	formatter.PrintMetaStats(output)

	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}
	if output.Meta.FailedFixtureFiles == 0 {
		return nil
	}

	if cfg.Flags.OpenFailures {
		if err := ui.NewFailureViewer(rc.storage, out).View(output); err != nil {
			return err
		}
	}
	return ErrTestsFailed
}

// fixtures returns the files to run: explicit arguments, the failures of the
// last run, or everything discovered under the test path.
func (rc *RunCommand) fixtures(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if rc.config.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return nil, fmt.Errorf("no previous run to take failures from: %w", err)
		}
		failed := storage.FailedPaths(last)
		logger.Debug("rerunning failed fixtures", "count", len(failed))
		return failed, nil
	}

	scanner := discovery.NewScanner(rc.config.Pattern, rc.config.PathsToIgnore)
	return scanner.Scan(rc.config.GetTestPath())
}
