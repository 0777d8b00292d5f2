package execution

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"cte/internal/domain"
	"cte/internal/logger"
)

// ErrStderr marks a case whose command wrote to stderr
var ErrStderr = errors.New("command wrote to stderr")

// Differ renders expected/actual differences
type Differ interface {
	Diff(expected, actual []string) string
}

// ExecutorOptions configures an Executor
type ExecutorOptions struct {
	Program   string // Prefixed to every case command
	FeedInput bool   // Pipe the suite's shared input to stdin
}

// Executor runs the cases of a test suite
type Executor struct {
	runner CommandRunner
	differ Differ
	opts   ExecutorOptions
}

// NewExecutor creates a new Executor
func NewExecutor(runner CommandRunner, differ Differ, opts ExecutorOptions) *Executor {
	return &Executor{
		runner: runner,
		differ: differ,
		opts:   opts,
	}
}

// RunSuite runs every case in file order. A failing case never stops the suite.
func (e *Executor) RunSuite(ctx context.Context, suite *domain.TestSuite) domain.FileResult {
	start := time.Now()
	result := domain.FileResult{
		Path:  suite.SourcePath,
		Suite: suite,
		Cases: make([]domain.CaseResult, 0, len(suite.Cases)),
	}

	for i := range suite.Cases {
		result.Cases = append(result.Cases, e.RunCase(ctx, suite, i))
	}

	result.Duration = time.Since(start)
	return result
}

// RunCase runs a single case of suite
func (e *Executor) RunCase(ctx context.Context, suite *domain.TestSuite, index int) domain.CaseResult {
	tc := suite.Cases[index]
	start := time.Now()

	result := domain.CaseResult{
		Index:       index,
		Command:     tc.Command,
		FullCommand: e.commandLine(tc.Command),
		Expected:    tc.ExpectedOutput,
	}

	output, err := e.runner.Run(ctx, result.FullCommand, e.stdin(suite))
	result.Duration = time.Since(start)
	result.Stderr = output.Stderr
	result.ExitStatus = output.ExitStatus
	result.Actual = SplitLines(output.Stdout)

	switch {
	case err != nil:
		result.Status = domain.StatusError
		result.Err = err
	case output.Stderr != "":
		result.Status = domain.StatusError
		result.Err = fmt.Errorf("%w (exit status %d)", ErrStderr, output.ExitStatus)
	case slices.Equal(result.Expected, result.Actual):
		result.Status = domain.StatusPassed
	default:
		result.Status = domain.StatusMismatch
		if e.differ != nil {
			result.Diff = e.differ.Diff(result.Expected, result.Actual)
		}
	}

	logger.Debug("case finished",
		"path", suite.SourcePath,
		"index", index,
		"command", result.FullCommand,
		"status", result.Status,
		"exit", result.ExitStatus,
	)
	return result
}

// commandLine prefixes the configured program
func (e *Executor) commandLine(command string) string {
	if e.opts.Program == "" {
		return command
	}
	if command == "" {
		return e.opts.Program
	}
	return e.opts.Program + " " + command
}

func (e *Executor) stdin(suite *domain.TestSuite) string {
	if !e.opts.FeedInput || len(suite.SharedInput) == 0 {
		return ""
	}
	return strings.Join(suite.SharedInput, "\n") + "\n"
}

// SplitLines splits captured output into lines. A trailing newline does not
// produce an empty final line and "\r\n" endings are treated as "\n".
func SplitLines(output string) []string {
	if output == "" {
		return []string{}
	}
	output = strings.TrimSuffix(output, "\n")
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
