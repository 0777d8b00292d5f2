package execution

import (
	"context"
	"time"

	"cte/internal/domain"
	"cte/internal/logger"
)

// SuiteParser loads a fixture file into a test suite
type SuiteParser interface {
	ParseFile(path string) (*domain.TestSuite, error)
}

// Progress receives updates after each fixture file
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}

// BatchOptions configures a Batch
type BatchOptions struct {
	FailFast bool // Stop after the first fixture file that fails
}

// Batch processes fixture files one at a time, in order
type Batch struct {
	parser   SuiteParser
	executor *Executor
	progress Progress
	opts     BatchOptions
}

// NewBatch creates a new Batch
func NewBatch(parser SuiteParser, executor *Executor, opts BatchOptions) *Batch {
	return &Batch{
		parser:   parser,
		executor: executor,
		opts:     opts,
	}
}

// SetProgress sets the progress sink for the batch
func (b *Batch) SetProgress(progress Progress) {
	b.progress = progress
}

// Run parses and executes every fixture. A fixture that cannot be parsed is
// logged and recorded as failed; the remaining fixtures still run.
func (b *Batch) Run(ctx context.Context, paths []string) ([]domain.FileResult, time.Duration) {
	startTime := time.Now()
	results := make([]domain.FileResult, 0, len(paths))

	var passedCases, failedCases int
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", "remaining", len(paths)-i, "error", err)
			break
		}

		result := b.runFile(ctx, path)
		results = append(results, result)

		if result.Err != nil {
			failedCases++
		}
		for _, c := range result.Cases {
			if c.Passed() {
				passedCases++
			} else {
				failedCases++
			}
		}
		if b.progress != nil {
			b.progress.Update(i+1, passedCases, failedCases)
		}

		if b.opts.FailFast && !result.Success() {
			logger.Info("stopping after first failure", "path", path)
			break
		}
	}

	if b.progress != nil {
		b.progress.Finish()
	}
	return results, time.Since(startTime)
}

func (b *Batch) runFile(ctx context.Context, path string) domain.FileResult {
	start := time.Now()
	logger.Debug("running fixture", "path", path)

	suite, err := b.parser.ParseFile(path)
	if err != nil {
		logger.Error("error parsing file", "path", path, "error", err)
		return domain.FileResult{Path: path, Err: err, Duration: time.Since(start)}
	}

	result := b.executor.RunSuite(ctx, suite)
	result.Path = path
	result.Duration = time.Since(start)
	return result
}
