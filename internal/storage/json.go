package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"

	"cte/internal/domain"
)

// Summarize builds the persisted output for a run
func Summarize(results []domain.FileResult, duration time.Duration, program string) *domain.TestResultsOutput {
	cases := lo.FlatMap(results, func(r domain.FileResult, _ int) []domain.CaseResult {
		return r.Cases
	})
	statusCounts := lo.CountValuesBy(cases, func(c domain.CaseResult) domain.CaseStatus {
		return c.Status
	})
	passedFiles := lo.CountBy(results, func(r domain.FileResult) bool {
		return r.Success()
	})
	failures := lo.FlatMap(results, func(r domain.FileResult, _ int) []domain.TestFailure {
		return domain.FailuresFrom(r)
	})
	if failures == nil {
		failures = []domain.TestFailure{}
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			TotalFixtureFiles:  len(results),
			FailedFixtureFiles: len(results) - passedFiles,
			PassedFixtureFiles: passedFiles,
			TotalTestCases:     len(cases),
			PassedTestCases:    statusCounts[domain.StatusPassed],
			MismatchedCases:    statusCounts[domain.StatusMismatch],
			ErroredCases:       statusCounts[domain.StatusError],
			Duration:           duration.String(),
			DurationSeconds:    duration.Seconds(),
			Program:            program,
			Timestamp:          time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
}

// Save summarizes results and writes them to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.FileResult, duration time.Duration, program string) (*domain.TestResultsOutput, error) {
	output := Summarize(results, duration, program)
	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// FailedPaths returns the fixture paths with unresolved failures in output
func FailedPaths(output *domain.TestResultsOutput) []string {
	unresolved := lo.Filter(output.Details, func(f domain.TestFailure, _ int) bool {
		return !f.Resolved
	})
	return lo.Uniq(lo.Map(unresolved, func(f domain.TestFailure, _ int) string {
		return f.FilePath
	}))
}
