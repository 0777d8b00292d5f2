package domain

import "time"

// CommandOutput is what a command runner captured from one process
type CommandOutput struct {
	Stdout     string
	Stderr     string
	ExitStatus int
}

// CaseStatus is the verdict for a single test case
type CaseStatus string

const (
	// StatusPassed means stdout matched the expected output exactly
	StatusPassed CaseStatus = "passed"
	// StatusMismatch means the command ran cleanly but stdout differed
	StatusMismatch CaseStatus = "mismatch"
	// StatusError means the command wrote to stderr or could not be launched
	StatusError CaseStatus = "error"
)

// CaseResult represents the result of executing one test case
type CaseResult struct {
	Index       int           // Position of the case in its suite
	Command     string        // Command as written in the fixture
	FullCommand string        // Command line actually executed
	Expected    []string      // Expected output lines
	Actual      []string      // Captured stdout lines
	Stderr      string        // Captured stderr
	ExitStatus  int           // Process exit status
	Status      CaseStatus    // Verdict
	Diff        string        // Context diff, set for mismatches
	Err         error         // Infrastructure failure, set for errors
	Duration    time.Duration // Time taken to execute
}

// Passed reports whether the case passed
func (r CaseResult) Passed() bool {
	return r.Status == StatusPassed
}

// FileResult represents the result of processing one fixture file
type FileResult struct {
	Path     string        // Path to the fixture file
	Suite    *TestSuite    // Parsed suite, nil when parsing failed
	Cases    []CaseResult  // Per-case results in file order
	Err      error         // Parse error, if the file could not be processed
	Duration time.Duration // Time taken to parse and execute
}

// Success reports whether the file parsed and every case passed
func (r FileResult) Success() bool {
	if r.Err != nil {
		return false
	}
	for _, c := range r.Cases {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	TotalFixtureFiles  int     `json:"total_fixture_files"`
	FailedFixtureFiles int     `json:"failed_fixture_files"`
	PassedFixtureFiles int     `json:"passed_fixture_files"`
	TotalTestCases     int     `json:"total_test_cases"`
	PassedTestCases    int     `json:"passed_test_cases"`
	MismatchedCases    int     `json:"mismatched_test_cases"`
	ErroredCases       int     `json:"errored_test_cases"`
	Duration           string  `json:"duration"`
	DurationSeconds    float64 `json:"duration_seconds"`
	Program            string  `json:"program"`
	Timestamp          string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
