package domain

// FailureKind classifies a persisted failure
type FailureKind string

const (
	FailureMismatch FailureKind = "mismatch"
	FailureError    FailureKind = "error"
	FailureParse    FailureKind = "parse"
)

// TestFailure represents a failed test case, or a fixture that could not be parsed
type TestFailure struct {
	FilePath  string      `json:"file_path"`
	CaseIndex int         `json:"case_index"`
	Command   string      `json:"command"`
	Kind      FailureKind `json:"kind"`
	Expected  []string    `json:"expected,omitempty"`
	Actual    []string    `json:"actual,omitempty"`
	Stderr    string      `json:"stderr,omitempty"`
	Diff      string      `json:"diff,omitempty"`
	Message   string      `json:"message,omitempty"`
	Resolved  bool        `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// FailuresFrom flattens a file result into persisted failures
func FailuresFrom(result FileResult) []TestFailure {
	if result.Err != nil {
		return []TestFailure{{
			FilePath:  result.Path,
			CaseIndex: -1,
			Kind:      FailureParse,
			Message:   result.Err.Error(),
		}}
	}

	var failures []TestFailure
	for _, c := range result.Cases {
		switch c.Status {
		case StatusMismatch:
			failures = append(failures, TestFailure{
				FilePath:  result.Path,
				CaseIndex: c.Index,
				Command:   c.Command,
				Kind:      FailureMismatch,
				Expected:  c.Expected,
				Actual:    c.Actual,
				Diff:      c.Diff,
			})
		case StatusError:
			failure := TestFailure{
				FilePath:  result.Path,
				CaseIndex: c.Index,
				Command:   c.Command,
				Kind:      FailureError,
				Stderr:    c.Stderr,
			}
			if c.Err != nil {
				failure.Message = c.Err.Error()
			}
			failures = append(failures, failure)
		}
	}
	return failures
}
