package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSuite_Commands(t *testing.T) {
	suite := &TestSuite{Cases: []TestCase{{Command: "reg"}, {Command: ""}, {Command: "-f - bal"}}}
	assert.Equal(t, []string{"reg", "", "-f - bal"}, suite.Commands())
	assert.Empty(t, (&TestSuite{}).Commands())
}

func TestFileResult_Success(t *testing.T) {
	tests := []struct {
		name     string
		result   FileResult
		expected bool
	}{
		{"no cases", FileResult{}, true},
		{"all passed", FileResult{Cases: []CaseResult{{Status: StatusPassed}, {Status: StatusPassed}}}, true},
		{"one mismatch", FileResult{Cases: []CaseResult{{Status: StatusPassed}, {Status: StatusMismatch}}}, false},
		{"one error", FileResult{Cases: []CaseResult{{Status: StatusError}}}, false},
		{"parse error", FileResult{Err: errors.New("bad")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Success())
		})
	}
}

func TestFailuresFrom(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		failures := FailuresFrom(FileResult{Path: "a.test", Err: errors.New("parse a.test:3: invalid UTF-8")})
		require.Len(t, failures, 1)
		assert.Equal(t, FailureParse, failures[0].Kind)
		assert.Equal(t, -1, failures[0].CaseIndex)
		assert.Equal(t, "parse a.test:3: invalid UTF-8", failures[0].Message)
	})

	t.Run("cases", func(t *testing.T) {
		failures := FailuresFrom(FileResult{
			Path: "b.test",
			Cases: []CaseResult{
				{Index: 0, Command: "reg", Status: StatusPassed},
				{Index: 1, Command: "bal", Status: StatusMismatch, Expected: []string{"1"}, Actual: []string{"2"}, Diff: "d"},
				{Index: 2, Command: "print", Status: StatusError, Stderr: "oops", Err: errors.New("command wrote to stderr")},
			},
		})
		require.Len(t, failures, 2)

		assert.Equal(t, TestFailure{
			FilePath:  "b.test",
			CaseIndex: 1,
			Command:   "bal",
			Kind:      FailureMismatch,
			Expected:  []string{"1"},
			Actual:    []string{"2"},
			Diff:      "d",
		}, failures[0])
		assert.Equal(t, TestFailure{
			FilePath:  "b.test",
			CaseIndex: 2,
			Command:   "print",
			Kind:      FailureError,
			Stderr:    "oops",
			Message:   "command wrote to stderr",
		}, failures[1])
	})

	t.Run("all passed", func(t *testing.T) {
		assert.Empty(t, FailuresFrom(FileResult{Cases: []CaseResult{{Status: StatusPassed}}}))
	})
}
