package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"cte/internal/domain"
)

func TestListItemText(t *testing.T) {
	tests := []struct {
		name     string
		failure  domain.TestFailure
		index    int
		expected string
	}{
		{
			name:     "unresolved",
			failure:  domain.TestFailure{Command: "reg", Kind: domain.FailureMismatch},
			index:    0,
			expected: "[yellow]1.[white] reg",
		},
		{
			name:     "resolved",
			failure:  domain.TestFailure{Command: "bal", Kind: domain.FailureError, Resolved: true},
			index:    2,
			expected: "[gray]✓ [yellow]3.[gray] bal[white]",
		},
		{
			name:     "parse failure",
			failure:  domain.TestFailure{Kind: domain.FailureParse},
			index:    0,
			expected: "[yellow]1.[white] (unreadable fixture)",
		},
		{
			name:     "empty command",
			failure:  domain.TestFailure{Kind: domain.FailureMismatch},
			index:    0,
			expected: "[yellow]1.[white] (no arguments)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, listItemText(tt.failure, tt.index))
		})
	}
}

func TestHeaderTextCountsUnresolved(t *testing.T) {
	text := headerText([]domain.TestFailure{{}, {Resolved: true}, {}})
	assert.Contains(t, text, "Test Failures (3 total, 2 unresolved)")
}

func TestFormatFailureStats(t *testing.T) {
	assert.Equal(t,
		"[cyan]path:[white] [yellow]a.test[white]::[yellow]#1[white] reg\n",
		formatFailureStats(domain.TestFailure{FilePath: "a.test", CaseIndex: 1, Command: "reg"}))
	assert.Equal(t,
		"[cyan]path:[white] [yellow]b.test[white]\n",
		formatFailureStats(domain.TestFailure{FilePath: "b.test", CaseIndex: -1, Kind: domain.FailureParse}))
	assert.Contains(t, formatFailureStats(domain.TestFailure{}), "Unknown path")
}

func TestFormatFailureDetails(t *testing.T) {
	t.Run("mismatch", func(t *testing.T) {
		details := formatFailureDetails(domain.TestFailure{
			Command:  "reg",
			Kind:     domain.FailureMismatch,
			Expected: []string{"total 10"},
			Actual:   []string{"total 12"},
			Diff:     "*** Expected\n--- Actual\n",
		})
		assert.Contains(t, details, "✗ mismatch")
		assert.Contains(t, details, "Command:[white] reg")
		assert.Contains(t, details, "*** Expected")
		assert.Contains(t, details, "Changes:")
		assert.NotContains(t, details, "Stderr:")
	})

	t.Run("error", func(t *testing.T) {
		details := formatFailureDetails(domain.TestFailure{
			Command: "bal",
			Kind:    domain.FailureError,
			Message: "unexpected stderr output",
			Stderr:  "Error: no journal file",
		})
		assert.Contains(t, details, "✗ error")
		assert.Contains(t, details, "unexpected stderr output")
		assert.Contains(t, details, "Stderr:[white]\nError: no journal file")
		assert.NotContains(t, details, "Changes:")
	})

	t.Run("parse", func(t *testing.T) {
		details := formatFailureDetails(domain.TestFailure{
			Kind:    domain.FailureParse,
			Message: "parse a.test:2: invalid UTF-8",
		})
		assert.Contains(t, details, "✗ parse")
		assert.NotContains(t, details, "Command:")
		assert.Contains(t, details, "invalid UTF-8")
	})

	t.Run("escapes color tags", func(t *testing.T) {
		details := formatFailureDetails(domain.TestFailure{
			Command: "reg",
			Kind:    domain.FailureError,
			Stderr:  "[red]",
		})
		assert.Contains(t, details, "[red[]")
	})
}

func TestInlineDiff(t *testing.T) {
	assert.Equal(t, "same", inlineDiff([]string{"same"}, []string{"same"}))

	out := inlineDiff([]string{"total 10"}, []string{"total 12"})
	assert.Contains(t, out, "total 1")
	assert.Contains(t, out, "[red::s]0[white::-]")
	assert.Contains(t, out, "[green]2[white]")
}

func TestViewWithoutFailures(t *testing.T) {
	var buf bytes.Buffer
	viewer := NewFailureViewer(nil, &buf)

	err := viewer.View(&domain.TestResultsOutput{Details: []domain.TestFailure{}})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No test failures found!")
}

var _ Viewer = (*FailureViewer)(nil)
