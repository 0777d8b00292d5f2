package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cte/internal/config"
	"cte/internal/domain"
)

func sampleResults() []domain.FileResult {
	return []domain.FileResult{
		{
			Path: "a.test",
			Cases: []domain.CaseResult{
				{Index: 0, Command: "accounts", Status: domain.StatusPassed},
				{Index: 1, Command: "accounts b", Status: domain.StatusMismatch,
					Expected: []string{"Assets"}, Actual: []string{"Liabilities"}, Diff: "*** Expected\n"},
			},
		},
		{
			Path: "b.test",
			Cases: []domain.CaseResult{
				{Index: 0, Command: "bal --bogus", Status: domain.StatusError,
					Stderr: "Error: bad option\n", Err: errors.New("command wrote to stderr")},
			},
		},
		{
			Path: "c.test",
			Err:  errors.New("parse c.test: permission denied"),
		},
		{
			Path:  "d.test",
			Cases: []domain.CaseResult{{Index: 0, Command: "payees", Status: domain.StatusPassed}},
		},
	}
}

func TestSummarize(t *testing.T) {
	output := Summarize(sampleResults(), 1500*time.Millisecond, "ledger")

	meta := output.Meta
	assert.Equal(t, 4, meta.TotalFixtureFiles)
	assert.Equal(t, 1, meta.PassedFixtureFiles)
	assert.Equal(t, 3, meta.FailedFixtureFiles)
	assert.Equal(t, 4, meta.TotalTestCases)
	assert.Equal(t, 2, meta.PassedTestCases)
	assert.Equal(t, 1, meta.MismatchedCases)
	assert.Equal(t, 1, meta.ErroredCases)
	assert.Equal(t, 1.5, meta.DurationSeconds)
	assert.Equal(t, "ledger", meta.Program)

	require.Len(t, output.Details, 3)
	assert.Equal(t, domain.FailureMismatch, output.Details[0].Kind)
	assert.Equal(t, 1, output.Details[0].CaseIndex)
	assert.Equal(t, domain.FailureError, output.Details[1].Kind)
	assert.Equal(t, "Error: bad option\n", output.Details[1].Stderr)
	assert.Equal(t, domain.FailureParse, output.Details[2].Kind)
	assert.Equal(t, -1, output.Details[2].CaseIndex)
}

func TestSummarize_NoFailures(t *testing.T) {
	output := Summarize(nil, 0, "ledger")
	assert.NotNil(t, output.Details)
	assert.Empty(t, output.Details)
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	saved, err := st.Save(sampleResults(), time.Second, "ledger")
	require.NoError(t, err)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Meta, loaded.Meta)
	assert.Equal(t, saved.Details, loaded.Details)

	loaded.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(loaded))

	reloaded, err := st.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.Details[0].Resolved)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	assert.Error(t, err)
}

func TestFailedPaths(t *testing.T) {
	output := Summarize(sampleResults(), 0, "ledger")
	assert.Equal(t, []string{"a.test", "b.test", "c.test"}, FailedPaths(output))

	output.Details[0].Resolved = true
	assert.Equal(t, []string{"b.test", "c.test"}, FailedPaths(output))
}
