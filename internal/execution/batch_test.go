package execution

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cte/internal/domain"
	"cte/internal/parser"
)

type recordingProgress struct {
	updates  [][3]int
	finished bool
}

func (p *recordingProgress) Update(completed, passed, failed int) {
	p.updates = append(p.updates, [3]int{completed, passed, failed})
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBatch_Run_IsolatesFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.test", "test accounts\nAssets\nend test\n")
	bad := writeFixture(t, dir, "bad.test", "test accounts\nLiabilities\nend test\ntest payees\nKFC\nend test\n")
	missing := filepath.Join(dir, "missing.test")

	runner := &fakeRunner{outputs: map[string]domain.CommandOutput{
		"ledger accounts": {Stdout: "Assets\n"},
		"ledger payees":   {Stdout: "KFC\n"},
	}}
	batch := NewBatch(parser.NewParser(), newTestExecutor(runner, false), BatchOptions{})
	progress := &recordingProgress{}
	batch.SetProgress(progress)

	results, _ := batch.Run(context.Background(), []string{missing, bad, good})

	require.Len(t, results, 3)

	var parseErr *parser.ParseError
	assert.ErrorAs(t, results[0].Err, &parseErr)
	assert.False(t, results[0].Success())

	assert.NoError(t, results[1].Err)
	require.Len(t, results[1].Cases, 2)
	assert.Equal(t, domain.StatusMismatch, results[1].Cases[0].Status)
	assert.Equal(t, domain.StatusPassed, results[1].Cases[1].Status)

	assert.True(t, results[2].Success())

	assert.Equal(t, [][3]int{{1, 0, 1}, {2, 1, 2}, {3, 2, 2}}, progress.updates)
	assert.True(t, progress.finished)
}

func TestBatch_Run_FailFast(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "a.test", "test accounts\nWrong\nend test\n")
	second := writeFixture(t, dir, "b.test", "test accounts\nAssets\nend test\n")

	runner := &fakeRunner{outputs: map[string]domain.CommandOutput{
		"ledger accounts": {Stdout: "Assets\n"},
	}}
	batch := NewBatch(parser.NewParser(), newTestExecutor(runner, false), BatchOptions{FailFast: true})

	results, _ := batch.Run(context.Background(), []string{first, second})

	require.Len(t, results, 1)
	assert.Equal(t, first, results[0].Path)
	assert.Len(t, runner.calls, 1)
}

func TestBatch_Run_StopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.test", "test accounts\nAssets\nend test\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	results, _ := NewBatch(parser.NewParser(), newTestExecutor(runner, false), BatchOptions{}).Run(ctx, []string{path})
	assert.Empty(t, results)
	assert.Empty(t, runner.calls)
}
