package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"nonsense", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestConfigure_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cte.log")
	require.NoError(t, Configure("debug", path))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	require.NoError(t, Configure("info", ""))
}

func TestSetOutput_KeepsLevel(t *testing.T) {
	require.NoError(t, Configure("error", ""))
	defer func() { _ = Configure("info", "") }()

	var buf bytes.Buffer
	SetOutput(&buf)
	Info("hidden")
	Error("shown", "path", "a.test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "a.test")
}
