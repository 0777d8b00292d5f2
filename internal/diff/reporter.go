// Package diff renders expected/actual line differences as context diffs.
package diff

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"cte/internal/domain"
)

const (
	DefaultContext  = 3
	DefaultFromFile = "Expected"
	DefaultToFile   = "Actual"
)

// Options configures a Reporter
type Options struct {
	Context  int    // Unchanged lines shown around each change
	FromFile string // Label for the expected side
	ToFile   string // Label for the actual side
	Color    bool   // Colorize markers when writing reports
}

// Reporter computes and writes context diffs
type Reporter struct {
	opts Options
}

// NewReporter creates a Reporter, filling unset options with defaults
func NewReporter(opts Options) *Reporter {
	if opts.Context <= 0 {
		opts.Context = DefaultContext
	}
	if opts.FromFile == "" {
		opts.FromFile = DefaultFromFile
	}
	if opts.ToFile == "" {
		opts.ToFile = DefaultToFile
	}
	return &Reporter{opts: opts}
}

// Diff returns a context diff of expected against actual, or "" when they match
func (r *Reporter) Diff(expected, actual []string) string {
	if slices.Equal(expected, actual) {
		return ""
	}

	text, err := difflib.GetContextDiffString(difflib.ContextDiff{
		A:        withEOL(expected),
		B:        withEOL(actual),
		FromFile: r.opts.FromFile,
		ToFile:   r.opts.ToFile,
		Context:  r.opts.Context,
		Eol:      "\n",
	})
	if err != nil {
		// difflib only fails on writer errors, which a string builder never returns
		return fmt.Sprintf("diff failed: %v\n", err)
	}
	return text
}

// withEOL terminates every line, which difflib expects
func withEOL(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}

// Report writes the outcome of a failed case to w. Passed cases write nothing.
func (r *Reporter) Report(w io.Writer, fixture string, result domain.CaseResult) error {
	switch result.Status {
	case domain.StatusMismatch:
		text := result.Diff
		if text == "" {
			text = r.Diff(result.Expected, result.Actual)
		}
		if _, err := fmt.Fprintf(w, "%s\n", r.header(fixture, result, "output mismatch")); err != nil {
			return err
		}
		_, err := io.WriteString(w, r.colorize(text))
		return err
	case domain.StatusError:
		if _, err := fmt.Fprintf(w, "%s\n", r.header(fixture, result, "command failed")); err != nil {
			return err
		}
		if result.Err != nil {
			if _, err := fmt.Fprintf(w, "  %v\n", result.Err); err != nil {
				return err
			}
		}
		if result.Stderr != "" {
			for _, line := range strings.Split(strings.TrimRight(result.Stderr, "\n"), "\n") {
				if _, err := fmt.Fprintf(w, "  stderr: %s\n", line); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return nil
	}
}

func (r *Reporter) header(fixture string, result domain.CaseResult, what string) string {
	h := fmt.Sprintf("✗ %s [%d] %s: %s", fixture, result.Index, result.Command, what)
	if r.opts.Color {
		return color.New(color.FgRed, color.Bold).Sprint(h)
	}
	return h
}

func (r *Reporter) colorize(text string) string {
	if !r.opts.Color {
		return text
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "***") || strings.HasPrefix(line, "--- "):
			line = color.CyanString("%s", line)
		case strings.HasPrefix(line, "+ "):
			line = color.GreenString("%s", line)
		case strings.HasPrefix(line, "- "):
			line = color.RedString("%s", line)
		case strings.HasPrefix(line, "! "):
			line = color.YellowString("%s", line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
