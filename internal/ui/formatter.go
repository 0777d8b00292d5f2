package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"cte/internal/config"
	"cte/internal/diff"
	"cte/internal/domain"
	"cte/internal/parser"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *parser.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, p *parser.Parser, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		parser: p,
		out:    out,
	}
}

// PrintReports writes the report of every failed case and unparsable fixture, in run order
func (f *Formatter) PrintReports(results []domain.FileResult, reporter *diff.Reporter) error {
	for _, result := range results {
		name := f.relPath(result.Path)
		if result.Err != nil {
			if _, err := fmt.Fprintf(f.out, "%s\n", color.RedString("✗ %s: %v", name, result.Err)); err != nil {
				return err
			}
			continue
		}
		for _, c := range result.Cases {
			if err := reporter.Report(f.out, name, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrintMetaStats displays the statistics of a run
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta
	w := f.out

	fmt.Fprint(w, "\n")
	fmt.Fprintln(w, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, color.CyanString("║                    Test Execution Statistics                  ║"))
	fmt.Fprintln(w, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(w)

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{}) string
	}{
		{"Total Fixture Files", fmt.Sprint(meta.TotalFixtureFiles), color.WhiteString},
		{"Passed Fixture Files", fmt.Sprint(meta.PassedFixtureFiles), color.GreenString},
		{"Failed Fixture Files", fmt.Sprint(meta.FailedFixtureFiles), color.RedString},
		{"Total Test Cases", fmt.Sprint(meta.TotalTestCases), color.WhiteString},
		{"Passed Test Cases", fmt.Sprint(meta.PassedTestCases), color.GreenString},
		{"Mismatched Test Cases", fmt.Sprint(meta.MismatchedCases), color.RedString},
		{"Errored Test Cases", fmt.Sprint(meta.ErroredCases), color.RedString},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.WhiteString},
		{"Program", meta.Program, color.WhiteString},
		{"Timestamp", meta.Timestamp, color.WhiteString},
	}

	fmt.Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(w, "│ %-31s │ %s │\n", row.label, row.paint("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(w, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(w)
	if meta.FailedFixtureFiles == 0 {
		fmt.Fprintln(w, color.GreenString("✓ All tests passed!"))
		return
	}

	fmt.Fprintln(w, color.RedString("✗ %d fixture file(s) failed with %d test case failure(s)",
		meta.FailedFixtureFiles, meta.MismatchedCases+meta.ErroredCases))
	fmt.Fprintln(w)
	f.printFailedTestsTree(output.Details)
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTestsTree prints a tree of fixture files with their failed cases
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, failure := range failures {
		parts := strings.Split(filepath.ToSlash(f.relPath(failure.FilePath)), "/")
		current := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	// Sort children for consistent output
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}

		if child.IsFile {
			fmt.Fprintln(f.out, prefix+connector+color.YellowString(child.Name))
			for j, failure := range child.Failures {
				caseConnector := "├── "
				if j == len(child.Failures)-1 {
					caseConnector = "└── "
				}
				fmt.Fprintln(f.out, childPrefix+caseConnector+color.RedString("%s", failureLabel(failure)))
			}
			continue
		}

		fmt.Fprintln(f.out, prefix+connector+color.CyanString(child.Name))
		f.printTreeNode(child, childPrefix)
	}
}

func failureLabel(failure domain.TestFailure) string {
	if failure.Kind == domain.FailureParse {
		return "(unreadable fixture)"
	}
	return fmt.Sprintf("[%d] %s (%s)", failure.CaseIndex, failure.Command, failure.Kind)
}

// relPath returns path relative to the project for cleaner display
func (f *Formatter) relPath(path string) string {
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// PrintTestList prints a list of fixture files, optionally with their test cases.
// Files present in failedPaths (from the last run) are marked with [F].
func (f *Formatter) PrintTestList(fixtures []string, showTestCases bool, failedPaths map[string]struct{}) error {
	label := "fixture file(s)"
	if showTestCases {
		label = "fixture file(s) with test cases"
	}
	fmt.Fprintln(f.out, color.GreenString("Found %d %s:", len(fixtures), label))
	fmt.Fprintln(f.out)

	for i, fixture := range fixtures {
		lastFile := i == len(fixtures)-1

		failMarker := ""
		if _, ok := failedPaths[fixture]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		connector, casePrefix := "├── ", "│   "
		if lastFile {
			connector, casePrefix = "└── ", "    "
		}
		fmt.Fprintln(f.out, color.CyanString("%s%s", connector, f.relPath(fixture))+failMarker)

		if !showTestCases {
			continue
		}

		commands, err := f.parser.FindTestCases(fixture)
		if err != nil {
			fmt.Fprintln(f.out, casePrefix+"└── "+color.RedString("error: %v", err))
			continue
		}
		if len(commands) == 0 {
			fmt.Fprintln(f.out, casePrefix+"└── "+color.RedString("(no test cases found)"))
			continue
		}
		for j, command := range commands {
			caseConnector := "├── "
			if j == len(commands)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintln(f.out, casePrefix+caseConnector+color.YellowString("[%d] %s", j, command))
		}
	}

	return nil
}
