// Package parser turns fixture files into test suites.
//
// A fixture file looks like:
//
//	; comment line
//	<shared input>
//	test <command>
//	<expected output>
//	end test
//
// A file can hold any number of test blocks. Lines between an "end test" and
// the next "test" line are ignored.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"cte/internal/domain"
	"cte/internal/logger"
)

const (
	commentPrefix = ";"
	testKeyword   = "test"
	endTestMarker = "end test"

	maxLineSize = 1024 * 1024
)

// section is the part of the fixture the parser is currently reading
type section int

const (
	sectionInput section = iota
	sectionOutput
	sectionUnknown
)

func (s section) String() string {
	switch s {
	case sectionInput:
		return "input"
	case sectionOutput:
		return "output"
	default:
		return "unknown"
	}
}

// cursor holds the transient parse state for one file
type cursor struct {
	suite   *domain.TestSuite
	section section
	open    *domain.TestCase // case under construction, appended once on close
}

func (c *cursor) openCase(command string) {
	c.closeCase()
	c.open = &domain.TestCase{Command: command, ExpectedOutput: []string{}}
	c.section = sectionOutput
}

func (c *cursor) closeCase() {
	if c.open == nil {
		return
	}
	c.suite.Cases = append(c.suite.Cases, *c.open)
	c.open = nil
}

func (c *cursor) consume(line string) {
	switch {
	case strings.HasPrefix(line, commentPrefix):
		logger.Debug("skipping comment", "line", line)
	case isTestLine(line):
		command := extractCommand(line)
		logger.Debug("got command", "command", command)
		c.openCase(command)
	case line == endTestMarker:
		c.closeCase()
		c.section = sectionUnknown
	default:
		switch c.section {
		case sectionInput:
			c.suite.SharedInput = append(c.suite.SharedInput, line)
		case sectionOutput:
			c.open.ExpectedOutput = append(c.open.ExpectedOutput, line)
		case sectionUnknown:
			logger.Debug("ignoring line outside a test block", "line", line)
		}
	}
}

func isTestLine(line string) bool {
	return line == testKeyword || strings.HasPrefix(line, testKeyword+" ")
}

// extractCommand returns everything after the "test" keyword, trimmed
func extractCommand(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, testKeyword))
}

// Parse reads a fixture from r. sourcePath is only recorded on the suite and
// used in errors.
func Parse(r io.Reader, sourcePath string) (*domain.TestSuite, error) {
	c := &cursor{
		suite: &domain.TestSuite{
			SourcePath:  sourcePath,
			SharedInput: []string{},
			Cases:       []domain.TestCase{},
		},
		section: sectionInput,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &ParseError{
				Path: sourcePath,
				Line: lineNo,
				Err:  ErrInvalidUTF8,
			}
		}
		c.consume(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: sourcePath, Line: lineNo, Err: err}
	}

	// a missing trailing "end test" is allowed
	c.closeCase()

	return c.suite, nil
}

// ParseFile opens and parses the fixture at path
func ParseFile(path string) (*domain.TestSuite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	suite, err := Parse(f, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed fixture", "path", path, "cases", len(suite.Cases), "input_lines", len(suite.SharedInput))
	return suite, nil
}

// Parser parses fixture files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses the fixture at path
func (p *Parser) ParseFile(path string) (*domain.TestSuite, error) {
	return ParseFile(path)
}

// FindTestCases returns the commands declared in a fixture file, in file order
func (p *Parser) FindTestCases(path string) ([]string, error) {
	suite, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	return suite.Commands(), nil
}
