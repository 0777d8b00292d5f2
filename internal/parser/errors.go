package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is returned when a fixture line is not valid UTF-8
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ParseError reports a fixture that could not be read or decoded.
// Malformed content never produces a ParseError.
type ParseError struct {
	Path string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
