// Package parser provides log file reading and per-line JSON parsing.
package parser

import (
	"fmt"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// LogLine is a raw log line as read from its source.
type LogLine struct {
	// Content is the raw line text without the line terminator.
	Content string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// Result is the outcome of parsing one non-empty line. Exactly one of Value
// and Err is set.
type Result struct {
	Line  LogLine
	Value jsonvalue.Value
	Err   *ParseError
}

// OK reports whether the line parsed into a value.
func (r Result) OK() bool {
	return r.Err == nil
}

// ParseError describes a line that is not a single valid JSON document.
type ParseError struct {
	// Kind classifies the failure (syntax, truncated, extra data).
	Kind jsonvalue.ErrorKind

	// LineNum is the 1-based line number in the source file.
	LineNum int

	// Column is the 1-based column, counted in bytes of the trimmed line.
	Column int

	// Detail is the decoder's description of the problem.
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d column %d (char %d)", e.Detail, e.LineNum, e.Column, e.Column-1)
}
