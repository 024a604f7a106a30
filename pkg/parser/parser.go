package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// FileAccessError is returned when the input file cannot be opened.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("opening log file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// FileSource implements LineSource for a single file or stream.
// Lines end at \n, \r\n or a lone \r and have no length limit.
type FileSource struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	pending []string
	lineNum int
	done    bool
}

// NewFileSource creates a LineSource that reads the file at path.
// The file is opened on the first call to Next.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// NewReaderSource creates a LineSource over an already open stream such as
// standard input. name is reported as the line source. Close does not close r.
func NewReaderSource(r io.Reader, name string) *FileSource {
	return &FileSource{
		path:   name,
		reader: bufio.NewReader(r),
	}
}

// Next returns the next line with its terminator removed.
// Returns io.EOF when the input is exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for len(s.pending) == 0 {
		if s.done {
			return nil, io.EOF
		}
		if s.reader == nil {
			if err := s.open(); err != nil {
				return nil, err
			}
		}
		if err := s.fill(); err != nil {
			return nil, err
		}
	}

	content := s.pending[0]
	s.pending = s.pending[1:]
	s.lineNum++

	return &LogLine{
		Content: content,
		Source:  s.path,
		LineNum: s.lineNum,
	}, nil
}

// fill reads up to the next \n and queues every line in that chunk.
func (s *FileSource) fill() error {
	chunk, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading %s: %w", s.path, err)
		}
		s.done = true
	}
	if chunk == "" {
		return nil
	}

	terminated := strings.HasSuffix(chunk, "\n")
	if terminated {
		chunk = strings.TrimSuffix(chunk[:len(chunk)-1], "\r")
	}

	lines := strings.Split(chunk, "\r")
	// A final \r before end of input terminates the last line.
	if !terminated && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	s.pending = append(s.pending, lines...)

	return nil
}

// Close releases resources.
func (s *FileSource) Close() error {
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return &FileAccessError{Path: s.path, Err: err}
	}

	s.file = f
	s.reader = bufio.NewReaderSize(f, 64*1024)
	s.lineNum = 0

	return nil
}

// IsBlank reports whether a line holds nothing but whitespace.
func IsBlank(content string) bool {
	return TrimSpace(content) == ""
}

// TrimSpace removes leading and trailing whitespace. Besides the Unicode
// White_Space set it strips the file, group, record and unit separators
// (U+001C to U+001F), which log producers treat as blank.
func TrimSpace(content string) string {
	return strings.TrimFunc(content, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// ParseLine parses the whitespace-trimmed content of a line as exactly one JSON
// value. Callers skip blank lines before calling it.
func ParseLine(line LogLine) Result {
	trimmed := TrimSpace(line.Content)

	v, err := jsonvalue.Decode([]byte(trimmed))
	if err != nil {
		perr := &ParseError{
			Kind:    jsonvalue.ErrKindSyntax,
			LineNum: line.LineNum,
			Column:  1,
			Detail:  err.Error(),
		}
		var decErr *jsonvalue.DecodeError
		if errors.As(err, &decErr) {
			perr.Kind = decErr.Kind
			perr.Column = int(decErr.Offset) + 1
			perr.Detail = decErr.Msg
		}
		return Result{Line: line, Err: perr}
	}

	return Result{Line: line, Value: v}
}
