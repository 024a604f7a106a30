// Package converter collects newline-delimited JSON records into an ordered list.
package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ccollicutt/logkit/pkg/filter"
	"github.com/ccollicutt/logkit/pkg/jsonvalue"
	"github.com/ccollicutt/logkit/pkg/parser"
)

// Converter reads lines from a source and keeps every line that parses as JSON.
// Malformed lines are reported on the diagnostics writer and skipped.
type Converter struct {
	diagnostics io.Writer
	filter      *filter.Filter
}

// ConverterOption configures converter behavior.
type ConverterOption func(*Converter)

// WithDiagnostics sets where per-line parse errors are written (default os.Stderr).
func WithDiagnostics(w io.Writer) ConverterOption {
	return func(c *Converter) {
		if w != nil {
			c.diagnostics = w
		}
	}
}

// WithFilter keeps only records matched by f.
func WithFilter(f *filter.Filter) ConverterOption {
	return func(c *Converter) {
		c.filter = f
	}
}

// New creates a converter.
func New(opts ...ConverterOption) *Converter {
	c := &Converter{diagnostics: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one conversion run.
type Result struct {
	// Records holds the parsed values in input order. Never nil.
	Records []jsonvalue.Value

	// Stats counts what happened to each input line.
	Stats Stats

	// Metadata provides context about the run.
	Metadata Metadata
}

// Stats counts input lines by outcome.
type Stats struct {
	// LinesRead is the number of lines read, blank ones included.
	LinesRead int

	// BlankLines is the number of empty or whitespace-only lines.
	BlankLines int

	// Parsed is the number of lines that decoded as JSON.
	Parsed int

	// Failed is the number of non-blank lines that did not decode.
	Failed int

	// FilteredOut is the number of parsed records dropped by the filter.
	FilteredOut int
}

// Metadata describes a conversion run.
type Metadata struct {
	Source    string
	StartTime time.Time
	EndTime   time.Time
}

// Run consumes src until io.EOF. Parse failures never abort the run; only
// source errors (open, read, cancellation) are returned.
func (c *Converter) Run(ctx context.Context, src parser.LineSource) (*Result, error) {
	result := &Result{
		Records:  make([]jsonvalue.Value, 0),
		Metadata: Metadata{StartTime: time.Now()},
	}

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		result.Stats.LinesRead++
		result.Metadata.Source = line.Source

		if parser.IsBlank(line.Content) {
			result.Stats.BlankLines++
			continue
		}

		res := parser.ParseLine(*line)
		if !res.OK() {
			result.Stats.Failed++
			fmt.Fprintf(c.diagnostics, "Error parsing line: %v\n", res.Err)
			log.Debug().
				Str("source", line.Source).
				Int("line", line.LineNum).
				Str("kind", res.Err.Kind.String()).
				Msg("skipped malformed line")
			continue
		}
		result.Stats.Parsed++

		if c.filter != nil {
			keep, err := c.filter.Match(ctx, res.Value)
			if err != nil {
				fmt.Fprintf(c.diagnostics, "Error filtering line %d: %v\n", line.LineNum, err)
			}
			if !keep {
				result.Stats.FilteredOut++
				continue
			}
		}

		result.Records = append(result.Records, res.Value)
	}

	result.Metadata.EndTime = time.Now()

	log.Debug().
		Str("source", result.Metadata.Source).
		Int("lines", result.Stats.LinesRead).
		Int("records", len(result.Records)).
		Int("failed", result.Stats.Failed).
		Dur("duration", result.Metadata.EndTime.Sub(result.Metadata.StartTime)).
		Msg("conversion finished")

	return result, nil
}

// ConvertFile opens path, converts it and closes it again.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	source := parser.NewFileSource(path)
	defer source.Close()

	result, err := c.Run(ctx, source)
	if err != nil {
		return nil, err
	}
	result.Metadata.Source = path
	return result, nil
}
