package output

import (
	"context"
	"io"
)

// Formatter renders converted records in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (json, yaml, ndjson).
	Name() string
}

// DefaultIndent is the indentation of nested JSON levels.
const DefaultIndent = "  "

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Indent is the per-level indentation for JSON output (DefaultIndent if empty).
	Indent string
}

func (o FormatOptions) indent() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}
