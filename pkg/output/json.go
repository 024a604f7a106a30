package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// JSONFormatter formats the records as one indented JSON array.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the array followed by a newline.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	data := jsonvalue.MarshalIndent(report.Array(), f.opts.indent())
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return err
	}
	return nil
}

// NDJSONFormatter writes each record compactly on its own line.
type NDJSONFormatter struct{}

// NewNDJSONFormatter creates a new NDJSON formatter.
func NewNDJSONFormatter() *NDJSONFormatter {
	return &NDJSONFormatter{}
}

// Name returns the format name.
func (f *NDJSONFormatter) Name() string {
	return "ndjson"
}

// Format renders one line per record.
func (f *NDJSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	for _, record := range report.Records {
		if _, err := fmt.Fprintf(w, "%s\n", jsonvalue.Marshal(record)); err != nil {
			return err
		}
	}
	return nil
}
