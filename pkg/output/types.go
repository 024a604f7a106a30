// Package output renders converted records and run summaries.
package output

import (
	"time"

	"github.com/ccollicutt/logkit/pkg/converter"
	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// Report is the complete conversion output.
type Report struct {
	// Records holds the converted values in input order.
	Records []jsonvalue.Value

	// Summary provides per-line outcome counts.
	Summary Summary

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	LinesRead   int
	BlankLines  int
	Parsed      int
	Failed      int
	FilteredOut int
	Records     int
}

// Metadata provides context about the conversion run.
type Metadata struct {
	// Source is the input path.
	Source string

	// ConvertedAt is when the conversion finished.
	ConvertedAt time.Time

	// Duration is how long the conversion took.
	Duration time.Duration
}

// NewReport creates a Report from conversion results.
func NewReport(result *converter.Result) *Report {
	return &Report{
		Records: result.Records,
		Summary: Summary{
			LinesRead:   result.Stats.LinesRead,
			BlankLines:  result.Stats.BlankLines,
			Parsed:      result.Stats.Parsed,
			Failed:      result.Stats.Failed,
			FilteredOut: result.Stats.FilteredOut,
			Records:     len(result.Records),
		},
		Metadata: Metadata{
			Source:      result.Metadata.Source,
			ConvertedAt: result.Metadata.EndTime,
			Duration:    result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}

// Array returns the records as a single JSON array value.
func (r *Report) Array() jsonvalue.Array {
	if r.Records == nil {
		return jsonvalue.Array{}
	}
	return jsonvalue.Array(r.Records)
}

// HasFailures returns true if any line failed to parse.
func (r *Report) HasFailures() bool {
	return r.Summary.Failed > 0
}
