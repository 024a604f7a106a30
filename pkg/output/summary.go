package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders the per-line outcome counts as a table.
func WriteSummary(w io.Writer, report *Report) error {
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Lines", "Count")

	rows := [][]string{
		{"read", strconv.Itoa(report.Summary.LinesRead)},
		{"blank", strconv.Itoa(report.Summary.BlankLines)},
		{"parsed", strconv.Itoa(report.Summary.Parsed)},
		{"failed", strconv.Itoa(report.Summary.Failed)},
		{"filtered out", strconv.Itoa(report.Summary.FilteredOut)},
		{"written", strconv.Itoa(report.Summary.Records)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}
	return nil
}
