package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVGraphWriter writes graph rows as CSV.
type CSVGraphWriter struct{}

// Write outputs the graph report as CSV.
func (w *CSVGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Row", "SHA", "Parents", "Author", "Email", "When", "Lane", "Width",
		"Incoming", "Highlighted", "Refs", "Subject"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for i, e := range entries {
		c := e.Commit
		when := ""
		if !c.When.IsZero() {
			when = c.When.Format(reportDateTimeLayout)
		}
		row := []string{
			fmt.Sprintf("%d", i),
			c.SHA,
			strings.Join(c.Parents, " "),
			c.Author.Name,
			c.Author.Email,
			when,
			fmt.Sprintf("%d", nodeLane(e)),
			fmt.Sprintf("%d", len(e.Connections)),
			fmt.Sprintf("%d", e.Incoming),
			fmt.Sprintf("%t", report.IsHighlighted(c.SHA)),
			strings.Join(report.RefNames[c.SHA], " "),
			c.Subject,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVRefsWriter writes refs as CSV.
type CSVRefsWriter struct{}

// Write outputs the refs report as CSV.
func (w *CSVRefsWriter) Write(report *RefsReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Kind", "Name", "Short", "SHA"}); err != nil {
		return err
	}
	for _, r := range limitTop(report.Refs, options.Top) {
		if err := writer.Write([]string{r.Kind.String(), r.Name, r.Short, r.SHA}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
