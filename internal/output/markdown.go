package output

import (
	"fmt"
	"strings"
)

// MarkdownGraphWriter writes graph reports as Markdown.
type MarkdownGraphWriter struct{}

// Write outputs the graph report as Markdown.
func (w *MarkdownGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	s := report.Summary

	fmt.Fprintln(out, "# Commit Graph")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	if len(report.Heads) > 0 {
		fmt.Fprintf(out, "**Heads:** %s\n\n", escapeMarkdown(strings.Join(report.Heads, ", ")))
	}
	fmt.Fprintf(out, "**Commits:** %d, **Merges:** %d, **Lanes:** %d, **Max width:** %d\n\n",
		s.Rows, s.Merges, s.LanesUsed, s.MaxWidth)

	fmt.Fprintln(out, "## History")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| # | Graph | SHA | Subject | Refs | Author | Date |")
	fmt.Fprintln(out, "|---|-------|-----|---------|------|--------|------|")

	width := graphWidth(entries)
	for i, e := range entries {
		c := e.Commit
		subject := escapeMarkdown(c.Subject)
		if report.IsHighlighted(c.SHA) {
			subject = "**" + subject + "**"
		}
		date := ""
		if !c.When.IsZero() {
			date = c.When.Format(reportDateLayout)
		}
		fmt.Fprintf(out, "| %d | `%s` | `%s` | %s | %s | %s | %s |\n",
			i+1,
			strings.TrimRight(renderRow(e, nil, width), " "),
			shortSHA(c.SHA),
			subject,
			escapeMarkdown(strings.Join(report.RefNames[c.SHA], ", ")),
			escapeMarkdown(c.Author.Name),
			date,
		)
	}

	if s.OpenLanes > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "**Note:** %d lanes continue past the loaded history.\n", s.OpenLanes)
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
