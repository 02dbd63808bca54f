package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/gitlanes-go/internal/stats"
)

const topAuthors = 5

// ConsoleGraphWriter draws the graph with colored lanes.
type ConsoleGraphWriter struct{}

// Write outputs the graph report to the console.
func (w *ConsoleGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	palette, err := ParsePalette(options.Palette)
	if err != nil {
		return err
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	entries := limitTop(report.Entries, options.Top)
	s := report.Summary

	color.New(color.FgGreen).Fprintln(out, "Commit Graph")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	if len(report.Heads) > 0 {
		fmt.Fprintf(out, "Heads: %s\n", strings.Join(report.Heads, ", "))
	}
	fmt.Fprintf(out, "Commits: %d, Merges: %d, Lanes: %d, Max width: %d\n\n",
		s.Rows, s.Merges, s.LanesUsed, s.MaxWidth)

	refColor := color.New(color.FgYellow)
	shaColor := color.New(color.FgHiBlack)
	highlight := color.New(color.FgRed, color.Bold)

	width := graphWidth(entries)
	for _, e := range entries {
		c := e.Commit
		subject := stats.TruncateSubject(c.Subject, subjectWidth)
		if report.IsHighlighted(c.SHA) {
			subject = highlight.Sprint(subject)
		}

		line := renderRow(e, palette, width) + shaColor.Sprint(shortSHA(c.SHA)) + " " + subject
		if deco := decoration(report.RefNames[c.SHA]); deco != "" {
			line += " " + refColor.Sprint(deco)
		}
		if c.Author.Name != "" {
			line += fmt.Sprintf(" <%s>", c.Author.Name)
		}
		if !c.When.IsZero() {
			line += " " + c.When.Format(reportDateLayout)
		}
		fmt.Fprintln(out, line)
	}

	if len(entries) < len(report.Entries) {
		fmt.Fprintf(out, "... %d more commits\n", len(report.Entries)-len(entries))
	}

	if s.OpenLanes > 0 {
		fmt.Fprintln(out)
		color.New(color.FgYellow).Fprintf(out, "%d lanes continue past the loaded history\n", s.OpenLanes)
	}

	if s.Highlighted > 0 {
		fmt.Fprintf(out, "\nHighlighted commits: %d\n", s.Highlighted)
	}

	if !s.Busiest.Empty() {
		fmt.Fprintf(out, "\nBusiest week: %d commits (%s to %s)\n", s.Busiest.Commits,
			s.Busiest.Start.Format(reportDateLayout), s.Busiest.End.Format(reportDateLayout))
	}

	if len(s.Authors) > 0 {
		fmt.Fprintln(out)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tAuthor\tCommits")
		for i, a := range limitTop(s.Authors, topAuthors) {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, a.Author.Name, a.Commits)
		}
		tw.Flush()
	}

	return nil
}

// ConsoleRefsWriter lists refs in a table.
type ConsoleRefsWriter struct{}

// Write outputs the refs report to the console.
func (w *ConsoleRefsWriter) Write(report *RefsReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	refs := limitTop(report.Refs, options.Top)

	color.New(color.FgGreen).Fprintln(out, "Refs")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Total refs: %d\n\n", len(report.Refs))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Kind\tName\tSHA")
	for _, ref := range refs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ref.Kind, ref.Short, shortSHA(ref.SHA))
	}
	return tw.Flush()
}
