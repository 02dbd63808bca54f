package output

import (
	"time"

	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/graph"
	"github.com/masmgr/gitlanes-go/internal/stats"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// GraphReportWriter implementations
	_ GraphReportWriter = (*ConsoleGraphWriter)(nil)
	_ GraphReportWriter = (*JSONGraphWriter)(nil)
	_ GraphReportWriter = (*CSVGraphWriter)(nil)
	_ GraphReportWriter = (*MarkdownGraphWriter)(nil)
	_ GraphReportWriter = (*CIGraphWriter)(nil)

	// RefsReportWriter implementations
	_ RefsReportWriter = (*ConsoleRefsWriter)(nil)
	_ RefsReportWriter = (*JSONRefsWriter)(nil)
	_ RefsReportWriter = (*CSVRefsWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int // Rows to render, 0 = all
	OutputPath string
	Palette    []string // Lane color names; empty uses DefaultPalette
}

// GraphReport holds an ordered, lane-assigned history graph.
type GraphReport struct {
	RepoPath    string
	Heads       []string
	GeneratedAt time.Time
	Entries     []graph.Entry
	Open        []graph.Connection
	Summary     stats.Summary
	Highlighted map[string]struct{}
	RefNames    map[string][]string // SHA -> short ref names
}

// IsHighlighted reports whether the row of sha is highlighted.
func (r *GraphReport) IsHighlighted(sha string) bool {
	_, ok := r.Highlighted[sha]
	return ok
}

// RefsReport holds the refs selected for a graph.
type RefsReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Refs        []git.Ref
}

// GraphReportWriter writes graph reports.
type GraphReportWriter interface {
	Write(report *GraphReport, options OutputOptions) error
}

// RefsReportWriter writes ref listings.
type RefsReportWriter interface {
	Write(report *RefsReport, options OutputOptions) error
}

// NewGraphReportWriter creates a report writer for the specified format.
func NewGraphReportWriter(format OutputFormat) GraphReportWriter {
	switch format {
	case FormatJSON:
		return &JSONGraphWriter{}
	case FormatCSV:
		return &CSVGraphWriter{}
	case FormatMarkdown:
		return &MarkdownGraphWriter{}
	case FormatCI:
		return &CIGraphWriter{}
	default:
		return &ConsoleGraphWriter{}
	}
}

// NewRefsReportWriter creates a refs writer for the specified format.
func NewRefsReportWriter(format OutputFormat) RefsReportWriter {
	switch format {
	case FormatJSON:
		return &JSONRefsWriter{}
	case FormatCSV:
		return &CSVRefsWriter{}
	default:
		return &ConsoleRefsWriter{}
	}
}
