package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/masmgr/gitlanes-go/internal/graph"
	"github.com/masmgr/gitlanes-go/internal/stats"
)

// JSONGraphWriter writes graph reports as JSON.
type JSONGraphWriter struct{}

// JSONGraphReport is the JSON output structure for a graph.
type JSONGraphReport struct {
	RepoPath    string           `json:"repo"`
	Heads       []string         `json:"heads"`
	GeneratedAt string           `json:"generatedAt"`
	Summary     JSONSummary      `json:"summary"`
	Rows        []JSONRow        `json:"rows"`
	Open        []JSONConnection `json:"open"`
}

// JSONSummary holds aggregate figures in JSON format.
type JSONSummary struct {
	Rows         int               `json:"rows"`
	Merges       int               `json:"merges"`
	Roots        int               `json:"roots"`
	MaxWidth     int               `json:"maxWidth"`
	Lanes        int               `json:"lanes"`
	OpenLanes    int               `json:"openLanes"`
	Highlighted  int               `json:"highlighted"`
	Oldest       *string           `json:"oldest,omitempty"`
	Newest       *string           `json:"newest,omitempty"`
	Busiest      *JSONWindow       `json:"busiest,omitempty"`
	Authors      []JSONAuthorCount `json:"authors"`
	AuthorSpread float64           `json:"authorSpread"`
}

// JSONWindow is the busiest stretch of history.
type JSONWindow struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Commits int    `json:"commits"`
}

// JSONAuthorCount is one author line of the summary.
type JSONAuthorCount struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Commits int    `json:"commits"`
}

// JSONRow is one graph row.
type JSONRow struct {
	Row         int              `json:"row"`
	SHA         string           `json:"sha"`
	Parents     []string         `json:"parents"`
	Author      string           `json:"author"`
	Email       string           `json:"email"`
	When        string           `json:"when,omitempty"`
	Subject     string           `json:"subject"`
	Refs        []string         `json:"refs,omitempty"`
	Highlighted bool             `json:"highlighted,omitempty"`
	Lane        int              `json:"lane"`
	Incoming    int              `json:"incoming"`
	Connections []JSONConnection `json:"connections"`
}

// JSONConnection is a parent/child edge in JSON format.
type JSONConnection struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
	Lane   int    `json:"lane"`
}

// Write outputs the graph report as JSON.
func (w *JSONGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	entries := limitTop(report.Entries, options.Top)

	rows := make([]JSONRow, len(entries))
	for i, e := range entries {
		c := e.Commit
		parents := c.Parents
		if parents == nil {
			parents = []string{}
		}
		row := JSONRow{
			Row:         i,
			SHA:         c.SHA,
			Parents:     parents,
			Author:      c.Author.Name,
			Email:       c.Author.Email,
			Subject:     c.Subject,
			Refs:        report.RefNames[c.SHA],
			Highlighted: report.IsHighlighted(c.SHA),
			Lane:        nodeLane(e),
			Incoming:    e.Incoming,
			Connections: jsonConnections(e.Connections),
		}
		if !c.When.IsZero() {
			row.When = c.When.Format(time.RFC3339)
		}
		rows[i] = row
	}

	s := report.Summary
	authors := make([]JSONAuthorCount, len(s.Authors))
	for i, a := range s.Authors {
		authors[i] = JSONAuthorCount{Name: a.Author.Name, Email: a.Author.Email, Commits: a.Commits}
	}

	heads := report.Heads
	if heads == nil {
		heads = []string{}
	}

	jsonReport := JSONGraphReport{
		RepoPath:    report.RepoPath,
		Heads:       heads,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Summary: JSONSummary{
			Rows:         s.Rows,
			Merges:       s.Merges,
			Roots:        s.Roots,
			MaxWidth:     s.MaxWidth,
			Lanes:        s.LanesUsed,
			OpenLanes:    s.OpenLanes,
			Highlighted:  s.Highlighted,
			Oldest:       formatTime(s.Oldest),
			Newest:       formatTime(s.Newest),
			Busiest:      jsonWindow(s.Busiest),
			Authors:      authors,
			AuthorSpread: s.AuthorSpread,
		},
		Rows: rows,
		Open: jsonConnections(report.Open),
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func jsonWindow(w stats.Window) *JSONWindow {
	if w.Empty() {
		return nil
	}
	return &JSONWindow{
		Start:   w.Start.Format(time.RFC3339),
		End:     w.End.Format(time.RFC3339),
		Commits: w.Commits,
	}
}

func jsonConnections(conns []graph.Connection) []JSONConnection {
	out := make([]JSONConnection, len(conns))
	for i, c := range conns {
		out[i] = JSONConnection{Parent: c.Parent, Child: c.Child, Lane: c.Lane}
	}
	return out
}

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

// JSONRefsWriter writes refs as JSON.
type JSONRefsWriter struct{}

// JSONRefsReport is the JSON output structure for a ref listing.
type JSONRefsReport struct {
	RepoPath    string    `json:"repo"`
	GeneratedAt string    `json:"generatedAt"`
	Refs        []JSONRef `json:"refs"`
}

// JSONRef is a single ref in JSON format.
type JSONRef struct {
	Name  string `json:"name"`
	Short string `json:"short"`
	SHA   string `json:"sha"`
	Kind  string `json:"kind"`
}

// Write outputs the refs report as JSON.
func (w *JSONRefsWriter) Write(report *RefsReport, options OutputOptions) error {
	refs := limitTop(report.Refs, options.Top)

	items := make([]JSONRef, len(refs))
	for i, r := range refs {
		items[i] = JSONRef{Name: r.Name, Short: r.Short, SHA: r.SHA, Kind: r.Kind.String()}
	}

	return writeJSON(JSONRefsReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Refs:        items,
	}, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return encodeJSON(out, data)
}

func encodeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
