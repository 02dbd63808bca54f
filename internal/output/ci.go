package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIGraphWriter writes graph reports as NDJSON (one JSON object per line) for CI pipelines.
type CIGraphWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type        string `json:"type"`
	Rows        int    `json:"rows"`
	Merges      int    `json:"merges"`
	Roots       int    `json:"roots"`
	Lanes       int    `json:"lanes"`
	MaxWidth    int    `json:"maxWidth"`
	OpenLanes   int    `json:"openLanes"`
	Highlighted int    `json:"highlighted"`
	Truncated   bool   `json:"truncated"`
}

// CIOpenLane reports an edge whose parent was never reached.
type CIOpenLane struct {
	Type   string `json:"type"`
	Parent string `json:"parent"`
	Child  string `json:"child"`
	Lane   int    `json:"lane"`
}

// CIHighlight reports a highlighted commit.
type CIHighlight struct {
	Type    string `json:"type"`
	Row     int    `json:"row"`
	SHA     string `json:"sha"`
	Subject string `json:"subject"`
}

// Write outputs the graph report as NDJSON.
func (w *CIGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	s := report.Summary
	summary := CISummary{
		Type:        "summary",
		Rows:        s.Rows,
		Merges:      s.Merges,
		Roots:       s.Roots,
		Lanes:       s.LanesUsed,
		MaxWidth:    s.MaxWidth,
		OpenLanes:   s.OpenLanes,
		Highlighted: s.Highlighted,
		Truncated:   s.OpenLanes > 0,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, c := range report.Open {
		line := CIOpenLane{Type: "open", Parent: c.Parent, Child: c.Child, Lane: c.Lane}
		if err := writeNDJSONLine(out, line); err != nil {
			return err
		}
	}

	var highlights []CIHighlight
	for i, e := range report.Entries {
		if report.IsHighlighted(e.SHA()) {
			highlights = append(highlights, CIHighlight{Type: "highlight", Row: i, SHA: e.SHA(), Subject: e.Commit.Subject})
		}
	}
	for _, h := range limitTop(highlights, options.Top) {
		if err := writeNDJSONLine(out, h); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
