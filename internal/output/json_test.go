package output

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/masmgr/gitlanes-go/internal/git"
)

func TestJSONGraphWriter_Write(t *testing.T) {
	report := diamondReport(t)

	tmpFile := t.TempDir() + "/graph.json"
	if err := (&JSONGraphWriter{}).Write(report, OutputOptions{Format: FormatJSON, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var got JSONGraphReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if got.RepoPath != "/test/repo" || !reflect.DeepEqual(got.Heads, []string{"main"}) {
		t.Errorf("repo = %q, heads = %v", got.RepoPath, got.Heads)
	}
	if got.GeneratedAt != "2024-03-01T09:30:00Z" {
		t.Errorf("generatedAt = %q", got.GeneratedAt)
	}
	if got.Summary.Rows != 4 || got.Summary.Lanes != 2 || got.Summary.Merges != 1 || got.Summary.Highlighted != 1 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if got.Summary.Oldest == nil || *got.Summary.Oldest != "2024-03-01T09:30:00Z" {
		t.Errorf("summary.oldest = %v", got.Summary.Oldest)
	}
	if len(got.Summary.Authors) != 2 || got.Summary.Authors[0].Name != "Alice" || got.Summary.Authors[0].Commits != 3 {
		t.Errorf("summary.authors = %+v", got.Summary.Authors)
	}
	if got.Summary.Busiest == nil || got.Summary.Busiest.Commits != 4 || got.Summary.Busiest.End != "2024-03-01T12:30:00Z" {
		t.Errorf("summary.busiest = %+v", got.Summary.Busiest)
	}

	wantSHAs := []string{"D", "B", "C", "A"}
	wantLanes := []int{0, 0, 1, 0}
	if len(got.Rows) != len(wantSHAs) {
		t.Fatalf("rows = %d, want %d", len(got.Rows), len(wantSHAs))
	}
	for i, row := range got.Rows {
		if row.Row != i || row.SHA != wantSHAs[i] || row.Lane != wantLanes[i] {
			t.Errorf("rows[%d] = (row %d, %s, lane %d), want (row %d, %s, lane %d)",
				i, row.Row, row.SHA, row.Lane, i, wantSHAs[i], wantLanes[i])
		}
	}

	d := got.Rows[0]
	if !reflect.DeepEqual(d.Parents, []string{"B", "C"}) || !reflect.DeepEqual(d.Refs, []string{"HEAD", "main"}) {
		t.Errorf("D parents = %v, refs = %v", d.Parents, d.Refs)
	}
	wantConns := []JSONConnection{{Parent: "B", Child: "D", Lane: 0}, {Parent: "C", Child: "D", Lane: 1}}
	if !reflect.DeepEqual(d.Connections, wantConns) {
		t.Errorf("D connections = %+v, want %+v", d.Connections, wantConns)
	}
	if !got.Rows[1].Highlighted || got.Rows[0].Highlighted {
		t.Errorf("highlight flags = %v/%v", got.Rows[0].Highlighted, got.Rows[1].Highlighted)
	}
	if got.Rows[3].Incoming != 2 {
		t.Errorf("A incoming = %d, want 2", got.Rows[3].Incoming)
	}
	if got.Rows[3].Parents == nil || len(got.Rows[3].Parents) != 0 {
		t.Errorf("root parents = %#v, want empty list", got.Rows[3].Parents)
	}
	if len(got.Open) != 0 {
		t.Errorf("open = %v, want none", got.Open)
	}
}

func TestJSONGraphWriter_TruncatedHistory(t *testing.T) {
	report := truncatedReport(t)

	tmpFile := t.TempDir() + "/graph.json"
	if err := (&JSONGraphWriter{}).Write(report, OutputOptions{OutputPath: tmpFile, Top: 1}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var got JSONGraphReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if len(got.Rows) != 1 {
		t.Errorf("rows = %d, want 1 with Top=1", len(got.Rows))
	}
	want := []JSONConnection{{Parent: "X", Child: "B", Lane: 0}}
	if !reflect.DeepEqual(got.Open, want) {
		t.Errorf("open = %+v, want %+v", got.Open, want)
	}
	if got.Summary.Oldest != nil {
		t.Errorf("oldest = %v, want omitted", *got.Summary.Oldest)
	}
	if got.Summary.Busiest != nil {
		t.Errorf("busiest = %+v, want omitted", *got.Summary.Busiest)
	}
}

func TestJSONRefsWriter_Write(t *testing.T) {
	report := &RefsReport{
		RepoPath: "/test/repo",
		Refs: []git.Ref{
			{Name: "refs/heads/main", Short: "main", SHA: "1111", Kind: git.RefKindBranch},
			{Name: "refs/remotes/origin/main", Short: "origin/main", SHA: "2222", Kind: git.RefKindRemote},
		},
	}

	tmpFile := t.TempDir() + "/refs.json"
	if err := (&JSONRefsWriter{}).Write(report, OutputOptions{OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var got JSONRefsReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	want := []JSONRef{
		{Name: "refs/heads/main", Short: "main", SHA: "1111", Kind: "branch"},
		{Name: "refs/remotes/origin/main", Short: "origin/main", SHA: "2222", Kind: "remote"},
	}
	if !reflect.DeepEqual(got.Refs, want) {
		t.Errorf("refs = %+v, want %+v", got.Refs, want)
	}
}
