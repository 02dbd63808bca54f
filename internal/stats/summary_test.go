package stats

import (
	"testing"
	"time"

	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/graph"
)

func buildGraph(t *testing.T, commits ...git.Commit) ([]graph.Entry, graph.LaneResult) {
	t.Helper()
	src := git.NewMemorySource(commits...)
	b := graph.NewBuilder(src)
	b.Process(commits[len(commits)-1])
	res := b.AssignLanes()
	return b.Entries(), res
}

func TestCompute(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	alice := git.AuthorInfo{Name: "Alice", Email: "alice@example.com"}
	bob := git.AuthorInfo{Name: "Bob", Email: "bob@example.com"}

	entries, lanes := buildGraph(t,
		git.Commit{SHA: "A", Author: alice, When: base, Subject: "initial"},
		git.Commit{SHA: "B", Parents: []string{"A"}, Author: bob, When: base.Add(time.Hour), Subject: "fix: typo"},
		git.Commit{SHA: "C", Parents: []string{"A"}, Author: alice, When: base.Add(2 * time.Hour), Subject: "feature"},
		git.Commit{SHA: "D", Parents: []string{"B", "C"}, Author: git.AuthorInfo{Name: "Alice", Email: "ALICE@example.com"}, When: base.Add(3 * time.Hour), Subject: "merge"},
	)

	s := Compute(entries, lanes, map[string]struct{}{"B": {}, "unplaced": {}})

	if s.Rows != 4 {
		t.Errorf("Rows = %d, expected 4", s.Rows)
	}
	if s.Merges != 1 || s.Roots != 1 {
		t.Errorf("Merges = %d, Roots = %d, expected 1 and 1", s.Merges, s.Roots)
	}
	if s.MaxWidth != 3 {
		t.Errorf("MaxWidth = %d, expected 3", s.MaxWidth)
	}
	if s.LanesUsed != 2 || s.OpenLanes != 0 {
		t.Errorf("LanesUsed = %d, OpenLanes = %d, expected 2 and 0", s.LanesUsed, s.OpenLanes)
	}
	if s.Highlighted != 1 {
		t.Errorf("Highlighted = %d, expected 1", s.Highlighted)
	}
	if !s.Oldest.Equal(base) || !s.Newest.Equal(base.Add(3*time.Hour)) {
		t.Errorf("Oldest = %v, Newest = %v", s.Oldest, s.Newest)
	}

	if len(s.Authors) != 2 {
		t.Fatalf("Authors = %v, expected 2 identities", s.Authors)
	}
	if s.Authors[0].Author.Name != "Alice" || s.Authors[0].Commits != 3 {
		t.Errorf("Authors[0] = %+v, expected Alice with 3 commits", s.Authors[0])
	}
	if s.Authors[1].Author.Name != "Bob" || s.Authors[1].Commits != 1 {
		t.Errorf("Authors[1] = %+v, expected Bob with 1 commit", s.Authors[1])
	}
}

func TestCompute_TruncatedHistory(t *testing.T) {
	entries, lanes := buildGraph(t,
		git.Commit{SHA: "B", Parents: []string{"X"}},
		git.Commit{SHA: "C", Parents: []string{"B"}},
	)

	s := Compute(entries, lanes, nil)

	if s.OpenLanes != 1 {
		t.Errorf("OpenLanes = %d, expected 1", s.OpenLanes)
	}
	if s.Roots != 0 {
		t.Errorf("Roots = %d, expected 0", s.Roots)
	}
	if len(s.Authors) != 0 {
		t.Errorf("Authors = %v, expected none", s.Authors)
	}
	if !s.Oldest.IsZero() || !s.Newest.IsZero() {
		t.Errorf("expected zero time range, got %v..%v", s.Oldest, s.Newest)
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, graph.LaneResult{}, nil)
	if s.Rows != 0 || s.MaxWidth != 0 || len(s.Authors) != 0 {
		t.Errorf("Compute(nil) = %+v", s)
	}
}

func TestTruncateSubject(t *testing.T) {
	tests := []struct {
		subject  string
		n        int
		expected string
	}{
		{subject: "short", n: 10, expected: "short"},
		{subject: "exactly ten", n: 11, expected: "exactly ten"},
		{subject: "a rather long subject line", n: 10, expected: "a rathe..."},
		{subject: "unbounded", n: 0, expected: "unbounded"},
	}

	for _, tt := range tests {
		if got := TruncateSubject(tt.subject, tt.n); got != tt.expected {
			t.Errorf("TruncateSubject(%q, %d) = %q, expected %q", tt.subject, tt.n, got, tt.expected)
		}
	}
}

func TestCompute_Activity(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	alice := git.AuthorInfo{Name: "Alice", Email: "alice@example.com"}
	bob := git.AuthorInfo{Name: "Bob", Email: "bob@example.com"}

	entries, lanes := buildGraph(t,
		git.Commit{SHA: "A", Author: alice, When: base},
		git.Commit{SHA: "B", Parents: []string{"A"}, Author: bob, When: base.Add(30 * 24 * time.Hour)},
		git.Commit{SHA: "C", Parents: []string{"B"}, Author: alice, When: base.Add(31 * 24 * time.Hour)},
		git.Commit{SHA: "D", Parents: []string{"C"}, Author: bob, When: base.Add(32 * 24 * time.Hour)},
	)

	s := Compute(entries, lanes, nil)

	if s.Busiest.Commits != 3 {
		t.Fatalf("Busiest.Commits = %d, expected 3", s.Busiest.Commits)
	}
	if !s.Busiest.Start.Equal(base.Add(30*24*time.Hour)) || !s.Busiest.End.Equal(base.Add(32*24*time.Hour)) {
		t.Errorf("Busiest = %v..%v", s.Busiest.Start, s.Busiest.End)
	}
	if s.AuthorSpread != 1 {
		t.Errorf("AuthorSpread = %f, expected 1 for an even split", s.AuthorSpread)
	}
}
