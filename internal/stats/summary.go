// Package stats summarizes an ordered, lane-assigned history graph.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/graph"
)

// Summary holds aggregate figures for a graph.
type Summary struct {
	Rows         int
	Merges       int
	Roots        int
	MaxWidth     int // Most connections open across a single row
	LanesUsed    int // Lane colors handed out
	OpenLanes    int // Edges whose parent has no row
	Highlighted  int
	Oldest       time.Time
	Newest       time.Time
	Busiest      Window // Densest BusiestSpan of commits
	Authors      []AuthorCount
	AuthorSpread float64 // 0 for a single author, 1 for an even split
}

// AuthorCount is the number of rows authored by one identity.
type AuthorCount struct {
	Author  git.AuthorInfo
	Commits int
}

// Compute derives a Summary from the rows and lane result of a graph.
func Compute(entries []graph.Entry, lanes graph.LaneResult, highlighted map[string]struct{}) Summary {
	s := Summary{
		Rows:      len(entries),
		LanesUsed: lanes.Lanes,
		OpenLanes: len(lanes.Open),
	}

	authors := make(map[string]*AuthorCount)
	times := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		c := e.Commit
		switch {
		case c.IsMerge():
			s.Merges++
		case c.IsRoot():
			s.Roots++
		}

		s.MaxWidth = max(s.MaxWidth, len(e.Connections))

		if _, ok := highlighted[c.SHA]; ok {
			s.Highlighted++
		}

		if !c.When.IsZero() {
			times = append(times, c.When)
			if s.Oldest.IsZero() || c.When.Before(s.Oldest) {
				s.Oldest = c.When
			}
			if c.When.After(s.Newest) {
				s.Newest = c.When
			}
		}

		key := authorKey(c.Author)
		if key == "" {
			continue
		}
		if ac, ok := authors[key]; ok {
			ac.Commits++
		} else {
			authors[key] = &AuthorCount{Author: c.Author, Commits: 1}
		}
	}

	s.Authors = make([]AuthorCount, 0, len(authors))
	for _, ac := range authors {
		s.Authors = append(s.Authors, *ac)
	}
	sort.Slice(s.Authors, func(i, j int) bool {
		if s.Authors[i].Commits != s.Authors[j].Commits {
			return s.Authors[i].Commits > s.Authors[j].Commits
		}
		return authorKey(s.Authors[i].Author) < authorKey(s.Authors[j].Author)
	})
	s.AuthorSpread = AuthorSpread(s.Authors)
	s.Busiest = BusiestWindow(times, BusiestSpan)

	return s
}

// authorKey identifies an author by email, falling back to name.
func authorKey(a git.AuthorInfo) string {
	if email := strings.ToLower(strings.TrimSpace(a.Email)); email != "" {
		return email
	}
	return strings.TrimSpace(a.Name)
}

// TruncateSubject shortens a subject to at most n characters.
func TruncateSubject(subject string, n int) string {
	if n <= 3 || len(subject) <= n {
		return subject
	}
	return subject[:n-3] + "..."
}
