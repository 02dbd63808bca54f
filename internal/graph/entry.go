package graph

import "github.com/masmgr/gitlanes-go/internal/git"

// Connection is a parent/child edge drawn in one lane.
// Lane is an opaque non-negative index, stable within one lane pass.
type Connection struct {
	Parent string
	Child  string
	Lane   int
}

// Entry is one display row.
type Entry struct {
	Commit git.Commit
	// Connections is the set of lanes open at this row, in horizontal slot order.
	Connections []Connection
	// Incoming counts the edges from rows above that terminate at this row.
	Incoming int
}

// SHA returns the commit SHA of the entry.
func (e Entry) SHA() string {
	return e.Commit.SHA
}

// segment is one straight run of first-parent edges, newest first,
// plus the secondary parents found on the way.
type segment struct {
	entries []Entry
	queue   []queuedBranch
}

// queuedBranch is a secondary parent to resolve as its own branch,
// anchored after the merge commit that referenced it.
type queuedBranch struct {
	commit git.Commit
	after  string
}

func (s segment) head() git.Commit {
	return s.entries[0].Commit
}

func (s segment) last() git.Commit {
	return s.entries[len(s.entries)-1].Commit
}
