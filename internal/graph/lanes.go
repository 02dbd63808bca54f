package graph

import "slices"

// LaneResult summarizes one lane pass.
type LaneResult struct {
	// Open holds edges whose parent row was never reached.
	// This is expected for partial histories.
	Open []Connection
	// Lanes is the number of lane colors handed out; colors are 0..Lanes-1.
	Lanes int
}

// AssignLanes walks entries top to bottom and sets each entry's Connections
// to the lanes open at its row. The pass depends only on entries, so running
// it twice over the same rows yields the same colors.
//
// An edge into a row continues in the lane of the edge it extends: the
// first-parent edge leaving a row reuses the color of the first open edge
// terminating there and takes the slot right after it. Every other edge gets
// a fresh color and is appended.
func AssignLanes(entries []Entry) LaneResult {
	var open []Connection
	next := 0

	for i := range entries {
		e := &entries[i]
		sha := e.SHA()

		incoming := slices.IndexFunc(open, func(c Connection) bool { return c.Parent == sha })

		if p0, ok := e.Commit.FirstParent(); ok {
			c := Connection{Parent: p0, Child: sha}
			if incoming >= 0 {
				c.Lane = open[incoming].Lane
				open = slices.Insert(open, incoming+1, c)
			} else {
				c.Lane = next
				next++
				open = append(open, c)
			}
		}

		if len(e.Commit.Parents) > 1 {
			for _, p := range e.Commit.Parents[1:] {
				open = append(open, Connection{Parent: p, Child: sha, Lane: next})
				next++
			}
		}

		e.Connections = slices.Clone(open)

		before := len(open)
		open = slices.DeleteFunc(open, func(c Connection) bool { return c.Parent == sha })
		e.Incoming = before - len(open)
	}

	return LaneResult{Open: open, Lanes: next}
}
