// Package graph orders a commit DAG into display rows and assigns lane
// colors to the parent/child edges between consecutive rows.
//
// The ordering is built incrementally: each processed head is walked down its
// first-parent chain into segments, which are spliced into the existing rows
// next to their already placed neighbors. Rows placed earlier only ever shift
// down when new rows are inserted above them.
package graph

import (
	"context"
	"slices"

	"github.com/masmgr/gitlanes-go/internal/git"
)

// Builder owns the ordered rows of a history view.
// It is not safe for concurrent use; a Process call is one atomic mutation.
type Builder struct {
	source git.CommitSource
	diag   Diagnostics

	entries []Entry
	index   map[string]int // SHA -> row in entries

	// pending holds commits collected into segments that are not spliced yet.
	pending map[string]git.Commit
}

// Option configures a Builder.
type Option func(*Builder)

// WithDiagnostics sets the sink for trace events.
func WithDiagnostics(d Diagnostics) Option {
	return func(b *Builder) {
		if d != nil {
			b.diag = d
		}
	}
}

// NewBuilder creates an empty builder resolving parents through source.
func NewBuilder(source git.CommitSource, opts ...Option) *Builder {
	b := &Builder{
		source: source,
		diag:   NopDiagnostics{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset()
	return b
}

// Reset drops every row.
func (b *Builder) Reset() {
	b.entries = nil
	b.index = make(map[string]int)
	b.pending = make(map[string]git.Commit)
}

// Len returns the number of rows.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Contains reports whether the commit has a row.
func (b *Builder) Contains(sha string) bool {
	_, ok := b.index[sha]
	return ok
}

// Lookup returns the entry and row of a commit.
func (b *Builder) Lookup(sha string) (Entry, int, bool) {
	row, ok := b.index[sha]
	if !ok {
		return Entry{}, 0, false
	}
	return b.entries[row], row, true
}

// Entries returns a copy of the rows in display order.
func (b *Builder) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Process places head and every ancestor reachable from it that is not yet known.
// Processing a known head is a no-op.
func (b *Builder) Process(head git.Commit) {
	_ = b.ProcessContext(context.Background(), head)
}

// ProcessContext is Process with cooperative cancellation.
// The context is checked between segments, so rows placed before cancellation
// stay consistent; the remainder can be placed by processing the head again.
func (b *Builder) ProcessContext(ctx context.Context, head git.Commit) error {
	if b.known(head.SHA) {
		return nil
	}

	stack := []*frame{b.newFrame(head, "")}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			clear(b.pending)
			return err
		}

		f := stack[len(stack)-1]
		if f.seg < 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		s := f.segments[f.seg]
		if f.next >= 0 {
			q := s.queue[f.next]
			f.next--
			if !b.known(q.commit.SHA) {
				stack = append(stack, b.newFrame(q.commit, q.after))
			}
			continue
		}

		b.splice(s, f.after)
		f.seg--
		if f.seg >= 0 {
			f.next = len(f.segments[f.seg].queue) - 1
		}
	}

	return nil
}

// frame is one branch being processed: the segments of its first-parent run
// and the cursor over them. Segments are spliced oldest first, and the queued
// secondary branches of each segment are processed, last queued first, before
// the segment itself.
type frame struct {
	after    string
	segments []segment
	seg      int // segment being resolved, counting down
	next     int // next queued branch of segments[seg], counting down
}

func (b *Builder) newFrame(head git.Commit, after string) *frame {
	f := &frame{after: after}

	current := head
	for {
		s := b.branchEntries(current)
		f.segments = append(f.segments, s)

		p0, ok := s.last().FirstParent()
		if !ok || b.known(p0) {
			break
		}
		next, ok := b.source.Lookup(p0)
		if !ok {
			break
		}
		current = next
	}

	f.seg = len(f.segments) - 1
	f.next = len(f.segments[f.seg].queue) - 1
	return f
}

// branchEntries walks the first-parent chain from start until a merge,
// a known commit or an unresolvable parent is reached.
// Secondary parents of the merge are queued; ones the source cannot resolve are skipped.
func (b *Builder) branchEntries(start git.Commit) segment {
	var s segment

	current := start
	for {
		s.entries = append(s.entries, Entry{Commit: current})
		b.pending[current.SHA] = current

		if current.IsMerge() {
			for _, sha := range current.Parents[1:] {
				if c, ok := b.source.Lookup(sha); ok {
					s.queue = append(s.queue, queuedBranch{commit: c, after: current.SHA})
				}
			}
			break
		}

		p0, ok := current.FirstParent()
		if !ok || b.known(p0) {
			break
		}
		next, ok := b.source.Lookup(p0)
		if !ok {
			break
		}
		current = next
	}

	b.diag.SegmentExtracted(start.SHA, len(s.entries), len(s.queue))
	return s
}

// splice inserts a segment into the rows next to its known neighbors.
func (b *Builder) splice(s segment, after string) {
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		delete(b.pending, e.SHA())
		if _, ok := b.index[e.SHA()]; !ok {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return
	}

	row, rule := b.insertionRow(s, after)
	b.insertAt(row, entries)
	b.diag.SegmentSpliced(s.head().SHA, row, len(entries), rule)
}

func (b *Builder) insertionRow(s segment, after string) (int, SpliceRule) {
	if before, ok := b.highestParentRow(s.last()); ok {
		if row, ok := b.afterRow(after); ok && row < before {
			return row + 1, SpliceNearDiscovery
		}
		return before, SpliceBeforeParent
	}

	// The last queued branch was discovered from this segment's own merge,
	// which is still pending while the segment is spliced, so Process never
	// takes this rule. It stays to keep the placement rules complete.
	if n := len(s.queue); n > 0 {
		if row, ok := b.index[s.queue[n-1].after]; ok {
			return row, SpliceAtForkPoint
		}
	}

	if row, ok := b.afterRow(after); ok {
		return row + 1, SpliceAfterDiscovery
	}

	return len(b.entries), SpliceAppend
}

// highestParentRow returns the smallest row among the placed parents of c.
func (b *Builder) highestParentRow(c git.Commit) (int, bool) {
	best, found := 0, false
	for _, sha := range c.Parents {
		if row, ok := b.index[sha]; ok && (!found || row < best) {
			best, found = row, true
		}
	}
	return best, found
}

// afterRow returns the row of the commit a branch was discovered from.
// A discovering commit that is not placed yet has no row.
func (b *Builder) afterRow(sha string) (int, bool) {
	if sha == "" {
		return 0, false
	}
	row, ok := b.index[sha]
	return row, ok
}

// insertAt inserts entries at row, shifting the rows below.
func (b *Builder) insertAt(row int, entries []Entry) {
	row = max(0, min(row, len(b.entries)))
	n := len(entries)

	for i := row; i < len(b.entries); i++ {
		b.index[b.entries[i].SHA()] = i + n
	}
	b.entries = slices.Insert(b.entries, row, entries...)
	for i, e := range entries {
		b.index[e.SHA()] = row + i
	}
}

// known reports whether sha is placed or already collected into a segment.
func (b *Builder) known(sha string) bool {
	if _, ok := b.index[sha]; ok {
		return true
	}
	_, ok := b.pending[sha]
	return ok
}

// AssignLanes runs the lane pass over the builder's rows, reporting lanes
// left open to the diagnostics sink.
func (b *Builder) AssignLanes() LaneResult {
	res := AssignLanes(b.entries)
	if len(res.Open) > 0 {
		b.diag.LanesUnterminated(res.Open)
	}
	return res
}
