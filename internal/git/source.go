package git

// MemorySource is an in-memory CommitSource.
// It allows tests to provide a commit DAG without needing a real Git repository.
type MemorySource struct {
	commits map[string]Commit
	lookups int
}

// NewMemorySource creates a MemorySource holding the given commits.
func NewMemorySource(commits ...Commit) *MemorySource {
	s := &MemorySource{commits: make(map[string]Commit, len(commits))}
	s.Add(commits...)
	return s
}

// Add stores commits, replacing any with the same SHA.
func (s *MemorySource) Add(commits ...Commit) {
	for _, c := range commits {
		s.commits[c.SHA] = c
	}
}

// Lookup returns the commit with the given SHA.
func (s *MemorySource) Lookup(sha string) (Commit, bool) {
	s.lookups++
	c, ok := s.commits[sha]
	return c, ok
}

// Lookups returns how many times Lookup was called.
func (s *MemorySource) Lookups() int {
	return s.lookups
}

// LimitedSource stops resolving new commits once a fixed number of distinct
// SHAs has been returned. Commits already returned stay resolvable.
type LimitedSource struct {
	src  CommitSource
	max  int
	seen map[string]struct{}
}

// Limit wraps src so that at most max distinct commits are resolved.
// A non-positive max returns src unchanged.
func Limit(src CommitSource, max int) CommitSource {
	if max <= 0 {
		return src
	}
	return &LimitedSource{src: src, max: max, seen: make(map[string]struct{})}
}

// Lookup returns the commit with the given SHA while the budget lasts.
func (s *LimitedSource) Lookup(sha string) (Commit, bool) {
	if _, ok := s.seen[sha]; ok {
		return s.src.Lookup(sha)
	}
	if len(s.seen) >= s.max {
		return Commit{}, false
	}

	c, ok := s.src.Lookup(sha)
	if ok {
		s.seen[sha] = struct{}{}
	}
	return c, ok
}
