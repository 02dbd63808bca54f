package git

import "errors"

var (
	// ErrUnknownRevision is returned when a revision cannot be resolved to a commit.
	ErrUnknownRevision = errors.New("unknown revision")
	// ErrNoHeads is returned when no ref resolves to a commit.
	ErrNoHeads = errors.New("no heads to process")
)

// CommitSource resolves commits by SHA.
// Implementations must be cheap to call repeatedly and must report
// unknown or unreachable SHAs as not found instead of failing.
type CommitSource interface {
	Lookup(sha string) (Commit, bool)
}

// RefLister enumerates the references of a repository.
type RefLister interface {
	ListRefs() ([]Ref, error)
}

// Repository is a commit source that can also resolve revisions and list refs.
type Repository interface {
	CommitSource
	RefLister
	Resolve(rev string) (Commit, error)
}

// Compile-time interface conformance checks.
var (
	_ Repository   = (*HistoryReader)(nil)
	_ Repository   = (*CLISource)(nil)
	_ CommitSource = (*MemorySource)(nil)
	_ CommitSource = (*LimitedSource)(nil)
)
