package git

import (
	"strings"
	"time"
)

// Commit represents one node of the commit DAG.
type Commit struct {
	SHA     string
	Parents []string
	Author  AuthorInfo
	When    time.Time
	Subject string
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// FirstParent returns the first parent SHA, if any.
func (c Commit) FirstParent() (string, bool) {
	if len(c.Parents) == 0 {
		return "", false
	}
	return c.Parents[0], true
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// ShortSHA returns the first n characters of the SHA.
func (c Commit) ShortSHA(n int) string {
	if n <= 0 || n >= len(c.SHA) {
		return c.SHA
	}
	return c.SHA[:n]
}

// subjectLine extracts the first line of a commit message.
func subjectLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimRight(message, "\r")
}

// RefKind classifies a reference.
type RefKind int

const (
	RefKindHead RefKind = iota
	RefKindBranch
	RefKindRemote
	RefKindTag
)

// String returns a string representation of the ref kind.
func (k RefKind) String() string {
	switch k {
	case RefKindHead:
		return "head"
	case RefKindBranch:
		return "branch"
	case RefKindRemote:
		return "remote"
	case RefKindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Ref is a named pointer to a commit.
type Ref struct {
	Name  string // full name, e.g. refs/heads/main
	Short string // main, origin/main, v1.0
	SHA   string // peeled commit SHA
	Kind  RefKind
}

// Backend selects the CommitSource implementation.
type Backend int

const (
	BackendGoGit Backend = iota
	BackendGitCLI
)

// String returns a string representation of the backend.
func (b Backend) String() string {
	switch b {
	case BackendGoGit:
		return "gogit"
	case BackendGitCLI:
		return "gitcli"
	default:
		return "unknown"
	}
}

// ReadOptions configures the commit sources.
type ReadOptions struct {
	RepoPath string
	Backend  Backend
}
