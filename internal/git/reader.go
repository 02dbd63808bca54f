package git

import (
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// HistoryReader resolves commits from a Git repository through go-git.
// Lookups are memoized, including misses.
type HistoryReader struct {
	repo *gogit.Repository
	memo map[string]lookupResult
	err  error
}

type lookupResult struct {
	commit Commit
	found  bool
}

// NewHistoryReader opens the repository at opts.RepoPath.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := gogit.PlainOpenWithOptions(opts.RepoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return NewHistoryReaderFromRepo(repo), nil
}

// NewHistoryReaderFromRepo wraps an already opened repository.
func NewHistoryReaderFromRepo(repo *gogit.Repository) *HistoryReader {
	return &HistoryReader{
		repo: repo,
		memo: make(map[string]lookupResult),
	}
}

// Lookup returns the commit with the given SHA.
// Malformed SHAs and missing objects are reported as not found.
func (r *HistoryReader) Lookup(sha string) (Commit, bool) {
	if res, ok := r.memo[sha]; ok {
		return res.commit, res.found
	}

	if !plumbing.IsHash(sha) {
		r.memo[sha] = lookupResult{}
		return Commit{}, false
	}

	obj, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		if !errors.Is(err, plumbing.ErrObjectNotFound) {
			r.err = fmt.Errorf("read commit %s: %w", sha, err)
		}
		r.memo[sha] = lookupResult{}
		return Commit{}, false
	}

	c := commitFromObject(obj)
	r.memo[sha] = lookupResult{commit: c, found: true}
	return c, true
}

// Err returns the last backend failure hidden behind a not-found lookup.
func (r *HistoryReader) Err() error {
	return r.err
}

// Resolve maps a revision (branch, tag, SHA, HEAD, ...) to a commit.
func (r *HistoryReader) Resolve(rev string) (Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return Commit{}, fmt.Errorf("%w %q: %v", ErrUnknownRevision, rev, err)
	}

	c, ok := r.Lookup(hash.String())
	if !ok {
		return Commit{}, fmt.Errorf("%w %q: %s is not a commit", ErrUnknownRevision, rev, hash)
	}
	return c, nil
}

// ListRefs returns HEAD followed by local branches, remote branches and tags.
// Annotated tags are peeled to the commit they point at; tags of other objects are skipped.
func (r *HistoryReader) ListRefs() ([]Ref, error) {
	var refs []Ref

	if head, err := r.repo.Head(); err == nil {
		refs = append(refs, Ref{Name: "HEAD", Short: "HEAD", SHA: head.Hash().String(), Kind: RefKindHead})
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("read HEAD: %w", err)
	}

	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	var named []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		name := ref.Name()
		hash := ref.Hash()

		var kind RefKind
		switch {
		case name.IsBranch():
			kind = RefKindBranch
		case name.IsRemote():
			kind = RefKindRemote
		case name.IsTag():
			kind = RefKindTag
			if tag, err := r.repo.TagObject(hash); err == nil {
				target, err := tag.Commit()
				if err != nil {
					return nil
				}
				hash = target.Hash
			}
		default:
			return nil
		}

		named = append(named, Ref{
			Name:  name.String(),
			Short: name.Short(),
			SHA:   hash.String(),
			Kind:  kind,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortRefs(named)
	return append(refs, named...), nil
}

// sortRefs orders refs by kind, then by short name.
func sortRefs(refs []Ref) {
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].Short < refs[j].Short
	})
}

func commitFromObject(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}

	return Commit{
		SHA:     c.Hash.String(),
		Parents: parents,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		When:    c.Committer.When,
		Subject: subjectLine(c.Message),
	}
}
