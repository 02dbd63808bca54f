package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CLISource resolves commits from the output of a single "git log --all" run.
type CLISource struct {
	repoPath string
	commits  map[string]Commit
}

// NewCLISource runs git log in opts.RepoPath and indexes every reachable commit.
func NewCLISource(ctx context.Context, opts ReadOptions) (*CLISource, error) {
	// Each record ends with 0x1e (record separator); fields are NUL-separated.
	const format = "%H%x00%P%x00%ct%x00%an%x00%ae%x00%s%x1e"

	out, err := runGit(ctx, opts.RepoPath,
		"log",
		"--all",
		"--no-color",
		"--pretty=format:"+format,
	)
	if err != nil {
		return nil, err
	}

	commits, err := parseLogRecords(out)
	if err != nil {
		return nil, err
	}

	return &CLISource{repoPath: opts.RepoPath, commits: commits}, nil
}

// Lookup returns the commit with the given SHA.
func (s *CLISource) Lookup(sha string) (Commit, bool) {
	c, ok := s.commits[sha]
	return c, ok
}

// Len returns the number of indexed commits.
func (s *CLISource) Len() int {
	return len(s.commits)
}

// Resolve maps a revision to a commit through git rev-parse.
func (s *CLISource) Resolve(rev string) (Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}

	out, err := runGit(context.Background(), s.repoPath, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return Commit{}, fmt.Errorf("%w %q", ErrUnknownRevision, rev)
	}

	sha := strings.TrimSpace(string(out))
	c, ok := s.Lookup(sha)
	if !ok {
		return Commit{}, fmt.Errorf("%w %q: %s is not reachable from any ref", ErrUnknownRevision, rev, sha)
	}
	return c, nil
}

// ListRefs returns HEAD followed by local branches, remote branches and tags.
func (s *CLISource) ListRefs() ([]Ref, error) {
	var refs []Ref

	if out, err := runGit(context.Background(), s.repoPath, "rev-parse", "--verify", "--quiet", "HEAD^{commit}"); err == nil {
		refs = append(refs, Ref{Name: "HEAD", Short: "HEAD", SHA: strings.TrimSpace(string(out)), Kind: RefKindHead})
	}

	out, err := runGit(context.Background(), s.repoPath,
		"for-each-ref",
		"--format=%(objectname)%00%(objecttype)%00%(refname)%00%(*objectname)",
		"refs/heads", "refs/remotes", "refs/tags",
	)
	if err != nil {
		return nil, err
	}

	named, err := parseForEachRef(out)
	if err != nil {
		return nil, err
	}

	sortRefs(named)
	return append(refs, named...), nil
}

func runGit(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	args = append([]string{"-C", repoPath}, args...)
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		var stderr string
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git %s failed: %w: %s", args[2], err, stderr)
	}
	return out, nil
}

// parseLogRecords parses "%H%x00%P%x00%ct%x00%an%x00%ae%x00%s%x1e" records.
func parseLogRecords(out []byte) (map[string]Commit, error) {
	records := bytes.Split(out, []byte{0x1e})
	commits := make(map[string]Commit, len(records))

	for _, rec := range records {
		rec = bytes.TrimLeft(rec, "\r\n")
		if len(rec) == 0 {
			continue
		}

		fields := bytes.SplitN(rec, []byte{0x00}, 6)
		if len(fields) < 6 {
			return nil, fmt.Errorf("unexpected git log record format: %q", rec)
		}

		sha := string(fields[0])
		if sha == "" {
			return nil, fmt.Errorf("unexpected git log record format (missing hash)")
		}

		secs, err := strconv.ParseInt(string(fields[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse committer date of %s: %w", sha, err)
		}

		commits[sha] = Commit{
			SHA:     sha,
			Parents: strings.Fields(string(fields[1])),
			Author:  AuthorInfo{Name: string(fields[3]), Email: string(fields[4])},
			When:    time.Unix(secs, 0).UTC(),
			Subject: subjectLine(string(fields[5])),
		}
	}

	return commits, nil
}

// parseForEachRef parses "%(objectname)%00%(objecttype)%00%(refname)%00%(*objectname)" lines.
func parseForEachRef(out []byte) ([]Ref, error) {
	var refs []Ref

	for _, line := range bytes.Split(out, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}

		fields := bytes.Split(line, []byte{0x00})
		if len(fields) != 4 {
			return nil, fmt.Errorf("unexpected git for-each-ref line: %q", line)
		}

		sha := string(fields[0])
		objType := string(fields[1])
		name := string(fields[2])
		peeled := string(fields[3])

		var kind RefKind
		var short string
		switch {
		case strings.HasPrefix(name, "refs/heads/"):
			kind, short = RefKindBranch, strings.TrimPrefix(name, "refs/heads/")
		case strings.HasPrefix(name, "refs/remotes/"):
			kind, short = RefKindRemote, strings.TrimPrefix(name, "refs/remotes/")
			if strings.HasSuffix(short, "/HEAD") {
				continue
			}
		case strings.HasPrefix(name, "refs/tags/"):
			kind, short = RefKindTag, strings.TrimPrefix(name, "refs/tags/")
		default:
			continue
		}

		switch objType {
		case "commit":
		case "tag":
			if peeled == "" {
				continue
			}
			sha = peeled
		default:
			continue
		}

		refs = append(refs, Ref{Name: name, Short: short, SHA: sha, Kind: kind})
	}

	return refs, nil
}
