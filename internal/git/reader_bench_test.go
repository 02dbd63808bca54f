package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createBenchRepo builds a history of commits on master with a two-commit
// side branch merged back every mergeEvery commits.
func createBenchRepo(tb testing.TB, commits, mergeEvery int) (string, plumbing.Hash) {
	tb.Helper()

	repoDir := tb.TempDir()

	repo, err := gogit.PlainInitWithOptions(repoDir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Master},
	})
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}

	base := time.Now().Add(-time.Duration(commits*3+10) * time.Hour)
	n := 0

	commit := func(msg string, parents ...plumbing.Hash) plumbing.Hash {
		tb.Helper()
		n++
		if err := os.WriteFile(filepath.Join(repoDir, "file.txt"), []byte(msg), 0o644); err != nil {
			tb.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add("file.txt"); err != nil {
			tb.Fatalf("Add: %v", err)
		}
		sig := &object.Signature{
			Name:  "Bench",
			Email: "bench@example.com",
			When:  base.Add(time.Duration(n) * time.Hour),
		}
		hash, err := wt.Commit(msg, &gogit.CommitOptions{
			Author:    sig,
			Committer: sig,
			Parents:   parents,
		})
		if err != nil {
			tb.Fatalf("Commit: %v", err)
		}
		return hash
	}

	tip := commit("initial")
	for i := 0; i < commits; i++ {
		if mergeEvery > 0 && i > 0 && i%mergeEvery == 0 {
			s1 := commit(fmt.Sprintf("side %d.1", i), tip)
			s2 := commit(fmt.Sprintf("side %d.2", i), s1)
			m := commit(fmt.Sprintf("main %d", i), tip)
			tip = commit(fmt.Sprintf("merge %d", i), m, s2)
			continue
		}
		tip = commit(fmt.Sprintf("main %d", i), tip)
	}

	return repoDir, tip
}

func walk(src CommitSource, head string) int {
	seen := make(map[string]struct{})
	stack := []string{head}
	for len(stack) > 0 {
		sha := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[sha]; ok {
			continue
		}
		c, ok := src.Lookup(sha)
		if !ok {
			continue
		}
		seen[sha] = struct{}{}
		stack = append(stack, c.Parents...)
	}
	return len(seen)
}

func BenchmarkHistoryReader_Walk(b *testing.B) {
	repoDir, tip := createBenchRepo(b, 120, 5)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader, err := NewHistoryReader(ReadOptions{RepoPath: repoDir})
		if err != nil {
			b.Fatalf("NewHistoryReader: %v", err)
		}
		if walk(reader, tip.String()) == 0 {
			b.Fatalf("unexpected empty history")
		}
	}
}

func BenchmarkHistoryReader_WalkMemoized(b *testing.B) {
	repoDir, tip := createBenchRepo(b, 120, 5)
	reader, err := NewHistoryReader(ReadOptions{RepoPath: repoDir})
	if err != nil {
		b.Fatalf("NewHistoryReader: %v", err)
	}
	walk(reader, tip.String())
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		walk(reader, tip.String())
	}
}

func BenchmarkHistoryReader_WalkLimited(b *testing.B) {
	repoDir, tip := createBenchRepo(b, 120, 5)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader, err := NewHistoryReader(ReadOptions{RepoPath: repoDir})
		if err != nil {
			b.Fatalf("NewHistoryReader: %v", err)
		}
		if got := walk(Limit(reader, 50), tip.String()); got != 50 {
			b.Fatalf("walked %d commits, expected 50", got)
		}
	}
}
