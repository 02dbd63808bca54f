package graph

import (
	"fmt"
	"testing"

	"github.com/masmgr/gitlanes-go/internal/git"
)

// benchDAG builds a mainline of n commits with a side branch of length
// sideLen merged back every mergeEvery commits.
func benchDAG(n, mergeEvery, sideLen int) (*git.MemorySource, git.Commit) {
	src := git.NewMemorySource()
	tip := git.Commit{SHA: "root"}
	src.Add(tip)

	for i := 0; i < n; i++ {
		c := git.Commit{SHA: fmt.Sprintf("m%05d", i), Parents: []string{tip.SHA}}
		if mergeEvery > 0 && i > 0 && i%mergeEvery == 0 {
			parent := tip.SHA
			for j := 0; j < sideLen; j++ {
				s := git.Commit{SHA: fmt.Sprintf("s%05d_%d", i, j), Parents: []string{parent}}
				src.Add(s)
				parent = s.SHA
			}
			c.Parents = append(c.Parents, parent)
		}
		src.Add(c)
		tip = c
	}
	return src, tip
}

func BenchmarkBuilder_Process(b *testing.B) {
	src, tip := benchDAG(2000, 10, 3)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		builder := NewBuilder(src)
		builder.Process(tip)
		if builder.Len() == 0 {
			b.Fatalf("unexpected empty graph")
		}
	}
}

func BenchmarkBuilder_AssignLanes(b *testing.B) {
	src, tip := benchDAG(2000, 10, 3)
	builder := NewBuilder(src)
	builder.Process(tip)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		AssignLanes(builder.Entries())
	}
}
