package stats

import (
	"math"
	"slices"
	"time"
)

// BusiestSpan is the window used for Summary.Busiest.
const BusiestSpan = 7 * 24 * time.Hour

// Window is a span of time and the commits made within it.
type Window struct {
	Start   time.Time
	End     time.Time
	Commits int
}

// Empty reports whether the window holds no commits.
func (w Window) Empty() bool {
	return w.Commits == 0
}

// BusiestWindow finds the span-long window holding the most commits.
// Ties go to the earliest window. Zero times are ignored.
func BusiestWindow(times []time.Time, span time.Duration) Window {
	sorted := make([]time.Time, 0, len(times))
	for _, t := range times {
		if !t.IsZero() {
			sorted = append(sorted, t)
		}
	}
	if len(sorted) == 0 {
		return Window{}
	}
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	best := Window{Start: sorted[0], End: sorted[0], Commits: 1}

	// Two-pointer sliding window
	left := 0
	for right := range sorted {
		for sorted[right].Sub(sorted[left]) > span {
			left++
		}
		if n := right - left + 1; n > best.Commits {
			best = Window{Start: sorted[left], End: sorted[right], Commits: n}
		}
	}
	return best
}

// AuthorSpread is the normalized Shannon entropy of commits over authors.
// 0 means one author wrote everything, 1 means commits are spread evenly.
func AuthorSpread(authors []AuthorCount) float64 {
	total, n := 0, 0
	for _, a := range authors {
		if a.Commits > 0 {
			total += a.Commits
			n++
		}
	}
	if n <= 1 {
		return 0.0
	}

	// -Σ(p_i × log2(p_i))
	entropy := 0.0
	for _, a := range authors {
		if a.Commits > 0 {
			p := float64(a.Commits) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}

	spread := entropy / math.Log2(float64(n))
	return math.Max(0, math.Min(1, spread))
}
