package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RefFilter selects which refs seed the history graph.
type RefFilter struct {
	Include []string // Glob patterns over short ref names
	Exclude []string // Glob patterns over short ref names
	Tags    bool
	Remotes bool
}

// Apply returns the refs accepted by the filter, preserving order.
// HEAD is subject to the glob patterns like any other ref.
func (f RefFilter) Apply(refs []Ref) ([]Ref, error) {
	out := make([]Ref, 0, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case RefKindTag:
			if !f.Tags {
				continue
			}
		case RefKindRemote:
			if !f.Remotes {
				continue
			}
		}

		ok, err := f.matches(ref.Short)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

// matches checks a short ref name against the include/exclude patterns.
func (f RefFilter) matches(name string) (bool, error) {
	name = strings.ReplaceAll(name, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range f.Exclude {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(f.Include) == 0 {
		return true, nil
	}

	for _, pattern := range f.Include {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}

// Heads resolves refs into distinct head commits.
// Commits pointed at by HEAD come first; the rest are ordered newest first,
// ties broken by SHA. Refs whose target the source cannot resolve are skipped.
func Heads(src CommitSource, refs []Ref) ([]Commit, error) {
	var heads, others []Commit
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		if _, ok := seen[ref.SHA]; ok {
			continue
		}
		c, ok := src.Lookup(ref.SHA)
		if !ok {
			continue
		}
		seen[ref.SHA] = struct{}{}

		if ref.Kind == RefKindHead {
			heads = append(heads, c)
		} else {
			others = append(others, c)
		}
	}

	sort.SliceStable(others, func(i, j int) bool {
		if !others[i].When.Equal(others[j].When) {
			return others[i].When.After(others[j].When)
		}
		return others[i].SHA < others[j].SHA
	})

	heads = append(heads, others...)
	if len(heads) == 0 {
		return nil, ErrNoHeads
	}
	return heads, nil
}

// RefNames groups ref short names by target SHA, for labelling rows.
func RefNames(refs []Ref) map[string][]string {
	names := make(map[string][]string)
	for _, ref := range refs {
		names[ref.SHA] = append(names[ref.SHA], ref.Short)
	}
	return names
}
