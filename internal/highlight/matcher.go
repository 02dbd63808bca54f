package highlight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/masmgr/gitlanes-go/internal/graph"
)

// Matcher marks commits whose subject matches any of a set of regex patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher creates a new Matcher from a list of regex pattern strings.
// Patterns are compiled as case-insensitive. Returns an error if any pattern fails to compile.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Add case-insensitive flag if not already present
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid highlight pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Matcher{patterns: compiled}, nil
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match returns true if the subject matches any of the matcher's patterns.
func (m *Matcher) Match(subject string) bool {
	if m == nil {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}

// Rows returns the SHAs of the entries whose subject matches.
func (m *Matcher) Rows(entries []graph.Entry) map[string]struct{} {
	rows := make(map[string]struct{})
	if m.Empty() {
		return rows
	}

	for _, e := range entries {
		if m.Match(e.Commit.Subject) {
			rows[e.SHA()] = struct{}{}
		}
	}
	return rows
}
