package output

import (
	"strings"
	"testing"
)

func TestMarkdownGraphWriter_Write(t *testing.T) {
	report := diamondReport(t)

	tmpFile := t.TempDir() + "/graph.md"
	if err := (&MarkdownGraphWriter{}).Write(report, OutputOptions{OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Commit Graph",
		"**Repository:** /test/repo",
		"**Commits:** 4, **Merges:** 1, **Lanes:** 2, **Max width:** 3",
		"| 1 | `● ┐` | `D` | merge | HEAD, main | Alice | 2024-03-01 |",
		"| 2 | `● │` | `B` | **fix: off by one** |  | Bob | 2024-03-01 |",
		"| 3 | `│ ●` | `C` | add \\| pipe |  | Alice | 2024-03-01 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**Note:**") {
		t.Errorf("complete history should not carry a note:\n%s", out)
	}
}

func TestMarkdownGraphWriter_OpenLanesNote(t *testing.T) {
	report := truncatedReport(t)

	tmpFile := t.TempDir() + "/graph.md"
	if err := (&MarkdownGraphWriter{}).Write(report, OutputOptions{OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "**Note:** 1 lanes continue past the loaded history.") {
		t.Errorf("output missing open lane note:\n%s", data)
	}
}
