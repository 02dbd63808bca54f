package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/graph"
	"github.com/masmgr/gitlanes-go/internal/highlight"
	"github.com/masmgr/gitlanes-go/internal/output"
	"github.com/masmgr/gitlanes-go/internal/stats"
)

// GraphCmd returns the graph command.
func GraphCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Revision to draw (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Draw every selected ref",
		},
		&cli.IntFlag{
			Name:  "max-commits",
			Usage: "Stop loading history after this many commits (0 = unlimited)",
		},
		&cli.StringSliceFlag{
			Name:  "highlight",
			Usage: "Regex over commit subjects to highlight (can be specified multiple times)",
		},
	)

	return &cli.Command{
		Name:    "graph",
		Aliases: []string{"g"},
		Usage:   "Draw the commit graph with lanes",
		Flags:   flags,
		Action:  graphAction,
	}
}

func graphAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	cfg := cctx.Config

	heads, names, err := selectHeads(cctx, c.StringSlice("branch"), c.Bool("all"))
	if err != nil {
		return err
	}

	matcher, err := highlight.NewMatcher(cfg.Highlight.Patterns)
	if err != nil {
		return err
	}

	source := git.Limit(cctx.Repo, cfg.Graph.MaxCommits)
	builder := graph.NewBuilder(source, graph.WithDiagnostics(graph.NewLogDiagnostics(cctx.Logger)))

	prog := newProgress(cctx.Logger)
	for _, head := range heads {
		// Heads count against the commit budget like any other loaded commit.
		if _, ok := source.Lookup(head.SHA); !ok {
			cctx.Logger.Debug("commit budget exhausted, skipping head", "sha", head.ShortSHA(8))
			continue
		}
		if err := builder.ProcessContext(c.Context, head); err != nil {
			return fmt.Errorf("failed to build graph: %w", err)
		}
	}
	lanes := builder.AssignLanes()
	prog.done(fmt.Sprintf("Placed %d commits from %d heads", builder.Len(), len(heads)))

	if err := cctx.BackendErr(); err != nil {
		cctx.Logger.Warn("history may be incomplete", "err", err)
	}

	entries := builder.Entries()
	highlighted := matcher.Rows(entries)

	report := &output.GraphReport{
		RepoPath:    cctx.RepoPath,
		Heads:       names,
		GeneratedAt: time.Now(),
		Entries:     entries,
		Open:        lanes.Open,
		Summary:     stats.Compute(entries, lanes, highlighted),
		Highlighted: highlighted,
		RefNames:    git.RefNames(cctx.Refs),
	}

	return writeGraphReport(c, cctx, report)
}

// selectHeads picks the commits to draw: explicit revisions first, then every
// selected ref with --all, falling back to the configured default branch.
func selectHeads(cctx *CommandContext, revs []string, all bool) ([]git.Commit, []string, error) {
	if len(revs) > 0 {
		heads := make([]git.Commit, 0, len(revs))
		for _, rev := range revs {
			head, err := cctx.Repo.Resolve(rev)
			if err != nil {
				return nil, nil, err
			}
			heads = append(heads, head)
		}
		return heads, revs, nil
	}

	if all {
		heads, err := git.Heads(cctx.Repo, cctx.Selected)
		if err != nil {
			return nil, nil, err
		}
		return heads, headNames(heads, cctx.Selected), nil
	}

	rev := cctx.Config.Refs.DefaultBranch
	head, err := cctx.Repo.Resolve(rev)
	if err != nil {
		if errors.Is(err, git.ErrUnknownRevision) {
			return nil, nil, fmt.Errorf("%w (is the repository empty?)", err)
		}
		return nil, nil, err
	}
	if rev == "" {
		rev = "HEAD"
	}
	return []git.Commit{head}, []string{rev}, nil
}

// headNames labels each head with the first selected ref pointing at it.
func headNames(heads []git.Commit, refs []git.Ref) []string {
	byName := git.RefNames(refs)
	names := make([]string, 0, len(heads))
	for _, h := range heads {
		if n := byName[h.SHA]; len(n) > 0 {
			names = append(names, n[0])
		} else {
			names = append(names, h.ShortSHA(8))
		}
	}
	return names
}
