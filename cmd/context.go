package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlanes-go/config"
	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Repo     git.Repository
	Refs     []git.Ref // Every ref of the repository
	Selected []git.Ref // Refs accepted by the configured filter
	Logger   *log.Logger
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, opens the repository and lists its refs.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := loggerFromContext(c.Context)

	backend, err := parseBackend(cfg.Graph.Backend)
	if err != nil {
		return nil, err
	}

	path := repoPath(c)
	prog := newProgress(logger)
	repo, err := openRepository(c.Context, git.ReadOptions{
		RepoPath: path,
		Backend:  backend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	prog.done(fmt.Sprintf("Opened %s with %s backend", path, backend))

	refs, err := repo.ListRefs()
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}

	filter := git.RefFilter{
		Include: cfg.Refs.Include,
		Exclude: cfg.Refs.Exclude,
		Tags:    cfg.Refs.Tags,
		Remotes: cfg.Refs.Remotes,
	}
	selected, err := filter.Apply(refs)
	if err != nil {
		return nil, err
	}
	logger.Debug("refs listed", "total", len(refs), "selected", len(selected))

	return &CommandContext{
		Config:   cfg,
		RepoPath: path,
		Repo:     repo,
		Refs:     refs,
		Selected: selected,
		Logger:   logger,
	}, nil
}

// openRepository opens the commit source selected by opts.Backend.
func openRepository(ctx context.Context, opts git.ReadOptions) (git.Repository, error) {
	switch opts.Backend {
	case git.BackendGitCLI:
		return git.NewCLISource(ctx, opts)
	default:
		return git.NewHistoryReader(opts)
	}
}

// BackendErr returns a failure the commit source hid behind not-found lookups.
func (ctx *CommandContext) BackendErr() error {
	if r, ok := ctx.Repo.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}

// OutputOptions creates OutputOptions from CLI flags.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
		Palette:    ctx.Config.Graph.Palette,
	}
}
