package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlanes-go/config"
	"github.com/masmgr/gitlanes-go/internal/git"
	"github.com/masmgr/gitlanes-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitlanes",
		Usage:   "Commit graph viewer for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			GraphCmd(),
			RefsCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			level := log.InfoLevel
			if c.Bool("verbose") {
				level = log.DebugLevel
			}
			ctx := c.Context
			if ctx == nil {
				ctx = context.Background()
			}
			c.Context = withLogger(ctx, newLogger(os.Stderr, level))
			return nil
		},
		Action: legacyAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Commit source (gogit, gitcli)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns over ref names to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns over ref names to exclude (can be specified multiple times)",
		},
		&cli.BoolFlag{
			Name:  "tags",
			Usage: "Include tags",
		},
		&cli.BoolFlag{
			Name:  "remotes",
			Usage: "Include remote-tracking branches",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of rows to show (0 = all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseBackend maps a backend name to a commit source kind.
func parseBackend(s string) (git.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", config.BackendGoGit, "go-git":
		return git.BackendGoGit, nil
	case config.BackendGitCLI, "cli", "git":
		return git.BackendGitCLI, nil
	default:
		return 0, fmt.Errorf("invalid backend: %s (expected %s or %s)", s, config.BackendGoGit, config.BackendGitCLI)
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Refs.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Refs.Exclude = excludes
	}
	if c.Bool("tags") {
		cfg.Refs.Tags = true
	}
	if c.Bool("remotes") {
		cfg.Refs.Remotes = true
	}
	if backend := c.String("backend"); backend != "" {
		cfg.Graph.Backend = backend
	}
	if c.IsSet("max-commits") {
		cfg.Graph.MaxCommits = c.Int("max-commits")
	}
	if patterns := c.StringSlice("highlight"); len(patterns) > 0 {
		cfg.Highlight.Patterns = patterns
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// repoPath returns the --repo flag, or the first argument in legacy mode.
func repoPath(c *cli.Context) string {
	if p := c.String("repo"); p != "" {
		return p
	}
	if c.NArg() > 0 {
		return c.Args().First()
	}
	return "."
}

// legacyAction handles the default (legacy) command behavior.
// When a repository path is provided as an argument, it draws its graph.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	return graphAction(c)
}
