package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlanes-go/internal/output"
)

// RefsCmd returns the refs command.
func RefsCmd() *cli.Command {
	return &cli.Command{
		Name:   "refs",
		Usage:  "List the refs selected for drawing",
		Flags:  commonFlags(),
		Action: refsAction,
	}
}

func refsAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	report := &output.RefsReport{
		RepoPath:    cctx.RepoPath,
		GeneratedAt: time.Now(),
		Refs:        cctx.Selected,
	}
	return writeRefsReport(c, cctx, report)
}
