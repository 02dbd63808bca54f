package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlanes-go/internal/output"
)

func writeGraphReport(c *cli.Context, cctx *CommandContext, report *output.GraphReport) error {
	opts := cctx.OutputOptions(c)
	writer := output.NewGraphReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeRefsReport(c *cli.Context, cctx *CommandContext, report *output.RefsReport) error {
	opts := cctx.OutputOptions(c)
	writer := output.NewRefsReportWriter(opts.Format)
	return writer.Write(report, opts)
}
