package main

import (
	"log"
	"os"
	"strings"

	"github.com/masmgr/gitlanes-go/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	// Build the new app with subcommands
	app := cmd.App()

	// Add legacy flags to the root command so `gitlanes <repo>` draws a graph
	app.Flags = append(app.Flags, legacyFlags()...)

	// Override the default action for legacy support
	defaultAction := app.Action
	app.Action = func(c *cli.Context) error {
		if words := c.String("words"); words != "" {
			if err := c.Set("highlight", convertToRegex(words)); err != nil {
				return err
			}
		}
		return defaultAction(c)
	}

	return app
}

func legacyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "revision to draw (legacy mode)",
		},
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "draw every branch (legacy mode)",
		},
		&cli.IntFlag{
			Name:    "max-commits",
			Aliases: []string{"depth", "d"},
			Usage:   "maximum number of commits to load (legacy mode)",
		},
		&cli.StringFlag{
			Name:    "words",
			Aliases: []string{"w"},
			Usage:   "highlight word list, ie: \"fixes,closed\" (legacy mode)",
		},
		&cli.StringSliceFlag{
			Name:  "highlight",
			Usage: "highlight regex (legacy mode)",
		},
	}
}

// convertToRegex turns a comma separated word list into an alternation
// matching whole words.
func convertToRegex(words string) string {
	parts := make([]string, 0)
	for _, w := range strings.Split(words, ",") {
		if w = strings.TrimSpace(w); w != "" {
			parts = append(parts, w)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return `\b(` + strings.Join(parts, "|") + `)\b`
}
