package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DefaultPalette is used when no lane colors are configured.
var DefaultPalette = []string{"green", "yellow", "blue", "magenta", "cyan", "red"}

var colorNames = map[string]color.Attribute{
	"black":      color.FgBlack,
	"red":        color.FgRed,
	"green":      color.FgGreen,
	"yellow":     color.FgYellow,
	"blue":       color.FgBlue,
	"magenta":    color.FgMagenta,
	"cyan":       color.FgCyan,
	"white":      color.FgWhite,
	"hi-black":   color.FgHiBlack,
	"hi-red":     color.FgHiRed,
	"hi-green":   color.FgHiGreen,
	"hi-yellow":  color.FgHiYellow,
	"hi-blue":    color.FgHiBlue,
	"hi-magenta": color.FgHiMagenta,
	"hi-cyan":    color.FgHiCyan,
	"hi-white":   color.FgHiWhite,
}

// ParsePalette maps color names to printers.
func ParsePalette(names []string) ([]*color.Color, error) {
	if len(names) == 0 {
		names = DefaultPalette
	}

	palette := make([]*color.Color, 0, len(names))
	for _, name := range names {
		attr, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown lane color %q", name)
		}
		palette = append(palette, color.New(attr))
	}
	return palette, nil
}
