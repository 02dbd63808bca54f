package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/masmgr/gitlanes-go/internal/graph"
)

const (
	glyphNode     = '●'
	glyphPass     = '│'
	glyphMergeIn  = '┘' // edge from a row above ends here
	glyphBranchTo = '┐' // extra parent edge starts here
)

// cell is one horizontal slot of a graph row.
type cell struct {
	glyph rune
	lane  int // -1 when the slot has no lane
}

// rowCells lays out the open connections of a row as slots.
// The first-parent edge continuing an incoming lane shares the incoming slot.
func rowCells(e graph.Entry) []cell {
	sha := e.SHA()
	p0, _ := e.Commit.FirstParent()

	cells := make([]cell, 0, len(e.Connections)+1)
	node := false
	for i, c := range e.Connections {
		touches := c.Parent == sha || c.Child == sha
		if c.Child == sha && c.Parent == p0 && i > 0 {
			prev := e.Connections[i-1]
			if prev.Parent == sha && prev.Lane == c.Lane {
				continue
			}
		}

		switch {
		case touches && !node:
			cells = append(cells, cell{glyph: glyphNode, lane: c.Lane})
			node = true
		case c.Parent == sha:
			cells = append(cells, cell{glyph: glyphMergeIn, lane: c.Lane})
		case c.Child == sha:
			cells = append(cells, cell{glyph: glyphBranchTo, lane: c.Lane})
		default:
			cells = append(cells, cell{glyph: glyphPass, lane: c.Lane})
		}
	}

	// A lone commit with no edges still needs its node.
	if !node {
		cells = append(cells, cell{glyph: glyphNode, lane: -1})
	}
	return cells
}

// nodeLane returns the lane of the row's node slot, or -1.
func nodeLane(e graph.Entry) int {
	for _, c := range rowCells(e) {
		if c.glyph == glyphNode {
			return c.lane
		}
	}
	return -1
}

// renderRow draws a row's slots padded to width slots.
// A nil or empty palette renders without color.
func renderRow(e graph.Entry, palette []*color.Color, width int) string {
	cells := rowCells(e)

	var sb strings.Builder
	for _, c := range cells {
		glyph := string(c.glyph)
		if len(palette) > 0 && c.lane >= 0 {
			glyph = palette[c.lane%len(palette)].Sprint(glyph)
		}
		sb.WriteString(glyph)
		sb.WriteByte(' ')
	}
	for i := len(cells); i < width; i++ {
		sb.WriteString("  ")
	}
	return sb.String()
}

// graphWidth returns the widest row in slots.
func graphWidth(entries []graph.Entry) int {
	width := 0
	for _, e := range entries {
		width = max(width, len(rowCells(e)))
	}
	return width
}
