// Package screen implements the shadow cell buffer described in §3/§4.3:
// an in-process mirror of each logical screen's contents, used to clamp
// cursor motion, redraw a screen exactly on switch, and suppress redundant
// style emits.
package screen

import "github.com/phoenix-tui/termcore/color"

// Cell is one shadow-buffer entry. A double-wide glyph occupies two
// consecutive cells: the left cell holds the grapheme cluster with Width 2,
// the right cell is a continuation marker (Continuation true, empty Glyph).
// This keeps cursor arithmetic integer-based instead of needing to special
// case "this column is the second half of a wide glyph" at every call site.
type Cell struct {
	Glyph        string
	Width        int
	Continuation bool
	Style        color.Style
}

// emptyCell returns the cleared-cell value used by Clear and SyncSize's
// pad region: no glyph, width 1, active style carried over so a redraw
// still paints the right background.
func emptyCell(style color.Style) Cell {
	return Cell{Glyph: "", Width: 1, Style: style}
}

// IsEmpty reports whether the cell holds no visible content.
func (c Cell) IsEmpty() bool { return !c.Continuation && c.Glyph == "" }
