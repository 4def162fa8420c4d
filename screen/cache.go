package screen

import (
	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/color"
)

// Emitter is the narrow slice of a platform.Backend that Cache.Redraw needs
// to replay a screen's contents. Declared here instead of imported from the
// platform package so screen never imports platform; any platform.Backend
// satisfies it, and dispatch passes its backend straight to Redraw.
type Emitter interface {
	Goto(col, row int) error
	SetStyles(fg, bg color.Color, fx color.Effect) error
	Write(s string) error
	ClearAll() error
}

// Cache is the shadow cell buffer for one logical screen (§3 ScreenCache,
// §4.3). Zero value is not usable; construct with New.
type Cache struct {
	w, h         int
	cursorX      int
	cursorY      int
	savedX       int
	savedY       int
	style        color.Style
	autowrap     bool
	cells        []Cell
}

// New creates a Cache sized w x h, cleared, with the default style active.
func New(w, h int) *Cache {
	c := &Cache{w: w, h: h, style: color.NewStyle(), autowrap: true}
	c.cells = make([]Cell, w*h)
	c.fill(0, len(c.cells), emptyCell(c.style))
	return c
}

// Size returns the cache's current (width, height).
func (c *Cache) Size() (int, int) { return c.w, c.h }

// Cursor returns the cache's current (col, row).
func (c *Cache) Cursor() (int, int) { return c.cursorX, c.cursorY }

// ActiveStyle returns the currently active style.
func (c *Cache) ActiveStyle() color.Style { return c.style }

func (c *Cache) index(col, row int) int { return row*c.w + col }

func (c *Cache) fill(from, to int, v Cell) {
	for i := from; i < to; i++ {
		c.cells[i] = v
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SyncPos clamps (col, row) to [0,w)x[0,h) and sets it as the cursor
// position. Invariant (a) of §3: cursor always stays on-screen.
func (c *Cache) SyncPos(col, row int) {
	c.cursorX = clamp(col, 0, c.w-1)
	c.cursorY = clamp(row, 0, c.h-1)
}

// SyncUp moves the cursor up n rows, clamped.
func (c *Cache) SyncUp(n int) { c.SyncPos(c.cursorX, c.cursorY-n) }

// SyncDown moves the cursor down n rows, clamped.
func (c *Cache) SyncDown(n int) { c.SyncPos(c.cursorX, c.cursorY+n) }

// SyncLeft moves the cursor left n columns, clamped.
func (c *Cache) SyncLeft(n int) { c.SyncPos(c.cursorX-n, c.cursorY) }

// SyncRight moves the cursor right n columns, clamped.
func (c *Cache) SyncRight(n int) { c.SyncPos(c.cursorX+n, c.cursorY) }

// SavePos remembers the current cursor position for a later LoadPos.
func (c *Cache) SavePos() { c.savedX, c.savedY = c.cursorX, c.cursorY }

// LoadPos restores the position saved by SavePos.
func (c *Cache) LoadPos() { c.SyncPos(c.savedX, c.savedY) }

// SyncSize reallocates the cell buffer to w x h, preserving the top-left
// overlap region and padding new cells as empty (§4.3 sync_size). Cursor is
// re-clamped into the new bounds.
func (c *Cache) SyncSize(w, h int) {
	next := make([]Cell, w*h)
	empty := emptyCell(c.style)
	for i := range next {
		next[i] = empty
	}
	overlapW, overlapH := min(w, c.w), min(h, c.h)
	for row := 0; row < overlapH; row++ {
		srcStart := row * c.w
		dstStart := row * w
		copy(next[dstStart:dstStart+overlapW], c.cells[srcStart:srcStart+overlapW])
	}
	c.w, c.h, c.cells = w, h, next
	c.SyncPos(c.cursorX, c.cursorY)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SyncStyle sets the active style. A transition to an identical style is a
// no-op at the cache level (§3 invariant (c)); the caller decides separately
// whether to skip the platform emit too.
func (c *Cache) SyncStyle(s color.Style) { c.style = s }

// SyncStyles sets fg/bg/fx together. See SyncStyle.
func (c *Cache) SyncStyles(fg, bg color.Color, fx color.Effect) {
	c.style = color.Style{Fg: fg, Bg: bg, Fx: fx}
}

// ResetStyle resets the active style to the terminal default.
func (c *Cache) ResetStyle() { c.style = color.NewStyle() }

// SyncContent writes cluster (of the given column width) at the cursor
// using the active style, then advances the cursor per §4.3's sync_content
// rules: '\n' moves to the next row and resets column to 0; '\r' resets
// column; '\t' advances to the next multiple of 8; other C0 controls are
// ignored; autowrap (when enabled) wraps to the next row at end of line.
func (c *Cache) SyncContent(cluster string, width int) {
	switch cluster {
	case "\n":
		c.cursorY = clamp(c.cursorY+1, 0, c.h-1)
		c.cursorX = 0
		return
	case "\r":
		c.cursorX = 0
		return
	case "\t":
		next := ((c.cursorX / 8) + 1) * 8
		c.cursorX = clamp(next, 0, c.w-1)
		return
	}
	if len(cluster) == 1 && cluster[0] < 0x20 {
		return // ignore other C0 controls, §4.3
	}

	if width <= 0 {
		width = 1
	}
	if c.cursorX+width > c.w {
		if c.autowrap {
			c.cursorX = 0
			c.cursorY = clamp(c.cursorY+1, 0, c.h-1)
		} else {
			return
		}
	}

	idx := c.index(c.cursorX, c.cursorY)
	c.cells[idx] = Cell{Glyph: cluster, Width: width, Style: c.style}
	for i := 1; i < width && c.cursorX+i < c.w; i++ {
		c.cells[idx+i] = Cell{Continuation: true, Style: c.style}
	}
	c.cursorX = clamp(c.cursorX+width, 0, c.w-1)
}

// Clear fills the region named by scope with empty cells carrying the
// active style, and repositions the cursor per §4.3.
func (c *Cache) Clear(scope action.ClearScope) {
	empty := emptyCell(c.style)
	switch scope {
	case action.ClearAll:
		c.fill(0, len(c.cells), empty)
		c.cursorX, c.cursorY = 0, 0
	case action.ClearCursorDown:
		c.fill(c.index(c.cursorX, c.cursorY), len(c.cells), empty)
	case action.ClearCursorUp:
		c.fill(0, c.index(c.cursorX, c.cursorY)+1, empty)
	case action.ClearCurrentLine:
		start := c.index(0, c.cursorY)
		c.fill(start, start+c.w, empty)
	case action.ClearNewLine:
		start := c.index(c.cursorX, c.cursorY)
		end := c.index(0, c.cursorY) + c.w
		c.fill(start, end, empty)
	}
}

// CellAt returns the cell at (col, row). Out-of-range coordinates return the
// zero Cell.
func (c *Cache) CellAt(col, row int) Cell {
	if col < 0 || col >= c.w || row < 0 || row >= c.h {
		return Cell{}
	}
	return c.cells[c.index(col, row)]
}

// Redraw replays the cache's contents onto e: clear-all, then one
// set-style + batched text write per contiguous same-style run within each
// row, then a final cursor reposition (§4.3 redraw).
func (c *Cache) Redraw(e Emitter) error {
	if err := e.ClearAll(); err != nil {
		return err
	}
	var cur color.Style
	haveCur := false
	for row := 0; row < c.h; row++ {
		col := 0
		for col < c.w {
			cell := c.cells[c.index(col, row)]
			if cell.IsEmpty() {
				col++
				haveCur = false
				continue
			}
			if !haveCur || !cur.Equal(cell.Style) {
				if err := e.SetStyles(cell.Style.Fg, cell.Style.Bg, cell.Style.Fx); err != nil {
					return err
				}
				cur = cell.Style
				haveCur = true
			}
			if err := e.Goto(col, row); err != nil {
				return err
			}
			run := col
			var text []byte
			for run < c.w {
				rc := c.cells[c.index(run, row)]
				if rc.Continuation {
					run++
					continue
				}
				if rc.IsEmpty() || !rc.Style.Equal(cur) {
					break
				}
				text = append(text, rc.Glyph...)
				run += max(rc.Width, 1)
			}
			if err := e.Write(string(text)); err != nil {
				return err
			}
			col = run
		}
	}
	return e.Goto(c.cursorX, c.cursorY)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
