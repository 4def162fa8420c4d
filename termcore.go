// Package termcore is the unified terminal façade (§2 "Unified terminal
// façade"): a thin public surface over dispatch.Dispatcher that maps
// straightforward calls directly onto Actions, for callers that don't need
// their own EventHandle.
//
// Example:
//
//	term, err := termcore.Init()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer term.Close()
//	term.HideCursor()
//	term.Goto(10, 5)
//	term.Printf("Hello, termcore!")
package termcore

import (
	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/color"
	"github.com/phoenix-tui/termcore/dispatch"
	"github.com/phoenix-tui/termcore/key"
	"github.com/phoenix-tui/termcore/platform/autodetect"
)

// Term is the façade returned by Init: one Dispatcher plus the default
// EventHandle every convenience method signals through.
type Term struct {
	d *dispatch.Dispatcher
	h *dispatch.Handle
}

// Init autodetects the platform backend (§4.1's selection algorithm), starts
// the dispatcher, and returns a Term bound to its own default handle.
func Init() (*Term, error) {
	backend, err := autodetect.New()
	if err != nil {
		return nil, err
	}
	d, err := dispatch.New(backend)
	if err != nil {
		return nil, err
	}
	return &Term{d: d, h: d.Listen()}, nil
}

// Listen creates an additional, independent EventHandle on the same
// Dispatcher Term wraps. Spawn is an identical alias.
func (t *Term) Listen() *dispatch.Handle { return t.d.Listen() }

// Spawn is an alias for Listen.
func (t *Term) Spawn() *dispatch.Handle { return t.d.Listen() }

// Close implements Drop semantics: stop the input task, restore cooked
// mode, disable mouse reporting, show the cursor, and return to the main
// screen.
func (t *Term) Close() error {
	t.h.Close()
	return t.d.Shutdown()
}

// Goto moves the cursor to the absolute 0-based position (col, row).
func (t *Term) Goto(col, row int) { t.h.Signal(action.Goto(col, row)) }

// Up moves the cursor up n rows.
func (t *Term) Up(n int) { t.h.Signal(action.Up(n)) }

// Down moves the cursor down n rows.
func (t *Term) Down(n int) { t.h.Signal(action.Down(n)) }

// Left moves the cursor left n columns.
func (t *Term) Left(n int) { t.h.Signal(action.Left(n)) }

// Right moves the cursor right n columns.
func (t *Term) Right(n int) { t.h.Signal(action.Right(n)) }

// SavePosition saves the current cursor position for a later LoadPosition.
func (t *Term) SavePosition() { t.h.Signal(action.SavePosition()) }

// LoadPosition restores the cursor position saved by SavePosition.
func (t *Term) LoadPosition() { t.h.Signal(action.LoadPosition()) }

// ShowCursor makes the cursor visible.
func (t *Term) ShowCursor() { t.h.Signal(action.ShowCursor()) }

// HideCursor makes the cursor invisible.
func (t *Term) HideCursor() { t.h.Signal(action.HideCursor()) }

// SetFg sets the active foreground color.
func (t *Term) SetFg(c color.Color) { t.h.Signal(action.SetFg(c)) }

// SetBg sets the active background color.
func (t *Term) SetBg(c color.Color) { t.h.Signal(action.SetBg(c)) }

// SetFx replaces the active effect bitmask.
func (t *Term) SetFx(fx color.Effect) { t.h.Signal(action.SetFx(fx)) }

// SetStyles sets foreground, background and effects together.
func (t *Term) SetStyles(fg, bg color.Color, fx color.Effect) {
	t.h.Signal(action.SetStyles(fg, bg, fx))
}

// ResetStyles resets foreground, background and effects to terminal
// defaults.
func (t *Term) ResetStyles() { t.h.Signal(action.ResetStyles()) }

// Printf writes text and flushes immediately.
func (t *Term) Printf(text string) { t.h.Signal(action.Printf(text)) }

// Prints writes text without flushing.
func (t *Term) Prints(text string) { t.h.Signal(action.Prints(text)) }

// Flush flushes any buffered output.
func (t *Term) Flush() { t.h.Signal(action.Flush()) }

// EnableAlt enables the alternate screen buffer directly, independent of
// Switch/SwitchTo.
func (t *Term) EnableAlt() { t.h.Signal(action.EnableAlt()) }

// DisableAlt disables the alternate screen buffer directly.
func (t *Term) DisableAlt() { t.h.Signal(action.DisableAlt()) }

// Switch creates a new logical screen and makes it active.
func (t *Term) Switch() { t.h.Signal(action.Switch()) }

// SwitchTo activates logical screen index i.
func (t *Term) SwitchTo(i int) { t.h.Signal(action.SwitchTo(i)) }

// Resize requests a terminal resize to (w, h) cells.
func (t *Term) Resize(w, h int) { t.h.Signal(action.Resize(w, h)) }

// Clear clears the region described by scope.
func (t *Term) Clear(scope action.ClearScope) { t.h.Signal(action.ClearScreen(scope)) }

// EnterRaw puts the terminal into raw mode.
func (t *Term) EnterRaw() { t.h.Signal(action.EnterRaw()) }

// Cook restores cooked (line-buffered) mode.
func (t *Term) Cook() { t.h.Signal(action.Cook()) }

// EnableMouse turns on mouse event reporting.
func (t *Term) EnableMouse() { t.h.Signal(action.EnableMouse()) }

// DisableMouse turns off mouse event reporting.
func (t *Term) DisableMouse() { t.h.Signal(action.DisableMouse()) }

// Lock requests exclusive ownership of the command stream for Term's
// default handle.
func (t *Term) Lock() { t.h.Lock() }

// Unlock releases a lock taken with Lock.
func (t *Term) Unlock() { t.h.Unlock() }

// Getch blocks until a character keystroke arrives and returns its
// codepoint.
func (t *Term) Getch() rune { return t.h.Getch() }

// PollAsync returns the oldest queued event on Term's default handle, or
// (zero, false) if none is queued.
func (t *Term) PollAsync() (key.InputEvent, bool) { return t.h.PollAsync() }

// PollLatestAsync returns only the most recent queued event, discarding any
// stale backlog.
func (t *Term) PollLatestAsync() (key.InputEvent, bool) { return t.h.PollLatestAsync() }

// Coord returns the active screen's current cached (col, row).
func (t *Term) Coord() (int, int) { return t.h.Coord() }

// Size returns the active screen's current cached (width, height).
func (t *Term) Size() (int, int) { return t.h.Size() }

// CursorPos performs a synchronous read-back of the terminal's actual
// cursor position, in contrast to Coord's cached snapshot.
func (t *Term) CursorPos() (int, int, error) { return t.h.CursorPos() }
