// Package action defines the tagged command variant that flows from a
// dispatch.Handle into the dispatcher's event loop and, from there, into the
// active platform.Backend.
//
// Actions are immutable values, not method calls: a Handle never touches the
// backend directly. It builds an Action and hands it to the dispatcher,
// which is the only goroutine allowed to talk to the terminal. This keeps
// the command queue lock-free and lets the dispatcher serialize Actions
// from many handles into one well-ordered stream (see dispatch.Dispatcher).
package action

import "github.com/phoenix-tui/termcore/color"

// Kind identifies which variant of Action is set.
type Kind int

// Action kinds, grouped the way §3 of the spec groups them.
const (
	// Cursor motion.
	KindGoto Kind = iota
	KindUp
	KindDown
	KindLeft
	KindRight
	KindSavePos
	KindLoadPos

	// Visibility.
	KindShowCursor
	KindHideCursor

	// Style.
	KindSetFg
	KindSetBg
	KindSetFx
	KindSetStyles
	KindResetStyles

	// Write.
	KindPrintf // write + flush
	KindPrints // write only
	KindFlush

	// Screen.
	KindEnableAlt
	KindDisableAlt
	KindSwitch
	KindSwitchTo
	KindResize
	KindClear

	// Mode.
	KindRaw
	KindCook
	KindEnableMouse
	KindDisableMouse

	// Control.
	KindLock
	KindUnlock

	// Query.
	KindCursorPos
)

// ClearScope selects which region of the screen a Clear action erases.
type ClearScope int

// Clear scopes, per §3.
const (
	ClearAll ClearScope = iota
	ClearCursorDown
	ClearCursorUp
	ClearCurrentLine
	ClearNewLine
)

// Action is a tagged command variant. Exactly the fields relevant to Kind
// are meaningful; the rest are zero. Construct one with the package-level
// constructor functions below rather than a struct literal.
type Action struct {
	Kind Kind

	// Cursor motion / screen resize.
	X, Y int // Goto, Resize (width, height)
	N    int // Up/Down/Left/Right count

	// Style.
	Fg    color.Color
	Bg    color.Color
	Fx    color.Effect
	Style color.Style

	// Write.
	Text string

	// Screen.
	Clear ClearScope
	Index int // SwitchTo target
}

// Goto moves the cursor to the absolute 0-based position (col, row).
func Goto(col, row int) Action { return Action{Kind: KindGoto, X: col, Y: row} }

// Up moves the cursor up n rows.
func Up(n int) Action { return Action{Kind: KindUp, N: n} }

// Down moves the cursor down n rows.
func Down(n int) Action { return Action{Kind: KindDown, N: n} }

// Left moves the cursor left n columns.
func Left(n int) Action { return Action{Kind: KindLeft, N: n} }

// Right moves the cursor right n columns.
func Right(n int) Action { return Action{Kind: KindRight, N: n} }

// SavePosition saves the current cursor position for a later LoadPosition.
func SavePosition() Action { return Action{Kind: KindSavePos} }

// LoadPosition restores the cursor position saved by SavePosition.
func LoadPosition() Action { return Action{Kind: KindLoadPos} }

// ShowCursor makes the cursor visible.
func ShowCursor() Action { return Action{Kind: KindShowCursor} }

// HideCursor makes the cursor invisible.
func HideCursor() Action { return Action{Kind: KindHideCursor} }

// SetFg sets the active foreground color.
func SetFg(c color.Color) Action { return Action{Kind: KindSetFg, Fg: c} }

// SetBg sets the active background color.
func SetBg(c color.Color) Action { return Action{Kind: KindSetBg, Bg: c} }

// SetFx sets the active effect bitmask, replacing whatever was set before.
func SetFx(fx color.Effect) Action { return Action{Kind: KindSetFx, Fx: fx} }

// SetStyles sets foreground, background and effects together.
func SetStyles(fg, bg color.Color, fx color.Effect) Action {
	return Action{Kind: KindSetStyles, Fg: fg, Bg: bg, Fx: fx}
}

// ResetStyles resets foreground, background and effects to terminal defaults.
func ResetStyles() Action { return Action{Kind: KindResetStyles} }

// Printf writes text and flushes the output buffer immediately.
func Printf(text string) Action { return Action{Kind: KindPrintf, Text: text} }

// Prints writes text into the output buffer without flushing.
func Prints(text string) Action { return Action{Kind: KindPrints, Text: text} }

// Flush flushes any buffered output.
func Flush() Action { return Action{Kind: KindFlush} }

// EnableAlt enables the alternate screen buffer.
func EnableAlt() Action { return Action{Kind: KindEnableAlt} }

// DisableAlt disables the alternate screen buffer.
func DisableAlt() Action { return Action{Kind: KindDisableAlt} }

// Switch creates a new logical screen and makes it active.
func Switch() Action { return Action{Kind: KindSwitch} }

// SwitchTo activates logical screen index i, clamped to the valid range.
func SwitchTo(i int) Action { return Action{Kind: KindSwitchTo, Index: i} }

// Resize requests a terminal resize to (w, h) cells.
func Resize(w, h int) Action { return Action{Kind: KindResize, X: w, Y: h} }

// ClearScreen clears the region described by scope.
func ClearScreen(scope ClearScope) Action { return Action{Kind: KindClear, Clear: scope} }

// EnterRaw puts the terminal into raw mode.
func EnterRaw() Action { return Action{Kind: KindRaw} }

// Cook restores cooked (line-buffered) mode.
func Cook() Action { return Action{Kind: KindCook} }

// EnableMouse turns on mouse event reporting.
func EnableMouse() Action { return Action{Kind: KindEnableMouse} }

// DisableMouse turns off mouse event reporting.
func DisableMouse() Action { return Action{Kind: KindDisableMouse} }

// Lock requests exclusive ownership of the command stream for the issuing
// handle. Actions from other handles are dropped, not queued, until Unlock.
func Lock() Action { return Action{Kind: KindLock} }

// Unlock releases a lock taken with Lock.
func Unlock() Action { return Action{Kind: KindUnlock} }

// CursorPos requests a synchronous read-back of the terminal's actual
// cursor position (§4.1.1).
func CursorPos() Action { return Action{Kind: KindCursorPos} }
