// Package platform defines the Backend interface shared by the ANSI backend
// (platform/ansi) and the Windows Console API backend (platform/windows),
// and the capability-probing logic that picks one per §4.1's selection
// algorithm.
//
// Per the design note in §9 ("Dual backend polymorphism"), selection happens
// once per process; dispatch.Dispatcher holds a single Backend value behind
// this interface rather than branching on platform throughout its own code.
package platform

import "github.com/phoenix-tui/termcore/color"

// Backend is the full set of primitive terminal operations a platform
// implementation must provide, matching §4.1's enumerated operations.
// Every method corresponds 1:1 to either an action.Kind or a support
// operation needed by dispatch (Size, cursor query, raw mode predicate).
type Backend interface {
	// The first four methods match screen.Emitter's method set exactly, so
	// any Backend can be passed straight to screen.Cache.Redraw.
	Goto(col, row int) error
	SetStyles(fg, bg color.Color, fx color.Effect) error
	Write(s string) error
	ClearAll() error

	Up(n int) error
	Down(n int) error
	Left(n int) error
	Right(n int) error
	SavePosition() error
	LoadPosition() error

	ShowCursor() error
	HideCursor() error

	SetFg(c color.Color) error
	SetBg(c color.Color) error
	SetFx(fx color.Effect) error
	ResetStyles() error

	Prints(s string) error
	Flush() error

	EnableAltScreen() error
	DisableAltScreen() error

	Clear(scope ClearScope) error
	Resize(w, h int) error

	EnableMouse() error
	DisableMouse() error

	EnterRaw() error
	Cook() error
	IsRaw() bool

	// Size returns the backend's current notion of the terminal size. It is
	// queried at init and after every WinResize event.
	Size() (w, h int, err error)

	// CursorPos attempts to read back the real cursor position. On Windows
	// this is instant (GetConsoleScreenBufferInfo); on ANSI it requires a
	// DSR(6n) round trip dispatch alone can arbitrate (RequestCursorPos),
	// so the ANSI implementation of this method errors if called directly.
	// dispatch prefers the cache's own tracked position (Handle.Coord) and
	// only performs this round trip when asked explicitly via
	// Handle.CursorPos, per the open question in §9.
	CursorPos() (col, row int, err error)

	// RequestCursorPos writes the DSR(6n) request sequence that provokes a
	// terminal into sending back a cursor position report (§4.1.1). Only
	// ever called by dispatch, immediately before it waits for the parsed
	// reply to arrive through the normal input stream. The Windows backend
	// never needs this (CursorPos is already instant there) and implements
	// it as a no-op.
	RequestCursorPos() error

	// IsANSI reports whether this backend speaks escape sequences (true) or
	// the native Windows Console API (false). Dispatch uses this to decide
	// whether Switch/SwitchTo call EnableAltScreen/DisableAltScreen (the
	// 1049h/l toggle, §9's alt-screen vs. switch design note) and whether
	// CursorPos needs the DSR round trip. On a non-ANSI backend Switch and
	// SwitchTo only change which screen cache is active and redraw it; they
	// do not create or activate a second console screen buffer.
	IsANSI() bool
}

// ClearScope mirrors action.ClearScope. Declared again here (not imported)
// only to keep platform import-independent of action; dispatch is the sole
// translator between the two, and keeps their orderings in lock-step.
type ClearScope int

// Clear scope constants, numerically identical to action.ClearScope's.
const (
	ClearAll ClearScope = iota
	ClearCursorDown
	ClearCursorUp
	ClearCurrentLine
	ClearNewLine
)
