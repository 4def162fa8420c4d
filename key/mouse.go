package key

// Button identifies which mouse button (or wheel direction) a MouseEvent
// refers to, per §3.
type Button int

// Buttons.
const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonWheelUp
	ButtonWheelDown
)

// MouseKind identifies which MouseEvent variant is set.
type MouseKind int

// Mouse event kinds, per §3: {Press(button,col,row), Release(col,row),
// Hold(col,row), Unknown}.
const (
	MousePress MouseKind = iota
	MouseRelease
	MouseHold
	MouseUnknown
)

// MouseEvent is a single decoded mouse action. Col/Row are 0-based terminal
// cell coordinates.
type MouseEvent struct {
	Kind   MouseKind
	Button Button // meaningful for MousePress and MouseHold
	Col    Row
}

// Row aliases the (col, row) coordinate pair so MouseEvent stays a flat,
// comparable value (no nested struct indirection needed by callers that
// just want event.Col.X / event.Col.Y).
type Row struct {
	X, Y int
}

// Press constructs a button-press mouse event at (col, row).
func Press(b Button, col, row int) MouseEvent {
	return MouseEvent{Kind: MousePress, Button: b, Col: Row{X: col, Y: row}}
}

// Release constructs a button-release mouse event at (col, row). The spec's
// Release variant carries no button (§3), matching most terminals which
// don't report which button was released in all protocols.
func Release(col, row int) MouseEvent {
	return MouseEvent{Kind: MouseRelease, Col: Row{X: col, Y: row}}
}

// Hold constructs a motion-with-button-held mouse event at (col, row).
func Hold(b Button, col, row int) MouseEvent {
	return MouseEvent{Kind: MouseHold, Button: b, Col: Row{X: col, Y: row}}
}

// UnknownMouse constructs an unrecognized mouse event.
func UnknownMouse() MouseEvent { return MouseEvent{Kind: MouseUnknown} }
