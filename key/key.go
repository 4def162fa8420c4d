// Package key defines the unified input event model produced by both the
// Unix byte parser (input/unix) and the Windows record parser
// (input/windows), per §3 and §4.2.
package key

// KeyKind identifies which KeyEvent variant is set.
type KeyKind int

// Key kinds, enumerated per §3.
const (
	KeyBackspace KeyKind = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyF
	KeyChar
	KeyAlt
	KeyCtrl
	KeyNull
	KeyEsc
	KeyCtrlUp
	KeyCtrlDown
	KeyCtrlLeft
	KeyCtrlRight
	KeyShiftUp
	KeyShiftDown
	KeyShiftLeft
	KeyShiftRight
)

// KeyEvent is a single decoded keystroke.
type KeyEvent struct {
	Kind KeyKind
	// Rune carries the decoded codepoint for KeyChar/KeyAlt/KeyCtrl.
	Rune rune
	// Num carries the function-key number (1..12) for KeyF.
	Num int
}

// Char constructs a plain character key event.
func Char(r rune) KeyEvent { return KeyEvent{Kind: KeyChar, Rune: r} }

// Alt constructs an Alt-modified character key event.
func Alt(r rune) KeyEvent { return KeyEvent{Kind: KeyAlt, Rune: r} }

// Ctrl constructs a Ctrl-modified character key event. r is the lowercase
// letter the control code corresponds to (Ctrl-A => 'a'), per §4.2.1.
func Ctrl(r rune) KeyEvent { return KeyEvent{Kind: KeyCtrl, Rune: r} }

// F constructs a function-key event F(n), n in 1..12.
func F(n int) KeyEvent { return KeyEvent{Kind: KeyF, Num: n} }

// Simple constructs a key event with no associated payload (arrows, Home,
// End, Backspace, Esc, and so on).
func Simple(kind KeyKind) KeyEvent { return KeyEvent{Kind: kind} }
