package key

// EventKind identifies which InputEvent variant is set.
type EventKind int

// Input event kinds, per §3.
const (
	EventKeyboard EventKind = iota
	EventMouse
	EventWinResize
	EventUnknown
	EventUnsupported
	EventEmpty
	EventError

	// EventCursorReport carries a parsed DSR(6n) cursor-position reply
	// (§4.1.1). dispatch intercepts it for its own CursorPos query and
	// never broadcasts it to subscribers.
	EventCursorReport
)

// InputEvent is the unified event the dispatcher broadcasts to every
// subscriber, produced by either input parser (§4.2).
type InputEvent struct {
	Kind EventKind

	Keyboard KeyEvent
	Mouse    MouseEvent

	// WinResize payload.
	Width, Height int

	// CursorReport payload: the 0-based (col, row) parsed from a DSR(6n)
	// reply.
	CursorCol, CursorRow int

	// Unsupported payload: the raw bytes that didn't match any recognized
	// sequence (§4.2.1 "any sequence that does not match").
	Raw []byte

	// Error payload, set when Kind == EventError (§7: input-reader I/O
	// failures surface as InputEvent::Error on the broadcast channel).
	Err error
}

// Keyboard wraps a KeyEvent as an InputEvent.
func Keyboard(k KeyEvent) InputEvent { return InputEvent{Kind: EventKeyboard, Keyboard: k} }

// Mouse wraps a MouseEvent as an InputEvent.
func Mouse(m MouseEvent) InputEvent { return InputEvent{Kind: EventMouse, Mouse: m} }

// WinResize constructs a terminal-resize InputEvent.
func WinResize(w, h int) InputEvent { return InputEvent{Kind: EventWinResize, Width: w, Height: h} }

// Unknown constructs an InputEvent for a recognized-but-unmapped sequence.
func Unknown() InputEvent { return InputEvent{Kind: EventUnknown} }

// Unsupported constructs an InputEvent carrying the raw bytes of a sequence
// that matched no recognized grammar.
func Unsupported(raw []byte) InputEvent {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return InputEvent{Kind: EventUnsupported, Raw: cp}
}

// Empty constructs the "not enough bytes yet" sentinel InputEvent. Neither
// input parser in this module returns it: input/unix.Reader blocks until a
// sequence is complete, and input/windows.Reader skips records that decode
// to nothing.
func Empty() InputEvent { return InputEvent{Kind: EventEmpty} }

// Error constructs an InputEvent carrying a reader I/O failure.
func Error(err error) InputEvent { return InputEvent{Kind: EventError, Err: err} }

// CursorReport constructs the InputEvent for a parsed DSR(6n) reply
// ("ESC [ row ; col R"), already converted to 0-based (col, row).
func CursorReport(col, row int) InputEvent {
	return InputEvent{Kind: EventCursorReport, CursorCol: col, CursorRow: row}
}
