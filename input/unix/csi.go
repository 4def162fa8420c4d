package unix

import (
	"strconv"
	"strings"

	"github.com/phoenix-tui/termcore/key"
)

// parseCSI consumes the body of a CSI sequence (everything after "\x1b[")
// per §4.2.1's terminator table. It special-cases the two raw mouse
// protocols (X10's bare 'M' and SGR's '<' prefix) before falling back to the
// parameter-byte/final-byte grammar shared by cursor and tilde-terminated
// keys.
func (r *Reader) parseCSI() (key.InputEvent, error) {
	first, err := r.br.ReadByte()
	if err != nil {
		return key.Unsupported([]byte{0x1B, '['}), nil
	}

	switch first {
	case 'M':
		return r.parseX10Mouse()
	case '<':
		return r.parseSGRMouse()
	}

	params := []byte{first}
	for {
		if params[len(params)-1] >= 0x40 && params[len(params)-1] <= 0x7E {
			final := params[len(params)-1]
			return r.finishCSI(params[:len(params)-1], final)
		}
		b, err := r.br.ReadByte()
		if err != nil {
			return key.Unsupported(append([]byte{0x1B, '['}, params...)), nil
		}
		params = append(params, b)
	}
}

func (r *Reader) finishCSI(params []byte, final byte) (key.InputEvent, error) {
	switch final {
	case 'A':
		return arrowEvent(params, key.KeyUp, key.KeyShiftUp, key.KeyCtrlUp), nil
	case 'B':
		return arrowEvent(params, key.KeyDown, key.KeyShiftDown, key.KeyCtrlDown), nil
	case 'C':
		return arrowEvent(params, key.KeyRight, key.KeyShiftRight, key.KeyCtrlRight), nil
	case 'D':
		return arrowEvent(params, key.KeyLeft, key.KeyShiftLeft, key.KeyCtrlLeft), nil
	case 'H':
		return key.Keyboard(key.Simple(key.KeyHome)), nil
	case 'F':
		return key.Keyboard(key.Simple(key.KeyEnd)), nil
	case 'Z':
		return key.Keyboard(key.Simple(key.KeyBackTab)), nil
	case 'R':
		return cursorReportEvent(params), nil
	case '~':
		return tildeEvent(params), nil
	default:
		raw := append([]byte{0x1B, '['}, params...)
		raw = append(raw, final)
		return key.Unsupported(raw), nil
	}
}

// arrowEvent applies the optional ";2" (Shift) / ";5" (Ctrl) modifier
// parameter xterm appends to arrow-key CSI sequences.
func arrowEvent(params []byte, plain, shift, ctrl key.KeyKind) key.InputEvent {
	parts := strings.Split(string(params), ";")
	if len(parts) >= 2 {
		switch parts[1] {
		case "2":
			return key.Keyboard(key.Simple(shift))
		case "5":
			return key.Keyboard(key.Simple(ctrl))
		}
	}
	return key.Keyboard(key.Simple(plain))
}

// cursorReportEvent parses a DSR(6n) reply's "row;col" parameter pair
// (§4.1.1) into a 0-based key.CursorReport event.
func cursorReportEvent(params []byte) key.InputEvent {
	unsupported := func() key.InputEvent {
		raw := append([]byte{0x1B, '['}, params...)
		raw = append(raw, 'R')
		return key.Unsupported(raw)
	}

	parts := strings.Split(string(params), ";")
	if len(parts) != 2 {
		return unsupported()
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return unsupported()
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return unsupported()
	}
	return key.CursorReport(col-1, row-1)
}

// tildeEvent maps the leading numeric parameter of a "~"-terminated CSI
// sequence to a key, per §4.2.1's table.
func tildeEvent(params []byte) key.InputEvent {
	numStr := string(params)
	if idx := strings.IndexByte(numStr, ';'); idx >= 0 {
		numStr = numStr[:idx]
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		raw := append([]byte{0x1B, '['}, params...)
		raw = append(raw, '~')
		return key.Unsupported(raw)
	}
	switch n {
	case 1, 7:
		return key.Keyboard(key.Simple(key.KeyHome))
	case 2:
		return key.Keyboard(key.Simple(key.KeyInsert))
	case 3:
		return key.Keyboard(key.Simple(key.KeyDelete))
	case 4, 8:
		return key.Keyboard(key.Simple(key.KeyEnd))
	case 5:
		return key.Keyboard(key.Simple(key.KeyPageUp))
	case 6:
		return key.Keyboard(key.Simple(key.KeyPageDown))
	case 11, 12, 13, 14, 15:
		return key.Keyboard(key.F(n - 10))
	case 17, 18, 19, 20, 21:
		return key.Keyboard(key.F(n - 11))
	case 23, 24:
		return key.Keyboard(key.F(n - 12))
	default:
		raw := append([]byte{0x1B, '['}, params...)
		raw = append(raw, '~')
		return key.Unsupported(raw)
	}
}
