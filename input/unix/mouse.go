package unix

import (
	"strconv"
	"strings"

	"github.com/phoenix-tui/termcore/key"
)

// parseX10Mouse decodes the classic X10 mouse report: three raw bytes after
// "\x1b[M" encoding button, column, and row each as value+32, grounded on
// mouse/internal/infrastructure/parser/x10_parser.go's bit layout.
func (r *Reader) parseX10Mouse() (key.InputEvent, error) {
	buf := make([]byte, 3)
	for i := range buf {
		b, err := r.br.ReadByte()
		if err != nil {
			return key.Unsupported(append([]byte{0x1B, '[', 'M'}, buf[:i]...)), nil
		}
		buf[i] = b
	}
	code := int(buf[0]) - 32
	col := int(buf[1]) - 32 - 1
	row := int(buf[2]) - 32 - 1
	if col < 0 || row < 0 {
		return key.Unknown(), nil
	}
	kind, btn := decodeMouseCode(code)
	switch kind {
	case key.MousePress:
		return key.Mouse(key.Press(btn, col, row)), nil
	case key.MouseHold:
		return key.Mouse(key.Hold(btn, col, row)), nil
	case key.MouseRelease:
		return key.Mouse(key.Release(col, row)), nil
	default:
		return key.Mouse(key.UnknownMouse()), nil
	}
}

// parseSGRMouse decodes the SGR extended mouse protocol: "\x1b[<{code};{col};{row}M"
// for press/hold or terminated with 'm' for release, grounded on
// mouse/internal/infrastructure/parser/sgr_parser.go.
func (r *Reader) parseSGRMouse() (key.InputEvent, error) {
	var params []byte
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return key.Unsupported(append([]byte{0x1B, '[', '<'}, params...)), nil
		}
		if b == 'M' || b == 'm' {
			return finishSGRMouse(params, b), nil
		}
		params = append(params, b)
	}
}

func finishSGRMouse(params []byte, final byte) key.InputEvent {
	parts := strings.Split(string(params), ";")
	if len(parts) != 3 {
		return key.Mouse(key.UnknownMouse())
	}
	code, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	row, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return key.Mouse(key.UnknownMouse())
	}
	col--
	row--
	if col < 0 || row < 0 {
		return key.Mouse(key.UnknownMouse())
	}

	if final == 'm' {
		return key.Mouse(key.Release(col, row))
	}

	_, btn := decodeMouseCode(code)
	if code&0x20 != 0 && code&0x40 == 0 {
		return key.Mouse(key.Hold(btn, col, row))
	}
	return key.Mouse(key.Press(btn, col, row))
}

// decodeMouseCode interprets the shared X10/SGR button code byte: bits 0-1
// select the button, bit 6 (0x40) flags a wheel event, and bit 5 (0x20)
// flags motion-while-held (Hold) rather than a fresh press, per §4.2.1.
func decodeMouseCode(code int) (key.MouseKind, key.Button) {
	if code&0x40 != 0 {
		if code&0x01 != 0 {
			return key.MousePress, key.ButtonWheelDown
		}
		return key.MousePress, key.ButtonWheelUp
	}

	btnBits := code & 0x03
	motion := code&0x20 != 0

	var btn key.Button
	switch btnBits {
	case 0:
		btn = key.ButtonLeft
	case 1:
		btn = key.ButtonMiddle
	case 2:
		btn = key.ButtonRight
	default:
		// btnBits == 3: X10's "no button"/release marker. Reported against
		// the left button since X10 carries no release identity.
		btn = key.ButtonLeft
	}

	switch {
	case motion:
		return key.MouseHold, btn
	case btnBits == 3:
		return key.MouseRelease, btn
	default:
		return key.MousePress, btn
	}
}
