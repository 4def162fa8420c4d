// Package unix implements the §4.2.1 byte-stream input parser: a streaming
// state machine over a single input source (the tty, or stdin when it is
// itself a tty) producing key.InputEvent values. Grounded on
// tea/internal/infrastructure/input/reader.go's Reader (bufio-wrapped
// Read() producing one message per call) and tea/internal/infrastructure/ansi/parser.go's
// ParseKey table, extended to the superset of keys, mouse protocols, and
// modifiers §4.2.1 specifies.
package unix

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/phoenix-tui/termcore/key"
)

// Reader turns a byte stream into key.InputEvent values one at a time.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r (typically /dev/tty or os.Stdin) for event-at-a-time
// reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadEvent blocks until it can produce one InputEvent or the underlying
// stream errors. It implements §4.2.1's parse_event(first_byte, tail) state
// machine.
func (r *Reader) ReadEvent() (key.InputEvent, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return key.InputEvent{}, err
	}

	switch {
	case b == 0x1B:
		return r.parseEscape()
	case b == 0x00:
		return key.Keyboard(key.Simple(key.KeyNull)), nil
	case b == 0x0D || b == 0x0A:
		return key.Keyboard(key.Char('\n')), nil
	case b == 0x7F:
		return key.Keyboard(key.Simple(key.KeyBackspace)), nil
	case b == 0x09:
		return key.Keyboard(key.Char('\t')), nil
	case b >= 0x01 && b <= 0x1A:
		return key.Keyboard(key.Ctrl(rune(b + 0x60))), nil
	case b >= 0x80:
		ru, err := r.decodeUTF8Rune(b)
		if err != nil {
			return key.Unsupported([]byte{b}), nil
		}
		return key.Keyboard(key.Char(ru)), nil
	case b >= 0x20 && b < 0x7F:
		return key.Keyboard(key.Char(rune(b))), nil
	default:
		return key.Unsupported([]byte{b}), nil
	}
}

// parseEscape handles the byte after a lone 0x1B: CSI, SS3, bare Esc, or
// Alt(char).
func (r *Reader) parseEscape() (key.InputEvent, error) {
	if r.br.Buffered() == 0 {
		return key.Keyboard(key.Simple(key.KeyEsc)), nil
	}
	next, err := r.br.ReadByte()
	if err != nil {
		return key.Keyboard(key.Simple(key.KeyEsc)), nil
	}
	switch next {
	case 0x1B:
		// Lone Esc followed by another Esc: emit one Esc now, leave the
		// second for the next ReadEvent call.
		_ = r.br.UnreadByte()
		return key.Keyboard(key.Simple(key.KeyEsc)), nil
	case '[':
		return r.parseCSI()
	case 'O':
		return r.parseSS3()
	default:
		return r.parseAlt(next)
	}
}

func (r *Reader) parseAlt(b byte) (key.InputEvent, error) {
	if b < 0x80 {
		return key.Keyboard(key.Alt(rune(b))), nil
	}
	ru, err := r.decodeUTF8Rune(b)
	if err != nil {
		return key.Unsupported([]byte{0x1B, b}), nil
	}
	return key.Keyboard(key.Alt(ru)), nil
}

func (r *Reader) parseSS3() (key.InputEvent, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return key.Unsupported([]byte{0x1B, 'O'}), nil
	}
	switch b {
	case 'P':
		return key.Keyboard(key.F(1)), nil
	case 'Q':
		return key.Keyboard(key.F(2)), nil
	case 'R':
		return key.Keyboard(key.F(3)), nil
	case 'S':
		return key.Keyboard(key.F(4)), nil
	default:
		return key.Unsupported([]byte{0x1B, 'O', b}), nil
	}
}

// decodeUTF8Rune reads the continuation bytes implied by lead (already
// consumed) and decodes the full rune.
func (r *Reader) decodeUTF8Rune(lead byte) (rune, error) {
	var n int
	switch {
	case lead&0xE0 == 0xC0:
		n = 1
	case lead&0xF0 == 0xE0:
		n = 2
	case lead&0xF8 == 0xF0:
		n = 3
	default:
		return utf8.RuneError, fmt.Errorf("input: invalid UTF-8 lead byte %#x", lead)
	}
	buf := make([]byte, 1, n+1)
	buf[0] = lead
	for i := 0; i < n; i++ {
		b, err := r.br.ReadByte()
		if err != nil {
			return utf8.RuneError, err
		}
		buf = append(buf, b)
	}
	ru, size := utf8.DecodeRune(buf)
	if ru == utf8.RuneError && size <= 1 {
		return utf8.RuneError, fmt.Errorf("input: invalid UTF-8 sequence %x", buf)
	}
	return ru, nil
}
