package unix

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/phoenix-tui/termcore/key"
)

// InputEvent carries a []byte field (Raw), so it is not comparable with !=;
// every check here goes through reflect.DeepEqual.

func readOne(t *testing.T, raw []byte) key.InputEvent {
	t.Helper()
	r := NewReader(bytes.NewReader(raw))
	ev, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent() error = %v", err)
	}
	return ev
}

func checkEvent(t *testing.T, raw []byte, want key.InputEvent) {
	t.Helper()
	got := readOne(t, raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%q: got %+v, want %+v", raw, got, want)
	}
}

func TestCtrlC(t *testing.T) {
	checkEvent(t, []byte{0x03}, key.Keyboard(key.Ctrl('c')))
}

func TestPlainChar(t *testing.T) {
	checkEvent(t, []byte("a"), key.Keyboard(key.Char('a')))
}

func TestEnterNormalizesToNewline(t *testing.T) {
	checkEvent(t, []byte{0x0D}, key.Keyboard(key.Char('\n')))
	checkEvent(t, []byte{0x0A}, key.Keyboard(key.Char('\n')))
}

func TestBackspace(t *testing.T) {
	checkEvent(t, []byte{0x7F}, key.Keyboard(key.Simple(key.KeyBackspace)))
}

func TestArrowPlain(t *testing.T) {
	checkEvent(t, []byte("\x1b[A"), key.Keyboard(key.Simple(key.KeyUp)))
}

func TestArrowShiftModifier(t *testing.T) {
	checkEvent(t, []byte("\x1b[1;2A"), key.Keyboard(key.Simple(key.KeyShiftUp)))
}

func TestArrowCtrlModifier(t *testing.T) {
	checkEvent(t, []byte("\x1b[1;5D"), key.Keyboard(key.Simple(key.KeyCtrlLeft)))
}

func TestHomeEndViaLetterFinal(t *testing.T) {
	checkEvent(t, []byte("\x1b[H"), key.Keyboard(key.Simple(key.KeyHome)))
	checkEvent(t, []byte("\x1b[F"), key.Keyboard(key.Simple(key.KeyEnd)))
}

func TestTildeKeys(t *testing.T) {
	tests := []struct {
		raw  string
		want key.InputEvent
	}{
		{"\x1b[1~", key.Keyboard(key.Simple(key.KeyHome))},
		{"\x1b[2~", key.Keyboard(key.Simple(key.KeyInsert))},
		{"\x1b[3~", key.Keyboard(key.Simple(key.KeyDelete))},
		{"\x1b[4~", key.Keyboard(key.Simple(key.KeyEnd))},
		{"\x1b[5~", key.Keyboard(key.Simple(key.KeyPageUp))},
		{"\x1b[6~", key.Keyboard(key.Simple(key.KeyPageDown))},
		{"\x1b[15~", key.Keyboard(key.F(5))},
		{"\x1b[21~", key.Keyboard(key.F(10))},
		{"\x1b[24~", key.Keyboard(key.F(12))},
	}
	for _, tt := range tests {
		checkEvent(t, []byte(tt.raw), tt.want)
	}
}

func TestBackTab(t *testing.T) {
	checkEvent(t, []byte("\x1b[Z"), key.Keyboard(key.Simple(key.KeyBackTab)))
}

func TestFunctionKeysSS3(t *testing.T) {
	tests := []struct {
		raw string
		n   int
	}{
		{"\x1bOP", 1}, {"\x1bOQ", 2}, {"\x1bOR", 3}, {"\x1bOS", 4},
	}
	for _, tt := range tests {
		checkEvent(t, []byte(tt.raw), key.Keyboard(key.F(tt.n)))
	}
}

func TestAltChar(t *testing.T) {
	checkEvent(t, []byte("\x1bx"), key.Keyboard(key.Alt('x')))
}

func TestLoneEsc(t *testing.T) {
	checkEvent(t, []byte{0x1B}, key.Keyboard(key.Simple(key.KeyEsc)))
}

func TestUTF8Char(t *testing.T) {
	checkEvent(t, []byte("é"), key.Keyboard(key.Char('é')))
}

func TestUnsupportedSequence(t *testing.T) {
	ev := readOne(t, []byte("\x1b[99;99;99;99x"))
	if ev.Kind != key.EventUnsupported {
		t.Errorf("got kind %v, want EventUnsupported", ev.Kind)
	}
}

func TestSGRMousePress(t *testing.T) {
	checkEvent(t, []byte("\x1b[<0;15;9M"), key.Mouse(key.Press(key.ButtonLeft, 14, 8)))
}

func TestSGRMouseRelease(t *testing.T) {
	checkEvent(t, []byte("\x1b[<0;15;9m"), key.Mouse(key.Release(14, 8)))
}

func TestSGRMouseWheel(t *testing.T) {
	checkEvent(t, []byte("\x1b[<64;5;5M"), key.Mouse(key.Press(key.ButtonWheelUp, 4, 4)))
}

func TestCursorPositionReport(t *testing.T) {
	checkEvent(t, []byte("\x1b[6;11R"), key.CursorReport(10, 5))
}

func TestCursorPositionReportMalformedIsUnsupported(t *testing.T) {
	ev := readOne(t, []byte("\x1b[6R"))
	if ev.Kind != key.EventUnsupported {
		t.Errorf("got kind %v, want EventUnsupported", ev.Kind)
	}
}

func TestX10MousePress(t *testing.T) {
	// button=Left(0)+32, col=15+32, row=9+32
	checkEvent(t, []byte{0x1B, '[', 'M', 32, 32 + 15, 32 + 9}, key.Mouse(key.Press(key.ButtonLeft, 14, 8)))
}
