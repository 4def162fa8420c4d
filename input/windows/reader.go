//go:build windows

// Package windows implements the §4.2.2 Windows record parser: it reads
// INPUT_RECORD values from the console input buffer via ReadConsoleInputW
// and translates KEY_EVENT, MOUSE_EVENT, and WINDOW_BUFFER_SIZE_EVENT
// records into key.InputEvent values. Grounded on the raw-syscall,
// byte-offset decoding approach used throughout the pack's Windows console
// backends (e.g. the tcell console_win.go reference implementation this was
// modeled on), adapted to golang.org/x/sys/windows for the DLL/Proc
// plumbing to match platform/windows's own style.
package windows

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/phoenix-tui/termcore/key"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInput = modkernel32.NewProc("ReadConsoleInputW")
)

// INPUT_RECORD event types.
const (
	keyEventType    uint16 = 0x0001
	mouseEventType  uint16 = 0x0002
	resizeEventType uint16 = 0x0004
)

// inputRecord mirrors the Win32 INPUT_RECORD union: a 4-byte EventType tag
// (the trailing 2 bytes are padding) followed by the 16-byte union body,
// decoded by offset rather than by overlaying a Go struct on the union.
type inputRecord struct {
	eventType uint16
	_         uint16
	data      [16]byte
}

// dwControlKeyState bits.
const (
	rightAltPressed  uint32 = 0x0001
	leftAltPressed   uint32 = 0x0002
	rightCtrlPressed uint32 = 0x0004
	leftCtrlPressed  uint32 = 0x0008
	shiftPressed     uint32 = 0x0010
)

// Virtual-key codes named in §4.2.2.
const (
	vkBack   uint16 = 0x08
	vkTab    uint16 = 0x09
	vkReturn uint16 = 0x0D
	vkEscape uint16 = 0x1B
	vkPrior  uint16 = 0x21 // Page Up
	vkNext   uint16 = 0x22 // Page Down
	vkEnd    uint16 = 0x23
	vkHome   uint16 = 0x24
	vkLeft   uint16 = 0x25
	vkUp     uint16 = 0x26
	vkRight  uint16 = 0x27
	vkDown   uint16 = 0x28
	vkInsert uint16 = 0x2D
	vkDelete uint16 = 0x2E
	vkF1     uint16 = 0x70
	vkF12    uint16 = 0x7B
)

// MOUSE_EVENT_RECORD dwEventFlags/dwButtonState bits.
const (
	mouseMoved   uint32 = 0x0001
	mouseWheeled uint32 = 0x0004

	leftButtonPressed   uint32 = 0x0001
	rightButtonPressed  uint32 = 0x0002
	middleButtonPressed uint32 = 0x0004
)

// Reader reads decoded events from a console input handle one at a time.
// It keeps the previously observed mouse button mask so it can tell a fresh
// press from a held-button move and a release from either, since
// MOUSE_EVENT_RECORD reports absolute button state rather than a
// transition.
type Reader struct {
	handle      windows.Handle
	lastButtons uint32
}

// NewReader wraps an open console input handle (typically from
// GetStdHandle(STD_INPUT_HANDLE)).
func NewReader(h windows.Handle) *Reader {
	return &Reader{handle: h}
}

// NewStdinReader opens a Reader against the process's console input
// handle.
func NewStdinReader() (*Reader, error) {
	h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, err
	}
	return NewReader(h), nil
}

// ReadEvent blocks on ReadConsoleInputW until it can produce an
// InputEvent, silently skipping records that decode to nothing (key-up
// events, unrecognized virtual-key codes, and no-op mouse moves).
func (r *Reader) ReadEvent() (key.InputEvent, error) {
	for {
		var rec inputRecord
		var read uint32
		ret, _, err := procReadConsoleInput.Call(
			uintptr(r.handle),
			uintptr(unsafe.Pointer(&rec)),
			1,
			uintptr(unsafe.Pointer(&read)),
		)
		if ret == 0 {
			return key.InputEvent{}, err
		}
		if read == 0 {
			continue
		}

		switch rec.eventType {
		case keyEventType:
			ev, ok := decodeKeyRecord(rec.data)
			if !ok {
				continue
			}
			return ev, nil
		case mouseEventType:
			ev, ok := r.decodeMouseRecord(rec.data)
			if !ok {
				continue
			}
			return ev, nil
		case resizeEventType:
			w, h := decodeResizeRecord(rec.data)
			return key.WinResize(w, h), nil
		default:
			continue
		}
	}
}

// KEY_EVENT_RECORD layout: BOOL bKeyDown(4); WORD wRepeatCount(2);
// WORD wVirtualKeyCode(2); WORD wVirtualScanCode(2); WCHAR UnicodeChar(2);
// DWORD dwControlKeyState(4).
func decodeKeyRecord(data [16]byte) (key.InputEvent, bool) {
	keyDown := geti32(data[0:])
	if keyDown == 0 {
		return key.InputEvent{}, false
	}
	vk := getu16(data[6:])
	ch := getu16(data[10:])
	ctrlState := getu32(data[12:])

	shift := ctrlState&shiftPressed != 0
	ctrl := ctrlState&(leftCtrlPressed|rightCtrlPressed) != 0
	alt := ctrlState&(leftAltPressed|rightAltPressed) != 0

	switch vk {
	case vkLeft:
		return arrowEvent(key.KeyLeft, key.KeyShiftLeft, key.KeyCtrlLeft, shift, ctrl), true
	case vkRight:
		return arrowEvent(key.KeyRight, key.KeyShiftRight, key.KeyCtrlRight, shift, ctrl), true
	case vkUp:
		return arrowEvent(key.KeyUp, key.KeyShiftUp, key.KeyCtrlUp, shift, ctrl), true
	case vkDown:
		return arrowEvent(key.KeyDown, key.KeyShiftDown, key.KeyCtrlDown, shift, ctrl), true
	case vkHome:
		return key.Keyboard(key.Simple(key.KeyHome)), true
	case vkEnd:
		return key.Keyboard(key.Simple(key.KeyEnd)), true
	case vkPrior:
		return key.Keyboard(key.Simple(key.KeyPageUp)), true
	case vkNext:
		return key.Keyboard(key.Simple(key.KeyPageDown)), true
	case vkInsert:
		return key.Keyboard(key.Simple(key.KeyInsert)), true
	case vkDelete:
		return key.Keyboard(key.Simple(key.KeyDelete)), true
	case vkReturn:
		return key.Keyboard(key.Char('\n')), true
	case vkBack:
		return key.Keyboard(key.Simple(key.KeyBackspace)), true
	case vkEscape:
		return key.Keyboard(key.Simple(key.KeyEsc)), true
	case vkTab:
		if shift {
			return key.Keyboard(key.Simple(key.KeyBackTab)), true
		}
		return key.Keyboard(key.Char('\t')), true
	}

	if vk >= vkF1 && vk <= vkF12 {
		return key.Keyboard(key.F(int(vk-vkF1) + 1)), true
	}

	if ch == 0 {
		return key.InputEvent{}, false
	}
	r := rune(ch)
	switch {
	case ctrl:
		return key.Keyboard(key.Ctrl(toLowerASCII(r))), true
	case alt:
		return key.Keyboard(key.Alt(r)), true
	default:
		return key.Keyboard(key.Char(r)), true
	}
}

func arrowEvent(plain, shiftKind, ctrlKind key.KeyKind, shift, ctrl bool) key.InputEvent {
	switch {
	case shift:
		return key.Keyboard(key.Simple(shiftKind))
	case ctrl:
		return key.Keyboard(key.Simple(ctrlKind))
	default:
		return key.Keyboard(key.Simple(plain))
	}
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// MOUSE_EVENT_RECORD layout: COORD dwMousePosition(4); DWORD
// dwButtonState(4); DWORD dwControlKeyState(4); DWORD dwEventFlags(4).
func (r *Reader) decodeMouseRecord(data [16]byte) (key.InputEvent, bool) {
	x := geti16(data[0:])
	y := geti16(data[2:])
	buttonState := getu32(data[4:])
	eventFlags := getu32(data[12:])

	if eventFlags&mouseWheeled != 0 {
		delta := int32(buttonState) >> 16
		if delta > 0 {
			return key.Mouse(key.Press(key.ButtonWheelUp, int(x), int(y))), true
		}
		return key.Mouse(key.Press(key.ButtonWheelDown, int(x), int(y))), true
	}

	cur := buttonState & (leftButtonPressed | rightButtonPressed | middleButtonPressed)
	prev := r.lastButtons
	r.lastButtons = cur

	switch {
	case eventFlags&mouseMoved != 0 && cur != 0:
		return key.Mouse(key.Hold(buttonFromMask(cur), int(x), int(y))), true
	case cur != 0 && prev == 0:
		return key.Mouse(key.Press(buttonFromMask(cur), int(x), int(y))), true
	case cur == 0 && prev != 0:
		return key.Mouse(key.Release(int(x), int(y))), true
	default:
		return key.InputEvent{}, false
	}
}

func buttonFromMask(mask uint32) key.Button {
	switch {
	case mask&leftButtonPressed != 0:
		return key.ButtonLeft
	case mask&rightButtonPressed != 0:
		return key.ButtonRight
	case mask&middleButtonPressed != 0:
		return key.ButtonMiddle
	default:
		return key.ButtonLeft
	}
}

// WINDOW_BUFFER_SIZE_RECORD layout: COORD dwSize(4).
func decodeResizeRecord(data [16]byte) (int, int) {
	return int(geti16(data[0:])), int(geti16(data[2:]))
}

func getu16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func geti16(b []byte) int16 {
	return int16(getu16(b))
}

func getu32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func geti32(b []byte) int32 {
	return int32(getu32(b))
}
