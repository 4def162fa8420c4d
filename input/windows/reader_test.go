//go:build windows

package windows

import (
	"reflect"
	"testing"

	"github.com/phoenix-tui/termcore/key"
)

func keyRecordBytes(keyDown int32, vk, ch uint16, ctrlState uint32) [16]byte {
	var data [16]byte
	putu32(data[0:], uint32(keyDown))
	putu16(data[6:], vk)
	putu16(data[10:], ch)
	putu32(data[12:], ctrlState)
	return data
}

func putu16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putu32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func TestDecodeKeyRecordIgnoresKeyUp(t *testing.T) {
	data := keyRecordBytes(0, vkLeft, 0, 0)
	if _, ok := decodeKeyRecord(data); ok {
		t.Error("key-up event should be ignored")
	}
}

func TestDecodeKeyRecordArrows(t *testing.T) {
	tests := []struct {
		vk    uint16
		ctrl  uint32
		want  key.InputEvent
	}{
		{vkLeft, 0, key.Keyboard(key.Simple(key.KeyLeft))},
		{vkLeft, shiftPressed, key.Keyboard(key.Simple(key.KeyShiftLeft))},
		{vkLeft, leftCtrlPressed, key.Keyboard(key.Simple(key.KeyCtrlLeft))},
		{vkUp, rightCtrlPressed, key.Keyboard(key.Simple(key.KeyCtrlUp))},
	}
	for _, tt := range tests {
		ev, ok := decodeKeyRecord(keyRecordBytes(1, tt.vk, 0, tt.ctrl))
		if !ok {
			t.Fatalf("vk=%x ctrl=%x: expected event", tt.vk, tt.ctrl)
		}
		if !reflect.DeepEqual(ev, tt.want) {
			t.Errorf("vk=%x ctrl=%x: got %+v, want %+v", tt.vk, tt.ctrl, ev, tt.want)
		}
	}
}

func TestDecodeKeyRecordFunctionKeys(t *testing.T) {
	ev, ok := decodeKeyRecord(keyRecordBytes(1, vkF1+4, 0, 0))
	if !ok {
		t.Fatal("expected event")
	}
	want := key.Keyboard(key.F(5))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("got %+v, want %+v", ev, want)
	}
}

func TestDecodeKeyRecordCtrlChar(t *testing.T) {
	ev, ok := decodeKeyRecord(keyRecordBytes(1, 0x43 /* VK_C */, uint16('C'), leftCtrlPressed))
	if !ok {
		t.Fatal("expected event")
	}
	want := key.Keyboard(key.Ctrl('c'))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("got %+v, want %+v", ev, want)
	}
}

func TestDecodeKeyRecordShiftTabIsBackTab(t *testing.T) {
	ev, ok := decodeKeyRecord(keyRecordBytes(1, vkTab, 0, shiftPressed))
	if !ok {
		t.Fatal("expected event")
	}
	want := key.Keyboard(key.Simple(key.KeyBackTab))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("got %+v, want %+v", ev, want)
	}
}

func TestDecodeResizeRecord(t *testing.T) {
	var data [16]byte
	putu16(data[0:], 120)
	putu16(data[2:], 40)
	w, h := decodeResizeRecord(data)
	if w != 120 || h != 40 {
		t.Errorf("got (%d,%d), want (120,40)", w, h)
	}
}

func TestDecodeMouseRecordPressThenRelease(t *testing.T) {
	r := &Reader{}
	var data [16]byte
	putu16(data[0:], 10)
	putu16(data[2:], 5)
	putu32(data[4:], leftButtonPressed)

	ev, ok := r.decodeMouseRecord(data)
	if !ok {
		t.Fatal("expected press event")
	}
	want := key.Mouse(key.Press(key.ButtonLeft, 10, 5))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("press: got %+v, want %+v", ev, want)
	}

	putu32(data[4:], 0)
	ev, ok = r.decodeMouseRecord(data)
	if !ok {
		t.Fatal("expected release event")
	}
	want = key.Mouse(key.Release(10, 5))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("release: got %+v, want %+v", ev, want)
	}
}

func TestDecodeMouseRecordWheel(t *testing.T) {
	r := &Reader{}
	var data [16]byte
	putu32(data[4:], uint32(int32(1)<<16))
	putu32(data[12:], mouseWheeled)

	ev, ok := r.decodeMouseRecord(data)
	if !ok {
		t.Fatal("expected wheel event")
	}
	want := key.Mouse(key.Press(key.ButtonWheelUp, 0, 0))
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("got %+v, want %+v", ev, want)
	}
}
