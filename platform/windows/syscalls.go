//go:build windows

package windows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// This file wraps the handful of Win32 Console API entry points that
// golang.org/x/sys/windows does not expose as typed helpers, mirroring the
// shape of terminal/internal/infrastructure/windows/console.go's own
// (missing from the retrieved pack) sibling wrapper file: that file's
// console.go calls unqualified GetConsoleCursorInfo, SetConsoleCursorInfo,
// FillConsoleOutputCharacter, FillConsoleOutputAttribute,
// CreateConsoleScreenBuffer, and SetConsoleActiveScreenBuffer, which must
// have lived in exactly this kind of companion file.
var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetConsoleCursorInfo         = modkernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo         = modkernel32.NewProc("SetConsoleCursorInfo")
	procFillConsoleOutputCharacterW  = modkernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute   = modkernel32.NewProc("FillConsoleOutputAttribute")
	procCreateConsoleScreenBuffer    = modkernel32.NewProc("CreateConsoleScreenBuffer")
	procSetConsoleActiveScreenBuffer = modkernel32.NewProc("SetConsoleActiveScreenBuffer")
	procSetConsoleWindowInfo         = modkernel32.NewProc("SetConsoleWindowInfo")
	procSetConsoleScreenBufferSize   = modkernel32.NewProc("SetConsoleScreenBufferSize")
)

// ConsoleCursorInfo mirrors the Win32 CONSOLE_CURSOR_INFO struct.
type ConsoleCursorInfo struct {
	Size    uint32
	Visible int32
}

func getConsoleCursorInfo(h windows.Handle, info *ConsoleCursorInfo) error {
	r, _, err := procGetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(info)))
	if r == 0 {
		return err
	}
	return nil
}

func setConsoleCursorInfo(h windows.Handle, info *ConsoleCursorInfo) error {
	r, _, err := procSetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(info)))
	if r == 0 {
		return err
	}
	return nil
}

func fillConsoleOutputCharacter(h windows.Handle, ch uint16, length uint32, coord windows.Coord) (uint32, error) {
	var written uint32
	r, _, err := procFillConsoleOutputCharacterW.Call(
		uintptr(h),
		uintptr(ch),
		uintptr(length),
		uintptr(coordToUintptr(coord)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return 0, err
	}
	return written, nil
}

func fillConsoleOutputAttribute(h windows.Handle, attr uint16, length uint32, coord windows.Coord) (uint32, error) {
	var written uint32
	r, _, err := procFillConsoleOutputAttribute.Call(
		uintptr(h),
		uintptr(attr),
		uintptr(length),
		uintptr(coordToUintptr(coord)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r == 0 {
		return 0, err
	}
	return written, nil
}

// coordToUintptr packs a windows.Coord into the X|Y<<16 word Win32 expects
// when a COORD is passed by value through a stdcall Proc.Call.
func coordToUintptr(c windows.Coord) uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

const (
	consoleTextModeBuffer = 0x00000001
)

func createConsoleScreenBuffer() (windows.Handle, error) {
	r, _, err := procCreateConsoleScreenBuffer.Call(
		uintptr(windows.GENERIC_READ|windows.GENERIC_WRITE),
		uintptr(windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE),
		0,
		uintptr(consoleTextModeBuffer),
		0,
	)
	if r == 0 || windows.Handle(r) == windows.InvalidHandle {
		return windows.InvalidHandle, err
	}
	return windows.Handle(r), nil
}

func setConsoleActiveScreenBuffer(h windows.Handle) error {
	r, _, err := procSetConsoleActiveScreenBuffer.Call(uintptr(h))
	if r == 0 {
		return err
	}
	return nil
}

// smallRect mirrors the Win32 SMALL_RECT struct, packed the way
// SetConsoleWindowInfo expects it passed by pointer.
type smallRect struct {
	Left, Top, Right, Bottom int16
}

func setConsoleWindowInfo(h windows.Handle, absolute bool, rect smallRect) error {
	var abs uintptr
	if absolute {
		abs = 1
	}
	r, _, err := procSetConsoleWindowInfo.Call(uintptr(h), abs, uintptr(unsafe.Pointer(&rect)))
	if r == 0 {
		return err
	}
	return nil
}

func setConsoleScreenBufferSize(h windows.Handle, size windows.Coord) error {
	r, _, err := procSetConsoleScreenBufferSize.Call(uintptr(h), coordToUintptr(size))
	if r == 0 {
		return err
	}
	return nil
}
