// Package testutil provides a recording, in-memory platform.Backend for
// dispatch and termcore tests, adapted from testing/mock_terminal.go's
// call-recording MockTerminal: every method is a no-op that appends a
// formatted call string to Calls, so a test can assert on the exact
// sequence of backend operations an Action produced.
package testutil

import (
	"fmt"
	"sync"

	"github.com/phoenix-tui/termcore/color"
	"github.com/phoenix-tui/termcore/platform"
)

// MockBackend records every platform.Backend call it receives. All
// cursor/size bookkeeping is just enough to make Size/CursorPos/IsRaw
// self-consistent for tests; it does not emit any real escape sequences or
// touch any real terminal.
type MockBackend struct {
	mu    sync.Mutex
	Calls []string

	width, height int
	col, row      int
	savedCol      int
	savedRow      int
	raw           bool
	ansi          bool
}

// NewMockBackend creates a MockBackend reporting the given size. ansi
// selects the value IsANSI() returns, letting a test exercise both the
// ANSI-only codepaths (alt-screen toggling) and the native-Windows ones.
func NewMockBackend(width, height int, ansi bool) *MockBackend {
	return &MockBackend{width: width, height: height, ansi: ansi}
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many recorded calls start with method (matching
// either a bare method name or "method(...)").
func (m *MockBackend) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method || (len(c) > len(method) && c[:len(method)] == method && c[len(method)] == '(') {
			n++
		}
	}
	return n
}

func (m *MockBackend) Goto(col, row int) error {
	m.mu.Lock()
	m.col, m.row = col, row
	m.mu.Unlock()
	m.record(fmt.Sprintf("Goto(%d, %d)", col, row))
	return nil
}

func (m *MockBackend) SetStyles(fg, bg color.Color, fx color.Effect) error {
	m.record(fmt.Sprintf("SetStyles(%+v, %+v, %d)", fg, bg, fx))
	return nil
}

func (m *MockBackend) Write(s string) error {
	m.record(fmt.Sprintf("Write(%q)", s))
	return nil
}

func (m *MockBackend) ClearAll() error {
	m.record("ClearAll")
	return nil
}

func (m *MockBackend) Up(n int) error    { return m.move("Up", 0, -n) }
func (m *MockBackend) Down(n int) error  { return m.move("Down", 0, n) }
func (m *MockBackend) Left(n int) error  { return m.move("Left", -n, 0) }
func (m *MockBackend) Right(n int) error { return m.move("Right", n, 0) }

func (m *MockBackend) move(name string, dc, dr int) error {
	m.mu.Lock()
	m.col += dc
	m.row += dr
	m.mu.Unlock()
	m.record(fmt.Sprintf("%s(%d)", name, dc+dr))
	return nil
}

func (m *MockBackend) SavePosition() error {
	m.mu.Lock()
	m.savedCol, m.savedRow = m.col, m.row
	m.mu.Unlock()
	m.record("SavePosition")
	return nil
}

func (m *MockBackend) LoadPosition() error {
	m.mu.Lock()
	m.col, m.row = m.savedCol, m.savedRow
	m.mu.Unlock()
	m.record("LoadPosition")
	return nil
}

func (m *MockBackend) ShowCursor() error { m.record("ShowCursor"); return nil }
func (m *MockBackend) HideCursor() error { m.record("HideCursor"); return nil }

func (m *MockBackend) SetFg(c color.Color) error { m.record(fmt.Sprintf("SetFg(%+v)", c)); return nil }
func (m *MockBackend) SetBg(c color.Color) error { m.record(fmt.Sprintf("SetBg(%+v)", c)); return nil }
func (m *MockBackend) SetFx(fx color.Effect) error {
	m.record(fmt.Sprintf("SetFx(%d)", fx))
	return nil
}
func (m *MockBackend) ResetStyles() error { m.record("ResetStyles"); return nil }

func (m *MockBackend) Prints(s string) error { m.record(fmt.Sprintf("Prints(%q)", s)); return nil }
func (m *MockBackend) Flush() error          { m.record("Flush"); return nil }

func (m *MockBackend) EnableAltScreen() error  { m.record("EnableAltScreen"); return nil }
func (m *MockBackend) DisableAltScreen() error { m.record("DisableAltScreen"); return nil }

func (m *MockBackend) Clear(scope platform.ClearScope) error {
	m.record(fmt.Sprintf("Clear(%d)", scope))
	return nil
}

func (m *MockBackend) Resize(w, h int) error {
	m.mu.Lock()
	m.width, m.height = w, h
	m.mu.Unlock()
	m.record(fmt.Sprintf("Resize(%d, %d)", w, h))
	return nil
}

func (m *MockBackend) EnableMouse() error  { m.record("EnableMouse"); return nil }
func (m *MockBackend) DisableMouse() error { m.record("DisableMouse"); return nil }

func (m *MockBackend) EnterRaw() error {
	m.mu.Lock()
	m.raw = true
	m.mu.Unlock()
	m.record("EnterRaw")
	return nil
}

func (m *MockBackend) Cook() error {
	m.mu.Lock()
	m.raw = false
	m.mu.Unlock()
	m.record("Cook")
	return nil
}

func (m *MockBackend) IsRaw() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw
}

func (m *MockBackend) Size() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height, nil
}

func (m *MockBackend) CursorPos() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.col, m.row, nil
}

// RequestCursorPos records the DSR(6n) request; it emits no bytes and the
// test must push the matching key.CursorReport itself through a fakeReader
// for a dispatch-level round trip to complete.
func (m *MockBackend) RequestCursorPos() error {
	m.record("RequestCursorPos")
	return nil
}

func (m *MockBackend) IsANSI() bool { return m.ansi }
