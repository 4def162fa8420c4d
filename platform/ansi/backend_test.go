package ansi

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/phoenix-tui/termcore/color"
	"github.com/phoenix-tui/termcore/platform"
)

// capture builds a Backend writing into an in-memory buffer, runs fn, and
// returns the emitted bytes. Mirrors captureANSI from the teacher's
// ansi_test.go, adapted to the buffered Backend.
func capture(fn func(*Backend)) string {
	var buf bytes.Buffer
	b := &Backend{out: bufio.NewWriter(&buf)}
	fn(b)
	b.out.Flush()
	return buf.String()
}

func TestGoto(t *testing.T) {
	got := capture(func(b *Backend) { b.Goto(10, 5) })
	if want := "\x1b[6;11H"; got != want {
		t.Errorf("Goto(10,5) = %q, want %q", got, want)
	}
}

func TestRelativeMotionNoopOnNonPositive(t *testing.T) {
	got := capture(func(b *Backend) {
		b.Up(0)
		b.Down(-3)
	})
	if got != "" {
		t.Errorf("non-positive relative motion should be a no-op, got %q", got)
	}
}

func TestRelativeMotion(t *testing.T) {
	got := capture(func(b *Backend) { b.Up(3) })
	if want := "\x1b[3A"; got != want {
		t.Errorf("Up(3) = %q, want %q", got, want)
	}
}

func TestAltScreenSequences(t *testing.T) {
	if got := capture(func(b *Backend) { b.EnableAltScreen() }); got != "\x1b[?1049h" {
		t.Errorf("EnableAltScreen = %q", got)
	}
	if got := capture(func(b *Backend) { b.DisableAltScreen() }); got != "\x1b[?1049l" {
		t.Errorf("DisableAltScreen = %q", got)
	}
}

func TestMouseSequences(t *testing.T) {
	if got := capture(func(b *Backend) { b.EnableMouse() }); got != "\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h" {
		t.Errorf("EnableMouse = %q", got)
	}
	if got := capture(func(b *Backend) { b.DisableMouse() }); got != "\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l" {
		t.Errorf("DisableMouse = %q", got)
	}
}

func TestResizeXTWINOPS(t *testing.T) {
	got := capture(func(b *Backend) { b.Resize(80, 24) })
	if want := "\x1b[8;24;80t"; got != want {
		t.Errorf("Resize(80,24) = %q, want %q", got, want)
	}
}

func TestClearScopes(t *testing.T) {
	tests := []struct {
		scope platform.ClearScope
		want  string
	}{
		{platform.ClearAll, "\x1b[2J\x1b[H"},
		{platform.ClearCursorDown, "\x1b[0J"},
		{platform.ClearCursorUp, "\x1b[1J"},
		{platform.ClearCurrentLine, "\x1b[2K"},
		{platform.ClearNewLine, "\x1b[0K"},
	}
	for _, tt := range tests {
		got := capture(func(b *Backend) { b.Clear(tt.scope) })
		if got != tt.want {
			t.Errorf("Clear(%v) = %q, want %q", tt.scope, got, tt.want)
		}
	}
}

func TestSetStylesResetsFirst(t *testing.T) {
	got := capture(func(b *Backend) {
		b.SetStyles(color.NewNamed(color.Red), color.Reset(), color.FxBold)
	})
	want := "\x1b[0m\x1b[38;5;9m\x1b[1m"
	if got != want {
		t.Errorf("SetStyles = %q, want %q", got, want)
	}
}

func TestQueryCursorPosBytes(t *testing.T) {
	if got := string(QueryCursorPos()); got != "\x1b[6n" {
		t.Errorf("QueryCursorPos = %q, want DSR(6n)", got)
	}
}

func TestRequestCursorPosWritesQuery(t *testing.T) {
	got := capture(func(b *Backend) { b.RequestCursorPos() })
	if want := "\x1b[6n"; got != want {
		t.Errorf("RequestCursorPos wrote %q, want %q", got, want)
	}
}

func TestCursorPosErrorsDirectly(t *testing.T) {
	b := &Backend{}
	if _, _, err := b.CursorPos(); err == nil {
		t.Error("CursorPos should error without dispatch mediating a DSR round trip")
	}
}

func TestRawModeDoubleEnterRejected(t *testing.T) {
	b := &Backend{inRaw: true}
	if err := b.EnterRaw(); err == nil {
		t.Error("EnterRaw should fail when already in raw mode")
	}
}

func TestCookWithoutEnterRejected(t *testing.T) {
	b := &Backend{}
	if err := b.Cook(); err == nil {
		t.Error("Cook should fail when not in raw mode")
	}
}
