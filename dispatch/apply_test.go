package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/color"
)

func TestPrintfFlushesPrintsDoesNot(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.Prints("hello"))
	waitForCall(t, backend, "Write", 1)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, backend.CallCount("Flush"), "Prints must not trigger a Flush")

	h.Signal(action.Printf("world"))
	waitForCall(t, backend, "Flush", 1)
	assert.Equal(t, 2, backend.CallCount("Write"))
}

func TestSetStylesSkipsRedundantBackendCall(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	fg := color.NewNamed(color.Red)
	h.Signal(action.SetStyles(fg, color.Color{}, 0))
	waitForCall(t, backend, "SetStyles", 1)

	h.Signal(action.SetStyles(fg, color.Color{}, 0))
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 1, backend.CallCount("SetStyles"), "unchanged style must not re-emit")

	other := color.NewNamed(color.Blue)
	h.Signal(action.SetStyles(other, color.Color{}, 0))
	waitForCall(t, backend, "SetStyles", 2)
}

func TestClearForwardsScope(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.ClearScreen(action.ClearCurrentLine))
	waitForCall(t, backend, "Clear", 1)

	assert.Contains(t, backend.Calls, "Clear(3)")
}

func TestResizeUpdatesSizeSnapshot(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.Resize(120, 40))
	waitForCall(t, backend, "Resize", 1)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if w, ht := h.Size(); w == 120 && ht == 40 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Size() never reflected the resize")
}
