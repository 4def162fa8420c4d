package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/key"
	"github.com/phoenix-tui/termcore/testutil"
)

// fakeReader is an eventReader a test can feed events into directly, so
// dispatcher tests never touch a real stdin or console handle.
type fakeReader struct {
	events chan key.InputEvent
	closed chan struct{}
}

func newFakeReader() *fakeReader {
	return &fakeReader{events: make(chan key.InputEvent, 16), closed: make(chan struct{})}
}

func (f *fakeReader) ReadEvent() (key.InputEvent, error) {
	select {
	case ev := <-f.events:
		return ev, nil
	case <-f.closed:
		return key.InputEvent{}, errors.New("fakeReader closed")
	}
}

func (f *fakeReader) push(ev key.InputEvent) { f.events <- ev }
func (f *fakeReader) stop()                  { close(f.closed) }

func newTestDispatcher(t *testing.T) (*Dispatcher, *testutil.MockBackend, *fakeReader) {
	t.Helper()
	backend := testutil.NewMockBackend(80, 24, true)
	reader := newFakeReader()
	d, err := newForTest(backend, reader)
	require.NoError(t, err)
	t.Cleanup(func() {
		reader.stop()
		_ = d.Shutdown()
	})
	return d, backend, reader
}

// waitForCall polls until backend has recorded at least n calls starting
// with method, or fails the test after a short timeout. The event loop
// applies Actions asynchronously, so tests need this instead of asserting
// immediately after Signal.
func waitForCall(t *testing.T, backend *testutil.MockBackend, method string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if backend.CallCount(method) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d calls to %s, got %d", n, method, backend.CallCount(method))
}

func TestHandleSignalOrdering(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.Goto(1, 1))
	h.Signal(action.Goto(2, 2))
	h.Signal(action.Goto(3, 3))

	waitForCall(t, backend, "Goto", 3)

	var gotos []string
	for _, c := range backend.Calls {
		if len(c) >= 4 && c[:4] == "Goto" {
			gotos = append(gotos, c)
		}
	}
	assert.Equal(t, []string{"Goto(1, 1)", "Goto(2, 2)", "Goto(3, 3)"}, gotos)
}

func TestBroadcastFanOut(t *testing.T) {
	d, _, reader := newTestDispatcher(t)
	h1 := d.Listen()
	h2 := d.Listen()
	defer h1.Close()
	defer h2.Close()

	reader.push(key.Keyboard(key.Char('x')))

	ev1, ok := pollWithTimeout(t, h1)
	require.True(t, ok, "h1 did not receive broadcast event")
	assert.Equal(t, 'x', ev1.Keyboard.Rune)

	ev2, ok := pollWithTimeout(t, h2)
	require.True(t, ok, "h2 did not receive broadcast event")
	assert.Equal(t, 'x', ev2.Keyboard.Rune)
}

func pollWithTimeout(t *testing.T, h *Handle) (key.InputEvent, bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := h.PollAsync(); ok {
			return ev, true
		}
		time.Sleep(time.Millisecond)
	}
	return key.InputEvent{}, false
}

func TestSubscriberQueueDropsOldest(t *testing.T) {
	d, _, reader := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	for i := 0; i < subscriberQueueSize+10; i++ {
		reader.push(key.Keyboard(key.Char(rune('a' + i%26))))
	}

	time.Sleep(50 * time.Millisecond)

	var last key.InputEvent
	count := 0
	for {
		ev, ok := h.PollAsync()
		if !ok {
			break
		}
		last = ev
		count++
	}
	assert.LessOrEqual(t, count, subscriberQueueSize)
	wantRune := rune('a' + (subscriberQueueSize+9)%26)
	assert.Equal(t, wantRune, last.Keyboard.Rune)
}

func TestLockExcludesOtherHandles(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	owner := d.Listen()
	other := d.Listen()
	defer owner.Close()
	defer other.Close()

	owner.Lock()
	time.Sleep(20 * time.Millisecond) // let the Lock Action land before racing Signals from other

	other.Signal(action.EnterRaw())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, backend.CallCount("EnterRaw"), "other handle's Action applied while locked")

	owner.Signal(action.EnterRaw())
	waitForCall(t, backend, "EnterRaw", 1)

	owner.Unlock()
	time.Sleep(10 * time.Millisecond)
	other.Signal(action.Cook())
	waitForCall(t, backend, "Cook", 1)
}

func TestSwitchTogglesAltScreenOnce(t *testing.T) {
	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.Switch())
	waitForCall(t, backend, "EnableAltScreen", 1)

	h.Signal(action.Switch())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, backend.CallCount("EnableAltScreen"))

	h.Signal(action.SwitchTo(0))
	waitForCall(t, backend, "DisableAltScreen", 1)
}

func TestShutdownRestoresCookedMode(t *testing.T) {
	backend := testutil.NewMockBackend(80, 24, true)
	reader := newFakeReader()
	d, err := newForTest(backend, reader)
	require.NoError(t, err)
	h := d.Listen()

	h.Signal(action.EnterRaw())
	h.Signal(action.EnableMouse())
	waitForCall(t, backend, "EnableMouse", 1)

	reader.stop()
	require.NoError(t, d.Shutdown())
	h.Close()

	assert.Equal(t, 1, backend.CallCount("Cook"))
	assert.Equal(t, 1, backend.CallCount("DisableMouse"))
	assert.Equal(t, 1, backend.CallCount("ShowCursor"))

	assert.NoError(t, d.Shutdown(), "second Shutdown must be a no-op, not an error")
	assert.Equal(t, 1, backend.CallCount("Cook"), "second Shutdown re-applied Cook")
}

// TestShutdownLeavesAltScreen exercises Shutdown while an alt screen is
// active: it must disable the alt screen buffer and return to screen 0, not
// just restore cooked mode, per dispatcher.go's and termcore.Term.Close's
// doc comments.
func TestShutdownLeavesAltScreen(t *testing.T) {
	backend := testutil.NewMockBackend(80, 24, true)
	reader := newFakeReader()
	d, err := newForTest(backend, reader)
	require.NoError(t, err)
	h := d.Listen()

	h.Signal(action.Switch())
	waitForCall(t, backend, "EnableAltScreen", 1)
	h.Signal(action.EnterRaw())
	waitForCall(t, backend, "EnterRaw", 1)

	reader.stop()
	require.NoError(t, d.Shutdown())
	h.Close()

	assert.Equal(t, 1, backend.CallCount("DisableAltScreen"), "Shutdown did not leave the alt screen")
	assert.Equal(t, 1, backend.CallCount("Cook"))
	assert.Equal(t, 0, d.active, "Shutdown did not return to screen 0")
}

func TestCursorPosRoundTrip(t *testing.T) {
	d, backend, reader := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	done := make(chan struct{})
	var col, row int
	var cerr error
	go func() {
		col, row, cerr = h.CursorPos()
		close(done)
	}()

	waitForCall(t, backend, "RequestCursorPos", 1)
	reader.push(key.CursorReport(12, 7))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CursorPos did not return after the reply was pushed")
	}
	require.NoError(t, cerr)
	assert.Equal(t, 12, col)
	assert.Equal(t, 7, row)
}

func TestCursorPosTimesOutWithoutReply(t *testing.T) {
	old := cursorPosTimeout
	cursorPosTimeout = 20 * time.Millisecond
	defer func() { cursorPosTimeout = old }()

	d, backend, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	_, _, err := h.CursorPos()
	assert.Error(t, err)
	assert.Equal(t, 1, backend.CallCount("RequestCursorPos"))
}

func TestCoordAndSizeSnapshot(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	h.Signal(action.Goto(5, 7))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if col, row := h.Coord(); col == 5 && row == 7 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	col, row := h.Coord()
	assert.Equal(t, 5, col)
	assert.Equal(t, 7, row)

	w, ht := h.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, ht)
}
