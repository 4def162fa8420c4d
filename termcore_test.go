package termcore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/dispatch"
	"github.com/phoenix-tui/termcore/testutil"
)

// newTestTerm builds a Term around a recording MockBackend instead of
// Init's autodetected one, so façade tests never drive a real terminal
// backend. dispatch.New still opens its input reader on stdin or /dev/tty,
// so these tests need a controlling terminal to start.
func newTestTerm(t *testing.T) (*Term, *testutil.MockBackend) {
	t.Helper()
	backend := testutil.NewMockBackend(80, 24, true)
	d, err := dispatch.New(backend)
	require.NoError(t, err)
	term := &Term{d: d, h: d.Listen()}
	t.Cleanup(func() { _ = term.Close() })
	return term, backend
}

func waitForCall(t *testing.T, backend *testutil.MockBackend, method string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if backend.CallCount(method) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d calls to %s", n, method)
}

func TestTermConveniencesSignalThroughDefaultHandle(t *testing.T) {
	term, backend := newTestTerm(t)

	term.Goto(3, 4)
	waitForCall(t, backend, "Goto", 1)
	assert.Contains(t, backend.Calls, "Goto(3, 4)")

	term.Printf("hi")
	waitForCall(t, backend, "Flush", 1)
}

func TestTermListenReturnsIndependentHandle(t *testing.T) {
	term, _ := newTestTerm(t)

	h2 := term.Listen()
	defer h2.Close()

	h2.Signal(action.ClearScreen(action.ClearAll))
	col, row := term.Coord()
	assert.GreaterOrEqual(t, col, 0)
	assert.GreaterOrEqual(t, row, 0)
}

func TestTermCloseRestoresDefaults(t *testing.T) {
	backend := testutil.NewMockBackend(80, 24, true)
	d, err := dispatch.New(backend)
	require.NoError(t, err)
	term := &Term{d: d, h: d.Listen()}

	term.EnableMouse()
	waitForCall(t, backend, "EnableMouse", 1)

	require.NoError(t, term.Close())
	assert.Equal(t, 1, backend.CallCount("DisableMouse"))
	assert.Equal(t, 1, backend.CallCount("ShowCursor"))
}
