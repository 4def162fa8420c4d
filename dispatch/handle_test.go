package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/key"
)

func TestGetchSkipsNonCharEvents(t *testing.T) {
	d, _, reader := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	reader.push(key.Keyboard(key.Simple(key.KeyUp)))
	reader.push(key.Mouse(key.MouseEvent{}))
	reader.push(key.Keyboard(key.Char('q')))

	resultCh := make(chan rune, 1)
	go func() { resultCh <- h.Getch() }()

	select {
	case r := <-resultCh:
		assert.Equal(t, 'q', r)
	case <-time.After(time.Second):
		t.Fatal("Getch did not return within a second")
	}
}

func TestGetchUnblocksOnClose(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	h := d.Listen()

	doneCh := make(chan rune, 1)
	go func() { doneCh <- h.Getch() }()

	time.Sleep(20 * time.Millisecond)
	h.Close()

	select {
	case r := <-doneCh:
		assert.Zero(t, r)
	case <-time.After(time.Second):
		t.Fatal("Getch did not unblock after Close")
	}
}

func TestPollLatestAsyncDiscardsBacklog(t *testing.T) {
	d, _, reader := newTestDispatcher(t)
	h := d.Listen()
	defer h.Close()

	reader.push(key.Keyboard(key.Char('a')))
	reader.push(key.Keyboard(key.Char('b')))
	reader.push(key.Keyboard(key.Char('c')))

	time.Sleep(30 * time.Millisecond)

	ev, ok := h.PollLatestAsync()
	require.True(t, ok, "PollLatestAsync returned no event")
	assert.Equal(t, 'c', ev.Keyboard.Rune)

	_, ok = h.PollAsync()
	assert.False(t, ok, "queue not drained after PollLatestAsync")
}
