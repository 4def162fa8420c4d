package dispatch

import (
	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/key"
)

// Handle is a subscriber's view of the Dispatcher (§4.4 EventHandle): it can
// push Actions into the command stream and pull InputEvents off its own
// bounded queue. A Handle never touches the platform backend directly.
type Handle struct {
	d   *Dispatcher
	sub *subscriber
}

// Signal enqueues an Action and returns immediately. Actions from a single
// Handle are applied in the order Signal was called (§4.4 ordering
// guarantee (a)).
func (h *Handle) Signal(a action.Action) {
	h.d.enqueue(h, a)
}

// PollAsync returns the oldest queued event for this handle, or (zero,
// false) if none is queued. Never blocks.
func (h *Handle) PollAsync() (key.InputEvent, bool) {
	select {
	case ev := <-h.sub.ch:
		return ev, true
	default:
		return key.InputEvent{}, false
	}
}

// PollLatestAsync drains this handle's queue and returns only the most
// recent event, discarding any stale backlog. Never blocks.
func (h *Handle) PollLatestAsync() (key.InputEvent, bool) {
	var latest key.InputEvent
	ok := false
	for {
		select {
		case ev := <-h.sub.ch:
			latest, ok = ev, true
		default:
			return latest, ok
		}
	}
}

// Getch blocks until a character keystroke arrives on this handle's queue
// and returns its codepoint, discarding every other event kind (including
// non-Char keyboard events) along the way.
func (h *Handle) Getch() rune {
	for ev := range h.sub.ch {
		if ev.Kind == key.EventKeyboard && ev.Keyboard.Kind == key.KeyChar {
			return ev.Keyboard.Rune
		}
	}
	return 0
}

// Coord returns the active screen's current cached (col, row).
func (h *Handle) Coord() (int, int) { return h.d.snapshotCoord() }

// Size returns the active screen's current cached (width, height).
func (h *Handle) Size() (int, int) { return h.d.snapshotSize() }

// CursorPos performs a synchronous read-back of the terminal's actual
// cursor position (§4.1.1), in contrast to Coord's cached snapshot. On an
// ANSI backend this is a DSR(6n) round trip through the input reader; on
// Windows it's an instant console-info read. It goes through the same
// Lock-aware command stream as every other Action, so it is silently
// dropped (and eventually times out) if another handle holds the lock.
func (h *Handle) CursorPos() (int, int, error) { return h.d.cursorPos(h) }

// Lock requests exclusive ownership of the command stream: until this
// handle calls Unlock, Actions signaled by every other handle are dropped
// rather than applied.
func (h *Handle) Lock() { h.Signal(action.Lock()) }

// Unlock releases a lock taken with Lock.
func (h *Handle) Unlock() { h.Signal(action.Unlock()) }

// Close unsubscribes this handle, unblocking any goroutine parked in Getch.
// Pending events in its queue are discarded.
func (h *Handle) Close() {
	h.d.removeSubscriber(h.sub)
	h.sub.closeOnce.Do(func() { close(h.sub.ch) })
}
