// Package dispatch implements §4.4's single-owner-thread Dispatcher: one
// goroutine is the only caller ever allowed to touch the active
// platform.Backend or any screen.Metadata, and every other goroutine talks
// to it exclusively through action.Action values and key.InputEvent
// broadcasts. Grounded on tea/internal/application/program/program.go's
// event-loop shape (buffered channels, a mutex-guarded lifecycle, and a
// context-canceled input-reader goroutine), generalized from Program's
// single Elm-architecture consumer to §4.4's N-subscriber broadcast model.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/key"
	"github.com/phoenix-tui/termcore/platform"
	"github.com/phoenix-tui/termcore/screen"
)

// subscriberQueueSize bounds each subscriber's event queue. Once full, the
// oldest queued event is dropped to make room for the newest one
// (latest-wins, per §4.4's input task description).
const subscriberQueueSize = 64

// cmdQueueSize bounds the MPSC command queue. Unlike subscriber queues this
// one applies backpressure: Signal blocks briefly only if the event loop has
// fallen far behind, never drops an Action.
const cmdQueueSize = 256

// cursorPosTimeout bounds how long a CursorPos query waits for its result,
// on both sides of the round trip: the caller may be waiting on an Action
// the Lock semantics silently dropped (§4.4), and the event loop itself may
// be waiting on a DSR(6n) reply ("\x1b[row;colR") a non-terminal stdin or a
// terminal that doesn't support DSR will never send (§4.1.1). Not in the
// spec; chosen so neither side can hang forever on a query that will never
// complete. A var, not a const, so tests can shorten it.
var cursorPosTimeout = 2 * time.Second

// eventReader is the narrow interface both input/unix.Reader and
// input/windows.Reader satisfy, letting the dispatcher stay platform-neutral
// and leaving backend selection to reader_unix.go/reader_windows.go.
type eventReader interface {
	ReadEvent() (key.InputEvent, error)
}

type cmdEnvelope struct {
	act  action.Action
	from *Handle

	// reply carries a CursorPos result back out of apply; nil for every
	// other Action kind.
	reply chan cursorPosResult
}

// cursorPosResult is the reply payload for a KindCursorPos Action.
type cursorPosResult struct {
	col, row int
	err      error
}

type subscriber struct {
	ch        chan key.InputEvent
	closeOnce sync.Once
}

func newSubscriber() *subscriber {
	return &subscriber{ch: make(chan key.InputEvent, subscriberQueueSize)}
}

// push delivers ev to the subscriber, dropping the oldest queued event if
// the queue is full (§4.4: "bounded queue per subscriber; overflow drops
// oldest").
func (s *subscriber) push(ev key.InputEvent) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Dispatcher owns the platform backend and every logical screen. All of its
// unexported state is touched only by the event-loop goroutine started in
// New; everything else communicates through channels.
type Dispatcher struct {
	backend platform.Backend
	isANSI  bool

	screens []*screen.Metadata
	active  int

	cmdCh chan cmdEnvelope

	subsMu sync.Mutex
	subs   map[*subscriber]struct{}

	lockMu   sync.Mutex
	lockedBy *Handle

	stateMu        sync.Mutex
	curCol, curRow int
	curW, curH     int

	reader       eventReader
	stopResize   func()
	cancelInput  context.CancelFunc
	inputDone    chan struct{}
	loopDone     chan struct{}
	shutdownOnce sync.Once

	// cursorReportCh receives a parsed DSR(6n) reply from inputTask, one at
	// a time (buffered 1) instead of being fanned out to subscribers: it is
	// dispatch's own reply to a CursorPos query, not user-facing input.
	cursorReportCh chan key.InputEvent
}

// New creates a Dispatcher around backend, starting the input-reader and
// event-loop goroutines described in §4.4. backend should not yet be in raw
// mode; New does not change terminal modes itself (that happens through
// action.EnterRaw(), same as every other Action).
func New(backend platform.Backend) (*Dispatcher, error) {
	w, h, err := backend.Size()
	if err != nil {
		w, h = 80, 24
	}

	d := &Dispatcher{
		backend:        backend,
		isANSI:         backend.IsANSI(),
		screens:        []*screen.Metadata{screen.NewMetadata(w, h)},
		cmdCh:          make(chan cmdEnvelope, cmdQueueSize),
		subs:           make(map[*subscriber]struct{}),
		curW:           w,
		curH:           h,
		inputDone:      make(chan struct{}),
		loopDone:       make(chan struct{}),
		cursorReportCh: make(chan key.InputEvent, 1),
	}

	reader, stopResize, err := newPlatformReader(d)
	if err != nil {
		return nil, fmt.Errorf("dispatch: creating input reader: %w", err)
	}
	d.reader = reader
	d.stopResize = stopResize

	d.start()
	return d, nil
}

// newForTest builds a Dispatcher around an arbitrary eventReader instead of
// the platform-selected one, so package tests can drive input deterministically
// without touching a real stdin or console handle.
func newForTest(backend platform.Backend, reader eventReader) (*Dispatcher, error) {
	w, h, err := backend.Size()
	if err != nil {
		w, h = 80, 24
	}

	d := &Dispatcher{
		backend:        backend,
		isANSI:         backend.IsANSI(),
		screens:        []*screen.Metadata{screen.NewMetadata(w, h)},
		cmdCh:          make(chan cmdEnvelope, cmdQueueSize),
		subs:           make(map[*subscriber]struct{}),
		curW:           w,
		curH:           h,
		inputDone:      make(chan struct{}),
		loopDone:       make(chan struct{}),
		reader:         reader,
		stopResize:     func() {},
		cursorReportCh: make(chan key.InputEvent, 1),
	}
	d.start()
	return d, nil
}

func (d *Dispatcher) start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancelInput = cancel

	go d.inputTask(ctx)
	go d.eventLoop()
}

// fanOut broadcasts ev to every live subscriber. Safe to call from any
// goroutine (the resize watcher calls it directly, alongside inputTask).
func (d *Dispatcher) fanOut(ev key.InputEvent) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for s := range d.subs {
		s.push(ev)
	}
}

func (d *Dispatcher) inputTask(ctx context.Context) {
	defer close(d.inputDone)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		ev, err := d.reader.ReadEvent()
		if err != nil {
			d.fanOut(key.Error(err))
			return
		}
		if ev.Kind == key.EventCursorReport {
			// Dispatch's own DSR(6n) reply, not user-facing input: deliver
			// it to whatever CursorPos call is waiting, or drop it if none
			// is (a stray reply to a query that already timed out).
			select {
			case d.cursorReportCh <- ev:
			default:
			}
			continue
		}
		d.fanOut(ev)
	}
}

func (d *Dispatcher) eventLoop() {
	defer close(d.loopDone)
	for env := range d.cmdCh {
		d.lockMu.Lock()
		locked := d.lockedBy
		d.lockMu.Unlock()
		if locked != nil && locked != env.from {
			continue // dropped per §4.4 Lock semantics, not queued further
		}
		d.apply(env)
	}
}

// Listen creates a new subscriber EventHandle. spawn is an identical alias
// per §4.4.
func (d *Dispatcher) Listen() *Handle {
	sub := newSubscriber()
	d.subsMu.Lock()
	d.subs[sub] = struct{}{}
	d.subsMu.Unlock()
	return &Handle{d: d, sub: sub}
}

// Spawn is an alias for Listen.
func (d *Dispatcher) Spawn() *Handle { return d.Listen() }

func (d *Dispatcher) removeSubscriber(sub *subscriber) {
	d.subsMu.Lock()
	delete(d.subs, sub)
	d.subsMu.Unlock()
}

func (d *Dispatcher) enqueue(h *Handle, a action.Action) {
	d.cmdCh <- cmdEnvelope{act: a, from: h}
}

func (d *Dispatcher) snapshotCoord() (int, int) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.curCol, d.curRow
}

func (d *Dispatcher) snapshotSize() (int, int) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.curW, d.curH
}

func (d *Dispatcher) refreshState() {
	cache := d.screens[d.active].Cache
	col, row := cache.Cursor()
	w, h := cache.Size()
	d.stateMu.Lock()
	d.curCol, d.curRow, d.curW, d.curH = col, row, w, h
	d.stateMu.Unlock()
}

// cursorPos performs §4.1.1's cursor-position query as a synchronous
// round trip through the same command stream as every other Action, so a
// handle that doesn't hold the lock sees its query dropped exactly like any
// other Action from it (§4.4). Bounded by cursorPosTimeout so a query that
// was dropped, or whose apply() never receives a DSR reply, returns an
// error instead of blocking the caller forever.
func (d *Dispatcher) cursorPos(h *Handle) (int, int, error) {
	reply := make(chan cursorPosResult, 1)
	d.cmdCh <- cmdEnvelope{act: action.CursorPos(), from: h, reply: reply}
	select {
	case res := <-reply:
		return res.col, res.row, res.err
	case <-time.After(cursorPosTimeout):
		return 0, 0, fmt.Errorf("dispatch: cursor position query timed out (locked by another handle, or no reply received)")
	}
}

// Shutdown implements §4.4's Drop behavior: stop the input task, drain the
// event loop, return to screen 0 (disabling any alt screen buffer along the
// way, same as doSwitchTo(0)), restore cooked mode, disable mouse, and show
// the cursor.
func (d *Dispatcher) Shutdown() error {
	var err error
	d.shutdownOnce.Do(func() {
		d.cancelInput()
		if d.stopResize != nil {
			d.stopResize()
		}
		close(d.cmdCh)
		<-d.loopDone

		active := d.screens[d.active]
		d.doSwitchTo(0)

		if active.IsMouse {
			_ = d.backend.DisableMouse()
		}
		if active.IsRaw {
			err = d.backend.Cook()
		}
		_ = d.backend.ShowCursor()
		_ = d.backend.Flush()
	})
	return err
}
