package dispatch

import (
	"fmt"
	"time"

	"github.com/phoenix-tui/termcore/action"
	"github.com/phoenix-tui/termcore/platform"
	"github.com/phoenix-tui/termcore/screen"
)

// apply performs one Action against the active screen's Metadata and the
// platform backend, then refreshes the cached (coord, size) snapshot
// handles read through Coord/Size. It is only ever called from the
// event-loop goroutine started in New.
func (d *Dispatcher) apply(env cmdEnvelope) {
	a := env.act
	cache := d.screens[d.active].Cache

	switch a.Kind {
	case action.KindGoto:
		cache.SyncPos(a.X, a.Y)
		col, row := cache.Cursor()
		_ = d.backend.Goto(col, row)
	case action.KindUp:
		cache.SyncUp(a.N)
		_ = d.backend.Up(a.N)
	case action.KindDown:
		cache.SyncDown(a.N)
		_ = d.backend.Down(a.N)
	case action.KindLeft:
		cache.SyncLeft(a.N)
		_ = d.backend.Left(a.N)
	case action.KindRight:
		cache.SyncRight(a.N)
		_ = d.backend.Right(a.N)
	case action.KindSavePos:
		cache.SavePos()
		_ = d.backend.SavePosition()
	case action.KindLoadPos:
		cache.LoadPos()
		_ = d.backend.LoadPosition()

	case action.KindShowCursor:
		d.screens[d.active].IsCursorVisible = true
		_ = d.backend.ShowCursor()
	case action.KindHideCursor:
		d.screens[d.active].IsCursorVisible = false
		_ = d.backend.HideCursor()

	case action.KindSetFg:
		style := cache.ActiveStyle()
		cache.SyncStyles(a.Fg, style.Bg, style.Fx)
		_ = d.backend.SetFg(a.Fg)
	case action.KindSetBg:
		style := cache.ActiveStyle()
		cache.SyncStyles(style.Fg, a.Bg, style.Fx)
		_ = d.backend.SetBg(a.Bg)
	case action.KindSetFx:
		style := cache.ActiveStyle()
		cache.SyncStyles(style.Fg, style.Bg, a.Fx)
		_ = d.backend.SetFx(a.Fx)
	case action.KindSetStyles:
		if d.styleChanged(cache, a) {
			cache.SyncStyles(a.Fg, a.Bg, a.Fx)
			_ = d.backend.SetStyles(a.Fg, a.Bg, a.Fx)
		}
	case action.KindResetStyles:
		cache.ResetStyle()
		_ = d.backend.ResetStyles()

	case action.KindPrintf:
		d.write(cache, a.Text)
		_ = d.backend.Flush()
	case action.KindPrints:
		d.write(cache, a.Text)
	case action.KindFlush:
		_ = d.backend.Flush()

	case action.KindEnableAlt:
		_ = d.backend.EnableAltScreen()
	case action.KindDisableAlt:
		_ = d.backend.DisableAltScreen()
	case action.KindSwitch:
		d.doSwitch()
	case action.KindSwitchTo:
		d.doSwitchTo(a.Index)
	case action.KindResize:
		cache.SyncSize(a.X, a.Y)
		_ = d.backend.Resize(a.X, a.Y)
	case action.KindClear:
		cache.Clear(a.Clear)
		_ = d.backend.Clear(platform.ClearScope(a.Clear))

	case action.KindRaw:
		d.screens[d.active].IsRaw = true
		_ = d.backend.EnterRaw()
	case action.KindCook:
		d.screens[d.active].IsRaw = false
		_ = d.backend.Cook()
	case action.KindEnableMouse:
		d.screens[d.active].IsMouse = true
		_ = d.backend.EnableMouse()
	case action.KindDisableMouse:
		d.screens[d.active].IsMouse = false
		_ = d.backend.DisableMouse()

	case action.KindLock:
		d.lockMu.Lock()
		d.lockedBy = env.from
		d.lockMu.Unlock()
	case action.KindUnlock:
		d.lockMu.Lock()
		if d.lockedBy == env.from {
			d.lockedBy = nil
		}
		d.lockMu.Unlock()

	case action.KindCursorPos:
		d.doCursorPos(env.reply)
	}

	d.refreshState()
}

// doCursorPos implements §4.1.1's cursor-position query. On the ANSI
// backend it writes the DSR(6n) request and then waits for inputTask to
// hand back the parsed reply on d.cursorReportCh (bounded by
// cursorPosTimeout, so a terminal that never replies can't stall the event
// loop itself). On the Windows backend position is read back directly with
// no round trip, per platform.Backend.CursorPos's doc.
func (d *Dispatcher) doCursorPos(reply chan cursorPosResult) {
	if !d.isANSI {
		col, row, err := d.backend.CursorPos()
		reply <- cursorPosResult{col: col, row: row, err: err}
		return
	}

	if err := d.backend.RequestCursorPos(); err != nil {
		reply <- cursorPosResult{err: err}
		return
	}
	select {
	case ev := <-d.cursorReportCh:
		reply <- cursorPosResult{col: ev.CursorCol, row: ev.CursorRow}
	case <-time.After(cursorPosTimeout):
		reply <- cursorPosResult{err: fmt.Errorf("dispatch: no DSR(6n) cursor position reply received within %s", cursorPosTimeout)}
	}
}

func (d *Dispatcher) styleChanged(cache *screen.Cache, a action.Action) bool {
	cur := cache.ActiveStyle()
	return cur.Fg != a.Fg || cur.Bg != a.Bg || cur.Fx != a.Fx
}

// write splits text into grapheme clusters (screen.Segment) and feeds each
// one through the cache so the shadow buffer's cell widths and wrapping
// match what the terminal actually renders (§4.3 sync_content operates one
// cluster at a time), then writes the whole string to the backend in one
// call.
func (d *Dispatcher) write(cache *screen.Cache, text string) {
	for _, cl := range screen.Segment(text) {
		cache.SyncContent(cl.Glyph, cl.Width)
	}
	_ = d.backend.Write(text)
}

// doSwitch implements §4.4 Switch: push a new Metadata sized like the
// current one, make it active, enter the alt screen only the first time,
// and redraw (a freshly cleared cache redraws to nothing, matching "redraw
// cache (empty)").
func (d *Dispatcher) doSwitch() {
	w, h := d.screens[d.active].Cache.Size()
	wasBase := d.active == 0 && len(d.screens) == 1
	d.screens = append(d.screens, screen.NewMetadata(w, h))
	d.active = len(d.screens) - 1
	if wasBase && d.isANSI {
		_ = d.backend.EnableAltScreen()
	}
	_ = d.screens[d.active].Cache.Redraw(d.backend)
}

// doSwitchTo implements §4.4 SwitchTo: clamp, no-op if already active,
// otherwise activate and redraw. Returning to screen 0 from any alt screen
// disables the alt screen buffer.
func (d *Dispatcher) doSwitchTo(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(d.screens) {
		i = len(d.screens) - 1
	}
	if i == d.active {
		return
	}
	leavingAlt := d.active != 0 && i == 0
	d.active = i
	if leavingAlt && d.isANSI {
		_ = d.backend.DisableAltScreen()
	}
	_ = d.screens[d.active].Cache.Redraw(d.backend)
}
