//go:build !windows

package unix

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/phoenix-tui/termcore/key"
)

// WatchResize invokes emit with a WinResize InputEvent every time the
// process receives SIGWINCH, re-querying the current size via sizeFn. Per
// §4.2.1, SIGWINCH is "delivered via a signal-hook source multiplexed with
// the tty FD"; Go's os/signal channel is that hook — a self-pipe under the
// hood — so the goroutine here and the tty byte reader can both feed the
// dispatcher independently without sharing state.
//
// The returned stop function unregisters the signal handler and terminates
// the goroutine; callers must invoke it during shutdown.
func WatchResize(emit func(key.InputEvent), sizeFn func() (int, int, error)) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				w, h, err := sizeFn()
				if err != nil {
					continue
				}
				emit(key.WinResize(w, h))
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
