//go:build windows

package dispatch

import (
	windowsinput "github.com/phoenix-tui/termcore/input/windows"
)

// newPlatformReader wires the Windows console-record reader. No separate
// resize watcher is needed: WINDOW_BUFFER_SIZE_EVENT records already arrive
// interleaved with key/mouse records through the same ReadConsoleInputW
// call, so windowsinput.Reader emits WinResize itself.
func newPlatformReader(d *Dispatcher) (eventReader, func(), error) {
	reader, err := windowsinput.NewStdinReader()
	if err != nil {
		return nil, nil, err
	}
	return reader, func() {}, nil
}
