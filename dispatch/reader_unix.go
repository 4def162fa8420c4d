//go:build !windows

package dispatch

import (
	"fmt"
	"os"

	"golang.org/x/term"

	unixinput "github.com/phoenix-tui/termcore/input/unix"
)

// newPlatformReader wires the Unix byte-stream reader to the tty (stdin
// itself when it is a tty, or /dev/tty when stdin has been redirected, per
// ttyInput) and starts the SIGWINCH watcher feeding resize events straight
// into d.fanOut, alongside whatever the byte reader itself produces.
func newPlatformReader(d *Dispatcher) (eventReader, func(), error) {
	in, err := ttyInput()
	if err != nil {
		return nil, nil, err
	}
	reader := unixinput.NewReader(in)
	stop := unixinput.WatchResize(d.fanOut, d.backend.Size)
	return reader, stop, nil
}

// ttyInput returns stdin when it is itself a tty, or opens /dev/tty
// directly when stdin has been redirected (piped input, a file, etc.),
// grounded on original_source/src/parser/unix/input_file.rs's tty_fd:
// isatty(STDIN_FILENO) first, falling back to opening /dev/tty read-write.
// Both failing is the fatal startup condition spec line 180 describes.
func ttyInput() (*os.File, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin, nil
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("dispatch: stdin is not a tty and /dev/tty could not be opened: %w", err)
	}
	return tty, nil
}
