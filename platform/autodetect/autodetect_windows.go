//go:build windows

package autodetect

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/phoenix-tui/termcore/platform"
	"github.com/phoenix-tui/termcore/platform/ansi"
	winbackend "github.com/phoenix-tui/termcore/platform/windows"
)

// enableVirtualTerminalProcessing tries to flip ENABLE_VIRTUAL_TERMINAL_PROCESSING
// on stdout, per §4.1's "additionally attempt to enable the VT-processing mode
// bit on stdout". Windows 10+ consoles support this; older consoles and
// redirected handles return an error.
func enableVirtualTerminalProcessing() bool {
	handle := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	return windows.SetConsoleMode(handle, mode) == nil
}

// New implements §4.1's Windows selection algorithm: MSYSTEM always forces
// ANSI (MinTTY/MSYS has no Console API handle to drive); otherwise probe the
// VT-processing mode bit and pick ANSI when it's available or when TERM
// names an ANSI-capable terminal (platform.TermSaysANSI), falling back to
// the native Console API backend when neither holds — mirroring the
// try-Console-API-first / auto-fallback-to-ANSI structure of the teacher's
// newWindowsTerminal, inverted because here ANSI is the preferred path when
// available (it lets one code path serve both platforms).
func New() (platform.Backend, error) {
	if platform.MSystemForcesANSI() {
		return ansi.New()
	}
	if enableVirtualTerminalProcessing() || platform.TermSaysANSI() {
		return ansi.New()
	}
	return winbackend.New()
}
