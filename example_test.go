package termcore_test

import (
	"github.com/phoenix-tui/termcore"
)

// This example is compile-checked only (no "Output:" comment): Init talks to
// the real terminal, which isn't available in a test sandbox.
func Example() {
	term, err := termcore.Init()
	if err != nil {
		return
	}
	defer term.Close()

	term.HideCursor()
	term.Goto(10, 5)
	term.Printf("Hello, termcore!")
	term.ShowCursor()
}
