//go:build !windows

// Package autodetect implements platform.Detect's construction step: it is
// kept separate from package platform itself so platform can stay free of
// any import on its own ansi/windows implementations (which both need to
// import platform for the Backend/ClearScope types). The root termcore
// package imports autodetect, not platform/ansi or platform/windows,
// directly; dispatch only sees the platform.Backend it is handed.
package autodetect

import (
	"github.com/phoenix-tui/termcore/platform"
	"github.com/phoenix-tui/termcore/platform/ansi"
)

// New implements §4.1's selection algorithm for non-Windows platforms:
// unconditionally ANSI, matching the teacher's unix.NewANSI() being the
// unconditional Unix return in terminal/new.go.
func New() (platform.Backend, error) {
	return ansi.New()
}
