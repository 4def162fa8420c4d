package platform

import (
	"os"
	"strings"
)

// ansiTermNames are the TERM values that §4.1 recognizes as ANSI-capable,
// independent of platform. Matching is case-insensitive on the portion of
// TERM before the first '-' (so "xterm-256color" matches "xterm").
var ansiTermNames = map[string]bool{
	"xterm":   true,
	"rxvt":    true,
	"eterm":   true,
	"screen":  true,
	"tmux":    true,
	"vt100":   true,
	"vt102":   true,
	"vt220":   true,
	"vt320":   true,
	"ansi":    true,
	"scoansi": true,
	"cygwin":  true,
	"linux":   true,
	"konsole": true,
	"bvterm":  true,
}

// TermSaysANSI reports whether the TERM environment variable names one of
// §4.1's recognized ANSI-capable terminals. "dumb" never matches, even
// though it isn't in the exclusion list explicitly beyond being absent from
// ansiTermNames. Exported for platform/autodetect and for tests; Unix
// selection does not consult it (see autodetect.New's doc comment) but
// Windows selection does.
func TermSaysANSI() bool {
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	base := term
	if i := strings.IndexByte(term, '-'); i >= 0 {
		base = term[:i]
	}
	return ansiTermNames[base] || ansiTermNames[term]
}

// MSystemForcesANSI reports whether the MSYSTEM environment variable is set,
// which per §4.1 means MinTTY/MSYS: the native Windows Console backend
// cannot be used there even on Windows.
func MSystemForcesANSI() bool {
	return os.Getenv("MSYSTEM") != ""
}
