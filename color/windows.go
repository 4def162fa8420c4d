package color

// Windows Console API attribute bits (mirrors wincon.h FOREGROUND_*/
// BACKGROUND_* constants; kept here rather than imported from
// golang.org/x/sys/windows so this file has no build tag and stays testable
// on every platform — the bit values are a stable part of the public
// Win32 console ABI, not Windows-specific Go bindings).
const (
	attrFgBlue      = 0x0001
	attrFgGreen     = 0x0002
	attrFgRed       = 0x0004
	attrFgIntensity = 0x0008
	attrBgBlue      = 0x0010
	attrBgGreen     = 0x0020
	attrBgRed       = 0x0040
	attrBgIntensity = 0x0080
)

// namedAttr is the indexed->attribute table from §4.1.2, grounded on
// _examples/original_source/src/output/windows/style.rs fg_color_val /
// bg_color_val. Foreground and background share the same bit shape, just
// shifted by 4 (background bits start at 0x10 instead of 0x01).
var namedAttr = [16]uint16{
	Black:       0,
	DarkGrey:    attrFgIntensity,
	Red:         attrFgIntensity | attrFgRed,
	DarkRed:     attrFgRed,
	Green:       attrFgIntensity | attrFgGreen,
	DarkGreen:   attrFgGreen,
	Yellow:      attrFgIntensity | attrFgRed | attrFgGreen,
	DarkYellow:  attrFgRed | attrFgGreen,
	Blue:        attrFgIntensity | attrFgBlue,
	DarkBlue:    attrFgBlue,
	Magenta:     attrFgIntensity | attrFgRed | attrFgBlue,
	DarkMagenta: attrFgRed | attrFgBlue,
	Cyan:        attrFgIntensity | attrFgGreen | attrFgBlue,
	DarkCyan:    attrFgGreen | attrFgBlue,
	White:       attrFgRed | attrFgGreen | attrFgBlue,
	Grey:        attrFgIntensity | attrFgRed | attrFgGreen | attrFgBlue,
}

// WindowsForegroundAttr returns the foreground nibble (bits 0x01-0x08) for c
// applied on top of current, preserving current's background nibble.
//
// Rgb and Ansi colors have no Windows Console API equivalent (§3: "on
// legacy Windows, Rgb/Ansi degrade to a sentinel meaning leave channel
// unchanged") so they return current unmodified; Reset also leaves the
// channel untouched, matching the Rust source's u16::max_value() sentinel
// which tells the caller to fall back to the terminal's saved default
// attribute instead of clearing it to black.
func (c Color) WindowsForegroundAttr(current uint16) uint16 {
	if c.Kind != KindNamed {
		return current
	}
	const fgMask = attrFgBlue | attrFgGreen | attrFgRed | attrFgIntensity
	return (current &^ fgMask) | namedAttr[c.Named]
}

// WindowsBackgroundAttr returns the background nibble (bits 0x10-0x80) for c
// applied on top of current, preserving current's foreground nibble. See
// WindowsForegroundAttr for the Rgb/Ansi/Reset degrade-to-unchanged rule.
func (c Color) WindowsBackgroundAttr(current uint16) uint16 {
	if c.Kind != KindNamed {
		return current
	}
	const bgMask = attrBgBlue | attrBgGreen | attrBgRed | attrBgIntensity
	return (current &^ bgMask) | (namedAttr[c.Named] << 4)
}
