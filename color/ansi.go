package color

import "fmt"

// namedAnsi256 maps each portable Named color to its ANSI 256-color-palette
// index, so the ANSI backend can speak the extended-color SGR family
// (`38;5;n` / `48;5;n`) exactly once instead of branching over named colors
// separately from Ansi(). Matches the conventional xterm 16-color layout.
var namedAnsi256 = [16]uint8{
	Black:       0,
	DarkRed:     1,
	DarkGreen:   2,
	DarkYellow:  3,
	DarkBlue:    4,
	DarkMagenta: 5,
	DarkCyan:    6,
	Grey:        7,
	DarkGrey:    8,
	Red:         9,
	Green:       10,
	Yellow:      11,
	Blue:        12,
	Magenta:     13,
	Cyan:        14,
	White:       15,
}

// SGRForeground returns the SGR parameter sequence (without the leading
// ESC[ or trailing m) that sets c as the foreground color, per §4.1.1.
func (c Color) SGRForeground() string { return c.sgr(38, 39) }

// SGRBackground returns the SGR parameter sequence that sets c as the
// background color, per §4.1.1.
func (c Color) SGRBackground() string { return c.sgr(48, 49) }

func (c Color) sgr(extended, resetCode int) string {
	switch c.Kind {
	case KindReset:
		return fmt.Sprintf("%d", resetCode)
	case KindRgb:
		return fmt.Sprintf("%d;2;%d;%d;%d", extended, c.R, c.G, c.B)
	case KindAnsi:
		return fmt.Sprintf("%d;5;%d", extended, c.Ansi)
	case KindNamed:
		return fmt.Sprintf("%d;5;%d", extended, namedAnsi256[c.Named])
	default:
		return fmt.Sprintf("%d", resetCode)
	}
}

// sgrEffectCodes maps each Effect bit to its "set" SGR code, per §4.1.1 and
// §6 (SGR 1/2/4/7/8 for bold/dim/underline/reverse/hide).
var sgrEffectCodes = []struct {
	bit  Effect
	code int
}{
	{FxBold, 1},
	{FxDim, 2},
	{FxUnderline, 4},
	{FxReverse, 7},
	{FxHide, 8},
}

// SGREffects returns the list of SGR codes needed to turn on every bit set
// in fx, one code per bit, in the order §4.1.1 lists them.
func (fx Effect) SGREffects() []int {
	codes := make([]int, 0, len(sgrEffectCodes))
	for _, e := range sgrEffectCodes {
		if fx.Has(e.bit) {
			codes = append(codes, e.code)
		}
	}
	return codes
}
