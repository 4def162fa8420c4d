// Package color defines the Color, Effect and Style value types shared by
// every platform.Backend, plus the pure functions that turn them into either
// ANSI SGR parameters or Windows Console API text attributes. Per §4.1.2 and
// the original Rust source's src/output/windows/style.rs, both backends must
// agree on the same semantic color set even though their wire formats differ.
package color

// Kind identifies which Color variant is set.
type Kind int

// Color kinds.
const (
	KindReset Kind = iota
	KindNamed
	KindRgb
	KindAnsi
)

// Named is one of the 16 portable named colors.
type Named int

// The 16 named colors, in the order the Windows attribute table in §4.1.2
// enumerates them.
const (
	Black Named = iota
	DarkGrey
	Red
	DarkRed
	Green
	DarkGreen
	Yellow
	DarkYellow
	Blue
	DarkBlue
	Magenta
	DarkMagenta
	Cyan
	DarkCyan
	White
	Grey
)

// Color is a sum type over {Reset, 16 named colors, Rgb(r,g,b), Ansi(u8)}.
// Zero value is Reset.
type Color struct {
	Kind  Kind
	Named Named
	R, G, B uint8
	Ansi  uint8
}

// Reset represents "restore the terminal's default color for this channel".
func Reset() Color { return Color{Kind: KindReset} }

// NewNamed wraps one of the 16 portable named colors.
func NewNamed(n Named) Color { return Color{Kind: KindNamed, Named: n} }

// Rgb constructs a 24-bit true color.
func Rgb(r, g, b uint8) Color { return Color{Kind: KindRgb, R: r, G: g, B: b} }

// Ansi constructs an indexed (256-color palette) color.
func Ansi(code uint8) Color { return Color{Kind: KindAnsi, Ansi: code} }

// IsReset reports whether c requests the terminal-default color.
func (c Color) IsReset() bool { return c.Kind == KindReset }

// Effect is a bitmask over text decorations; bits combine with OR.
type Effect uint32

// Effect bits, per §3.
const (
	FxReset     Effect = 0
	FxBold      Effect = 1 << 0
	FxDim       Effect = 1 << 1
	FxUnderline Effect = 1 << 2
	FxReverse   Effect = 1 << 3
	FxHide      Effect = 1 << 4
)

// Has reports whether bit is set in fx.
func (fx Effect) Has(bit Effect) bool { return fx&bit != 0 }

// Style bundles the three independently-settable style channels. The zero
// value is "no explicit style set" (Fg/Bg both Reset, Fx 0).
type Style struct {
	Fg Color
	Bg Color
	Fx Effect
}

// NewStyle returns the default (unset) style.
func NewStyle() Style { return Style{Fg: Reset(), Bg: Reset(), Fx: FxReset} }

// Equal reports whether two styles are identical. screen.Cache.Redraw uses
// this to batch contiguous same-style cells into one set-style + write run.
func (s Style) Equal(o Style) bool {
	return s.Fg == o.Fg && s.Bg == o.Bg && s.Fx == o.Fx
}
