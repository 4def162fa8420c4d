package color

import "testing"

func TestSGRForeground(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{"reset", Reset(), "39"},
		{"named red", NewNamed(Red), "38;5;9"},
		{"rgb", Rgb(10, 20, 30), "38;2;10;20;30"},
		{"ansi", Ansi(200), "38;5;200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.SGRForeground(); got != tt.want {
				t.Errorf("SGRForeground() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSGREffectsCombine(t *testing.T) {
	fx := FxBold | FxUnderline
	codes := fx.SGREffects()
	if len(codes) != 2 || codes[0] != 1 || codes[1] != 4 {
		t.Errorf("SGREffects() = %v, want [1 4]", codes)
	}
}

func TestStyleEqualIdempotent(t *testing.T) {
	a := Style{Fg: NewNamed(Red), Bg: Reset(), Fx: FxBold}
	b := Style{Fg: NewNamed(Red), Bg: Reset(), Fx: FxBold}
	if !a.Equal(b) {
		t.Error("identical styles should be Equal")
	}
	c := Style{Fg: NewNamed(Blue), Bg: Reset(), Fx: FxBold}
	if a.Equal(c) {
		t.Error("differing fg should not be Equal")
	}
}

func TestWindowsAttrPreservesOtherChannel(t *testing.T) {
	// Start with background Blue set (bit 0x10), then apply foreground Red.
	current := uint16(attrBgBlue)
	got := NewNamed(Red).WindowsForegroundAttr(current)
	want := uint16(attrFgIntensity | attrFgRed | attrBgBlue)
	if got != want {
		t.Errorf("WindowsForegroundAttr() = %#x, want %#x", got, want)
	}
}

func TestWindowsAttrRgbLeavesChannelUnchanged(t *testing.T) {
	current := uint16(attrFgRed)
	got := Rgb(1, 2, 3).WindowsForegroundAttr(current)
	if got != current {
		t.Errorf("Rgb should leave attribute unchanged: got %#x, want %#x", got, current)
	}
}
