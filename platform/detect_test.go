package platform

import "testing"

func TestTermSaysANSI(t *testing.T) {
	tests := []struct {
		term string
		want bool
	}{
		{"xterm-256color", true},
		{"screen.xterm-256color", false}, // base before first '-' only
		{"tmux", true},
		{"rxvt-unicode", true},
		{"dumb", false},
		{"", false},
		{"konsole", true},
		{"unknown-term", false},
	}
	for _, tt := range tests {
		t.Setenv("TERM", tt.term)
		if got := TermSaysANSI(); got != tt.want {
			t.Errorf("TermSaysANSI() with TERM=%q = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestMSystemForcesANSI(t *testing.T) {
	t.Setenv("MSYSTEM", "")
	if MSystemForcesANSI() {
		t.Error("empty MSYSTEM should not force ANSI")
	}
	t.Setenv("MSYSTEM", "MINGW64")
	if !MSystemForcesANSI() {
		t.Error("set MSYSTEM should force ANSI")
	}
}
