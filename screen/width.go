package screen

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// Cluster is one user-perceived character together with its terminal column
// width (1 or 2), per the GLOSSARY's "Grapheme cluster" entry.
type Cluster struct {
	Glyph string
	Width int
}

// Segment splits s into grapheme clusters with per-cluster column widths.
// Grounded on core/internal/domain/service/unicode_service.go's tiered
// UnicodeService.StringWidth: uniwidth's O(1) lookup handles the 90-95% of
// runes that are their own cluster (ASCII, CJK, isolated emoji) without ever
// invoking uniseg's state machine; only a rune that extends into something
// uniwidth can't size on its own (a ZWJ sequence, an emoji modifier, a
// variation selector, a combining mark) falls through to
// uniseg.FirstGraphemeClusterInString for correct cluster boundaries.
func Segment(s string) []Cluster {
	var out []Cluster
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if !extendsCluster(s[size:]) && !isZeroWidthRune(r) {
			out = append(out, Cluster{Glyph: s[:size], Width: uniwidth.RuneWidth(r)})
			s = s[size:]
			continue
		}

		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		out = append(out, Cluster{Glyph: cluster, Width: clusterWidth(cluster)})
		s = rest
	}
	return out
}

// extendsCluster reports whether the rune at the start of tail would merge
// into the cluster that precedes it (a ZWJ sequence, an emoji modifier, a
// variation selector, or a combining mark), matching
// unicode_service.go's containsTrulyComplexUnicode triggers.
func extendsCluster(tail string) bool {
	if len(tail) == 0 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tail)
	switch {
	case r == 0x200D: // zero-width joiner
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // emoji skin-tone modifiers
		return true
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc): // combining marks
		return true
	}
	return false
}

func isZeroWidthRune(r rune) bool {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc, unicode.Cf) {
		return true
	}
	return r == 0x200B || r == 0xFEFF
}

// clusterWidth sizes a multi-rune cluster uniseg has already bounded,
// mirroring UnicodeService.ClusterWidth: a variation selector changes the
// base character's presentation so the whole cluster goes through
// uniwidth.StringWidth, otherwise modifiers/ZWJ continuations/combining
// marks don't add width and only the base (first) rune's width counts.
func clusterWidth(cluster string) int {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return 0
	}
	if len(runes) == 1 {
		return uniwidth.RuneWidth(runes[0])
	}
	if runes[1] == 0xFE0E || runes[1] == 0xFE0F {
		return uniwidth.StringWidth(cluster)
	}
	if isZeroWidthRune(runes[0]) {
		return 0
	}
	return uniwidth.RuneWidth(runes[0])
}
