package model

import "strings"

const (
	// MaskGlyph replaces every hidden character of a masked credential.
	MaskGlyph = "•"

	// VisibleSuffix is the number of trailing characters left readable.
	VisibleSuffix = 4
)

// MaskCredential returns the display form of a stored credential: all but the
// last VisibleSuffix runes are replaced with MaskGlyph. Values of
// VisibleSuffix runes or fewer are returned unchanged.
func MaskCredential(value string) string {
	runes := []rune(value)
	hidden := len(runes) - VisibleSuffix
	if hidden <= 0 {
		return value
	}
	return strings.Repeat(MaskGlyph, hidden) + string(runes[hidden:])
}

// IsMasked reports whether value still carries the mask placeholder, i.e. it
// is (or was derived from) a masked display string rather than a real key.
func IsMasked(value string) bool {
	return strings.Contains(value, MaskGlyph)
}
