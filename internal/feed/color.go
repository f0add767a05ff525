package feed

import (
	"fmt"
	"strings"
	"unicode"
)

// Avatar hues are spread over [hueMin, hueMin+hueSpan).
const (
	hueMin  = 0
	hueSpan = 360

	AvatarSaturation = 65
	AvatarLightness  = 45
)

// AvatarHue hashes a display name onto the avatar hue range.
func AvatarHue(name string) int {
	var h int32
	for _, r := range name {
		h = int32(r) + (h << 5) - h
	}
	return hueMin + int(uint32(h)%hueSpan)
}

// AvatarColor derives a stable background color from a display name.
// The same name always yields the same string.
func AvatarColor(name string) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", AvatarHue(name), AvatarSaturation, AvatarLightness)
}

// Initials returns up to two upper-cased initials, "U" when name has none.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	if n == 0 {
		return UnknownInitials
	}
	return b.String()
}
