// Package contrast picks a readable text colour for a note background.
package contrast

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Dark is used on light backgrounds and whenever the background cannot be
	// parsed.
	Dark = "#333333"
	// Light is used on dark backgrounds.
	Light = "#F9F9F9"
	// Threshold is the luminance above which a background counts as light.
	Threshold = 0.6
)

// Luminance returns the perceived brightness of a #RRGGBB colour in [0,1].
// ok is false when hex is not six hex digits after an optional leading '#'.
func Luminance(hex string) (float64, bool) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 || !isHex(digits) {
		return 0, false
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return 0, false
	}
	r, g, b := c.RGB255()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, true
}

// For returns Dark or Light for the given background.
func For(background string) string {
	l, ok := Luminance(background)
	if !ok || l > Threshold {
		return Dark
	}
	return Light
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
