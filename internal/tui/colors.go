package tui

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// background is the color text fades into.
var background = colorful.Color{R: 0, G: 0, B: 0}

// hueHex returns hsl(h, 100%, 50%) as a hex string.
func hueHex(h float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, 1, 0.5).Clamped().Hex()
}

// fadeHex blends hex toward the background; opacity 1 leaves it unchanged.
// Unparseable colors are returned as given.
func fadeHex(hex string, opacity float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	opacity = math.Max(0, math.Min(1, opacity))
	return background.BlendRgb(c, opacity).Clamped().Hex()
}
