package canvas

import "github.com/gdamore/tcell/v2"

// RGB is a 24-bit pixel color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}

	// Default eye palette: cyan-ish OLED glow on a near-black panel
	RgbBackground = RGB{10, 12, 18}
	RgbForeground = RGB{120, 220, 255}
)

// FromRGB565 expands a packed 5-6-5 color to 24 bits
func FromRGB565(c uint16) RGB {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return RGB{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

// ToRGB565 packs a color to 5-6-5
func (c RGB) ToRGB565() uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// Lerp mixes a toward b by t in [0,1]
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return RGB{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B)}
}

// ToTcell converts RGB to tcell.Color
func (c RGB) ToTcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
