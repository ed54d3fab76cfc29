package canvas

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Display exposes a Buffer as a tinygo display driver, so monochrome page
// backends can render into an RGB canvas
// Lit pixels use On, dark ones Off; Flush runs on Display
type Display struct {
	Buffer *Buffer
	On     RGB
	Off    RGB
	Flush  func() error
}

var _ drivers.Displayer = (*Display)(nil)

// NewDisplay wraps b with the default eye palette
func NewDisplay(b *Buffer, flush func() error) *Display {
	return &Display{Buffer: b, On: RgbForeground, Off: b.Background(), Flush: flush}
}

func (d *Display) Size() (x, y int16) {
	w, h := d.Buffer.Size()
	return int16(w), int16(h)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if c.R != 0 || c.G != 0 || c.B != 0 {
		d.Buffer.Set(int(x), int(y), d.On)
		return
	}
	d.Buffer.Set(int(x), int(y), d.Off)
}

func (d *Display) Display() error {
	if d.Flush == nil {
		return nil
	}
	return d.Flush()
}
