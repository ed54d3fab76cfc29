// Package surface defines the raster capability the eye renderer draws against
//
// Coordinates are integer pixels, origin top-left, x right and y down
// Zero or negative lengths, widths and heights are no-ops; anything outside the
// bounds is clipped. Colors are backend-defined 16-bit values; ColorOff and
// ColorOn are understood by every backend
package surface

// Draw colors shared by all backends
const (
	ColorOff uint16 = 0
	ColorOn  uint16 = 1
	ColorXor uint16 = 2
)

// Fallback dimensions reported when no display is bound
const (
	DefaultWidth  uint16 = 128
	DefaultHeight uint16 = 64
)

// Surface is the drawing capability consumed by the renderer
type Surface interface {
	DrawHLine(x, y, length int16)
	DrawBox(x, y, w, h int16)
	DrawTriangle(x0, y0, x1, y1, x2, y2 int16)
	SetColor(c uint16)
	Color() uint16
	Clear()
	Width() uint16
	Height() uint16
	Present() error
}

// Nop is the unbound surface: every draw is discarded
type Nop struct {
	color uint16
}

func (n *Nop) DrawHLine(x, y, length int16)              {}
func (n *Nop) DrawBox(x, y, w, h int16)                  {}
func (n *Nop) DrawTriangle(x0, y0, x1, y1, x2, y2 int16) {}
func (n *Nop) SetColor(c uint16)                         { n.color = c }
func (n *Nop) Color() uint16                             { return n.color }
func (n *Nop) Clear()                                    {}
func (n *Nop) Width() uint16                             { return DefaultWidth }
func (n *Nop) Height() uint16                            { return DefaultHeight }
func (n *Nop) Present() error                            { return nil }

// OrNop returns s, or a Nop surface when s is nil
func OrNop(s Surface) Surface {
	if s == nil {
		return &Nop{color: ColorOn}
	}
	return s
}
