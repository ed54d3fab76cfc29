// Package fb adapts the generic canvas framebuffer to the drawing surface
// The canvas has no triangle primitive; triangles are drawn as 3-point polygons
package fb

import (
	"image"

	"github.com/lixenwraith/vi-eyes/canvas"
	"github.com/lixenwraith/vi-eyes/surface"
)

// Palette maps surface colors to RGB
// ColorOff and ColorOn use Background and Foreground; any other value is read
// as packed RGB565
type Palette struct {
	Background canvas.RGB
	Foreground canvas.RGB
}

// DefaultPalette is the OLED-style glow used by the terminal preview
var DefaultPalette = Palette{
	Background: canvas.RgbBackground,
	Foreground: canvas.RgbForeground,
}

// Resolve returns the RGB for a surface color
func (p Palette) Resolve(c uint16) canvas.RGB {
	switch c {
	case surface.ColorOff:
		return p.Background
	case surface.ColorOn:
		return p.Foreground
	default:
		return canvas.FromRGB565(c)
	}
}

// Flusher receives the finished frame on Present
type Flusher func(buf *canvas.Buffer) error

// Surface implements surface.Surface over a canvas.Buffer
type Surface struct {
	buf     *canvas.Buffer
	palette Palette
	color   uint16
	rgb     canvas.RGB
	flush   Flusher
}

var _ surface.Surface = (*Surface)(nil)

// New wraps buf; flush may be nil
func New(buf *canvas.Buffer, palette Palette, flush Flusher) *Surface {
	s := &Surface{buf: buf, palette: palette, flush: flush}
	s.SetColor(surface.ColorOn)
	return s
}

// Buffer returns the backing framebuffer
func (s *Surface) Buffer() *canvas.Buffer {
	return s.buf
}

func (s *Surface) DrawHLine(x, y, length int16) {
	s.buf.HLine(int(x), int(y), int(length), s.rgb)
}

func (s *Surface) DrawBox(x, y, w, h int16) {
	s.buf.FillRect(int(x), int(y), int(w), int(h), s.rgb)
}

func (s *Surface) DrawTriangle(x0, y0, x1, y1, x2, y2 int16) {
	s.buf.FillPolygon([]image.Point{
		{X: int(x0), Y: int(y0)},
		{X: int(x1), Y: int(y1)},
		{X: int(x2), Y: int(y2)},
	}, s.rgb)
}

func (s *Surface) SetColor(c uint16) {
	s.color = c
	s.rgb = s.palette.Resolve(c)
}

func (s *Surface) Color() uint16 { return s.color }

func (s *Surface) Clear() { s.buf.Clear() }

func (s *Surface) Width() uint16 {
	w, _ := s.buf.Size()
	return uint16(w)
}

func (s *Surface) Height() uint16 {
	_, h := s.buf.Size()
	return uint16(h)
}

// Present hands the frame to the flusher, if any
func (s *Surface) Present() error {
	if s.flush == nil {
		return nil
	}
	return s.flush(s.buf)
}
