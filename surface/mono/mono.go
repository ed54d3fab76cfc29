// Package mono is a monochrome page-buffer backend in the style of SSD1306/u8g2
// controllers: the frame is stored as 8-pixel-tall pages, one byte per column,
// and flushed to a tinygo display driver page by page
package mono

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"tinygo.org/x/drivers"

	"github.com/lixenwraith/vi-eyes/raster"
	"github.com/lixenwraith/vi-eyes/surface"
)

const pageHeight = 8

var (
	pixelOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	pixelOff = color.RGBA{A: 0xFF}
)

// Surface implements surface.Surface over a page buffer
// Draw colors follow u8g2: 0 clears, 1 sets, 2 inverts
type Surface struct {
	pages   []byte
	dirty   []bool
	width   int
	height  int
	color   uint16
	display drivers.Displayer
}

var _ surface.Surface = (*Surface)(nil)

// New creates an unattached page buffer
func New(width, height int) *Surface {
	width, height = max(width, 0), max(height, 0)
	n := (height + pageHeight - 1) / pageHeight
	return &Surface{
		pages:  make([]byte, width*n),
		dirty:  make([]bool, n),
		width:  width,
		height: height,
		color:  surface.ColorOn,
	}
}

// NewForDisplay creates a page buffer sized to the display and attached to it
func NewForDisplay(d drivers.Displayer) *Surface {
	w, h := d.Size()
	s := New(int(w), int(h))
	s.display = d
	return s
}

// Attach binds a display; nil detaches
func (s *Surface) Attach(d drivers.Displayer) {
	s.display = d
	for i := range s.dirty {
		s.dirty[i] = true
	}
}

// PageCount returns the number of 8-row pages
func (s *Surface) PageCount() int {
	return len(s.dirty)
}

// Page returns the raw bytes of page i, one byte per column, LSB on top
func (s *Surface) Page(i int) []byte {
	return s.pages[i*s.width : (i+1)*s.width]
}

// Pixel reports whether (x,y) is lit
func (s *Surface) Pixel(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	return s.pages[(y/pageHeight)*s.width+x]&(1<<(y%pageHeight)) != 0
}

// span applies the current draw color to a clipped run
func (s *Surface) span(y, x, length int) {
	page := y / pageHeight
	bit := byte(1 << (y % pageHeight))
	row := s.pages[page*s.width+x : page*s.width+x+length]
	switch s.color {
	case surface.ColorOff:
		for i := range row {
			row[i] &^= bit
		}
	case surface.ColorXor:
		for i := range row {
			row[i] ^= bit
		}
	default:
		for i := range row {
			row[i] |= bit
		}
	}
	s.dirty[page] = true
}

func (s *Surface) clip() raster.Clip {
	return raster.Clip{Width: s.width, Height: s.height}
}

func (s *Surface) DrawHLine(x, y, length int16) {
	if length <= 0 || int(y) < 0 || int(y) >= s.height {
		return
	}
	x0, x1 := max(int(x), 0), min(int(x)+int(length), s.width)
	if x1 <= x0 {
		return
	}
	s.span(int(y), x0, x1-x0)
}

func (s *Surface) DrawBox(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	y0, y1 := max(int(y), 0), min(int(y)+int(h), s.height)
	for row := y0; row < y1; row++ {
		s.DrawHLine(x, int16(row), w)
	}
}

func (s *Surface) DrawTriangle(x0, y0, x1, y1, x2, y2 int16) {
	s.clip().Triangle(
		raster.Point{X: int(x0), Y: int(y0)},
		raster.Point{X: int(x1), Y: int(y1)},
		raster.Point{X: int(x2), Y: int(y2)},
		s.span,
	)
}

func (s *Surface) SetColor(c uint16) { s.color = c }
func (s *Surface) Color() uint16     { return s.color }
func (s *Surface) Width() uint16     { return uint16(s.width) }
func (s *Surface) Height() uint16    { return uint16(s.height) }

// Clear blanks the buffer; the display is updated on the next Present
func (s *Surface) Clear() {
	clear(s.pages)
	for i := range s.dirty {
		s.dirty[i] = true
	}
}

// Present pushes dirty pages to the attached display and asks it to refresh
// Without a display it is a no-op
func (s *Surface) Present() error {
	if s.display == nil {
		return nil
	}
	for p, dirty := range s.dirty {
		if !dirty {
			continue
		}
		page := s.Page(p)
		for x, bits := range page {
			for b := 0; b < pageHeight; b++ {
				y := p*pageHeight + b
				if y >= s.height {
					break
				}
				c := pixelOff
				if bits&(1<<b) != 0 {
					c = pixelOn
				}
				s.display.SetPixel(int16(x), int16(y), c)
			}
		}
		s.dirty[p] = false
	}
	if err := s.display.Display(); err != nil {
		return fmt.Errorf("mono: display refresh: %w", err)
	}
	return nil
}

// String renders the buffer as text, '#' for lit pixels
func (s *Surface) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WritePBM encodes the buffer as a binary (P4) portable bitmap
func (s *Surface) WritePBM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", s.width, s.height); err != nil {
		return err
	}
	rowBytes := (s.width + 7) / 8
	row := make([]byte, rowBytes)
	for y := 0; y < s.height; y++ {
		clear(row)
		for x := 0; x < s.width; x++ {
			if s.Pixel(x, y) {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
