// Package canvas is a small RGB framebuffer with multi-primitive drawing:
// horizontal lines, filled rectangles and filled n-point polygons
package canvas

import (
	"image"
	"image/color"

	"github.com/lixenwraith/vi-eyes/raster"
)

// Buffer is a row-major RGB framebuffer with a touched mask
// The mask lets flushers skip rows that were never drawn since the last Clear
type Buffer struct {
	pixels     []RGB
	touched    []bool
	width      int
	height     int
	background RGB
}

// NewBuffer creates a buffer with the specified dimensions, cleared to background
func NewBuffer(width, height int, background RGB) *Buffer {
	width, height = max(width, 0), max(height, 0)
	b := &Buffer{
		pixels:     make([]RGB, width*height),
		touched:    make([]bool, height),
		width:      width,
		height:     height,
		background: background,
	}
	b.Clear()
	return b
}

// Size returns buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Background returns the clear color
func (b *Buffer) Background() RGB {
	return b.background
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.pixels) < size {
		b.pixels = make([]RGB, size)
	} else {
		b.pixels = b.pixels[:size]
	}
	if cap(b.touched) < height {
		b.touched = make([]bool, height)
	} else {
		b.touched = b.touched[:height]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all pixels to background using exponential copy
func (b *Buffer) Clear() {
	if len(b.pixels) > 0 {
		b.pixels[0] = b.background
		for filled := 1; filled < len(b.pixels); filled *= 2 {
			copy(b.pixels[filled:], b.pixels[:filled])
		}
	}
	clear(b.touched)
}

// inBounds returns true if in buffer bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the pixel at (x,y), background when out of bounds
func (b *Buffer) At(x, y int) RGB {
	if !b.inBounds(x, y) {
		return b.background
	}
	return b.pixels[y*b.width+x]
}

// Set writes a single pixel
func (b *Buffer) Set(x, y int, c RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.pixels[y*b.width+x] = c
	b.touched[y] = true
}

// RowTouched reports whether row y was drawn since the last Clear
func (b *Buffer) RowTouched(y int) bool {
	return y >= 0 && y < b.height && b.touched[y]
}

// ===== PRIMITIVES =====

func (b *Buffer) clip() raster.Clip {
	return raster.Clip{Width: b.width, Height: b.height}
}

// span writes a clipped run; callers pass already-clipped coordinates
func (b *Buffer) span(c RGB) raster.SpanFunc {
	return func(y, x, length int) {
		row := b.pixels[y*b.width+x : y*b.width+x+length]
		for i := range row {
			row[i] = c
		}
		b.touched[y] = true
	}
}

// HLine draws a horizontal run of length pixels starting at (x,y)
func (b *Buffer) HLine(x, y, length int, c RGB) {
	if length <= 0 || y < 0 || y >= b.height {
		return
	}
	x0, x1 := max(x, 0), min(x+length, b.width)
	if x1 <= x0 {
		return
	}
	b.span(c)(y, x0, x1-x0)
}

// FillRect fills a w x h rectangle with top-left (x,y)
func (b *Buffer) FillRect(x, y, w, h int, c RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	y0, y1 := max(y, 0), min(y+h, b.height)
	for row := y0; row < y1; row++ {
		b.HLine(x, row, w, c)
	}
}

// FillPolygon fills an n-point polygon
// Convex outlines include their edges; concave ones use the even-odd rule
func (b *Buffer) FillPolygon(pts []image.Point, c RGB) {
	if len(pts) == 0 {
		return
	}
	rp := make([]raster.Point, len(pts))
	for i, p := range pts {
		rp[i] = raster.Point{X: p.X, Y: p.Y}
	}
	if raster.IsConvex(rp) {
		b.clip().Convex(rp, b.span(c))
		return
	}
	b.clip().EvenOdd(rp, b.span(c))
}

// ===== OUTPUT =====

// Image copies the buffer into a new RGBA image
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			p := b.pixels[y*b.width+x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
	return img
}
