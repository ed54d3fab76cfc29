package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ink = RGB{200, 100, 50}

func countInk(b *Buffer) int {
	w, h := b.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.At(x, y) == ink {
				n++
			}
		}
	}
	return n
}

func TestNewBuffer_Cleared(t *testing.T) {
	b := NewBuffer(5, 3, RgbBackground)
	w, h := b.Size()
	require.Equal(t, 5, w)
	require.Equal(t, 3, h)
	for y := 0; y < h; y++ {
		assert.False(t, b.RowTouched(y))
		for x := 0; x < w; x++ {
			assert.Equal(t, RgbBackground, b.At(x, y))
		}
	}
}

func TestPrimitives(t *testing.T) {
	b := NewBuffer(16, 8, RGBBlack)

	b.HLine(2, 1, 4, ink)
	assert.Equal(t, 4, countInk(b))
	assert.True(t, b.RowTouched(1))
	assert.False(t, b.RowTouched(0))

	b.FillRect(0, 4, 3, 2, ink)
	assert.Equal(t, 10, countInk(b))

	// Clipped on both sides
	b.Clear()
	b.HLine(-5, 0, 30, ink)
	assert.Equal(t, 16, countInk(b))

	b.Clear()
	b.FillRect(14, 6, 10, 10, ink)
	assert.Equal(t, 4, countInk(b))
}

func TestPrimitives_DegenerateNoOp(t *testing.T) {
	b := NewBuffer(8, 8, RGBBlack)
	b.HLine(1, 1, 0, ink)
	b.HLine(1, 1, -3, ink)
	b.FillRect(1, 1, 0, 4, ink)
	b.FillRect(1, 1, 4, -1, ink)
	b.FillPolygon(nil, ink)
	b.HLine(0, 9, 4, ink)

	assert.Equal(t, 0, countInk(b))
	for y := 0; y < 8; y++ {
		assert.False(t, b.RowTouched(y))
	}
}

func TestFillPolygon_Triangle(t *testing.T) {
	b := NewBuffer(16, 16, RGBBlack)
	b.FillPolygon([]image.Point{{2, 2}, {10, 2}, {2, 10}}, ink)
	assert.Equal(t, 45, countInk(b))
	assert.Equal(t, ink, b.At(10, 2))
}

func TestFillPolygon_Concave(t *testing.T) {
	b := NewBuffer(8, 8, RGBBlack)
	b.FillPolygon([]image.Point{{0, 0}, {3, 0}, {3, 4}, {5, 4}, {5, 0}, {8, 0}, {8, 8}, {0, 8}}, ink)
	assert.Equal(t, ink, b.At(1, 1))
	assert.Equal(t, RGBBlack, b.At(4, 1))
}

func TestResize(t *testing.T) {
	b := NewBuffer(4, 4, RgbBackground)
	b.FillRect(0, 0, 4, 4, ink)
	b.Resize(10, 2)

	w, h := b.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, 0, countInk(b))
}

func TestRGB565(t *testing.T) {
	assert.Equal(t, RGBWhite, FromRGB565(0xFFFF))
	assert.Equal(t, RGBBlack, FromRGB565(0))
	assert.Equal(t, uint16(0xF800), RGB{255, 0, 0}.ToRGB565())
	assert.Equal(t, RGB{255, 0, 0}, FromRGB565(0xF800))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, RGBBlack, Lerp(RGBBlack, RGBWhite, -1))
	assert.Equal(t, RGBWhite, Lerp(RGBBlack, RGBWhite, 2))
	assert.Equal(t, RGB{128, 128, 128}, Lerp(RGBBlack, RGBWhite, 0.5))
}

func TestImage(t *testing.T) {
	b := NewBuffer(3, 2, RGBBlack)
	b.Set(1, 1, ink)
	img := b.Image()
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	r, g, bl, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(ink.R)*0x101, r)
	assert.Equal(t, uint32(ink.G)*0x101, g)
	assert.Equal(t, uint32(ink.B)*0x101, bl)
}

func TestFlushToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(20, 10)

	b := NewBuffer(4, 3, RGBBlack)
	b.Set(0, 0, ink) // top half of cell (0,0)
	b.Set(1, 1, ink) // bottom half of cell (1,0)
	b.Set(2, 2, ink) // top half of cell (2,1), bottom padded with background

	b.FlushToScreen(screen, 1, 1)

	ch, _, style, _ := screen.GetContent(1, 1)
	assert.Equal(t, upperHalf, ch)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, ink.ToTcell(), fg)
	assert.Equal(t, RGBBlack.ToTcell(), bg)

	_, _, style, _ = screen.GetContent(2, 1)
	fg, bg, _ = style.Decompose()
	assert.Equal(t, RGBBlack.ToTcell(), fg)
	assert.Equal(t, ink.ToTcell(), bg)

	_, _, style, _ = screen.GetContent(3, 2)
	fg, _, _ = style.Decompose()
	assert.Equal(t, ink.ToTcell(), fg)
}

func TestDisplay_DriverAdapter(t *testing.T) {
	b := NewBuffer(4, 2, RGBBlack)
	flushed := 0
	d := NewDisplay(b, func() error { flushed++; return nil })

	w, h := d.Size()
	assert.Equal(t, int16(4), w)
	assert.Equal(t, int16(2), h)

	d.SetPixel(1, 1, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	d.SetPixel(2, 1, color.RGBA{A: 0xFF})
	assert.Equal(t, RgbForeground, b.At(1, 1))
	assert.Equal(t, RGBBlack, b.At(2, 1))

	require.NoError(t, d.Display())
	assert.Equal(t, 1, flushed)

	d.Flush = nil
	assert.NoError(t, d.Display())
}
