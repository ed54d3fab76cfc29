package mono

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-eyes/surface"
)

// fakeDisplay records pixels the way a tinygo driver buffer would
type fakeDisplay struct {
	w, h     int16
	lit      map[[2]int16]bool
	writes   int
	displays int
	err      error
}

func newFakeDisplay(w, h int16) *fakeDisplay {
	return &fakeDisplay{w: w, h: h, lit: make(map[[2]int16]bool)}
}

func (f *fakeDisplay) Size() (int16, int16) { return f.w, f.h }

func (f *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	f.writes++
	f.lit[[2]int16{x, y}] = c.R != 0
}

func (f *fakeDisplay) Display() error {
	f.displays++
	return f.err
}

func litCount(s *Surface) int {
	n := 0
	for y := 0; y < int(s.Height()); y++ {
		for x := 0; x < int(s.Width()); x++ {
			if s.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestPageLayout(t *testing.T) {
	s := New(16, 12)
	require.Equal(t, 2, s.PageCount())

	s.DrawHLine(0, 9, 3)
	assert.Equal(t, []byte{0x02, 0x02, 0x02}, s.Page(1)[:3])
	assert.True(t, s.Pixel(2, 9))
	assert.False(t, s.Pixel(3, 9))
}

func TestDrawColors(t *testing.T) {
	s := New(8, 8)
	s.DrawBox(0, 0, 4, 4)
	assert.Equal(t, 16, litCount(s))

	s.SetColor(surface.ColorOff)
	s.DrawBox(0, 0, 2, 4)
	assert.Equal(t, 8, litCount(s))

	s.SetColor(surface.ColorXor)
	s.DrawHLine(0, 0, 8)
	assert.Equal(t, 8-2+6, litCount(s))
	assert.Equal(t, surface.ColorXor, s.Color())
}

func TestDegeneratePrimitivesNoOp(t *testing.T) {
	s := New(16, 16)
	s.DrawBox(2, 2, 4, 4)
	before := s.String()

	s.DrawHLine(1, 1, 0)
	s.DrawHLine(1, 1, -4)
	s.DrawBox(0, 0, 0, 5)
	s.DrawBox(0, 0, 5, -2)
	s.DrawBox(0, 0, -1, -1)
	s.DrawHLine(0, 40, 5)
	s.DrawBox(20, 20, 4, 4)

	assert.Equal(t, before, s.String())
}

func TestDrawTriangle(t *testing.T) {
	s := New(16, 16)
	s.DrawTriangle(2, 2, 10, 2, 2, 10)
	assert.Equal(t, 45, litCount(s))
}

func TestClipping(t *testing.T) {
	s := New(8, 8)
	s.DrawBox(-4, -4, 100, 100)
	assert.Equal(t, 64, litCount(s))
	s.Clear()
	assert.Equal(t, 0, litCount(s))
}

func TestPresent_DirtyPages(t *testing.T) {
	disp := newFakeDisplay(8, 16)
	s := NewForDisplay(disp)
	require.Equal(t, uint16(8), s.Width())
	require.Equal(t, uint16(16), s.Height())

	// Fresh surface: nothing dirty yet, only a refresh
	require.NoError(t, s.Present())
	assert.Equal(t, 0, disp.writes)
	assert.Equal(t, 1, disp.displays)

	s.DrawHLine(0, 10, 8)
	require.NoError(t, s.Present())
	assert.Equal(t, 8*8, disp.writes, "only the second page is sent")
	assert.True(t, disp.lit[[2]int16{3, 10}])
	assert.False(t, disp.lit[[2]int16{3, 11}])

	disp.writes = 0
	require.NoError(t, s.Present())
	assert.Equal(t, 0, disp.writes)

	s.Clear()
	require.NoError(t, s.Present())
	assert.Equal(t, 8*16, disp.writes)
	assert.False(t, disp.lit[[2]int16{3, 10}])
}

func TestPresent_Unattached(t *testing.T) {
	s := New(8, 8)
	s.DrawBox(0, 0, 8, 8)
	assert.NoError(t, s.Present())
}

func TestPresent_Error(t *testing.T) {
	disp := newFakeDisplay(8, 8)
	disp.err = errors.New("i2c nack")
	s := NewForDisplay(disp)
	err := s.Present()
	require.Error(t, err)
	assert.ErrorIs(t, err, disp.err)
}

func TestWritePBM(t *testing.T) {
	s := New(10, 2)
	s.DrawHLine(0, 0, 1)
	s.DrawHLine(9, 1, 1)

	var buf bytes.Buffer
	require.NoError(t, s.WritePBM(&buf))
	want := append([]byte("P4\n10 2\n"), 0x80, 0x00, 0x00, 0x40)
	assert.Equal(t, want, buf.Bytes())
}

func TestString(t *testing.T) {
	s := New(3, 2)
	s.DrawHLine(1, 1, 2)
	assert.Equal(t, "...\n.##\n", s.String())
}
