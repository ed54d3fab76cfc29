package surface

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrNop(t *testing.T) {
	s := OrNop(nil)
	assert.IsType(t, &Nop{}, s)
	assert.Equal(t, DefaultWidth, s.Width())
	assert.Equal(t, DefaultHeight, s.Height())
	assert.Equal(t, ColorOn, s.Color())

	// Unbound surface swallows everything
	s.DrawBox(0, 0, 10, 10)
	s.DrawHLine(0, 0, 10)
	s.DrawTriangle(0, 0, 5, 5, 0, 5)
	s.Clear()
	assert.NoError(t, s.Present())

	rec := NewRecorder(10, 10)
	assert.Same(t, rec, OrNop(rec))
}

func TestRecorder_LogsAndForwards(t *testing.T) {
	inner := NewRecorder(32, 16)
	rec := Wrap(inner)

	rec.SetColor(ColorOn)
	rec.DrawBox(1, 2, 3, 4)
	rec.DrawHLine(5, 6, 7)
	rec.SetColor(ColorOff)
	rec.DrawTriangle(0, 0, 4, 0, 2, 3)
	rec.Clear()
	_ = rec.Present()

	want := []Call{
		{Op: OpSetColor, Args: []int{1}},
		{Op: OpBox, Args: []int{1, 2, 3, 4}},
		{Op: OpHLine, Args: []int{5, 6, 7}},
		{Op: OpSetColor, Args: []int{0}},
		{Op: OpTriangle, Args: []int{0, 0, 4, 0, 2, 3}},
		{Op: OpClear, Args: nil},
		{Op: OpPresent, Args: nil},
	}
	if diff := cmp.Diff(want, rec.Calls()); diff != "" {
		t.Errorf("recorded calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, inner.Calls()); diff != "" {
		t.Errorf("forwarded calls mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, uint16(32), rec.Width())
	assert.Equal(t, uint16(16), rec.Height())
	assert.Equal(t, ColorOff, rec.Color())
	assert.Len(t, rec.Filter(OpSetColor), 2)

	rec.Reset()
	assert.Empty(t, rec.Calls())
}

func TestCallString(t *testing.T) {
	assert.Equal(t, "box(1,2,3,4)", Call{Op: OpBox, Args: []int{1, 2, 3, 4}}.String())
	assert.Equal(t, "clear()", Call{Op: OpClear}.String())
}

func TestRecorderResetKeepsEarlierCalls(t *testing.T) {
	rec := NewRecorder(8, 8)
	rec.DrawBox(1, 1, 2, 2)
	first := rec.Calls()

	rec.Reset()
	rec.DrawHLine(0, 0, 3)

	require.Len(t, first, 1)
	assert.Equal(t, "box(1,1,2,2)", first[0].String())
	assert.Equal(t, "hline(0,0,3)", rec.Calls()[0].String())
}
