package surface

import (
	"fmt"
	"strings"
)

// Op identifies a recorded surface call
type Op uint8

const (
	OpHLine Op = iota
	OpBox
	OpTriangle
	OpSetColor
	OpClear
	OpPresent
)

// String returns the call name
func (o Op) String() string {
	switch o {
	case OpHLine:
		return "hline"
	case OpBox:
		return "box"
	case OpTriangle:
		return "triangle"
	case OpSetColor:
		return "color"
	case OpClear:
		return "clear"
	case OpPresent:
		return "present"
	default:
		return "unknown"
	}
}

// Call is one recorded surface call
// Args holds the call arguments in declaration order
type Call struct {
	Op   Op
	Args []int
}

// String formats the call as "op(a,b,c)"
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op.String() + "(" + strings.Join(parts, ",") + ")"
}

// Recorder logs every call and forwards it to an optional inner surface
// Dimensions come from the inner surface, or from the explicit size when unbound
type Recorder struct {
	inner  Surface
	width  uint16
	height uint16
	color  uint16
	calls  []Call
}

// NewRecorder creates a recorder of the given size with no inner surface
func NewRecorder(width, height uint16) *Recorder {
	return &Recorder{width: width, height: height, color: ColorOn}
}

// Wrap records calls while forwarding them to inner
func Wrap(inner Surface) *Recorder {
	return &Recorder{inner: inner, color: inner.Color()}
}

func (r *Recorder) record(op Op, args ...int) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) DrawHLine(x, y, length int16) {
	r.record(OpHLine, int(x), int(y), int(length))
	if r.inner != nil {
		r.inner.DrawHLine(x, y, length)
	}
}

func (r *Recorder) DrawBox(x, y, w, h int16) {
	r.record(OpBox, int(x), int(y), int(w), int(h))
	if r.inner != nil {
		r.inner.DrawBox(x, y, w, h)
	}
}

func (r *Recorder) DrawTriangle(x0, y0, x1, y1, x2, y2 int16) {
	r.record(OpTriangle, int(x0), int(y0), int(x1), int(y1), int(x2), int(y2))
	if r.inner != nil {
		r.inner.DrawTriangle(x0, y0, x1, y1, x2, y2)
	}
}

func (r *Recorder) SetColor(c uint16) {
	r.record(OpSetColor, int(c))
	r.color = c
	if r.inner != nil {
		r.inner.SetColor(c)
	}
}

func (r *Recorder) Color() uint16 {
	return r.color
}

func (r *Recorder) Clear() {
	r.record(OpClear)
	if r.inner != nil {
		r.inner.Clear()
	}
}

func (r *Recorder) Width() uint16 {
	if r.inner != nil {
		return r.inner.Width()
	}
	return r.width
}

func (r *Recorder) Height() uint16 {
	if r.inner != nil {
		return r.inner.Height()
	}
	return r.height
}

func (r *Recorder) Present() error {
	r.record(OpPresent)
	if r.inner != nil {
		return r.inner.Present()
	}
	return nil
}

// Calls returns the recorded calls
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Filter returns recorded calls of the given op
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops recorded calls
// Slices returned by Calls before the reset are left intact
func (r *Recorder) Reset() {
	r.calls = nil
}
