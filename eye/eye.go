// Package eye turns expression, blink and gaze state into draw calls for one eye
//
// Geometry is recomputed every frame. The base shape is drawn in the foreground
// color, then emotion modifiers cut into it in the background color. Modifier
// coordinates are built for the right eye and mirrored for the left
package eye

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/surface"
)

// Side selects which socket an eye occupies
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Input is the per-frame state one eye is drawn from
type Input struct {
	ScreenWidth  int
	ScreenHeight int
	EyeSize      int
	EyeDistance  int
	CornerRadius int

	Shape        emotion.Shape
	OpenFraction float64
	GazeDX       int
	GazeDY       int

	Foreground uint16
	Background uint16
}

// Rect is an axis-aligned pixel rectangle
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Kind is a primitive type
type Kind uint8

const (
	KindHLine Kind = iota
	KindBox
	KindTriangle
)

// Prim is one primitive call; unused coordinates are zero
// HLine: x,y,length in P[0..2]. Box: x,y,w,h in P[0..3]. Triangle: P[0..5]
type Prim struct {
	Kind Kind
	P    [6]int
}

func (p Prim) String() string {
	switch p.Kind {
	case KindHLine:
		return fmt.Sprintf("hline(%d,%d,%d)", p.P[0], p.P[1], p.P[2])
	case KindBox:
		return fmt.Sprintf("box(%d,%d,%d,%d)", p.P[0], p.P[1], p.P[2], p.P[3])
	default:
		return fmt.Sprintf("triangle(%d,%d,%d,%d,%d,%d)", p.P[0], p.P[1], p.P[2], p.P[3], p.P[4], p.P[5])
	}
}

// Group is a run of primitives sharing one color
type Group struct {
	Color uint16
	Prims []Prim
}

// Plan is the ordered draw list for one eye
type Plan struct {
	Bounds Rect
	Groups []Group
}

// Eye computes and draws one socket
type Eye struct {
	side Side
	plan Plan
}

// New creates an eye for side
func New(side Side) *Eye {
	return &Eye{side: side}
}

// Side returns which socket this eye occupies
func (e *Eye) Side() Side {
	return e.side
}

// Last returns the plan of the most recent Compute or Draw
func (e *Eye) Last() Plan {
	return e.plan
}

func round(v float64) int {
	return int(math.Round(v))
}

// Bounds returns the base rectangle for in
// Eye centres sit eyeSize/2 + eyeDistance either side of the screen centre
func (e *Eye) Bounds(in Input) Rect {
	fullH := round(float64(in.EyeSize) * in.Shape.HeightScale)
	w := round(float64(in.EyeSize) * in.Shape.WidthScale)
	open := min(max(in.OpenFraction, 0), 1)
	h := round(float64(fullH) * open)

	half := in.EyeSize/2 + in.EyeDistance
	cx := in.ScreenWidth / 2
	if e.side == Left {
		cx -= half
	} else {
		cx += half
	}
	cx += in.GazeDX
	cy := in.ScreenHeight/2 + in.GazeDY + round(in.Shape.OffsetY*float64(fullH))

	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Compute builds the draw plan for in
func (e *Eye) Compute(in Input) Plan {
	r := e.Bounds(in)
	plan := Plan{Bounds: r}
	if r.Empty() {
		e.plan = plan
		return plan
	}

	plan.Groups = append(plan.Groups, Group{Color: in.Foreground, Prims: base(r, in.CornerRadius)})
	if mods := e.modifiers(r, in.Shape); len(mods) > 0 {
		plan.Groups = append(plan.Groups, Group{Color: in.Background, Prims: mods})
	}
	e.plan = plan
	return plan
}

// base is a filled box, with rounded caps drawn as shrinking lines when radius > 0
func base(r Rect, radius int) []Prim {
	radius = min(radius, r.W/2, r.H/2)
	if radius <= 0 {
		return []Prim{{Kind: KindBox, P: [6]int{r.X, r.Y, r.W, r.H}}}
	}

	prims := make([]Prim, 0, 2*radius+1)
	prims = append(prims, Prim{Kind: KindBox, P: [6]int{r.X, r.Y + radius, r.W, r.H - 2*radius}})
	rf := float64(radius)
	for i := 0; i < radius; i++ {
		dy := rf - float64(i) - 0.5
		inset := radius - round(math.Sqrt(rf*rf-dy*dy))
		inset = max(inset, 0)
		length := r.W - 2*inset
		prims = append(prims,
			Prim{Kind: KindHLine, P: [6]int{r.X + inset, r.Y + i, length}},
			Prim{Kind: KindHLine, P: [6]int{r.X + inset, r.Y + r.H - 1 - i, length}},
		)
	}
	return prims
}

// modifiers cuts emotion features out of the base rectangle
// Positive slope lowers the inner corner, negative lowers the outer one
func (e *Eye) modifiers(r Rect, s emotion.Shape) []Prim {
	var prims []Prim
	left, right := r.X, r.X+r.W-1
	top, bottom := r.Y, r.Y+r.H-1

	// mirror reflects right-eye coordinates onto the left eye
	mirror := func(x int) int {
		if e.side == Left {
			return left + right - x
		}
		return x
	}

	if depth := round(math.Abs(s.SlopeTop) * float64(r.H)); depth > 0 {
		corner := left // inner corner of the right eye
		if s.SlopeTop < 0 {
			corner = right
		}
		prims = append(prims, Prim{Kind: KindTriangle, P: [6]int{
			mirror(left), top,
			mirror(right), top,
			mirror(corner), top + depth,
		}})
	}

	if lid := round(s.LidTop * float64(r.H)); lid > 0 {
		prims = append(prims, Prim{Kind: KindBox, P: [6]int{r.X, top, r.W, lid}})
	}

	if rise := round(s.LidBottom * float64(r.H)); rise > 0 {
		apex := left + r.W/2
		prims = append(prims, Prim{Kind: KindTriangle, P: [6]int{
			mirror(left), bottom,
			mirror(right), bottom,
			mirror(apex), bottom - rise,
		}})
	}
	return prims
}

// Draw computes the plan and issues it against s
// Color is set before every group; nothing is cleared or presented
func (e *Eye) Draw(s surface.Surface, in Input) {
	plan := e.Compute(in)
	for _, g := range plan.Groups {
		s.SetColor(g.Color)
		for _, p := range g.Prims {
			issue(s, p)
		}
	}
}

func issue(s surface.Surface, p Prim) {
	switch p.Kind {
	case KindHLine:
		s.DrawHLine(int16(p.P[0]), int16(p.P[1]), int16(p.P[2]))
	case KindBox:
		s.DrawBox(int16(p.P[0]), int16(p.P[1]), int16(p.P[2]), int16(p.P[3]))
	case KindTriangle:
		s.DrawTriangle(int16(p.P[0]), int16(p.P[1]), int16(p.P[2]), int16(p.P[3]), int16(p.P[4]), int16(p.P[5]))
	}
}
