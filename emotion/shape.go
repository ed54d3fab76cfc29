package emotion

// Shape holds the eye geometry parameters for one expression
// Scales multiply the configured eye size; the remaining fields are fractions of
// the eye height
type Shape struct {
	WidthScale  float64
	HeightScale float64
	OffsetY     float64 // vertical shift of the eye centre, positive is down
	SlopeTop    float64 // positive lowers the inner top corner, negative the outer
	LidTop      float64 // straight upper lid covering the top of the eye
	LidBottom   float64 // lower edge raised to a peak under the eye centre
}

// Neutral is the unmodified eye
var Neutral = Shape{WidthScale: 1, HeightScale: 1}

var shapes = [Count]Shape{
	Normal:     Neutral,
	Happy:      {WidthScale: 1, HeightScale: 1, LidBottom: 0.4},
	Sad:        {WidthScale: 1, HeightScale: 0.9, OffsetY: 0.05, SlopeTop: -0.4},
	Angry:      {WidthScale: 1, HeightScale: 0.9, SlopeTop: 0.45},
	Surprised:  {WidthScale: 1.15, HeightScale: 1.2, OffsetY: -0.05},
	Fearful:    {WidthScale: 0.9, HeightScale: 1.1, SlopeTop: -0.25},
	Disgusted:  {WidthScale: 1, HeightScale: 0.8, SlopeTop: 0.2, LidBottom: 0.25},
	Glee:       {WidthScale: 1.05, HeightScale: 1, LidBottom: 0.55},
	Content:    {WidthScale: 1, HeightScale: 0.9, LidTop: 0.2, LidBottom: 0.3},
	Relaxed:    {WidthScale: 1, HeightScale: 0.8, OffsetY: 0.05, LidTop: 0.35},
	Focused:    {WidthScale: 1, HeightScale: 0.7, LidTop: 0.2, LidBottom: 0.2},
	Confused:   {WidthScale: 1, HeightScale: 1, SlopeTop: -0.2, LidTop: 0.1},
	Frustrated: {WidthScale: 1, HeightScale: 0.85, SlopeTop: 0.35, LidTop: 0.1},
	Determined: {WidthScale: 1, HeightScale: 0.85, SlopeTop: 0.3, LidBottom: 0.15},
	Concerned:  {WidthScale: 1, HeightScale: 0.95, SlopeTop: -0.3, LidTop: 0.1},
	Expectant:  {WidthScale: 1.05, HeightScale: 1.1, OffsetY: -0.05, LidBottom: 0.1},
	Joyful:     {WidthScale: 1, HeightScale: 1, LidBottom: 0.45},
	Loving:     {WidthScale: 1, HeightScale: 0.9, SlopeTop: -0.1, LidBottom: 0.35},
}

// Shape returns the geometry for e; invalid values map to Neutral
func (e Emotion) Shape() Shape {
	if !e.Valid() {
		return Neutral
	}
	return shapes[e]
}

// Scale multiplies every field by k
func (s Shape) Scale(k float64) Shape {
	return Shape{
		WidthScale:  s.WidthScale * k,
		HeightScale: s.HeightScale * k,
		OffsetY:     s.OffsetY * k,
		SlopeTop:    s.SlopeTop * k,
		LidTop:      s.LidTop * k,
		LidBottom:   s.LidBottom * k,
	}
}

// Add sums two shapes field by field
func (s Shape) Add(o Shape) Shape {
	return Shape{
		WidthScale:  s.WidthScale + o.WidthScale,
		HeightScale: s.HeightScale + o.HeightScale,
		OffsetY:     s.OffsetY + o.OffsetY,
		SlopeTop:    s.SlopeTop + o.SlopeTop,
		LidTop:      s.LidTop + o.LidTop,
		LidBottom:   s.LidBottom + o.LidBottom,
	}
}

// LerpShape moves a toward b by t, clamped to [0,1]
func LerpShape(a, b Shape, t float64) Shape {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Scale(1 - t).Add(b.Scale(t))
}
