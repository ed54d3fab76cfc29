// Package gaze moves the eyes toward a target direction in normalized socket space
package gaze

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/vi-eyes/timer"
)

const (
	// DefaultSmoothing is the fraction of the remaining distance covered per tick
	DefaultSmoothing = 0.35
	// snapDistance ends the approach once an axis is visually at rest
	snapDistance = 0.002
)

// Vec is a direction in [-1,1]² with x right and y down
type Vec struct {
	X, Y float64
}

// Presets
var (
	Left   = Vec{X: -1, Y: 0}
	Right  = Vec{X: 1, Y: 0}
	Top    = Vec{X: 0, Y: -1}
	Bottom = Vec{X: 0, Y: 1}
	Front  = Vec{X: 0, Y: 0}
)

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, -1), 1)
}

// Clamp limits both axes to [-1,1]; NaN becomes 0
func (v Vec) Clamp() Vec {
	return Vec{X: clampUnit(v.X), Y: clampUnit(v.Y)}
}

// Controller owns current and target gaze plus the random look timer
type Controller struct {
	current Vec
	target  Vec

	smoothing float64
	maxDX     int
	maxDY     int

	timer  *timer.Timer
	random bool
	rng    *rand.Rand
}

// New creates a centred controller with random looks every intervalMillis
func New(intervalMillis uint32, maxDX, maxDY int) *Controller {
	c := &Controller{
		smoothing: DefaultSmoothing,
		timer:     timer.New(intervalMillis),
		random:    true,
	}
	c.SetMaxOffset(maxDX, maxDY)
	return c
}

// LookAt replaces the target; current keeps approaching smoothly
func (c *Controller) LookAt(x, y float64) {
	c.target = Vec{X: x, Y: y}.Clamp()
}

// Look sets the target to a preset direction
func (c *Controller) Look(v Vec) {
	c.LookAt(v.X, v.Y)
}

func (c *Controller) LookLeft()   { c.Look(Left) }
func (c *Controller) LookRight()  { c.Look(Right) }
func (c *Controller) LookTop()    { c.Look(Top) }
func (c *Controller) LookBottom() { c.Look(Bottom) }
func (c *Controller) LookFront()  { c.Look(Front) }

// Current returns the rendered direction
func (c *Controller) Current() Vec { return c.current }

// Target returns the direction being approached
func (c *Controller) Target() Vec { return c.target }

// Timer exposes the random look timer
func (c *Controller) Timer() *timer.Timer { return c.timer }

// SetRandom toggles random looks
func (c *Controller) SetRandom(enabled bool) {
	if enabled && !c.random {
		c.timer.Reset()
	}
	c.random = enabled
}

// Random reports whether random looks are enabled
func (c *Controller) Random() bool { return c.random }

// SetRand sets the source for random targets; nil uses the global source
func (c *Controller) SetRand(r *rand.Rand) { c.rng = r }

// SetSmoothing sets the per-tick approach fraction
// Values outside (0,1] restore DefaultSmoothing
func (c *Controller) SetSmoothing(f float64) {
	if !(f > 0 && f <= 1) {
		f = DefaultSmoothing
	}
	c.smoothing = f
}

// SetMaxOffset sets the pixel displacement at full deflection; negatives become 0
func (c *Controller) SetMaxOffset(dx, dy int) {
	c.maxDX = max(dx, 0)
	c.maxDY = max(dy, 0)
}

// MaxOffset returns the pixel displacement at full deflection
func (c *Controller) MaxOffset() (int, int) {
	return c.maxDX, c.maxDY
}

func (c *Controller) randomUnit() float64 {
	if c.rng != nil {
		return c.rng.Float64()*2 - 1
	}
	return rand.Float64()*2 - 1
}

// Tick picks a random target when due, then moves current toward target
func (c *Controller) Tick(now uint32) {
	if c.random && c.timer.Tick(now) {
		c.LookAt(c.randomUnit(), c.randomUnit())
	}
	c.current.X = c.approach(c.current.X, c.target.X)
	c.current.Y = c.approach(c.current.Y, c.target.Y)
}

// approach is an exponential step; smoothing <= 1 so it never crosses the target
func (c *Controller) approach(cur, target float64) float64 {
	d := target - cur
	if math.Abs(d) < snapDistance {
		return target
	}
	return cur + d*c.smoothing
}

// Offset returns the pixel displacement for the current direction
func (c *Controller) Offset() (dx, dy int) {
	dx = int(math.Round(c.current.X * float64(c.maxDX)))
	dy = int(math.Round(c.current.Y * float64(c.maxDY)))
	return dx, dy
}
