// Package face composes the emotion blender, blink and gaze controllers and
// two eyes into the animated pair driven by Update and Draw
package face

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-eyes/blink"
	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/eye"
	"github.com/lixenwraith/vi-eyes/gaze"
	"github.com/lixenwraith/vi-eyes/surface"
	"github.com/lixenwraith/vi-eyes/timer"
)

// Defaults
const (
	DefaultEyeDistance      = 4
	DefaultBlinkInterval    = 3000
	DefaultLookInterval     = 2000
	DefaultBehaviorInterval = 5000
	DefaultTransitionMillis = 150
)

// Option configures a Face at construction
type Option func(*Face)

// WithLogger sets the logger; expression changes are logged at debug level
func WithLogger(l *zap.Logger) Option {
	return func(f *Face) {
		if l != nil {
			f.log = l
		}
	}
}

// WithRand sets the random source for behavior and gaze
func WithRand(r *rand.Rand) Option {
	return func(f *Face) { f.rng = r }
}

// WithEyeDistance sets the gap added on each side of the screen centre
func WithEyeDistance(d int) Option {
	return func(f *Face) { f.eyeDistance = max(d, 0) }
}

// WithCornerRadius rounds the eye corners
func WithCornerRadius(r int) Option {
	return func(f *Face) { f.cornerRadius = max(r, 0) }
}

// WithColors sets the eye and background draw colors
func WithColors(fg, bg uint16) Option {
	return func(f *Face) { f.fg, f.bg = fg, bg }
}

// WithTransition sets the expression morph duration; 0 switches instantly
func WithTransition(ms uint32) Option {
	return func(f *Face) { f.transitionMillis = ms }
}

// Face is the animation root
// Not safe for concurrent use; Update and Draw run from one loop
type Face struct {
	surface surface.Surface
	log     *zap.Logger
	rng     *rand.Rand

	width        int
	height       int
	eyeSize      int
	eyeDistance  int
	cornerRadius int
	fg, bg       uint16

	blender        *emotion.Blender
	behavior       *timer.Timer
	randomBehavior bool
	expression     emotion.Emotion

	blink *blink.Controller
	gaze  *gaze.Controller
	left  *eye.Eye
	right *eye.Eye

	// Expression morph
	shape            emotion.Shape
	from             emotion.Shape
	target           emotion.Shape
	transitionStart  uint32
	transitionMillis uint32

	now uint32
}

// New creates a face of the given screen size and eye size drawing on s
// A nil s draws nowhere until SetSurface binds one
func New(s surface.Surface, width, height, eyeSize int, opts ...Option) *Face {
	f := &Face{
		surface:          surface.OrNop(s),
		log:              zap.NewNop(),
		width:            max(width, 1),
		height:           max(height, 1),
		eyeSize:          max(eyeSize, 1),
		eyeDistance:      DefaultEyeDistance,
		fg:               surface.ColorOn,
		bg:               surface.ColorOff,
		blender:          emotion.NewBlender(),
		behavior:         timer.New(DefaultBehaviorInterval),
		randomBehavior:   true,
		expression:       emotion.Normal,
		blink:            blink.New(DefaultBlinkInterval),
		gaze:             gaze.New(DefaultLookInterval, 0, 0),
		left:             eye.New(eye.Left),
		right:            eye.New(eye.Right),
		shape:            emotion.Neutral,
		from:             emotion.Neutral,
		target:           emotion.Neutral,
		transitionMillis: DefaultTransitionMillis,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.gaze.SetRand(f.rng)
	f.updateGazeRange()
	return f
}

// updateGazeRange keeps fully deflected eyes on screen
func (f *Face) updateGazeRange() {
	half := f.eyeSize/2 + f.eyeDistance
	roomX := f.width/2 - half - f.eyeSize/2
	roomY := (f.height - f.eyeSize) / 2
	f.gaze.SetMaxOffset(min(roomX, f.eyeSize), min(roomY, f.eyeSize/2))
}

// ===== FRAME =====

// Update advances behavior, blink, gaze and the expression morph to now
func (f *Face) Update(now uint32) {
	f.now = now

	if f.randomBehavior {
		if !f.behavior.Running() {
			f.express(f.dominant())
		}
		if f.behavior.Tick(now) {
			f.express(f.blender.Sample(f.rng))
		}
	} else {
		f.express(f.dominant())
	}

	f.blink.Tick(now)
	f.gaze.Tick(now)
	f.morph(now)
}

func (f *Face) dominant() emotion.Emotion {
	e, _ := f.blender.Dominant()
	return e
}

func (f *Face) express(e emotion.Emotion) {
	if e == f.expression {
		return
	}
	f.log.Debug("expression changed",
		zap.Stringer("from", f.expression),
		zap.Stringer("to", e))
	f.expression = e
}

// targetShape is the sampled expression in random mode, the full blend otherwise
func (f *Face) targetShape() emotion.Shape {
	if f.randomBehavior {
		return f.expression.Shape()
	}
	return f.blender.Blend()
}

func (f *Face) morph(now uint32) {
	if t := f.targetShape(); t != f.target {
		f.from = f.shape
		f.target = t
		f.transitionStart = now
	}
	if f.transitionMillis == 0 {
		f.shape = f.target
		return
	}
	progress := float64(now-f.transitionStart) / float64(f.transitionMillis)
	f.shape = emotion.LerpShape(f.from, f.target, progress)
}

// Input returns the per-eye state Draw renders from
func (f *Face) Input() eye.Input {
	dx, dy := f.gaze.Offset()
	return eye.Input{
		ScreenWidth:  f.width,
		ScreenHeight: f.height,
		EyeSize:      f.eyeSize,
		EyeDistance:  f.eyeDistance,
		CornerRadius: f.cornerRadius,
		Shape:        f.shape,
		OpenFraction: f.blink.EyeOpenFraction(f.now),
		GazeDX:       dx,
		GazeDY:       dy,
		Foreground:   f.fg,
		Background:   f.bg,
	}
}

// Draw renders both eyes, left first; it never clears or presents
func (f *Face) Draw() {
	in := f.Input()
	f.left.Draw(f.surface, in)
	f.right.Draw(f.surface, in)
}

// ===== STATE =====

func (f *Face) Surface() surface.Surface        { return f.surface }
func (f *Face) Blender() *emotion.Blender       { return f.blender }
func (f *Face) Blink() *blink.Controller        { return f.blink }
func (f *Face) Gaze() *gaze.Controller          { return f.gaze }
func (f *Face) BehaviorTimer() *timer.Timer     { return f.behavior }
func (f *Face) Eyes() (left, right *eye.Eye)    { return f.left, f.right }
func (f *Face) Expression() emotion.Emotion     { return f.expression }
func (f *Face) Shape() emotion.Shape            { return f.shape }
func (f *Face) ScreenSize() (width, height int) { return f.width, f.height }
func (f *Face) EyeSize() int                    { return f.eyeSize }
func (f *Face) EyeDistance() int                { return f.eyeDistance }
func (f *Face) CornerRadius() int               { return f.cornerRadius }
func (f *Face) Now() uint32                     { return f.now }

// RandomBehavior reports whether the behavior timer samples expressions
func (f *Face) RandomBehavior() bool { return f.randomBehavior }

// ===== CONTROL =====

// SetSurface binds the draw target; nil unbinds it
func (f *Face) SetSurface(s surface.Surface) {
	f.surface = surface.OrNop(s)
}

// SetEmotion upserts an emotion weight; see emotion.Blender.SetEmotion
func (f *Face) SetEmotion(e emotion.Emotion, weight float64) {
	f.blender.SetEmotion(e, weight)
}

func (f *Face) LookAt(x, y float64) { f.gaze.LookAt(x, y) }
func (f *Face) LookLeft()           { f.gaze.LookLeft() }
func (f *Face) LookRight()          { f.gaze.LookRight() }
func (f *Face) LookTop()            { f.gaze.LookTop() }
func (f *Face) LookBottom()         { f.gaze.LookBottom() }
func (f *Face) LookFront()          { f.gaze.LookFront() }

// DoBlink starts a blink at the last Update time
func (f *Face) DoBlink() bool {
	return f.blink.DoBlink(f.now)
}

// EnableRandomBehavior toggles sampled expressions
// Re-enabling restarts the behavior interval from the next Update
func (f *Face) EnableRandomBehavior(enabled bool) {
	if enabled && !f.randomBehavior {
		f.behavior.Reset()
	}
	f.randomBehavior = enabled
}

func (f *Face) EnableRandomBlink(enabled bool) { f.blink.SetRandom(enabled) }
func (f *Face) EnableRandomLook(enabled bool)  { f.gaze.SetRandom(enabled) }

func (f *Face) SetBlinkInterval(ms uint32)    { f.blink.SetInterval(ms) }
func (f *Face) SetLookInterval(ms uint32)     { f.gaze.Timer().SetIntervalMillis(ms) }
func (f *Face) SetBehaviorInterval(ms uint32) { f.behavior.SetIntervalMillis(ms) }

// SetBlinkVariation adds up to ms random delay to each blink interval
func (f *Face) SetBlinkVariation(ms uint32) { f.blink.SetVariation(ms, f.rng) }

// SetScreenSize clamps each dimension to at least 1
func (f *Face) SetScreenSize(width, height int) {
	f.width, f.height = max(width, 1), max(height, 1)
	f.updateGazeRange()
}

// SetEyeSize clamps to at least 1
func (f *Face) SetEyeSize(size int) {
	f.eyeSize = max(size, 1)
	f.updateGazeRange()
}

// SetEyeDistance clamps to at least 0
func (f *Face) SetEyeDistance(d int) {
	f.eyeDistance = max(d, 0)
	f.updateGazeRange()
}

func (f *Face) SetCornerRadius(r int)   { f.cornerRadius = max(r, 0) }
func (f *Face) SetColors(fg, bg uint16) { f.fg, f.bg = fg, bg }
func (f *Face) SetTransition(ms uint32) { f.transitionMillis = ms }
