// Package host runs the face on a fixed frame schedule against one surface
//
// Each frame is Update, Clear, Draw, Present. The host never sleeps; the caller
// passes the current millisecond timestamp to Loop as often as it likes
package host

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-eyes/emotion"
	"github.com/lixenwraith/vi-eyes/face"
	"github.com/lixenwraith/vi-eyes/surface"
	"github.com/lixenwraith/vi-eyes/timer"
)

// DefaultFrameInterval is ~20 FPS
const DefaultFrameInterval = 50

// Settings is the full host and face configuration
type Settings struct {
	ScreenWidth  int
	ScreenHeight int
	EyeSize      int
	EyeDistance  int
	CornerRadius int

	FrameInterval    uint32
	BlinkInterval    uint32
	BlinkVariation   uint32
	LookInterval     uint32
	BehaviorInterval uint32
	TransitionMillis uint32

	RandomBehavior bool
	RandomBlink    bool
	RandomLook     bool

	// Emotions seeds the blender; empty uses DefaultEmotions
	Emotions []emotion.Weight

	// Seed fixes the random source; 0 uses the global source
	Seed uint64
}

// DefaultEmotions are applied when no emotions are configured
var DefaultEmotions = []emotion.Weight{
	{Emotion: emotion.Normal, Weight: 1.0},
	{Emotion: emotion.Happy, Weight: 0.5},
	{Emotion: emotion.Sad, Weight: 0.3},
}

// DefaultSettings matches a 128x64 SSD1306 panel
func DefaultSettings() Settings {
	return Settings{
		ScreenWidth:      int(surface.DefaultWidth),
		ScreenHeight:     int(surface.DefaultHeight),
		EyeSize:          20,
		EyeDistance:      face.DefaultEyeDistance,
		FrameInterval:    DefaultFrameInterval,
		BlinkInterval:    face.DefaultBlinkInterval,
		LookInterval:     face.DefaultLookInterval,
		BehaviorInterval: face.DefaultBehaviorInterval,
		TransitionMillis: face.DefaultTransitionMillis,
		RandomBehavior:   true,
		RandomBlink:      true,
		RandomLook:       true,
	}
}

// Host owns the face, its surface and the frame timer
type Host struct {
	settings Settings
	surface  surface.Surface
	face     *face.Face
	frame    *timer.Timer
	log      *zap.Logger

	frames         uint64
	presentFailing bool
}

// New creates an unstarted host; call Setup before Loop
// A nil surface is bound later with Bind; a nil logger discards output
func New(s surface.Surface, st Settings, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	if st.FrameInterval == 0 {
		st.FrameInterval = DefaultFrameInterval
	}
	return &Host{
		settings: st,
		surface:  surface.OrNop(s),
		frame:    timer.New(st.FrameInterval),
		log:      log.Named("host"),
	}
}

// Setup builds the face from the settings and seeds the emotions
func (h *Host) Setup() {
	st := h.settings

	opts := []face.Option{
		face.WithLogger(h.log.Named("face")),
		face.WithEyeDistance(st.EyeDistance),
		face.WithCornerRadius(st.CornerRadius),
		face.WithTransition(st.TransitionMillis),
	}
	if st.Seed != 0 {
		opts = append(opts, face.WithRand(rand.New(rand.NewPCG(st.Seed, st.Seed))))
	}
	f := face.New(h.surface, st.ScreenWidth, st.ScreenHeight, st.EyeSize, opts...)

	f.SetBlinkInterval(st.BlinkInterval)
	f.SetBlinkVariation(st.BlinkVariation)
	f.SetLookInterval(st.LookInterval)
	f.SetBehaviorInterval(st.BehaviorInterval)
	f.EnableRandomBehavior(st.RandomBehavior)
	f.EnableRandomBlink(st.RandomBlink)
	f.EnableRandomLook(st.RandomLook)

	emotions := h.emotions()
	for _, w := range emotions {
		f.SetEmotion(w.Emotion, w.Weight)
	}

	h.face = f
	h.frame.Reset()
	h.frames = 0
	h.log.Info("setup complete",
		zap.Int("width", st.ScreenWidth),
		zap.Int("height", st.ScreenHeight),
		zap.Int("emotions", len(emotions)))
}

// Loop runs a frame when the frame interval has elapsed
// The first call after Setup always renders. Reports whether a frame ran
func (h *Host) Loop(now uint32) bool {
	if h.face == nil {
		return false
	}
	if !h.frame.Running() {
		h.frame.Start(now)
		h.Frame(now)
		return true
	}
	if !h.frame.Tick(now) {
		return false
	}
	h.Frame(now)
	return true
}

// Frame unconditionally renders one frame at now
func (h *Host) Frame(now uint32) {
	if h.face == nil {
		return
	}
	h.face.Update(now)
	h.surface.Clear()
	h.face.Draw()
	h.present()
	h.frames++
}

// present logs a failing display once per failure streak
func (h *Host) present() {
	err := h.surface.Present()
	switch {
	case err != nil && !h.presentFailing:
		h.presentFailing = true
		h.log.Warn("present failed; continuing", zap.Error(err))
	case err == nil && h.presentFailing:
		h.presentFailing = false
		h.log.Info("present recovered")
	}
}

// Bind replaces the surface; nil unbinds it
func (h *Host) Bind(s surface.Surface) {
	h.surface = surface.OrNop(s)
	if h.face != nil {
		h.face.SetSurface(h.surface)
	}
}

// SetFrameInterval changes the frame period; 0 is raised to 1
func (h *Host) SetFrameInterval(ms uint32) {
	ms = max(ms, 1)
	h.settings.FrameInterval = ms
	h.frame.SetIntervalMillis(ms)
}

func (h *Host) Face() *face.Face         { return h.face }
func (h *Host) Surface() surface.Surface { return h.surface }
func (h *Host) Settings() Settings       { return h.settings }
func (h *Host) Frames() uint64           { return h.frames }
func (h *Host) FrameInterval() uint32    { return h.frame.IntervalMillis() }
func (h *Host) PresentFailing() bool     { return h.presentFailing }
func (h *Host) Logger() *zap.Logger      { return h.log }

// emotions returns the configured weights, DefaultEmotions when none are set
func (h *Host) emotions() []emotion.Weight {
	if len(h.settings.Emotions) == 0 {
		return DefaultEmotions
	}
	return h.settings.Emotions
}

// DumpConfig logs the effective configuration
func (h *Host) DumpConfig() {
	st := h.settings
	// The blender holds what was seeded, including DefaultEmotions
	weights := h.emotions()
	if h.face != nil {
		weights = h.face.Blender().Weights()
	}
	names := make([]string, 0, len(weights))
	for _, w := range weights {
		names = append(names, fmt.Sprintf("%s=%g", w.Emotion, w.Weight))
	}
	h.log.Info("vi-eyes config",
		zap.Int("screen_width", st.ScreenWidth),
		zap.Int("screen_height", st.ScreenHeight),
		zap.Int("eye_size", st.EyeSize),
		zap.Int("eye_distance", st.EyeDistance),
		zap.Int("corner_radius", st.CornerRadius),
		zap.Uint32("frame_interval", h.frame.IntervalMillis()),
		zap.Uint32("blink_interval", st.BlinkInterval),
		zap.Uint32("look_interval", st.LookInterval),
		zap.Uint32("behavior_interval", st.BehaviorInterval),
		zap.Bool("random_behavior", st.RandomBehavior),
		zap.Bool("random_blink", st.RandomBlink),
		zap.Bool("random_look", st.RandomLook),
		zap.Strings("emotions", names),
		zap.Uint16("surface_width", h.surface.Width()),
		zap.Uint16("surface_height", h.surface.Height()),
	)
}
