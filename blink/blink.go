// Package blink drives the eyelid close/open cycle
//
// Open → Closing → Closed → Opening → Open. Phase durations are independent of the
// random blink interval; a blink in progress is never restarted
package blink

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/vi-eyes/timer"
)

// Phase is one step of the eyelid cycle
type Phase uint8

const (
	Open Phase = iota
	Closing
	Closed
	Opening
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	default:
		return "unknown"
	}
}

func (p Phase) next() Phase {
	if p == Opening {
		return Open
	}
	return p + 1
}

// Durations of the transient phases in milliseconds
type Durations struct {
	Closing uint32
	Closed  uint32
	Opening uint32
}

// DefaultDurations is a quick ~180ms blink
var DefaultDurations = Durations{Closing: 60, Closed: 40, Opening: 80}

// Cycle is the total time from leaving Open to returning to it
func (d Durations) Cycle() uint32 {
	return d.Closing + d.Closed + d.Opening
}

func (d Durations) of(p Phase) uint32 {
	switch p {
	case Closing:
		return d.Closing
	case Closed:
		return d.Closed
	case Opening:
		return d.Opening
	default:
		return 0
	}
}

// Controller owns the blink sub-state machine and the random blink timer
type Controller struct {
	phase          Phase
	phaseStartedAt uint32
	durations      Durations

	timer     *timer.Timer
	random    bool
	interval  uint32
	variation uint32
	rng       *rand.Rand
}

// New creates an open-eyed controller with random blinking every intervalMillis
func New(intervalMillis uint32) *Controller {
	return &Controller{
		phase:     Open,
		durations: DefaultDurations,
		timer:     timer.New(intervalMillis),
		random:    true,
		interval:  intervalMillis,
	}
}

// Phase returns the phase as of the last Tick or DoBlink
func (c *Controller) Phase() Phase {
	return c.phase
}

// Blinking reports whether a cycle is in progress
func (c *Controller) Blinking() bool {
	return c.phase != Open
}

// Timer exposes the random blink timer
func (c *Controller) Timer() *timer.Timer {
	return c.timer
}

// SetRandom toggles automatic blinking
// Re-enabling restarts the interval from the next Tick
func (c *Controller) SetRandom(enabled bool) {
	if enabled && !c.random {
		c.timer.Reset()
	}
	c.random = enabled
}

// Random reports whether automatic blinking is enabled
func (c *Controller) Random() bool {
	return c.random
}

// SetInterval sets the base random blink interval; 0 disables random blinks
func (c *Controller) SetInterval(ms uint32) {
	c.interval = ms
	c.timer.SetIntervalMillis(ms)
}

// Interval returns the base random blink interval
func (c *Controller) Interval() uint32 {
	return c.interval
}

// SetVariation adds up to ms of random extra delay to each blink interval
// A nil r uses the global source
func (c *Controller) SetVariation(ms uint32, r *rand.Rand) {
	c.variation = ms
	c.rng = r
}

// SetDurations replaces the phase durations
func (c *Controller) SetDurations(d Durations) {
	c.durations = d
}

// Durations returns the phase durations
func (c *Controller) Durations() Durations {
	return c.durations
}

// at resolves the phase and its start time at now without mutating state
// Several phases may complete in one step; each start advances by its duration
func (c *Controller) at(now uint32) (Phase, uint32) {
	phase, start := c.phase, c.phaseStartedAt
	for phase != Open {
		d := c.durations.of(phase)
		if now-start < d {
			break
		}
		start += d
		phase = phase.next()
	}
	return phase, start
}

// Tick advances the cycle and fires a random blink when due
func (c *Controller) Tick(now uint32) {
	c.phase, c.phaseStartedAt = c.at(now)
	if c.phase != Open || !c.random {
		return
	}
	if c.timer.Tick(now) {
		c.begin(now)
		c.rearm()
	}
}

func (c *Controller) rearm() {
	if c.variation == 0 || c.interval == 0 {
		return
	}
	var extra uint32
	switch {
	case c.variation == math.MaxUint32 && c.rng != nil:
		extra = c.rng.Uint32()
	case c.variation == math.MaxUint32:
		extra = rand.Uint32()
	case c.rng != nil:
		extra = c.rng.Uint32N(c.variation + 1)
	default:
		extra = rand.Uint32N(c.variation + 1)
	}
	// Saturate instead of wrapping to a short interval
	extra = min(extra, math.MaxUint32-c.interval)
	c.timer.SetIntervalMillis(c.interval + extra)
}

func (c *Controller) begin(now uint32) {
	c.phase = Closing
	c.phaseStartedAt = now
}

// DoBlink starts a blink at now
// Returns false and leaves the cycle untouched when a blink is already running
func (c *Controller) DoBlink(now uint32) bool {
	c.phase, c.phaseStartedAt = c.at(now)
	if c.phase != Open {
		return false
	}
	c.begin(now)
	return true
}

// EyeOpenFraction returns how open the lids are at now, in [0,1]
func (c *Controller) EyeOpenFraction(now uint32) float64 {
	phase, start := c.at(now)
	elapsed := float64(now - start)

	var f float64
	switch phase {
	case Open:
		return 1
	case Closing:
		f = 1 - elapsed/float64(c.durations.Closing)
	case Closed:
		return 0
	case Opening:
		f = elapsed / float64(c.durations.Opening)
	}
	return min(max(f, 0), 1)
}
