// Package timer provides an interval countdown keyed on caller-supplied
// millisecond timestamps. It owns no goroutines and never reads the wall clock
package timer

// Timer fires once per elapsed interval
// Timestamps are uint32 milliseconds and may wrap; elapsed time is always computed
// with unsigned subtraction so a wrapped timestamp still measures correctly
type Timer struct {
	interval    uint32
	lastFiredAt uint32
	running     bool
}

// New creates a stopped timer with the given interval
func New(intervalMillis uint32) *Timer {
	return &Timer{interval: intervalMillis}
}

// SetIntervalMillis reconfigures the period, 0 disables firing
// The reference point is kept so a shortened interval may fire on the next tick
func (t *Timer) SetIntervalMillis(ms uint32) {
	t.interval = ms
}

// IntervalMillis returns the configured period
func (t *Timer) IntervalMillis() uint32 {
	return t.interval
}

// Start sets the reference point to now
func (t *Timer) Start(now uint32) {
	t.lastFiredAt = now
	t.running = true
}

// Reset stops the timer; the next Tick re-primes it
func (t *Timer) Reset() {
	t.running = false
	t.lastFiredAt = 0
}

// Running reports whether a reference point is set
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns milliseconds since the last fire or start, 0 when not running
func (t *Timer) Elapsed(now uint32) uint32 {
	if !t.running {
		return 0
	}
	return now - t.lastFiredAt
}

// Tick returns true when at least one interval has elapsed since the reference
// point and moves the reference to now. A timer that is not running primes itself
// and returns false
func (t *Timer) Tick(now uint32) bool {
	if !t.running {
		t.Start(now)
		return false
	}
	if t.interval == 0 {
		return false
	}
	if now-t.lastFiredAt < t.interval {
		return false
	}
	t.lastFiredAt = now
	return true
}
