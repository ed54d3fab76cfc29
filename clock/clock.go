// Package clock supplies millisecond timestamps for hosts that drive a face
package clock

import (
	"sync"
	"time"
)

// Source yields wrapping millisecond timestamps, like an MCU millis() counter
type Source interface {
	Millis() uint32
}

// Monotonic counts milliseconds since creation using the monotonic clock reading
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a monotonic millisecond source starting at zero
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Millis returns milliseconds since creation, truncated to 32 bits
func (m *Monotonic) Millis() uint32 {
	return uint32(time.Since(m.start).Milliseconds())
}

// Mock provides a controllable time source for testing and offline rendering
type Mock struct {
	mu  sync.RWMutex
	now uint32
}

// NewMock creates a mock source at the given timestamp
func NewMock(start uint32) *Mock {
	return &Mock{now: start}
}

// Millis returns the current mocked timestamp
func (m *Mock) Millis() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set sets the current timestamp
func (m *Mock) Set(now uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the timestamp forward, wrapping at 32 bits
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += uint32(d.Milliseconds())
}
