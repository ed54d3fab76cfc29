package timer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_FiresOncePerInterval(t *testing.T) {
	tm := New(100)

	assert.False(t, tm.Tick(0), "first tick primes")
	assert.True(t, tm.Running())

	assert.False(t, tm.Tick(50))
	assert.False(t, tm.Tick(99))
	assert.True(t, tm.Tick(100))
	assert.False(t, tm.Tick(100), "same timestamp must not fire twice")
	assert.False(t, tm.Tick(199))
	assert.True(t, tm.Tick(200))
}

func TestTick_ResetsToNowNotBoundary(t *testing.T) {
	tm := New(100)
	tm.Start(0)

	// Late tick: reference moves to 250, not 200
	require.True(t, tm.Tick(250))
	assert.False(t, tm.Tick(300))
	assert.False(t, tm.Tick(349))
	assert.True(t, tm.Tick(350))
}

func TestTick_ZeroIntervalDisables(t *testing.T) {
	tm := New(0)
	tm.Start(0)
	for now := uint32(0); now < 10000; now += 500 {
		if tm.Tick(now) {
			t.Fatalf("disabled timer fired at %d", now)
		}
	}

	tm.SetIntervalMillis(1000)
	assert.True(t, tm.Tick(10000))
}

func TestTick_WrapAround(t *testing.T) {
	tm := New(100)
	start := uint32(math.MaxUint32 - 40)
	tm.Start(start)

	// 60ms elapsed across the wrap
	assert.False(t, tm.Tick(19))
	assert.Equal(t, uint32(60), tm.Elapsed(19))

	// 100ms elapsed across the wrap
	assert.True(t, tm.Tick(59))
	assert.Equal(t, uint32(0), tm.Elapsed(59))
}

func TestTick_NoFireWithinInterval(t *testing.T) {
	// For any fire at f, ticks in (f, f+interval) never fire
	intervals := []uint32{1, 7, 50, 3000}
	for _, iv := range intervals {
		tm := New(iv)
		tm.Start(0)
		var lastFire uint32
		fired := false
		for now := uint32(1); now < 20*iv+5; now++ {
			if tm.Tick(now) {
				if fired && now-lastFire < iv {
					t.Fatalf("interval %d: fired at %d, last fire %d", iv, now, lastFire)
				}
				lastFire = now
				fired = true
			}
		}
		assert.True(t, fired, "interval %d never fired", iv)
	}
}

func TestReset(t *testing.T) {
	tm := New(10)
	tm.Start(0)
	tm.Reset()
	assert.False(t, tm.Running())
	assert.Equal(t, uint32(0), tm.Elapsed(500))
	assert.False(t, tm.Tick(500), "reset timer re-primes")
	assert.True(t, tm.Tick(510))
}
