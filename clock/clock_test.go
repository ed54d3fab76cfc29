package clock

import (
	"math"
	"testing"
	"time"
)

func TestMonotonic(t *testing.T) {
	src := NewMonotonic()

	t1 := src.Millis()
	time.Sleep(15 * time.Millisecond)
	t2 := src.Millis()

	if t2-t1 < 10 {
		t.Errorf("Expected at least 10ms difference, got %d", t2-t1)
	}
}

func TestMock(t *testing.T) {
	mock := NewMock(100)
	if got := mock.Millis(); got != 100 {
		t.Fatalf("Expected initial 100, got %d", got)
	}

	mock.Set(5000)
	if got := mock.Millis(); got != 5000 {
		t.Errorf("Expected 5000 after Set, got %d", got)
	}

	mock.Advance(50 * time.Millisecond)
	mock.Advance(2 * time.Second)
	if got := mock.Millis(); got != 7050 {
		t.Errorf("Expected 7050 after advances, got %d", got)
	}
}

func TestMockWraps(t *testing.T) {
	mock := NewMock(math.MaxUint32 - 9)
	mock.Advance(20 * time.Millisecond)
	if got := mock.Millis(); got != 10 {
		t.Errorf("Expected wrapped timestamp 10, got %d", got)
	}
}
