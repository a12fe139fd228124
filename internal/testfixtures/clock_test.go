package testfixtures

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("zero start must use the reference time, got %v", clock.Now())
	}

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(ReferenceTime().Add(90 * time.Minute)) {
		t.Fatalf("unexpected advanced time: %v", updated)
	}
	if !clock.Now().Equal(updated) {
		t.Fatalf("Now must track the advanced time, got %v", clock.Now())
	}

	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(target)
	if !clock.NowFunc()().Equal(target) {
		t.Fatalf("NowFunc must reflect Set, got %v", clock.NowFunc()())
	}
}
