package clock

import (
	"testing"
	"time"
)

func TestElapsedProportion(t *testing.T) {
	tests := []struct {
		name     string
		start    Tick
		duration time.Duration
		now      Tick
		want     float64
	}{
		{"at start", 1000, 2000 * time.Millisecond, 1000, 0},
		{"halfway", 1000, 2000 * time.Millisecond, 2000, 0.5},
		{"complete", 1000, 2000 * time.Millisecond, 3000, 1.0},
		{"overshoot clamps", 1000, 2000 * time.Millisecond, 9000, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElapsedProportion(tt.start, tt.duration, tt.now)
			if got != tt.want {
				t.Errorf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	if !IsDue(1000, 200*time.Millisecond, 1200) {
		t.Error("expected due at exact boundary")
	}
	if IsDue(1000, 200*time.Millisecond, 1199) {
		t.Error("expected not due before boundary")
	}
}

func TestLongBoundary(t *testing.T) {
	last := Tick(LongTickMillis - 1)
	now := Tick(LongTickMillis + 1)
	if !LongBoundary(last, now) {
		t.Error("expected boundary crossing")
	}
	if LongBoundary(100, 200) {
		t.Error("did not expect boundary crossing within same period")
	}
}
