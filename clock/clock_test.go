package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestClockSetTime(t *testing.T) {
	c := New(epoch, 1)
	newNow := epoch.Add(42 * time.Second)
	c.SetTime(newNow)
	if got := c.Now(); !got.Equal(newNow) {
		t.Fatalf("Now() = %v, want %v", got, newNow)
	}
}

func TestClockAdvance(t *testing.T) {
	c := New(epoch, 1)
	wall := epoch.Add(time.Hour)

	if got := c.Advance(wall); !got.Equal(epoch) {
		t.Fatalf("first Advance = %v, want start %v", got, epoch)
	}
	if got := c.Advance(wall.Add(250 * time.Millisecond)); !got.Equal(epoch.Add(250 * time.Millisecond)) {
		t.Errorf("Advance = %v, want +250ms", got)
	}

	c.SetMultiplier(60)
	if got := c.Advance(wall.Add(1250 * time.Millisecond)); !got.Equal(epoch.Add(60250 * time.Millisecond)) {
		t.Errorf("accelerated Advance = %v, want +60.25s", got)
	}

	c.SetMultiplier(0)
	before := c.Now()
	if got := c.Advance(wall.Add(time.Minute)); !got.Equal(before) {
		t.Errorf("paused Advance = %v, want %v", got, before)
	}
}

func TestClockSync(t *testing.T) {
	tests := []struct {
		name    string
		drift   time.Duration
		snapped bool
	}{
		{"in sync", 0, false},
		{"ahead within threshold", 400 * time.Millisecond, false},
		{"exactly at threshold", 500 * time.Millisecond, false},
		{"behind exactly at threshold", -500 * time.Millisecond, false},
		{"ahead past threshold", 501 * time.Millisecond, true},
		{"behind past threshold", -2 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(epoch.Add(tt.drift), 1)
			got := c.Sync(epoch)
			if got != tt.snapped {
				t.Fatalf("Sync = %v, want %v", got, tt.snapped)
			}
			want := epoch.Add(tt.drift)
			if tt.snapped {
				want = epoch
			}
			if !c.Now().Equal(want) {
				t.Errorf("Now() = %v, want %v", c.Now(), want)
			}
		})
	}
}

func TestClockSyncCustomThreshold(t *testing.T) {
	c := New(epoch.Add(100*time.Millisecond), 1)
	c.Threshold = 50 * time.Millisecond
	if !c.Sync(epoch) {
		t.Fatal("Sync did not snap past a custom threshold")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := Run(ctx, time.Millisecond, func(time.Time) {
		ticks++
		if ticks >= 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if ticks < 3 {
		t.Errorf("ticks = %d, want at least 3", ticks)
	}
}
