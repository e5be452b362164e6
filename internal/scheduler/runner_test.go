package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalNext(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trig := Interval{Every: 5 * time.Minute}

	next := trig.Next(base)
	if want := base.Add(5 * time.Minute); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestDailyAtNext(t *testing.T) {
	trig := DailyAt{Hour: 8, Minute: 0, Loc: time.UTC}

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
	}{
		{
			"before today's firing",
			time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			"after today's firing rolls to tomorrow",
			time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			"exactly at firing time rolls to tomorrow",
			time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trig.Next(tt.after); !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.after, got, tt.want)
			}
		})
	}
}

func TestRunnerFiresAndShutsDown(t *testing.T) {
	var fired atomic.Int32

	r := NewRunner(testLogger(t))
	r.Add("tick", Interval{Every: 10 * time.Millisecond}, func(ctx context.Context) {
		fired.Add(1)
	})
	r.Start()

	time.Sleep(60 * time.Millisecond)
	r.Shutdown()
	count := fired.Load()

	if count == 0 {
		t.Fatal("job never fired")
	}

	// no further firings after shutdown
	time.Sleep(30 * time.Millisecond)
	if fired.Load() != count {
		t.Error("job fired after Shutdown")
	}
}

func TestRunnerShutdownDrainsInFlight(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool

	r := NewRunner(testLogger(t))
	r.Add("slow", Interval{Every: 5 * time.Millisecond}, func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	r.Start()

	<-started
	r.Shutdown()

	if !finished.Load() {
		t.Error("Shutdown returned before the in-flight firing completed")
	}
}
