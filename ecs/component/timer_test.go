package component

import (
	"testing"
	"time"
)

const tick = 100 * time.Millisecond

func TestTimerOnce(t *testing.T) {
	tm := NewTimer(300*time.Millisecond, TimerOnce)
	for i := 1; i <= 5; i++ {
		tm.Tick(tick)
		switch {
		case i < 3:
			if tm.Finished() || tm.JustFinished() {
				t.Fatalf("tick %d: finished too early", i)
			}
		case i == 3:
			if !tm.Finished() || !tm.JustFinished() {
				t.Fatalf("tick %d: expected just finished", i)
			}
		default:
			if !tm.Finished() || tm.JustFinished() {
				t.Fatalf("tick %d: expected finished without edge", i)
			}
			if tm.Elapsed() != tm.Duration {
				t.Fatalf("tick %d: elapsed %v should clamp to %v", i, tm.Elapsed(), tm.Duration)
			}
		}
	}

	tm.Reset()
	if tm.Finished() || tm.Elapsed() != 0 || tm.Remaining() != tm.Duration {
		t.Fatalf("reset should restore full duration, got elapsed=%v", tm.Elapsed())
	}
}

func TestTimerRepeating(t *testing.T) {
	cases := []struct {
		name      string
		duration  time.Duration
		dt        time.Duration
		ticks     int
		wantEdges int
	}{
		{"one_period_per_seven_ticks", 700 * time.Millisecond, tick, 21, 3},
		{"exact_multiple", 200 * time.Millisecond, tick, 10, 5},
		{"zero_duration_every_tick", 0, tick, 4, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tm := NewTimer(c.duration, TimerRepeating)
			edges := 0
			for i := 0; i < c.ticks; i++ {
				tm.Tick(c.dt)
				if tm.JustFinished() {
					edges++
					if !tm.Finished() {
						t.Fatalf("repeating timer must report finished on its wrap tick")
					}
				} else if tm.Finished() {
					t.Fatalf("repeating timer finished without wrapping")
				}
				if c.duration > 0 && (tm.Elapsed() < 0 || tm.Elapsed() >= c.duration) {
					t.Fatalf("elapsed %v escaped [0,%v)", tm.Elapsed(), c.duration)
				}
			}
			if edges != c.wantEdges {
				t.Fatalf("expected %d edges, got %d", c.wantEdges, edges)
			}
		})
	}
}

func TestTimerRepeatingMultiplePeriods(t *testing.T) {
	tm := NewTimer(100*time.Millisecond, TimerRepeating)
	tm.Tick(350 * time.Millisecond)
	if tm.TimesFinishedThisTick() != 3 {
		t.Fatalf("expected 3 periods, got %d", tm.TimesFinishedThisTick())
	}
	if tm.Elapsed() != 50*time.Millisecond {
		t.Fatalf("expected 50ms carried over, got %v", tm.Elapsed())
	}
}

func TestTimerPaused(t *testing.T) {
	tm := NewPausedTimer(150*time.Millisecond, TimerOnce)
	for i := 0; i < 10; i++ {
		tm.Tick(tick)
	}
	if tm.Elapsed() != 0 || tm.Finished() || tm.JustFinished() {
		t.Fatalf("paused timer must not advance")
	}
	tm.Unpause()
	tm.Tick(tick)
	tm.Tick(tick)
	if !tm.JustFinished() {
		t.Fatalf("expected flash timer to finish after unpause")
	}
}

func TestTriggerArmsAndFires(t *testing.T) {
	t.Run("zero_cooldown_stays_armed", func(t *testing.T) {
		tr := NewTrigger(0)
		for i := 0; i < 1000; i++ {
			if tr.Advance(tick, false) {
				t.Fatalf("fired without attack at tick %d", i)
			}
			if !tr.Armed {
				t.Fatalf("expected armed at tick %d", i)
			}
		}
		if !tr.Advance(tick, true) {
			t.Fatalf("armed trigger should fire on attack edge")
		}
		if tr.Armed {
			t.Fatalf("firing must disarm")
		}
	})

	t.Run("fire_resets_full_cooldown", func(t *testing.T) {
		tr := NewTrigger(time.Second)
		for i := 0; i < 9; i++ {
			if tr.Advance(tick, true) {
				t.Fatalf("fired before cooldown at tick %d", i)
			}
		}
		if tr.Armed {
			t.Fatalf("should not be armed before cooldown elapses")
		}
		tr.Advance(tick, false)
		if !tr.Armed {
			t.Fatalf("expected armed once cooldown elapsed")
		}
		if !tr.Advance(tick, true) {
			t.Fatalf("expected fire")
		}
		if tr.Cooldown.Remaining() != time.Second {
			t.Fatalf("expected full cooldown after firing, got %v", tr.Cooldown.Remaining())
		}
	})
}
