package component

import "time"

type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts simulation time toward Duration.
//
// A Once timer clamps at Duration and stays finished until Reset. A
// Repeating timer wraps and is finished only on the tick it wrapped.
// JustFinished is true only for the Tick call that crossed Duration. A paused
// timer ignores ticks.
type Timer struct {
	Duration time.Duration
	Mode     TimerMode

	elapsed       time.Duration
	paused        bool
	finished      bool
	timesFinished int
}

func NewTimer(d time.Duration, mode TimerMode) Timer {
	if d < 0 {
		d = 0
	}
	return Timer{Duration: d, Mode: mode}
}

// NewPausedTimer returns a timer that does nothing until Unpause.
func NewPausedTimer(d time.Duration, mode TimerMode) Timer {
	t := NewTimer(d, mode)
	t.paused = true
	return t
}

func (t *Timer) Tick(dt time.Duration) *Timer {
	if t == nil {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	if t.paused {
		t.timesFinished = 0
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return t
	}
	if t.Mode == TimerOnce && t.finished {
		t.timesFinished = 0
		return t
	}

	t.elapsed += dt
	if t.elapsed < t.Duration {
		t.timesFinished = 0
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return t
	}

	t.finished = true
	if t.Mode == TimerOnce {
		t.timesFinished = 1
		t.elapsed = t.Duration
		return t
	}
	if t.Duration <= 0 {
		t.timesFinished = 1
		t.elapsed = 0
		return t
	}
	t.timesFinished = int(t.elapsed / t.Duration)
	t.elapsed %= t.Duration
	return t
}

func (t *Timer) JustFinished() bool {
	return t != nil && t.timesFinished > 0
}

func (t *Timer) Finished() bool {
	return t != nil && t.finished
}

// TimesFinishedThisTick reports how many periods the last Tick completed.
func (t *Timer) TimesFinishedThisTick() int {
	if t == nil {
		return 0
	}
	return t.timesFinished
}

func (t *Timer) Elapsed() time.Duration {
	if t == nil {
		return 0
	}
	return t.elapsed
}

func (t *Timer) Remaining() time.Duration {
	if t == nil {
		return 0
	}
	return t.Duration - t.elapsed
}

func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.elapsed = 0
	t.finished = false
	t.timesFinished = 0
}

func (t *Timer) Pause() {
	if t != nil {
		t.paused = true
	}
}

func (t *Timer) Unpause() {
	if t != nil {
		t.paused = false
	}
}

func (t *Timer) Paused() bool {
	return t != nil && t.paused
}
