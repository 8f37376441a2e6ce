package component

import "time"

// Trigger is the arm/fire state machine every weapon shares. The cooldown
// is a Once timer: it arms the weapon the tick it elapses, and the weapon
// then stays armed until an attack edge fires it.
type Trigger struct {
	Cooldown Timer
	Armed    bool
}

func NewTrigger(cooldown time.Duration) Trigger {
	return Trigger{Cooldown: NewTimer(cooldown, TimerOnce)}
}

// Advance ticks the cooldown and reports whether the weapon fires this
// tick. Firing restarts the cooldown from its full duration and disarms.
func (t *Trigger) Advance(dt time.Duration, attack bool) bool {
	t.Cooldown.Tick(dt)
	if t.Cooldown.JustFinished() {
		t.Armed = true
	}
	if !attack || !t.Cooldown.Finished() {
		return false
	}
	t.Cooldown.Reset()
	t.Armed = false
	return true
}
