package component

import "time"

// Health may go below zero; death is current <= 0. Flash is the paused
// hit-flash timer, Flashing the visual intent it drives.
type Health struct {
	Current  float64
	Max      float64
	Flash    Timer
	Flashing bool
}

func NewHealth(max float64, flash time.Duration) Health {
	return Health{
		Current: max,
		Max:     max,
		Flash:   NewPausedTimer(flash, TimerOnce),
	}
}

func (h *Health) Dead() bool {
	return h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
