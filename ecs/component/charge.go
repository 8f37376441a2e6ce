package component

import (
	"time"

	"github.com/milk9111/slimegame/common"
)

// Charge is a periodic dash. Cooldown repeats; on each period the dash
// direction is locked and Window runs. Window is paused while idle, so the
// dash owns velocity only while Window is unpaused and unfinished.
type Charge struct {
	Cooldown  Timer
	Window    Timer
	Speed     float64
	Direction common.Vec2
}

func NewCharge(cooldown, window time.Duration, speed float64) Charge {
	return Charge{
		Cooldown: NewTimer(cooldown, TimerRepeating),
		Window:   NewPausedTimer(window, TimerOnce),
		Speed:    speed,
	}
}

func (c *Charge) Active() bool {
	return !c.Window.Paused() && !c.Window.Finished()
}

var ChargeComponent = NewComponent[Charge]()
