package component

import "time"

// Expiration despawns its entity when Timer finishes.
type Expiration struct {
	Timer Timer
}

func NewExpiration(d time.Duration) Expiration {
	return Expiration{Timer: NewTimer(d, TimerOnce)}
}

var ExpirationComponent = NewComponent[Expiration]()
