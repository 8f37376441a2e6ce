package component

import "time"

// Explode replaces the normal death of its entity with a burst of
// fragment enemies.
type Explode struct {
	Fragments         int
	FragmentHealth    float64
	FragmentReward    int
	FragmentRadius    float64
	Scatter           float64
	ChargeCooldownMin time.Duration
	ChargeCooldownMax time.Duration
	ChargeWindow      time.Duration
	ChargeSpeed       float64
	Jitter            float64
	MaxSpeed          float64
}

var ExplodeComponent = NewComponent[Explode]()
