package system

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/entity"
)

// ExplosionSystem spawns the fragments of entities that died with an
// Explode component.
type ExplosionSystem struct {
	queues *Queues
	rng    *rand.Rand
	flash  time.Duration
}

func NewExplosionSystem(queues *Queues, rng *rand.Rand, flash time.Duration) *ExplosionSystem {
	return &ExplosionSystem{queues: queues, rng: rng, flash: flash}
}

func (s *ExplosionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	for _, ev := range s.queues.Explosions.Drain() {
		ex := ev.Explode
		for i := 0; i < ex.Fragments; i++ {
			offset := common.FromAngle(s.rng.Float64() * 2 * math.Pi).Scale(s.rng.Float64() * ex.Scatter)
			_, err := entity.NewFragment(w, ex, entity.FragmentParams{
				Position:       ev.Position.Add(offset),
				Heading:        s.rng.Float64() * 2 * math.Pi,
				ChargeCooldown: s.cooldown(ex.ChargeCooldownMin, ex.ChargeCooldownMax),
				Flash:          s.flash,
			})
			if err != nil {
				slog.Warn("explosion: spawn fragment", "source", ev.Source, "index", i, "err", err)
			}
		}
	}
}

func (s *ExplosionSystem) cooldown(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int64N(int64(hi-lo)))
}
