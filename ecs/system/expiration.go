package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// ExpirationSystem ticks lifetimes and queues a despawn once they run out.
type ExpirationSystem struct {
	queues *Queues
}

func NewExpirationSystem(queues *Queues) *ExpirationSystem {
	return &ExpirationSystem{queues: queues}
}

func (s *ExpirationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.ExpirationComponent.Kind(), func(e ecs.Entity, exp *component.Expiration) {
		if exp.Timer.Tick(dt).Finished() {
			s.queues.Despawn.Push(DespawnEvent{Entity: e})
		}
	})
}
