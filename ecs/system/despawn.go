package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// DespawnSystem executes despawn intents. Repeated intents and intents for
// entities that are already gone are ignored. Owned children go with their
// parent.
type DespawnSystem struct {
	queues  *Queues
	removed int
}

func NewDespawnSystem(queues *Queues) *DespawnSystem {
	return &DespawnSystem{queues: queues}
}

// Removed counts entities destroyed so far, children included.
func (s *DespawnSystem) Removed() int {
	if s == nil {
		return 0
	}
	return s.removed
}

func (s *DespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	events := s.queues.Despawn.Drain()
	if len(events) == 0 {
		return
	}

	children := make(map[ecs.Entity][]ecs.Entity)
	ecs.ForEach(w, component.OwnerComponent.Kind(), func(e ecs.Entity, o *component.Owner) {
		parent := ecs.Entity(o.Parent)
		children[parent] = append(children[parent], e)
	})

	for _, ev := range events {
		s.destroy(w, ev.Entity, children)
	}
}

func (s *DespawnSystem) destroy(w *ecs.World, e ecs.Entity, children map[ecs.Entity][]ecs.Entity) {
	if !ecs.DestroyEntity(w, e) {
		return
	}
	s.removed++
	for _, c := range children[e] {
		s.destroy(w, c, children)
	}
}
