package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// CollisionSystem turns contacts and overlaps into damage and despawn
// intents. It never touches Health itself.
type CollisionSystem struct {
	physics *PhysicsSystem
	queues  *Queues
}

func NewCollisionSystem(physics *PhysicsSystem, queues *Queues) *CollisionSystem {
	return &CollisionSystem{physics: physics, queues: queues}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	s.resolveContacts(w)
	s.applyHazards(w)
	s.applyBeams(w)
}

func (s *CollisionSystem) resolveContacts(w *ecs.World) {
	// a projectile is spent by its first hit
	spent := make(map[ecs.Entity]struct{})

	for _, c := range s.queues.Contacts.Drain() {
		if !w.IsAlive(c.A) || !w.IsAlive(c.B) {
			continue
		}
		for _, pair := range [2][2]ecs.Entity{{c.A, c.B}, {c.B, c.A}} {
			if s.contact(w, pair[0], pair[1], spent) {
				break
			}
		}
	}
}

// contact handles one ordering of a pair and reports whether it matched.
func (s *CollisionSystem) contact(w *ecs.World, a, b ecs.Entity, spent map[ecs.Entity]struct{}) bool {
	if !ecs.Has(w, b, component.EnemyComponent.Kind()) {
		return false
	}

	if proj, ok := ecs.Get(w, a, component.ProjectileComponent.Kind()); ok {
		if _, done := spent[a]; done {
			return true
		}
		spent[a] = struct{}{}
		s.queues.Damage.Push(DamageEvent{Target: b, Amount: proj.Damage})
		s.queues.Despawn.Push(DespawnEvent{Entity: a})
		return true
	}

	if ecs.Has(w, a, component.PlayerComponent.Kind()) {
		s.queues.Damage.Push(DamageEvent{Target: a, Lethal: true})
		return true
	}

	return false
}

func (s *CollisionSystem) applyHazards(w *ecs.World) {
	dt := w.Delta().Seconds()
	if dt <= 0 || s.physics == nil {
		return
	}

	for _, p := range w.Query(component.PlayerComponent.Kind(), component.HealthComponent.Kind()) {
		for _, other := range s.physics.Overlapping(p) {
			kz, ok := ecs.Get(w, other, component.KillzoneComponent.Kind())
			if !ok || kz.DamagePerSecond <= 0 {
				continue
			}
			s.queues.Damage.Push(DamageEvent{Target: p, Amount: kz.DamagePerSecond * dt})
		}
	}
}

func (s *CollisionSystem) applyBeams(w *ecs.World) {
	dt := w.Delta().Seconds()
	if dt <= 0 || s.physics == nil {
		return
	}

	ecs.ForEach(w, component.LaserComponent.Kind(), func(_ ecs.Entity, beam *component.Laser) {
		if beam.DamagePerSecond <= 0 {
			return
		}
		for _, e := range s.physics.SegmentHits(beam.A, beam.B, beam.Radius) {
			if !ecs.Has(w, e, component.EnemyComponent.Kind()) {
				continue
			}
			s.queues.Damage.Push(DamageEvent{Target: e, Amount: beam.DamagePerSecond * dt})
		}
	})
}
