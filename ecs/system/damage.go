package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/progression"
)

// DamageSystem is the only writer of Health. It drains the damage queue
// once per tick, then runs the hit-flash maintenance pass.
type DamageSystem struct {
	queues *Queues
	data   *progression.GameData
}

func NewDamageSystem(queues *Queues, data *progression.GameData) *DamageSystem {
	return &DamageSystem{queues: queues, data: data}
}

func (s *DamageSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	dying := make(map[ecs.Entity]struct{})
	for _, ev := range s.queues.Damage.Drain() {
		s.apply(w, ev, dying)
	}

	s.tickFlash(w)
}

func (s *DamageSystem) apply(w *ecs.World, ev DamageEvent, dying map[ecs.Entity]struct{}) {
	if _, queued := dying[ev.Target]; queued {
		return
	}
	if !w.IsAlive(ev.Target) {
		return
	}
	h, ok := ecs.Get(w, ev.Target, component.HealthComponent.Kind())
	if !ok || h.Dead() {
		return
	}

	amount := ev.Amount
	if ev.Lethal {
		amount = h.Current
	}
	h.Current -= amount

	if !h.Dead() {
		h.Flash.Reset()
		h.Flash.Unpause()
		h.Flashing = true
		return
	}

	dying[ev.Target] = struct{}{}
	if ex, ok := ecs.Get(w, ev.Target, component.ExplodeComponent.Kind()); ok {
		s.explode(w, ev.Target, *ex)
		return
	}
	s.kill(w, ev.Target)
}

func (s *DamageSystem) kill(w *ecs.World, e ecs.Entity) {
	s.credit(w, e)
	s.queues.Despawn.Push(DespawnEvent{Entity: e})
}

func (s *DamageSystem) explode(w *ecs.World, e ecs.Entity, ex component.Explode) {
	s.credit(w, e)
	ev := ExplosionEvent{Source: e, Explode: ex}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		ev.Position = tr.Pos()
	}
	s.queues.Explosions.Push(ev)
	s.queues.Despawn.Push(DespawnEvent{Entity: e})
}

func (s *DamageSystem) credit(w *ecs.World, e ecs.Entity) {
	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		s.data.Credit(enemy.Reward)
	}
}

func (s *DamageSystem) tickFlash(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		h.Flash.Tick(dt)
		if h.Flash.JustFinished() {
			h.Flashing = false
			h.Flash.Pause()
		}
	})
}
