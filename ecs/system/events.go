package system

import (
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// ContactEvent is a contact-start between two colliders, in no particular
// order.
type ContactEvent struct {
	A ecs.Entity
	B ecs.Entity
}

// DamageEvent asks the damage system to take Amount from Target. A Lethal
// event removes whatever health remains.
type DamageEvent struct {
	Target ecs.Entity
	Amount float64
	Lethal bool
}

type DespawnEvent struct {
	Entity ecs.Entity
}

// ExplosionEvent carries a dying entity's burst parameters past its
// despawn.
type ExplosionEvent struct {
	Source   ecs.Entity
	Position common.Vec2
	Explode  component.Explode
}

// Queues are the per-tick intent buffers shared by the combat systems.
// Each queue has one consumer that drains it every tick.
type Queues struct {
	Contacts   *ecs.Queue[ContactEvent]
	Damage     *ecs.Queue[DamageEvent]
	Despawn    *ecs.Queue[DespawnEvent]
	Explosions *ecs.Queue[ExplosionEvent]
}

func NewQueues() *Queues {
	return &Queues{
		Contacts:   ecs.NewQueue[ContactEvent](),
		Damage:     ecs.NewQueue[DamageEvent](),
		Despawn:    ecs.NewQueue[DespawnEvent](),
		Explosions: ecs.NewQueue[ExplosionEvent](),
	}
}

// Pending counts the events still queued across all queues.
func (q *Queues) Pending() int {
	if q == nil {
		return 0
	}
	return q.Contacts.Len() + q.Damage.Len() + q.Despawn.Len() + q.Explosions.Len()
}
