package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// EnemyMovementSystem steers enemies by their Movement variant.
type EnemyMovementSystem struct {
	rng *rand.Rand
}

func NewEnemyMovementSystem(rng *rand.Rand) *EnemyMovementSystem {
	return &EnemyMovementSystem{rng: rng}
}

func (s *EnemyMovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	players := positionsOf(w, component.PlayerComponent.Kind())
	ecs.ForEach3(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, m *component.Movement, tr *component.Transform, v *component.Velocity) {
		switch m.Kind {
		case component.MovementHoming:
			homing(m, tr.Pos(), v, players)
		case component.MovementRandom:
			s.wander(m, v)
		}
	})
}

// homing leaves velocity alone when there is nobody to chase.
func homing(m *component.Movement, pos common.Vec2, v *component.Velocity, players []target) {
	t, ok := nearest(pos, players)
	if !ok {
		return
	}
	dir := t.pos.Sub(pos).NormalizeOrZero()
	v.X = dir.X * m.Speed
	v.Y = dir.Y * m.Speed
}

// wander is a biased random walk: the heading drifts by up to Jitter each
// tick and the x and y magnitudes are drawn independently.
func (s *EnemyMovementSystem) wander(m *component.Movement, v *component.Velocity) {
	delta := (s.rng.Float64()*2 - 1) * m.Jitter
	m.Heading = common.WrapAngle(m.Heading + delta)
	v.X = s.rng.Float64() * m.MaxSpeed * math.Cos(m.Heading)
	v.Y = s.rng.Float64() * m.MaxSpeed * math.Sin(m.Heading)
}
