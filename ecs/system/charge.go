package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// ChargeSystem runs after movement and owns velocity while a dash window
// is open.
type ChargeSystem struct{}

func NewChargeSystem() *ChargeSystem {
	return &ChargeSystem{}
}

func (s *ChargeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	players := positionsOf(w, component.PlayerComponent.Kind())
	ecs.ForEach3(w, component.ChargeComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, c *component.Charge, tr *component.Transform, v *component.Velocity) {
		if c.Cooldown.Tick(dt).JustFinished() && !c.Active() {
			if t, ok := nearest(tr.Pos(), players); ok {
				c.Direction = t.pos.Sub(tr.Pos()).NormalizeOrZero()
				c.Window.Reset()
				c.Window.Unpause()
			}
		}

		if !c.Active() {
			return
		}
		v.X = c.Direction.X * c.Speed
		v.Y = c.Direction.Y * c.Speed
		if c.Window.Tick(dt).Finished() {
			c.Window.Pause()
		}
	})
}
