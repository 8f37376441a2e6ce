package system

import (
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// PlayerMovementSystem turns the move stick into velocity. Inputs longer
// than one are clamped so diagonals are not faster.
type PlayerMovementSystem struct{}

func NewPlayerMovementSystem() *PlayerMovementSystem {
	return &PlayerMovementSystem{}
}

func (s *PlayerMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, p *component.Player, in *component.Input, v *component.Velocity) {
		move := in.Move
		if move.Len() > 1 {
			move = move.NormalizeOrZero()
		}
		v.X = move.X * p.Speed
		v.Y = move.Y * p.Speed
	})
}
