package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type PlayerParams struct {
	Slot     component.PlayerSlot
	Position common.Vec2
	Health   float64
	Radius   float64
	Speed    float64
	Flash    time.Duration
}

func NewPlayer(w *ecs.World, p PlayerParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.Position.X, Y: p.Position.Y, Z: 10}); err != nil {
		return discard(w, e, fmt.Errorf("player: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return discard(w, e, fmt.Errorf("player: add velocity: %w", err))
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Slot: p.Slot, Speed: p.Speed}); err != nil {
		return discard(w, e, fmt.Errorf("player: add player: %w", err))
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return discard(w, e, fmt.Errorf("player: add input: %w", err))
	}
	health := component.NewHealth(p.Health, p.Flash)
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &health); err != nil {
		return discard(w, e, fmt.Errorf("player: add health: %w", err))
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: p.Radius, Layer: component.LayerPlayer}); err != nil {
		return discard(w, e, fmt.Errorf("player: add collider: %w", err))
	}

	return e, nil
}

// PlayerBySlot finds the live player in slot.
func PlayerBySlot(w *ecs.World, slot component.PlayerSlot) (ecs.Entity, bool) {
	for _, e := range w.Query(component.PlayerComponent.Kind()) {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Slot == slot {
			return e, true
		}
	}
	return 0, false
}

// discard destroys a half-built entity and returns err.
func discard(w *ecs.World, e ecs.Entity, err error) (ecs.Entity, error) {
	ecs.DestroyEntity(w, e)
	return 0, err
}
