package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type ProjectileParams struct {
	Position common.Vec2
	Velocity common.Vec2
	Damage   float64
	Radius   float64
	Lifetime time.Duration
}

func NewProjectile(w *ecs.World, p ProjectileParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.Position.X, Y: p.Position.Y, Z: 5}); err != nil {
		return discard(w, e, fmt.Errorf("projectile: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: p.Velocity.X, Y: p.Velocity.Y}); err != nil {
		return discard(w, e, fmt.Errorf("projectile: add velocity: %w", err))
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Damage: p.Damage}); err != nil {
		return discard(w, e, fmt.Errorf("projectile: add projectile: %w", err))
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: p.Radius, Layer: component.LayerProjectile}); err != nil {
		return discard(w, e, fmt.Errorf("projectile: add collider: %w", err))
	}
	exp := component.NewExpiration(p.Lifetime)
	if err := ecs.Add(w, e, component.ExpirationComponent.Kind(), &exp); err != nil {
		return discard(w, e, fmt.Errorf("projectile: add expiration: %w", err))
	}

	return e, nil
}
