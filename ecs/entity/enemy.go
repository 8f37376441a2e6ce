package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

// EnemyParams is a resolved enemy profile. Charge and Explode are optional
// behaviors layered on top of Movement.
type EnemyParams struct {
	Type     component.EnemyType
	Position common.Vec2
	Z        float64
	Health   float64
	Reward   int
	Radius   float64
	Flash    time.Duration
	Movement component.Movement
	Charge   *component.Charge
	Explode  *component.Explode
}

func NewEnemy(w *ecs.World, p EnemyParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.Position.X, Y: p.Position.Y, Z: p.Z}); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add velocity: %w", err))
	}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Type: p.Type, Reward: p.Reward}); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add enemy: %w", err))
	}
	health := component.NewHealth(p.Health, p.Flash)
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &health); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add health: %w", err))
	}
	movement := p.Movement
	if err := ecs.Add(w, e, component.MovementComponent.Kind(), &movement); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add movement: %w", err))
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: p.Radius, Layer: component.LayerEnemy}); err != nil {
		return discard(w, e, fmt.Errorf("enemy: add collider: %w", err))
	}

	if p.Charge != nil {
		charge := *p.Charge
		if err := ecs.Add(w, e, component.ChargeComponent.Kind(), &charge); err != nil {
			return discard(w, e, fmt.Errorf("enemy: add charge: %w", err))
		}
	}
	if p.Explode != nil {
		explode := *p.Explode
		if err := ecs.Add(w, e, component.ExplodeComponent.Kind(), &explode); err != nil {
			return discard(w, e, fmt.Errorf("enemy: add explode: %w", err))
		}
	}

	return e, nil
}

// FragmentParams places one boss fragment.
type FragmentParams struct {
	Position       common.Vec2
	Heading        float64
	ChargeCooldown time.Duration
	Flash          time.Duration
}

// NewFragment spawns a small random-walking enemy that also dashes on its
// own charge cooldown.
func NewFragment(w *ecs.World, ex component.Explode, p FragmentParams) (ecs.Entity, error) {
	charge := component.NewCharge(p.ChargeCooldown, ex.ChargeWindow, ex.ChargeSpeed)
	return NewEnemy(w, EnemyParams{
		Type:     component.EnemyFragment,
		Position: p.Position,
		Z:        1,
		Health:   ex.FragmentHealth,
		Reward:   ex.FragmentReward,
		Radius:   ex.FragmentRadius,
		Flash:    p.Flash,
		Movement: component.Movement{
			Kind:     component.MovementRandom,
			Heading:  common.WrapAngle(p.Heading),
			Jitter:   ex.Jitter,
			MaxSpeed: ex.MaxSpeed,
		},
		Charge: &charge,
	})
}
