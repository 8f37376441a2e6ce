package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type GunParams struct {
	Cooldown time.Duration
	Damage   float64
	AutoFire bool
}

func NewGun(w *ecs.World, owner ecs.Entity, p GunParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Parent: uint64(owner)}); err != nil {
		return discard(w, e, fmt.Errorf("gun: add owner: %w", err))
	}
	gun := &component.Gun{Trigger: component.NewTrigger(p.Cooldown), Damage: p.Damage, AutoFire: p.AutoFire}
	if err := ecs.Add(w, e, component.GunComponent.Kind(), gun); err != nil {
		return discard(w, e, fmt.Errorf("gun: add gun: %w", err))
	}

	return e, nil
}

type LightningParams struct {
	Cooldown   time.Duration
	Damage     float64
	Size       float64
	BaseRadius float64
}

func NewLightningGun(w *ecs.World, owner ecs.Entity, p LightningParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Parent: uint64(owner)}); err != nil {
		return discard(w, e, fmt.Errorf("lightning: add owner: %w", err))
	}
	lg := &component.LightningGun{
		Trigger:    component.NewTrigger(p.Cooldown),
		Damage:     p.Damage,
		Size:       p.Size,
		BaseRadius: p.BaseRadius,
	}
	if err := ecs.Add(w, e, component.LightningGunComponent.Kind(), lg); err != nil {
		return discard(w, e, fmt.Errorf("lightning: add gun: %w", err))
	}

	return e, nil
}

type LaserGunParams struct {
	Cooldown        time.Duration
	DamagePerSecond float64
}

func NewLaserGun(w *ecs.World, owner ecs.Entity, p LaserGunParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Parent: uint64(owner)}); err != nil {
		return discard(w, e, fmt.Errorf("laser gun: add owner: %w", err))
	}
	lg := &component.LaserGun{Trigger: component.NewTrigger(p.Cooldown), DamagePerSecond: p.DamagePerSecond}
	if err := ecs.Add(w, e, component.LaserGunComponent.Kind(), lg); err != nil {
		return discard(w, e, fmt.Errorf("laser gun: add gun: %w", err))
	}

	return e, nil
}

// OwnerOf resolves a child's parent entity.
func OwnerOf(w *ecs.World, child ecs.Entity) (ecs.Entity, bool) {
	o, ok := ecs.Get(w, child, component.OwnerComponent.Kind())
	if !ok {
		return 0, false
	}
	parent := ecs.Entity(o.Parent)
	if !ecs.IsAlive(w, parent) {
		return 0, false
	}
	return parent, true
}
