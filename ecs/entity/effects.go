package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type LaserParams struct {
	A               common.Vec2
	B               common.Vec2
	Radius          float64
	DamagePerSecond float64
	Lifetime        time.Duration
}

// NewLaser opens a beam owned by owner (the firing weapon).
func NewLaser(w *ecs.World, owner ecs.Entity, p LaserParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	beam := &component.Laser{A: p.A, B: p.B, Radius: p.Radius, DamagePerSecond: p.DamagePerSecond}
	if err := ecs.Add(w, e, component.LaserComponent.Kind(), beam); err != nil {
		return discard(w, e, fmt.Errorf("laser: add beam: %w", err))
	}
	exp := component.NewExpiration(p.Lifetime)
	if err := ecs.Add(w, e, component.ExpirationComponent.Kind(), &exp); err != nil {
		return discard(w, e, fmt.Errorf("laser: add expiration: %w", err))
	}
	if err := ecs.Add(w, e, component.OwnerComponent.Kind(), &component.Owner{Parent: uint64(owner)}); err != nil {
		return discard(w, e, fmt.Errorf("laser: add owner: %w", err))
	}

	return e, nil
}

func NewLightningMarker(w *ecs.World, at common.Vec2, radius float64, lifetime time.Duration) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, Z: 20}); err != nil {
		return discard(w, e, fmt.Errorf("lightning marker: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.LightningMarkerComponent.Kind(), &component.LightningMarker{Radius: radius}); err != nil {
		return discard(w, e, fmt.Errorf("lightning marker: add marker: %w", err))
	}
	exp := component.NewExpiration(lifetime)
	if err := ecs.Add(w, e, component.ExpirationComponent.Kind(), &exp); err != nil {
		return discard(w, e, fmt.Errorf("lightning marker: add expiration: %w", err))
	}

	return e, nil
}

// NewKillzone places a hazard rectangle centered on center.
func NewKillzone(w *ecs.World, center common.Vec2, width, height, dps float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y, Z: -1}); err != nil {
		return discard(w, e, fmt.Errorf("killzone: add transform: %w", err))
	}
	kz := &component.Killzone{Width: width, Height: height, DamagePerSecond: dps}
	if err := ecs.Add(w, e, component.KillzoneComponent.Kind(), kz); err != nil {
		return discard(w, e, fmt.Errorf("killzone: add killzone: %w", err))
	}

	return e, nil
}

// NewArenaKillzones rings a square arena of halfSize with four hazard bands
// of the given thickness.
func NewArenaKillzones(w *ecs.World, halfSize, thickness, dps float64) ([]ecs.Entity, error) {
	off := halfSize + thickness/2
	span := 2 * (halfSize + thickness)
	zones := []struct {
		center common.Vec2
		w, h   float64
	}{
		{common.Vec2{X: 0, Y: -off}, span, thickness},
		{common.Vec2{X: 0, Y: off}, span, thickness},
		{common.Vec2{X: -off, Y: 0}, thickness, span},
		{common.Vec2{X: off, Y: 0}, thickness, span},
	}

	out := make([]ecs.Entity, 0, len(zones))
	for _, z := range zones {
		e, err := NewKillzone(w, z.center, z.w, z.h, dps)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
