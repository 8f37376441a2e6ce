package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type SpawnerParams struct {
	Type         component.EnemyType
	Position     common.Vec2
	Timer        time.Duration
	InitialDelay time.Duration
	Limit        int
}

func NewSpawner(w *ecs.World, p SpawnerParams) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.Position.X, Y: p.Position.Y}); err != nil {
		return discard(w, e, fmt.Errorf("spawner: add transform: %w", err))
	}
	limit := p.Limit
	if limit < 0 {
		limit = 0
	}
	sp := &component.Spawner{
		Type:         p.Type,
		Timer:        component.NewTimer(p.Timer, component.TimerRepeating),
		InitialDelay: component.NewTimer(p.InitialDelay, component.TimerOnce),
		Limit:        limit,
	}
	if err := ecs.Add(w, e, component.SpawnerComponent.Kind(), sp); err != nil {
		return discard(w, e, fmt.Errorf("spawner: add spawner: %w", err))
	}

	return e, nil
}
