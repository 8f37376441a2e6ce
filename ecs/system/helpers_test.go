package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
)

const tick = 100 * time.Millisecond

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// step advances the clock and runs the given systems once, in order.
func step(w *ecs.World, dt time.Duration, systems ...ecs.System) {
	ecs.NewScheduler(systems...).Step(w, dt)
}

func mustPlayer(t *testing.T, w *ecs.World, slot component.PlayerSlot, at common.Vec2) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayer(w, entity.PlayerParams{
		Slot:     slot,
		Position: at,
		Health:   50,
		Radius:   12,
		Speed:    150,
		Flash:    150 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return e
}

func mustEnemy(t *testing.T, w *ecs.World, p entity.EnemyParams) ecs.Entity {
	t.Helper()
	if p.Health == 0 {
		p.Health = 100
	}
	if p.Radius == 0 {
		p.Radius = 8
	}
	if p.Flash == 0 {
		p.Flash = 150 * time.Millisecond
	}
	e, err := entity.NewEnemy(w, p)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	return e
}

func velocityOf(t *testing.T, w *ecs.World, e ecs.Entity) common.Vec2 {
	t.Helper()
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no velocity", e)
	}
	return v.Vec()
}

func healthOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Health {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no health", e)
	}
	return h
}
