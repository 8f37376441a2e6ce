package system

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
)

func TestHomingTargetsNearestPlayer(t *testing.T) {
	w := ecs.NewWorld()
	mustPlayer(t, w, component.PlayerOne, common.Vec2{X: 10, Y: 0})
	mustPlayer(t, w, component.PlayerTwo, common.Vec2{X: -5, Y: 0})
	e := mustEnemy(t, w, entity.EnemyParams{
		Type:     component.EnemyElite,
		Movement: component.Movement{Kind: component.MovementHoming, Speed: 90},
	})

	step(w, tick, NewEnemyMovementSystem(newRand()))

	if got := velocityOf(t, w, e); got != (common.Vec2{X: -90, Y: 0}) {
		t.Fatalf("expected velocity (-90, 0), got %+v", got)
	}
}

func TestHomingTieGoesToFirstPlayer(t *testing.T) {
	w := ecs.NewWorld()
	mustPlayer(t, w, component.PlayerOne, common.Vec2{X: 0, Y: 10})
	mustPlayer(t, w, component.PlayerTwo, common.Vec2{X: 0, Y: -10})
	e := mustEnemy(t, w, entity.EnemyParams{
		Movement: component.Movement{Kind: component.MovementHoming, Speed: 1},
	})

	step(w, tick, NewEnemyMovementSystem(newRand()))

	if got := velocityOf(t, w, e); got != (common.Vec2{X: 0, Y: 1}) {
		t.Fatalf("expected the first player to win the tie, got %+v", got)
	}
}

func TestHomingWithoutPlayersKeepsVelocity(t *testing.T) {
	w := ecs.NewWorld()
	e := mustEnemy(t, w, entity.EnemyParams{
		Movement: component.Movement{Kind: component.MovementHoming, Speed: 90},
	})
	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	v.X, v.Y = 3, 4

	step(w, tick, NewEnemyMovementSystem(newRand()))

	if got := velocityOf(t, w, e); got != (common.Vec2{X: 3, Y: 4}) {
		t.Fatalf("velocity changed without a target: %+v", got)
	}
}

func TestRandomWalkStaysWithinBounds(t *testing.T) {
	w := ecs.NewWorld()
	e := mustEnemy(t, w, entity.EnemyParams{
		Movement: component.Movement{Kind: component.MovementRandom, Heading: 1, Jitter: 0.3, MaxSpeed: 75},
	})
	sys := NewEnemyMovementSystem(newRand())

	for i := 0; i < 500; i++ {
		m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
		before := m.Heading

		step(w, tick, sys)

		diff := math.Abs(m.Heading - before)
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}
		if diff > 0.3+1e-9 {
			t.Fatalf("heading moved by %v in one tick", diff)
		}
		v := velocityOf(t, w, e)
		if math.Abs(v.X) >= 75 || math.Abs(v.Y) >= 75 {
			t.Fatalf("velocity component out of range: %+v", v)
		}
	}
}

func TestRandomHeadingStaysFinite(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		heading := rapid.Float64Range(-1e6, 1e6).Draw(t, "heading")
		ticks := rapid.IntRange(1, 2000).Draw(t, "ticks")

		w := ecs.NewWorld()
		e, err := entity.NewEnemy(w, entity.EnemyParams{
			Health:   1,
			Movement: component.Movement{Kind: component.MovementRandom, Heading: heading, Jitter: 0.3, MaxSpeed: 75},
		})
		if err != nil {
			t.Fatalf("new enemy: %v", err)
		}
		sys := NewEnemyMovementSystem(rand.New(rand.NewPCG(seed, seed)))

		for i := 0; i < ticks; i++ {
			step(w, time.Millisecond, sys)
		}

		m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
		if !common.Finite(m.Heading) || m.Heading < 0 || m.Heading >= 2*math.Pi {
			t.Fatalf("heading %v is not a valid angle", m.Heading)
		}
		v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !common.Finite(v.X) || !common.Finite(v.Y) {
			t.Fatalf("velocity not finite: %+v", v)
		}
	})
}

func TestChargeDashesTowardLockedTarget(t *testing.T) {
	w := ecs.NewWorld()
	p := mustPlayer(t, w, component.PlayerOne, common.Vec2{X: 100, Y: 0})
	charge := component.NewCharge(time.Second, 300*time.Millisecond, 500)
	e := mustEnemy(t, w, entity.EnemyParams{
		Movement: component.Movement{Kind: component.MovementHoming, Speed: 50},
		Charge:   &charge,
	})
	systems := []ecs.System{NewEnemyMovementSystem(newRand()), NewChargeSystem()}

	for i := 0; i < 9; i++ {
		step(w, tick, systems...)
	}
	if got := velocityOf(t, w, e); got != (common.Vec2{X: 50, Y: 0}) {
		t.Fatalf("before the cooldown elapses homing owns velocity, got %+v", got)
	}

	step(w, tick, systems...)
	if got := velocityOf(t, w, e); got != (common.Vec2{X: 500, Y: 0}) {
		t.Fatalf("expected dash velocity, got %+v", got)
	}

	// The target moves but the dash keeps its locked direction.
	tr, _ := ecs.Get(w, p, component.TransformComponent.Kind())
	tr.X, tr.Y = 0, 100
	step(w, tick, systems...)
	if got := velocityOf(t, w, e); got != (common.Vec2{X: 500, Y: 0}) {
		t.Fatalf("dash direction should stay locked, got %+v", got)
	}

	step(w, tick, systems...)
	step(w, tick, systems...)
	if got := velocityOf(t, w, e); got != (common.Vec2{X: 0, Y: 50}) {
		t.Fatalf("after the window homing takes over again, got %+v", got)
	}
	c, _ := ecs.Get(w, e, component.ChargeComponent.Kind())
	if c.Active() {
		t.Fatal("charge window should be closed")
	}
}
