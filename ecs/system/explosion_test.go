package system

import (
	"testing"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
	"github.com/milk9111/slimegame/progression"
)

func TestBossExplodesIntoFragments(t *testing.T) {
	w := ecs.NewWorld()
	q := NewQueues()
	data := progression.GameData{}

	boss, ok := testProfiles(t).Lookup(component.EnemyBoss)
	if !ok {
		t.Fatal("no boss profile")
	}
	boss.Position = common.Vec2{X: 40, Y: -40}
	e := mustEnemy(t, w, boss)

	q.Damage.Push(DamageEvent{Target: e, Amount: 1500})
	q.Damage.Push(DamageEvent{Target: e, Amount: 600})
	q.Damage.Push(DamageEvent{Target: e, Amount: 600})
	step(w, tick,
		NewDamageSystem(q, &data),
		NewExplosionSystem(q, newRand(), 150*time.Millisecond),
		NewDespawnSystem(q),
	)

	if ecs.IsAlive(w, e) {
		t.Fatal("boss should be despawned")
	}
	if data.Money != 200 {
		t.Fatalf("boss reward should be credited exactly once, money=%d", data.Money)
	}

	fragments := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(f ecs.Entity, enemy *component.Enemy, h *component.Health) {
		fragments++
		if enemy.Type != component.EnemyFragment || enemy.Reward != 1 || h.Current != 100 {
			t.Fatalf("unexpected fragment %+v health %v", enemy, h.Current)
		}
		m, _ := ecs.Get(w, f, component.MovementComponent.Kind())
		if m.Kind != component.MovementRandom {
			t.Fatalf("fragments wander, got %v", m.Kind)
		}
		c, ok := ecs.Get(w, f, component.ChargeComponent.Kind())
		if !ok || c.Cooldown.Duration < 2*time.Second || c.Cooldown.Duration >= 6*time.Second {
			t.Fatalf("fragment charge cooldown out of range: %+v", c)
		}
		if ecs.Has(w, f, component.ExplodeComponent.Kind()) {
			t.Fatal("fragments must not explode")
		}
	})
	if fragments != 30 {
		t.Fatalf("expected 30 fragments, got %d", fragments)
	}
	if q.Pending() != 0 {
		t.Fatalf("queues should be drained, %d pending", q.Pending())
	}
}

func TestFragmentDeathUsesNormalPath(t *testing.T) {
	w := ecs.NewWorld()
	q := NewQueues()
	data := progression.GameData{}
	f, err := entity.NewFragment(w, component.Explode{FragmentHealth: 100, FragmentReward: 1, ChargeWindow: time.Second}, entity.FragmentParams{ChargeCooldown: time.Second})
	if err != nil {
		t.Fatalf("new fragment: %v", err)
	}

	q.Damage.Push(DamageEvent{Target: f, Amount: 100})
	step(w, tick, NewDamageSystem(q, &data), NewExplosionSystem(q, newRand(), 0), NewDespawnSystem(q))

	if ecs.IsAlive(w, f) || data.Money != 1 || ecs.Count(w, component.EnemyComponent.Kind()) != 0 {
		t.Fatalf("fragment should die alone: alive=%v money=%d", ecs.IsAlive(w, f), data.Money)
	}
}
