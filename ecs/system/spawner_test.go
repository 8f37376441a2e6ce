package system

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
	"github.com/milk9111/slimegame/prefabs"
)

func newSpawner(timer, delay time.Duration, limit int) *component.Spawner {
	return &component.Spawner{
		Type:         component.EnemyNormal,
		Timer:        component.NewTimer(timer, component.TimerRepeating),
		InitialDelay: component.NewTimer(delay, component.TimerOnce),
		Limit:        limit,
	}
}

func TestTickSpawnerFirstSpawnAfterDelayPlusPeriod(t *testing.T) {
	sp := newSpawner(700*time.Millisecond, 2*time.Second, 30)
	tr := component.Transform{X: -150, Y: -60, Z: 3}

	var spawnedAt []int
	for i := 1; i <= 27; i++ {
		req, ok := TickSpawner(sp, tr, tick)
		if ok {
			spawnedAt = append(spawnedAt, i)
			if req.Position != (common.Vec2{X: -150, Y: -60}) || req.Z <= tr.Z {
				t.Fatalf("unexpected request %+v", req)
			}
		}
	}

	if sp.Count != 1 {
		t.Fatalf("expected spawn_count 1 after 2.7s, got %d", sp.Count)
	}
	if len(spawnedAt) != 1 || spawnedAt[0] != 27 {
		t.Fatalf("expected the only spawn on tick 27, got %v", spawnedAt)
	}
}

func TestTickSpawnerZeroDelayFirstSpawnAfterPeriod(t *testing.T) {
	sp := newSpawner(700*time.Millisecond, 0, 30)

	first := 0
	for i := 1; i <= 20 && first == 0; i++ {
		if _, ok := TickSpawner(sp, component.Transform{}, tick); ok {
			first = i
		}
	}

	if first != 7 {
		t.Fatalf("expected the first spawn on tick 7 (0.7s), got tick %d", first)
	}
}

func TestTickSpawnerEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		sp    *component.Spawner
		ticks int
		dt    time.Duration
		want  int
	}{
		{"zero_limit_never_spawns", newSpawner(0, 0, 0), 50, tick, 0},
		{"zero_timer_one_per_tick", newSpawner(0, 0, 5), 3, tick, 3},
		{"long_tick_spawns_once", newSpawner(100*time.Millisecond, 0, 10), 1, 10 * time.Second, 1},
		{"stops_at_limit", newSpawner(100*time.Millisecond, 0, 3), 100, tick, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.ticks; i++ {
				TickSpawner(tt.sp, component.Transform{}, tt.dt)
			}
			if tt.sp.Count != tt.want {
				t.Fatalf("got count %d, want %d", tt.sp.Count, tt.want)
			}
		})
	}
}

func TestSpawnCountNeverExceedsLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(0, 20).Draw(t, "limit")
		timer := time.Duration(rapid.IntRange(0, 2000).Draw(t, "timer_ms")) * time.Millisecond
		delay := time.Duration(rapid.IntRange(0, 3000).Draw(t, "delay_ms")) * time.Millisecond
		steps := rapid.SliceOfN(rapid.IntRange(0, 5000), 1, 200).Draw(t, "steps_ms")

		sp := newSpawner(timer, delay, limit)
		prev := 0
		for _, ms := range steps {
			TickSpawner(sp, component.Transform{}, time.Duration(ms)*time.Millisecond)
			if sp.Count < prev {
				t.Fatalf("spawn_count decreased from %d to %d", prev, sp.Count)
			}
			if sp.Count > limit {
				t.Fatalf("spawn_count %d exceeds limit %d", sp.Count, limit)
			}
			if sp.Count-prev > 1 {
				t.Fatalf("spawned %d in one tick", sp.Count-prev)
			}
			prev = sp.Count
		}
	})
}

func testProfiles(t *testing.T) *entity.Profiles {
	t.Helper()
	specs, err := prefabs.LoadEnemySpecs()
	if err != nil {
		t.Fatalf("load enemy specs: %v", err)
	}
	p, err := entity.NewProfiles(specs, 150*time.Millisecond)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	return p
}

func TestSpawnerSystemUsesProfile(t *testing.T) {
	tests := []struct {
		typ    component.EnemyType
		health float64
		reward int
		kind   component.MovementKind
	}{
		{component.EnemyNormal, 100, 1, component.MovementRandom},
		{component.EnemyElite, 500, 5, component.MovementHoming},
		{component.EnemyBoss, 2000, 200, component.MovementHoming},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := entity.NewSpawner(w, entity.SpawnerParams{Type: tt.typ, Position: common.Vec2{X: 5, Y: 6}, Limit: 1})
			if err != nil {
				t.Fatalf("new spawner: %v", err)
			}
			sys := NewSpawnerSystem(testProfiles(t), newRand())

			for i := 0; i < 5; i++ {
				step(w, tick, sys)
			}

			if sys.Spawned() != 1 {
				t.Fatalf("expected one spawn, got %d", sys.Spawned())
			}
			e, ok := ecs.First(w, component.EnemyComponent.Kind())
			if !ok {
				t.Fatal("no enemy spawned")
			}
			enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
			h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
			m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if enemy.Type != tt.typ || enemy.Reward != tt.reward || h.Current != tt.health || m.Kind != tt.kind {
				t.Fatalf("unexpected enemy %+v health %v movement %+v", enemy, h.Current, m)
			}
			if tr.X != 5 || tr.Y != 6 {
				t.Fatalf("enemy not placed at spawner: %+v", tr)
			}
			if m.Heading < 0 || m.Heading >= 2*math.Pi {
				t.Fatalf("heading %v outside [0, 2π)", m.Heading)
			}
			if tt.typ == component.EnemyBoss {
				if !ecs.Has(w, e, component.ChargeComponent.Kind()) || !ecs.Has(w, e, component.ExplodeComponent.Kind()) {
					t.Fatal("boss should charge and explode")
				}
			}
		})
	}
}
