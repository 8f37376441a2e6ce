package system

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
)

// SpawnRequest is what a spawner asks for on the tick it fires.
type SpawnRequest struct {
	Type     component.EnemyType
	Position common.Vec2
	Z        float64
}

// TickSpawner advances a spawner by dt. The initial delay runs first; the
// repeat timer only starts on the tick after the delay completes. A zero
// delay has already elapsed, so the repeat timer runs from the first tick.
// At most one enemy is requested per tick even if several periods elapsed.
func TickSpawner(sp *component.Spawner, tr component.Transform, dt time.Duration) (SpawnRequest, bool) {
	if sp == nil || sp.Exhausted() {
		return SpawnRequest{}, false
	}
	if sp.InitialDelay.Duration > 0 && !sp.InitialDelay.Finished() {
		sp.InitialDelay.Tick(dt)
		return SpawnRequest{}, false
	}
	if !sp.Timer.Tick(dt).JustFinished() {
		return SpawnRequest{}, false
	}
	sp.Count++
	return SpawnRequest{Type: sp.Type, Position: tr.Pos(), Z: tr.Z + 1}, true
}

type SpawnerSystem struct {
	profiles *entity.Profiles
	rng      *rand.Rand
	spawned  int
}

func NewSpawnerSystem(profiles *entity.Profiles, rng *rand.Rand) *SpawnerSystem {
	return &SpawnerSystem{profiles: profiles, rng: rng}
}

// Spawned counts enemies created by this system.
func (s *SpawnerSystem) Spawned() int {
	if s == nil {
		return 0
	}
	return s.spawned
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.Delta()
	var requests []SpawnRequest
	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner, tr *component.Transform) {
		if req, ok := TickSpawner(sp, *tr, dt); ok {
			requests = append(requests, req)
		}
	})

	for _, req := range requests {
		s.spawn(w, req)
	}
}

func (s *SpawnerSystem) spawn(w *ecs.World, req SpawnRequest) {
	params, ok := s.profiles.Lookup(req.Type)
	if !ok {
		slog.Warn("spawner: no profile", "type", req.Type)
		return
	}
	params.Position = req.Position
	params.Z = req.Z
	if params.Movement.Kind == component.MovementRandom {
		params.Movement.Heading = s.rng.Float64() * 2 * math.Pi
	}
	if _, err := entity.NewEnemy(w, params); err != nil {
		slog.Warn("spawner: spawn enemy", "type", req.Type, "err", err)
		return
	}
	s.spawned++
}
