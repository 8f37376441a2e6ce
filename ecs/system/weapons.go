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

// ownerState resolves a weapon's owner position and this tick's input.
func ownerState(w *ecs.World, weapon ecs.Entity) (ecs.Entity, common.Vec2, component.Input, bool) {
	owner, ok := entity.OwnerOf(w, weapon)
	if !ok {
		return 0, common.Vec2{}, component.Input{}, false
	}
	tr, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return 0, common.Vec2{}, component.Input{}, false
	}
	var in component.Input
	if got, ok := ecs.Get(w, owner, component.InputComponent.Kind()); ok {
		in = *got
	}
	return owner, tr.Pos(), in, true
}

type ProjectileConfig struct {
	Speed    float64
	Lifetime time.Duration
	Radius   float64
	Offset   float64
}

// GunSystem fires projectiles at the nearest enemy, or in a random
// direction when there is none.
type GunSystem struct {
	rng        *rand.Rand
	projectile ProjectileConfig
}

func NewGunSystem(rng *rand.Rand, projectile ProjectileConfig) *GunSystem {
	return &GunSystem{rng: rng, projectile: projectile}
}

func (s *GunSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.Delta()
	enemies := positionsOf(w, component.EnemyComponent.Kind())
	var shots []entity.ProjectileParams

	ecs.ForEach(w, component.GunComponent.Kind(), func(e ecs.Entity, g *component.Gun) {
		_, pos, in, ok := ownerState(w, e)
		if !ok {
			return
		}
		if !g.Advance(dt, in.Attack || g.AutoFire) {
			return
		}

		var dir common.Vec2
		if t, ok := nearest(pos, enemies); ok {
			dir = t.pos.Sub(pos).NormalizeOrZero()
		}
		if dir.IsZero() {
			dir = common.FromAngle(s.rng.Float64() * 2 * math.Pi)
		}
		shots = append(shots, entity.ProjectileParams{
			Position: pos.Add(dir.Scale(s.projectile.Offset)),
			Velocity: dir.Scale(s.projectile.Speed),
			Damage:   g.Damage,
			Radius:   s.projectile.Radius,
			Lifetime: s.projectile.Lifetime,
		})
	})

	for _, p := range shots {
		if _, err := entity.NewProjectile(w, p); err != nil {
			slog.Warn("gun: spawn projectile", "err", err)
		}
	}
}

// LightningSystem strikes every enemy inside the caster's radius on the
// caster's attack edge.
type LightningSystem struct {
	queues *Queues
	marker time.Duration
}

func NewLightningSystem(queues *Queues, marker time.Duration) *LightningSystem {
	return &LightningSystem{queues: queues, marker: marker}
}

func (s *LightningSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.queues == nil {
		return
	}

	dt := w.Delta()
	type strike struct {
		at     common.Vec2
		radius float64
	}
	var strikes []strike

	ecs.ForEach(w, component.LightningGunComponent.Kind(), func(e ecs.Entity, lg *component.LightningGun) {
		_, pos, in, ok := ownerState(w, e)
		if !ok {
			return
		}
		if !lg.Advance(dt, in.Attack) {
			return
		}
		r := lg.Radius()
		for _, t := range positionsOf(w, component.EnemyComponent.Kind()) {
			if pos.Dist(t.pos) < r {
				s.queues.Damage.Push(DamageEvent{Target: t.entity, Amount: lg.Damage})
			}
		}
		strikes = append(strikes, strike{at: pos, radius: r})
	})

	for _, st := range strikes {
		if _, err := entity.NewLightningMarker(w, st.at, st.radius, s.marker); err != nil {
			slog.Warn("lightning: spawn marker", "err", err)
		}
	}
}

type BeamConfig struct {
	Lifetime time.Duration
	Radius   float64
}

// LaserSystem opens beams between the two players and keeps every live
// beam anchored to them. Beams close when fewer than two players remain.
type LaserSystem struct {
	beam BeamConfig
}

func NewLaserSystem(beam BeamConfig) *LaserSystem {
	return &LaserSystem{beam: beam}
}

func (s *LaserSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := w.Delta()
	players := playersBySlot(w)
	linked := len(players) >= 2

	type shot struct {
		gun ecs.Entity
		dps float64
	}
	var shots []shot

	ecs.ForEach(w, component.LaserGunComponent.Kind(), func(e ecs.Entity, lg *component.LaserGun) {
		_, _, in, ok := ownerState(w, e)
		if !ok {
			return
		}
		if lg.Advance(dt, in.Attack && linked) {
			shots = append(shots, shot{gun: e, dps: lg.DamagePerSecond})
		}
	})

	for _, sh := range shots {
		_, err := entity.NewLaser(w, sh.gun, entity.LaserParams{
			A:               players[0].pos,
			B:               players[1].pos,
			Radius:          s.beam.Radius,
			DamagePerSecond: sh.dps,
			Lifetime:        s.beam.Lifetime,
		})
		if err != nil {
			slog.Warn("laser: spawn beam", "err", err)
		}
	}

	if !linked {
		// A beam without both ends closes at once.
		for _, e := range w.Query(component.LaserComponent.Kind()) {
			ecs.DestroyEntity(w, e)
		}
		return
	}
	ecs.ForEach(w, component.LaserComponent.Kind(), func(_ ecs.Entity, beam *component.Laser) {
		beam.A = players[0].pos
		beam.B = players[1].pos
	})
}
