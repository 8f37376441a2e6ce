// Package arena runs one level: it builds the world from the level specs
// and the progression snapshot, then advances the combat systems in a
// fixed order.
package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/entity"
	"github.com/milk9111/slimegame/ecs/system"
	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

var (
	ErrUnknownLevel = errors.New("arena: unknown level")
	ErrLevelLocked  = errors.New("arena: level locked")
)

type Status = system.LevelStatus

// Config selects a level. Data is mutated in place by rewards, unlocks and
// the camera; nil starts from defaults. Specs left nil are loaded from
// prefabs.
type Config struct {
	Level   int
	Data    *progression.GameData
	Game    *prefabs.GameSpec
	Enemies *prefabs.EnemySpecs
	Layout  *prefabs.LevelSpec
	Seed    uint64

	// IgnoreLock starts a level even if it has not been unlocked yet.
	IgnoreLock bool
}

type Session struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	queues    *system.Queues
	data      *progression.GameData
	layout    *prefabs.LevelSpec

	physics *system.PhysicsSystem
	spawner *system.SpawnerSystem
	despawn *system.DespawnSystem
	end     *system.EndConditionSystem

	inputs map[component.PlayerSlot]component.Input
}

func NewSession(cfg Config) (*Session, error) {
	game, err := orLoad(cfg.Game, prefabs.LoadGameSpec)
	if err != nil {
		return nil, fmt.Errorf("arena: game spec: %w", err)
	}
	enemies, err := orLoad(cfg.Enemies, prefabs.LoadEnemySpecs)
	if err != nil {
		return nil, fmt.Errorf("arena: enemy specs: %w", err)
	}

	data := cfg.Data
	if data == nil {
		d := progression.DefaultFrom(game.Defaults)
		data = &d
	}

	layout := cfg.Layout
	if layout == nil {
		if cfg.Level < 1 || cfg.Level > prefabs.LevelCount {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, cfg.Level)
		}
		if layout, err = prefabs.LoadLevelSpec(cfg.Level); err != nil {
			return nil, fmt.Errorf("arena: level %d: %w", cfg.Level, err)
		}
	}
	if !cfg.IgnoreLock && !data.Unlocked(layout.Number) {
		return nil, fmt.Errorf("%w: %d (unlocked %d)", ErrLevelLocked, layout.Number, data.Level)
	}

	flash := game.Health.Flash.Duration()
	profiles, err := entity.NewProfiles(enemies, flash)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	queues := system.NewQueues()

	s := &Session{
		world:  ecs.NewWorld(),
		queues: queues,
		data:   data,
		layout: layout,
		inputs: make(map[component.PlayerSlot]component.Input),
	}

	s.physics = system.NewPhysicsSystem(queues.Contacts)
	s.spawner = system.NewSpawnerSystem(profiles, rng)
	s.despawn = system.NewDespawnSystem(queues)
	s.end = system.NewEndConditionSystem(data, game.LevelEnd.Grace.Duration(), system.LevelReward{
		Money:  layout.Reward.Money,
		Unlock: layout.Reward.Unlock,
	})

	s.scheduler = ecs.NewScheduler(
		system.NewExpirationSystem(queues),
		system.NewPlayerMovementSystem(),
		s.spawner,
		system.NewEnemyMovementSystem(rng),
		system.NewChargeSystem(),
		system.NewGunSystem(rng, system.ProjectileConfig{
			Speed:    game.Projectile.Speed,
			Lifetime: game.Projectile.Lifetime.Duration(),
			Radius:   game.Projectile.Radius,
			Offset:   game.Projectile.Offset,
		}),
		system.NewLightningSystem(queues, game.Lightning.Marker.Duration()),
		system.NewLaserSystem(system.BeamConfig{
			Lifetime: game.Laser.Lifetime.Duration(),
			Radius:   game.Laser.Radius,
		}),
		s.physics,
		system.NewCollisionSystem(s.physics, queues),
		system.NewDamageSystem(queues, data),
		system.NewExplosionSystem(queues, rng, flash),
		s.despawn,
		system.NewCameraSystem(data, game.Camera.Threshold),
		s.end,
	)

	if err := s.populate(game); err != nil {
		return nil, err
	}

	slog.Debug("arena: level ready",
		"level", layout.Number,
		"players", len(layout.Players),
		"spawners", len(layout.Spawners),
		"entities", s.world.Len())
	return s, nil
}

func orLoad[T any](have *T, load func() (*T, error)) (*T, error) {
	if have != nil {
		return have, nil
	}
	return load()
}

func (s *Session) populate(game *prefabs.GameSpec) error {
	w := s.world
	bounds := s.layout.Arena

	if bounds.HalfSize > 0 && bounds.KillzoneThickness > 0 {
		if _, err := entity.NewArenaKillzones(w, bounds.HalfSize, bounds.KillzoneThickness, game.Hazard.DamagePerSecond); err != nil {
			return fmt.Errorf("arena: %w", err)
		}
	}

	for _, ps := range s.layout.Players {
		slot, err := component.ParsePlayerSlot(ps.Slot)
		if err != nil {
			return fmt.Errorf("arena: player: %w", err)
		}
		p, err := entity.NewPlayer(w, entity.PlayerParams{
			Slot:     slot,
			Position: common.Vec2{X: ps.Position.X, Y: ps.Position.Y},
			Health:   game.Player.Health,
			Radius:   game.Player.Radius,
			Speed:    game.Player.Speed,
			Flash:    game.Health.Flash.Duration(),
		})
		if err != nil {
			return fmt.Errorf("arena: %w", err)
		}
		for _, weapon := range ps.Weapons {
			if err := s.arm(p, weapon, game); err != nil {
				return err
			}
		}
	}

	for _, sp := range s.layout.Spawners {
		t, err := component.ParseEnemyType(sp.Type)
		if err != nil {
			return fmt.Errorf("arena: spawner: %w", err)
		}
		_, err = entity.NewSpawner(w, entity.SpawnerParams{
			Type:         t,
			Position:     common.Vec2{X: sp.Position.X, Y: sp.Position.Y},
			Timer:        sp.Timer.Duration(),
			InitialDelay: sp.InitialDelay.Duration(),
			Limit:        sp.Limit,
		})
		if err != nil {
			return fmt.Errorf("arena: %w", err)
		}
	}

	return nil
}

func (s *Session) arm(player ecs.Entity, weapon string, game *prefabs.GameSpec) error {
	var err error
	switch weapon {
	case "gun":
		_, err = entity.NewGun(s.world, player, entity.GunParams{
			Cooldown: s.data.Gun.Cooldown,
			Damage:   s.data.Gun.Damage,
			AutoFire: game.Gun.AutoFire,
		})
	case "lightning":
		_, err = entity.NewLightningGun(s.world, player, entity.LightningParams{
			Cooldown:   s.data.Lightning.Cooldown,
			Damage:     s.data.Lightning.Damage,
			Size:       s.data.Lightning.Size,
			BaseRadius: game.Lightning.BaseRadius,
		})
	case "laser":
		_, err = entity.NewLaserGun(s.world, player, entity.LaserGunParams{
			Cooldown:        s.data.Laser.Cooldown,
			DamagePerSecond: s.data.Laser.Damage,
		})
	default:
		err = fmt.Errorf("unknown weapon %q", weapon)
	}
	if err != nil {
		return fmt.Errorf("arena: arm %s: %w", weapon, err)
	}
	return nil
}

// SetInput records a player's controls for the next tick. Attack edges
// accumulate until that tick consumes them.
func (s *Session) SetInput(slot component.PlayerSlot, in component.Input) {
	if s == nil {
		return
	}
	prev := s.inputs[slot]
	in.Attack = in.Attack || prev.Attack
	s.inputs[slot] = in
}

// Tick advances the level by dt and returns the resulting status. A
// finished level ignores further ticks.
func (s *Session) Tick(dt time.Duration) Status {
	if s == nil {
		return system.StatusInProgress
	}
	if s.end.Status().Terminal() {
		return s.end.Status()
	}

	s.applyInputs()
	s.scheduler.Step(s.world, dt)
	s.clearEdges()

	return s.end.Status()
}

func (s *Session) applyInputs() {
	ecs.ForEach2(s.world, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, p *component.Player, in *component.Input) {
		if pending, ok := s.inputs[p.Slot]; ok {
			*in = pending
		}
	})
}

func (s *Session) clearEdges() {
	for slot, in := range s.inputs {
		in.Attack = false
		s.inputs[slot] = in
	}
	ecs.ForEach(s.world, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Attack = false
	})
}

func (s *Session) Status() Status {
	if s == nil {
		return system.StatusInProgress
	}
	return s.end.Status()
}

// Result maps the status to the signal the menu layer consumes.
func (s *Session) Result() progression.LevelResult {
	switch s.Status() {
	case system.StatusWon:
		return progression.ResultWon
	case system.StatusLost:
		return progression.ResultLost
	default:
		return progression.ResultNone
	}
}

func (s *Session) World() *ecs.World {
	if s == nil {
		return nil
	}
	return s.world
}

// Space exposes the collision space for debug drawing.
func (s *Session) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.physics.Space()
}

func (s *Session) Data() *progression.GameData {
	if s == nil {
		return nil
	}
	return s.data
}

func (s *Session) Level() int {
	if s == nil || s.layout == nil {
		return 0
	}
	return s.layout.Number
}

// Stats is a snapshot for logs and the HUD.
type Stats struct {
	Elapsed   time.Duration
	Ticks     uint64
	Spawned   int
	Despawned int
	Enemies   int
	Players   int
}

func (s *Session) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Elapsed:   s.world.Elapsed(),
		Ticks:     s.world.Ticks(),
		Spawned:   s.spawner.Spawned(),
		Despawned: s.despawn.Removed(),
		Enemies:   ecs.Count(s.world, component.EnemyComponent.Kind()),
		Players:   ecs.Count(s.world, component.PlayerComponent.Kind()),
	}
}
