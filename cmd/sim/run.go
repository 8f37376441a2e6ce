package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/milk9111/slimegame/arena"
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

type runner struct {
	logger *slog.Logger
	store  *progression.Store

	first      int
	count      int
	seed       uint64
	dt         time.Duration
	limit      time.Duration
	attack     time.Duration
	ignoreLock bool
}

type levelReport struct {
	Level   int
	Result  progression.LevelResult
	Stats   arena.Stats
	Money   int
	Timeout bool
}

func (r *runner) run(ctx context.Context) error {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}
	data := r.store.LoadOrDefault(progression.DefaultFrom(game.Defaults))

	for i := 0; i < r.count; i++ {
		level := r.first + i
		if level > prefabs.LevelCount {
			break
		}
		rep, err := r.runLevel(ctx, level, &data)
		if err != nil {
			return err
		}
		if err := progression.Apply(&data, rep.Result); err != nil {
			return err
		}
		if err := r.store.Save(data); err != nil {
			return err
		}
		r.logger.Info("saved", "persistent", r.store.Persistent(), "money", data.Money, "unlocked", data.Level)
		if rep.Result != progression.ResultWon {
			break
		}
	}
	return nil
}

func (r *runner) runLevel(ctx context.Context, level int, data *progression.GameData) (levelReport, error) {
	s, err := arena.NewSession(arena.Config{
		Level:      level,
		Data:       data,
		Seed:       r.seed + uint64(level),
		IgnoreLock: r.ignoreLock,
	})
	if err != nil {
		return levelReport{}, fmt.Errorf("level %d: %w", level, err)
	}
	log := r.logger.With("level", level)
	log.Info("level start", "money", data.Money)

	script := newScript(r.attack)
	lastSpawned := 0
	for s.World().Elapsed() < r.limit {
		if s.World().Ticks()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return levelReport{}, err
			}
		}

		elapsed := s.World().Elapsed()
		for _, slot := range []component.PlayerSlot{component.PlayerOne, component.PlayerTwo} {
			s.SetInput(slot, script.input(slot, elapsed, r.dt))
		}
		status := s.Tick(r.dt)

		if st := s.Stats(); st.Spawned != lastSpawned {
			log.Debug("spawned", "total", st.Spawned, "enemies", st.Enemies, "elapsed", st.Elapsed)
			lastSpawned = st.Spawned
		}
		if status.Terminal() {
			break
		}
	}

	rep := levelReport{
		Level:   level,
		Result:  s.Result(),
		Stats:   s.Stats(),
		Money:   data.Money,
		Timeout: !s.Status().Terminal(),
	}
	log.Info("level end",
		"result", rep.Result,
		"timeout", rep.Timeout,
		"elapsed", rep.Stats.Elapsed,
		"ticks", rep.Stats.Ticks,
		"spawned", rep.Stats.Spawned,
		"despawned", rep.Stats.Despawned,
		"money", rep.Money)
	return rep, nil
}

// script drives both players around a circle in opposite directions and
// presses attack on a fixed period.
type script struct {
	attack time.Duration
}

func newScript(attack time.Duration) script {
	return script{attack: attack}
}

const orbitPeriod = 8 * time.Second

func (s script) input(slot component.PlayerSlot, elapsed, dt time.Duration) component.Input {
	phase := 2 * math.Pi * float64(elapsed%orbitPeriod) / float64(orbitPeriod)
	dir := 1.0
	if slot == component.PlayerTwo {
		dir = -1
	}
	// tangent of the orbit, so each player circles its spawn point
	move := common.FromAngle(dir*phase + math.Pi/2)

	in := component.Input{Move: move}
	if s.attack > 0 && dt > 0 && elapsed%s.attack < dt {
		in.Attack = true
	}
	return in
}
