package arena

import (
	"cmp"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/ecs/system"
	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

const tick = 100 * time.Millisecond

func count[T any](s *Session, c component.ComponentHandle[T]) int {
	return ecs.Count(s.World(), c.Kind())
}

func TestNewSessionBuildsLevelOne(t *testing.T) {
	s, err := NewSession(Config{Level: 1, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 2, count(s, component.PlayerComponent))
	assert.Equal(t, 2, count(s, component.GunComponent))
	assert.Equal(t, 1, count(s, component.LightningGunComponent))
	assert.Equal(t, 1, count(s, component.LaserGunComponent))
	assert.Equal(t, 2, count(s, component.SpawnerComponent))
	assert.Equal(t, 4, count(s, component.KillzoneComponent))
	assert.Equal(t, 0, count(s, component.EnemyComponent))
	assert.Equal(t, system.StatusInProgress, s.Status())
	assert.Equal(t, progression.ResultNone, s.Result())
}

func TestNewSessionRejectsLevels(t *testing.T) {
	tests := []struct {
		name  string
		level int
		data  progression.GameData
		want  error
	}{
		{"locked", 2, progression.Default(), ErrLevelLocked},
		{"zero", 0, progression.Default(), ErrUnknownLevel},
		{"past_last", prefabs.LevelCount + 1, progression.Default(), ErrUnknownLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			_, err := NewSession(Config{Level: tt.level, Data: &data})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnlockedLevelStarts(t *testing.T) {
	data := progression.Default()
	data.Unlock(3)

	s, err := NewSession(Config{Level: 3, Data: &data})
	require.NoError(t, err)
	assert.Equal(t, 1, count(s, component.SpawnerComponent))
}

func TestInputMovesPlayerAndClearsAttackEdge(t *testing.T) {
	s, err := NewSession(Config{Level: 1, Seed: 1})
	require.NoError(t, err)

	s.SetInput(component.PlayerOne, component.Input{Move: common.Vec2{X: 1}, Attack: true})
	s.Tick(tick)

	p, ok := findPlayer(s, component.PlayerOne)
	require.True(t, ok)
	tr, _ := ecs.Get(s.World(), p, component.TransformComponent.Kind())
	assert.InDelta(t, 15, tr.X, 1e-9)
	assert.InDelta(t, -20, tr.Y, 1e-9)

	in, _ := ecs.Get(s.World(), p, component.InputComponent.Kind())
	assert.False(t, in.Attack)
	assert.Equal(t, common.Vec2{X: 1}, in.Move)
}

func findPlayer(s *Session, slot component.PlayerSlot) (ecs.Entity, bool) {
	for _, e := range s.World().Query(component.PlayerComponent.Kind()) {
		if p, ok := ecs.Get(s.World(), e, component.PlayerComponent.Kind()); ok && p.Slot == slot {
			return e, true
		}
	}
	return 0, false
}

func TestEmptyArenaIsLost(t *testing.T) {
	s, err := NewSession(Config{
		Layout: &prefabs.LevelSpec{Number: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, system.StatusLost, s.Tick(tick))
	assert.Equal(t, progression.ResultLost, s.Result())
}

func TestClearedArenaWinsAfterGrace(t *testing.T) {
	data := progression.Default()
	s, err := NewSession(Config{
		Data: &data,
		Layout: &prefabs.LevelSpec{
			Number:  1,
			Players: []prefabs.PlayerSpawnSpec{{Slot: "one"}},
			Reward:  prefabs.RewardSpec{Money: 50, Unlock: 2},
		},
	})
	require.NoError(t, err)

	for i := 0; i < 29; i++ {
		require.Equal(t, system.StatusWonPendingDelay, s.Tick(tick), "tick %d", i)
	}
	assert.Equal(t, 200, data.Money)

	assert.Equal(t, system.StatusWon, s.Tick(tick))
	assert.Equal(t, 250, data.Money)
	assert.Equal(t, 2, data.Level)
	assert.Equal(t, progression.ResultWon, s.Result())

	// Finished levels ignore further ticks.
	assert.Equal(t, system.StatusWon, s.Tick(tick))
	assert.Equal(t, 250, data.Money)
	assert.Equal(t, uint64(30), s.Stats().Ticks)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() (Stats, []common.Vec2) {
		s, err := NewSession(Config{Level: 1, Seed: 42})
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			s.Tick(tick)
		}
		var positions []common.Vec2
		ecs.ForEach2(s.World(), component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Enemy, tr *component.Transform) {
			positions = append(positions, tr.Pos())
		})
		slices.SortFunc(positions, func(a, b common.Vec2) int {
			if c := cmp.Compare(a.X, b.X); c != 0 {
				return c
			}
			return cmp.Compare(a.Y, b.Y)
		})
		return s.Stats(), positions
	}

	statsA, posA := run()
	statsB, posB := run()
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, posA, posB)
	assert.Positive(t, statsA.Spawned)
}

func TestPlayerCannotOutrunArenaKillzone(t *testing.T) {
	for n := 1; n <= prefabs.LevelCount; n++ {
		t.Run(fmt.Sprintf("level%d", n), func(t *testing.T) {
			layout, err := prefabs.LoadLevelSpec(n)
			require.NoError(t, err)
			layout.Players = []prefabs.PlayerSpawnSpec{{Slot: "one"}}
			layout.Spawners = []prefabs.SpawnerSpec{{Type: "normal", InitialDelay: 1000, Limit: 1}}

			s, err := NewSession(Config{Layout: layout, IgnoreLock: true})
			require.NoError(t, err)

			status := s.Status()
			for i := 0; i < 200 && !status.Terminal(); i++ {
				s.SetInput(component.PlayerOne, component.Input{Move: common.Vec2{X: 1}})
				status = s.Tick(tick)
			}
			assert.Equal(t, system.StatusLost, status)
		})
	}
}
