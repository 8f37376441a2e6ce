package system

import (
	"time"

	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/progression"
)

type LevelStatus int

const (
	StatusInProgress LevelStatus = iota
	StatusWonPendingDelay
	StatusWon
	StatusLost
)

func (s LevelStatus) String() string {
	switch s {
	case StatusWonPendingDelay:
		return "won-pending"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "in-progress"
	}
}

// Terminal reports whether the level is over.
func (s LevelStatus) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

type LevelReward struct {
	Money  int
	Unlock int
}

// EndConditionSystem decides the level outcome from the post-despawn
// population. The win has to hold for the whole grace period; losing all
// players ends the level at once.
type EndConditionSystem struct {
	data   *progression.GameData
	reward LevelReward
	grace  component.Timer
	status LevelStatus
}

func NewEndConditionSystem(data *progression.GameData, grace time.Duration, reward LevelReward) *EndConditionSystem {
	return &EndConditionSystem{
		data:   data,
		reward: reward,
		grace:  component.NewTimer(grace, component.TimerOnce),
	}
}

func (s *EndConditionSystem) Status() LevelStatus {
	if s == nil {
		return StatusInProgress
	}
	return s.status
}

// GraceElapsed reports how long the win condition has held.
func (s *EndConditionSystem) GraceElapsed() time.Duration {
	if s == nil {
		return 0
	}
	return s.grace.Elapsed()
}

func (s *EndConditionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.status.Terminal() {
		return
	}

	if ecs.Count(w, component.PlayerComponent.Kind()) == 0 {
		s.status = StatusLost
		return
	}

	if !cleared(w) {
		s.grace.Reset()
		s.status = StatusInProgress
		return
	}

	s.status = StatusWonPendingDelay
	if !s.grace.Tick(w.Delta()).Finished() {
		return
	}
	s.status = StatusWon
	s.data.Credit(s.reward.Money)
	s.data.Unlock(s.reward.Unlock)
}

func cleared(w *ecs.World) bool {
	if ecs.Count(w, component.EnemyComponent.Kind()) > 0 {
		return false
	}
	for _, e := range w.Query(component.SpawnerComponent.Kind()) {
		if sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind()); ok && !sp.Exhausted() {
			return false
		}
	}
	return true
}
