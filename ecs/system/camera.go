package system

import (
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/progression"
)

// CameraSystem moves the stored camera anchor to the players' average
// position once it has drifted more than Threshold away.
type CameraSystem struct {
	data      *progression.GameData
	threshold float64
}

func NewCameraSystem(data *progression.GameData, threshold float64) *CameraSystem {
	return &CameraSystem{data: data, threshold: threshold}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.data == nil {
		return
	}

	players := playersBySlot(w)
	if len(players) == 0 {
		return
	}
	var sum common.Vec2
	for _, p := range players {
		sum = sum.Add(p.pos)
	}
	avg := sum.Scale(1 / float64(len(players)))
	if avg.Dist(s.data.CameraAnchor) > s.threshold {
		s.data.CameraAnchor = avg
	}
}
