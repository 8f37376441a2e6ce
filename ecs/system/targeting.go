package system

import (
	"sort"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

type target struct {
	entity ecs.Entity
	pos    common.Vec2
}

// positionsOf lists live entities carrying kind and a Transform, in query
// order.
func positionsOf[T any](w *ecs.World, kind component.ComponentKind[T]) []target {
	var out []target
	ecs.ForEach2(w, kind, component.TransformComponent.Kind(), func(e ecs.Entity, _ *T, tr *component.Transform) {
		out = append(out, target{entity: e, pos: tr.Pos()})
	})
	return out
}

// nearest returns the candidate closest to from. Ties go to the earlier
// candidate.
func nearest(from common.Vec2, candidates []target) (target, bool) {
	best := -1
	bestDist := 0.0
	for i, c := range candidates {
		d := from.Dist(c.pos)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return target{}, false
	}
	return candidates[best], true
}

// playersBySlot returns live player positions ordered by slot.
func playersBySlot(w *ecs.World) []target {
	type slotted struct {
		target
		slot component.PlayerSlot
	}
	var ps []slotted
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, tr *component.Transform) {
		ps = append(ps, slotted{target: target{entity: e, pos: tr.Pos()}, slot: p.Slot})
	})
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].slot < ps[j].slot })

	out := make([]target, len(ps))
	for i := range ps {
		out[i] = ps[i].target
	}
	return out
}
