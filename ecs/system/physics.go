package system

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypeProjectile
	collisionTypeKillzone
)

const (
	categoryPlayer uint = 1 << iota
	categoryEnemy
	categoryProjectile
	categoryKillzone
)

// PhysicsSystem is the collision substrate. Every Collider gets a
// kinematic circle sensor and every Killzone a static box sensor. Step
// integrates velocities, writes positions back and queues contact-start
// pairs for the collision system.
type PhysicsSystem struct {
	space         *cp.Space
	contacts      *ecs.Queue[ContactEvent]
	handlersReady bool

	bodies map[ecs.Entity]*bodyInfo
	zones  map[ecs.Entity]*cp.Shape
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	layer  component.ColliderLayer
}

func NewPhysicsSystem(contacts *ecs.Queue[ContactEvent]) *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		contacts: contacts,
		bodies:   make(map[ecs.Entity]*bodyInfo),
		zones:    make(map[ecs.Entity]*cp.Shape),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncZones(w)
	ps.syncEntities(w)

	if dt := w.Delta(); dt > 0 {
		ps.space.Step(dt.Seconds())
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		a, b := arb.Shapes()
		ea, okA := a.UserData.(ecs.Entity)
		eb, okB := b.UserData.(ecs.Entity)
		if okA && okB {
			sys.contacts.Push(ContactEvent{A: ea, B: eb})
		}
		return true
	}

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeProjectile, collisionTypeEnemy},
		{collisionTypePlayer, collisionTypeEnemy},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.UserData = ps
		h.BeginFunc = begin
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, tr *component.Transform) {
		info := ps.bodies[e]
		if info != nil && (info.radius != col.Radius || info.layer != col.Layer) {
			ps.removeBody(e, info)
			info = nil
		}
		if info == nil {
			info = ps.addBody(e, col)
		}

		info.body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
		} else {
			info.body.SetVelocityVector(cp.Vector{})
		}
	})
}

func (ps *PhysicsSystem) addBody(e ecs.Entity, col *component.Collider) *bodyInfo {
	body := cp.NewKinematicBody()
	ps.space.AddBody(body)

	radius := col.Radius
	if radius <= 0 {
		radius = 0.5
	}
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.UserData = e
	ctype, cat, mask := layerFilter(col.Layer)
	shape.SetCollisionType(ctype)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, cat, mask))
	ps.space.AddShape(shape)

	info := &bodyInfo{body: body, shape: shape, radius: col.Radius, layer: col.Layer}
	ps.bodies[e] = info
	return info
}

func layerFilter(layer component.ColliderLayer) (cp.CollisionType, uint, uint) {
	switch layer {
	case component.LayerPlayer:
		return collisionTypePlayer, categoryPlayer, categoryEnemy | categoryKillzone
	case component.LayerProjectile:
		return collisionTypeProjectile, categoryProjectile, categoryEnemy
	default:
		return collisionTypeEnemy, categoryEnemy, categoryPlayer | categoryProjectile
	}
}

func (ps *PhysicsSystem) syncZones(w *ecs.World) {
	ecs.ForEach2(w, component.KillzoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, kz *component.Killzone, tr *component.Transform) {
		if _, ok := ps.zones[e]; ok {
			return
		}
		hw, hh := kz.Width/2, kz.Height/2
		bb := cp.BB{L: tr.X - hw, B: tr.Y - hh, R: tr.X + hw, T: tr.Y + hh}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetSensor(true)
		shape.UserData = e
		shape.SetCollisionType(collisionTypeKillzone)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryKillzone, categoryPlayer))
		ps.space.AddShape(shape)
		ps.zones[e] = shape
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		tr.X = pos.X
		tr.Y = pos.Y
	}
}

// cleanupEntities removes stale shapes in entity order so the broadphase
// evolves the same way for the same seed.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	var stale []ecs.Entity
	for e := range ps.bodies {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.ColliderComponent.Kind()) || !ecs.Has(w, e, component.TransformComponent.Kind()) {
			stale = append(stale, e)
		}
	}
	slices.Sort(stale)
	for _, e := range stale {
		ps.removeBody(e, ps.bodies[e])
	}

	stale = stale[:0]
	for e := range ps.zones {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.KillzoneComponent.Kind()) {
			stale = append(stale, e)
		}
	}
	slices.Sort(stale)
	for _, e := range stale {
		ps.space.RemoveShape(ps.zones[e])
		delete(ps.zones, e)
	}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
}

// Overlapping returns the entities whose shapes currently overlap e's
// collider, including killzones.
func (ps *PhysicsSystem) Overlapping(e ecs.Entity) []ecs.Entity {
	if ps == nil {
		return nil
	}
	info, ok := ps.bodies[e]
	if !ok {
		return nil
	}
	var out []ecs.Entity
	ps.space.ShapeQuery(info.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		if other, ok := shape.UserData.(ecs.Entity); ok && other != e {
			out = append(out, other)
		}
	})
	return out
}

// SegmentHits returns enemies whose collider touches the capsule from a to
// b with the given radius.
func (ps *PhysicsSystem) SegmentHits(a, b common.Vec2, radius float64) []ecs.Entity {
	if ps == nil {
		return nil
	}
	var out []ecs.Entity
	seen := make(map[ecs.Entity]struct{})
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryEnemy)
	ps.space.SegmentQuery(cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, radius, filter,
		func(shape *cp.Shape, _, _ cp.Vector, _ float64, _ interface{}) {
			e, ok := shape.UserData.(ecs.Entity)
			if !ok {
				return
			}
			if _, dup := seen[e]; dup {
				return
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}, nil)
	return out
}

// Reset drops every body, for reuse across levels.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = newSpace()
	ps.handlersReady = false
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
	ps.zones = make(map[ecs.Entity]*cp.Shape)
}
