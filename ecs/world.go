package ecs

import (
	"time"

	"github.com/milk9111/slimegame/ecs/component"
)

// World owns entities, their component stores and the simulation clock
// systems read their per-tick delta from.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store

	delta   time.Duration
	elapsed time.Duration
	ticks   uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Advance moves the simulation clock forward by dt. Systems run after
// Advance see dt through Delta.
func (w *World) Advance(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.elapsed += dt
	w.ticks++
}

func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.elapsed
}

func (w *World) Ticks() uint64 {
	if w == nil {
		return 0
	}
	return w.ticks
}

// ComponentKey is satisfied by every component.ComponentKind[T].
type ComponentKey interface {
	ID() component.ComponentID
}

// Query returns live entities that carry every given component, in the
// storage order of the first kind.
func (w *World) Query(keys ...ComponentKey) []Entity {
	if w == nil || len(keys) == 0 {
		return nil
	}
	stores := make([]store, 0, len(keys))
	for _, k := range keys {
		s, ok := w.stores[k.ID()]
		if !ok || s.size() == 0 {
			return nil
		}
		stores = append(stores, s)
	}

	ids := stores[0].ids()
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if !hasAll(stores[1:], id) {
			continue
		}
		if e, ok := w.entities.entityFor(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func hasAll(stores []store, id entityID) bool {
	for _, s := range stores {
		if !s.has(id) {
			return false
		}
	}
	return true
}

func (w *World) destroy(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}
