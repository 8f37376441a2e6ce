package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/slimegame/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if got := len(Entities(w)); got != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, got)
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should report false")
			}
		})
	}
}

func TestRecycledSlotInvalidatesStaleHandle(t *testing.T) {
	w := NewWorld()
	health := component.NewComponent[float64]()

	old := CreateEntity(w)
	if err := Add(w, old, health.Kind(), float64Ptr(10)); err != nil {
		t.Fatalf("add: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh == old {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if _, ok := Get(w, fresh, health.Kind()); ok {
		t.Fatalf("recycled slot kept a component from its previous owner")
	}
	if err := Add(w, old, health.Kind(), float64Ptr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("add on stale handle: got %v, want ErrEntityNotAlive", err)
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	tests := []struct {
		name string
		add  func() error
		want error
	}{
		{"nil_value", func() error { return Add[int](w, e, component.NewComponent[int]().Kind(), nil) }, component.ErrNilComponent},
		{"zero_kind", func() error { return Add(w, e, component.ComponentKind[int]{}, intPtr(1)) }, component.ErrInvalidComponentKind},
		{"dead_entity", func() error { return Add(w, Entity(0), component.NewComponent[int]().Kind(), intPtr(1)) }, component.ErrEntityNotAlive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestQueryAndForEach(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponent[string]()
	vel := component.NewComponent[int]()

	a := CreateEntity(w)
	b := CreateEntity(w)
	c := CreateEntity(w)
	_ = Add(w, a, pos.Kind(), stringPtr("a"))
	_ = Add(w, b, pos.Kind(), stringPtr("b"))
	_ = Add(w, c, pos.Kind(), stringPtr("c"))
	_ = Add(w, a, vel.Kind(), intPtr(1))
	_ = Add(w, c, vel.Kind(), intPtr(3))

	got := toSet(w.Query(pos.Kind(), vel.Kind()))
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if _, ok := got[b]; ok {
		t.Fatalf("b has no vel and should not match")
	}

	sum := 0
	ForEach2(w, pos.Kind(), vel.Kind(), func(_ Entity, _ *string, v *int) {
		sum += *v
		*v *= 10
	})
	if sum != 4 {
		t.Fatalf("expected sum 4, got %d", sum)
	}
	if v, _ := Get(w, c, vel.Kind()); *v != 30 {
		t.Fatalf("ForEach2 should mutate in place, got %d", *v)
	}

	if !Remove(w, a, vel.Kind()) || Remove(w, a, vel.Kind()) {
		t.Fatalf("Remove should succeed once")
	}
	if Count(w, vel.Kind()) != 1 {
		t.Fatalf("expected one vel after remove")
	}
	if e, ok := First(w, vel.Kind()); !ok || e != c {
		t.Fatalf("First should find c, got %v %v", e, ok)
	}
}

func TestForEachSkipsEntitiesDestroyedMidIteration(t *testing.T) {
	w := NewWorld()
	tag := component.NewComponent[int]()

	ents := []Entity{CreateEntity(w), CreateEntity(w), CreateEntity(w)}
	for i, e := range ents {
		_ = Add(w, e, tag.Kind(), intPtr(i))
	}

	visited := 0
	ForEach(w, tag.Kind(), func(e Entity, _ *int) {
		visited++
		for _, other := range ents {
			if other != e {
				DestroyEntity(w, other)
			}
		}
	})
	if visited != 1 {
		t.Fatalf("expected 1 visit, got %d", visited)
	}
}

func TestForEach3And4(t *testing.T) {
	w := NewWorld()
	a := component.NewComponent[int]()
	b := component.NewComponent[string]()
	c := component.NewComponent[float64]()
	d := component.NewComponent[bool]()

	full := CreateEntity(w)
	partial := CreateEntity(w)
	for _, e := range []Entity{full, partial} {
		_ = Add(w, e, a.Kind(), intPtr(1))
		_ = Add(w, e, b.Kind(), stringPtr("x"))
		_ = Add(w, e, c.Kind(), float64Ptr(2))
	}
	yes := true
	_ = Add(w, full, d.Kind(), &yes)

	three := 0
	ForEach3(w, a.Kind(), b.Kind(), c.Kind(), func(Entity, *int, *string, *float64) { three++ })
	four := 0
	ForEach4(w, a.Kind(), b.Kind(), c.Kind(), d.Kind(), func(e Entity, _ *int, _ *string, _ *float64, _ *bool) {
		if e != full {
			t.Fatalf("unexpected entity %v", e)
		}
		four++
	})
	if three != 2 || four != 1 {
		t.Fatalf("ForEach3=%d ForEach4=%d, want 2 and 1", three, four)
	}
}

func TestQueueDrainIsIdempotent(t *testing.T) {
	q := NewQueue[int]()
	if got := q.Drain(); got != nil {
		t.Fatalf("empty drain returned %v", got)
	}
	q.Push(1)
	q.Push(2)
	if got := q.Drain(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("drain order: %v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(w *World) {
	*r.log = append(*r.log, r.name)
}

func TestSchedulerStep(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"a", &log}, recordSystem{"b", &log})
	s.Add(nil)
	w := NewWorld()

	s.Step(w, 100*time.Millisecond)
	s.Step(w, 50*time.Millisecond)

	if len(log) != 4 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("unexpected order %v", log)
	}
	if w.Delta() != 50*time.Millisecond || w.Elapsed() != 150*time.Millisecond || w.Ticks() != 2 {
		t.Fatalf("clock delta=%v elapsed=%v ticks=%d", w.Delta(), w.Elapsed(), w.Ticks())
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("nil system should not be registered")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
