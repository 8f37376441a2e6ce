package ecs

// Queue is a per-tick FIFO of transient intents. A producer system pushes,
// one consumer system drains; Drain hands over ownership of the batch so an
// event can never be seen twice.
type Queue[T any] struct {
	items []T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push adds an event.
func (q *Queue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Clear drops pending events without handing them out.
func (q *Queue[T]) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
