package scheduler

import "sync"

// queue is an unbounded FIFO safe for concurrent use. Discovery and ad-hoc
// callers enqueue while the owning timer dequeues; idempotent enqueue needs
// Contains and the operational API needs Snapshot, which is why this is a
// mutex-guarded slice rather than a channel.
type queue[T comparable] struct {
	mu    sync.Mutex
	items []T
}

func newQueue[T comparable]() *queue[T] {
	return &queue[T]{}
}

// Enqueue appends an item at the tail
func (q *queue[T]) Enqueue(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Dequeue removes and returns the head item; ok is false when empty
func (q *queue[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// EnqueueIfAbsent appends the item only when no equal item is already
// queued, in one critical section. Returns true when the item was added.
func (q *queue[T]) EnqueueIfAbsent(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, existing := range q.items {
		if existing == item {
			return false
		}
	}
	q.items = append(q.items, item)
	return true
}

// Contains reports whether an equal item is already queued
func (q *queue[T]) Contains(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, existing := range q.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Len returns the number of queued items
func (q *queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns a copy of the queued items in FIFO order
func (q *queue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]T, len(q.items))
	copy(snapshot, q.items)
	return snapshot
}
