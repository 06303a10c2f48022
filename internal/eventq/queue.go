// Package eventq provides the ordered buffer that bridges a backend
// producing connection events and the caller draining them via Poll.
//
// The queue is unbounded by policy: the caller contract is to poll at least
// once per frame, so backlog growth under a non-polling caller is a caller
// bug rather than a condition this layer papers over with a drop policy.
package eventq

import (
	"sync"

	"github.com/eapache/queue/v2"
)

// Queue is an unbounded FIFO shared between exactly one producer side (a
// backend, possibly running on its own goroutines) and one consumer side
// (the poll caller). Push and Drain never block; insertion order is the only
// ordering guarantee.
type Queue[T any] struct {
	mu  sync.Mutex
	buf *queue.Queue[T]
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{buf: queue.New[T]()}
}

// Push appends v to the tail. Safe to call from any goroutine.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.buf.Add(v)
	q.mu.Unlock()
}

// Drain atomically removes and returns all buffered elements in insertion
// order, leaving the queue empty. Returns nil if nothing is buffered.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.buf.Length()
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = q.buf.Remove()
	}
	return out
}

// Len returns the number of buffered elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}
