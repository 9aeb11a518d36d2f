// Package pqueue provides a generic binary-heap min priority queue.
//
// The heap is stored in a flat slice; sift-up and sift-down are iterative so the
// queue has no recursion depth concerns for large inputs. Items with equal
// priority are NOT returned in insertion order.
package pqueue

import (
	"cmp"
	"errors"
)

// ErrEmpty is returned by Pop and Peek on an empty queue.
var ErrEmpty = errors.New("pqueue: queue is empty")

type entry[T any, P cmp.Ordered] struct {
	item     T
	priority P
}

// Queue is a min priority queue keyed by P. The zero value is ready to use.
type Queue[T any, P cmp.Ordered] struct {
	heap []entry[T, P]
}

// New returns an empty queue with room for capacity entries.
func New[T any, P cmp.Ordered](capacity int) *Queue[T, P] {
	return &Queue[T, P]{heap: make([]entry[T, P], 0, capacity)}
}

// Push inserts item with the given priority in O(log n).
func (q *Queue[T, P]) Push(item T, priority P) {
	q.heap = append(q.heap, entry[T, P]{item: item, priority: priority})
	q.siftUp(len(q.heap) - 1)
}

// Pop removes and returns the entry with the smallest priority.
func (q *Queue[T, P]) Pop() (T, P, error) {
	if len(q.heap) == 0 {
		var zeroT T
		var zeroP P
		return zeroT, zeroP, ErrEmpty
	}

	root := q.heap[0]
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap[last] = entry[T, P]{}
	q.heap = q.heap[:last]
	if last > 0 {
		q.siftDown(0)
	}

	return root.item, root.priority, nil
}

// Peek returns the entry with the smallest priority without removing it.
func (q *Queue[T, P]) Peek() (T, P, error) {
	if len(q.heap) == 0 {
		var zeroT T
		var zeroP P
		return zeroT, zeroP, ErrEmpty
	}
	return q.heap[0].item, q.heap[0].priority, nil
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue[T, P]) IsEmpty() bool {
	return len(q.heap) == 0
}

// Len returns the number of queued entries.
func (q *Queue[T, P]) Len() int {
	return len(q.heap)
}

func (q *Queue[T, P]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.heap[parent].priority <= q.heap[i].priority {
			return
		}
		q.heap[parent], q.heap[i] = q.heap[i], q.heap[parent]
		i = parent
	}
}

func (q *Queue[T, P]) siftDown(i int) {
	n := len(q.heap)
	for {
		smallest := i
		left := 2*i + 1
		right := left + 1

		if left < n && q.heap[left].priority < q.heap[smallest].priority {
			smallest = left
		}
		if right < n && q.heap[right].priority < q.heap[smallest].priority {
			smallest = right
		}
		if smallest == i {
			return
		}

		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		i = smallest
	}
}
