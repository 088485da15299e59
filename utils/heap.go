package utils

import "container/heap"

// PriorityQueue is a min-heap ordered by less. Items with equal priority
// come out in the order less decides, so callers own the tie-break.
type PriorityQueue[T any] struct {
	items *items[T]
}

type items[T any] struct {
	data []T
	less func(a, b T) bool
}

func (h items[T]) Len() int           { return len(h.data) }
func (h items[T]) Less(i, j int) bool { return h.less(h.data[i], h.data[j]) }
func (h items[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }

func (h *items[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

func (h *items[T]) Pop() any {
	n := len(h.data)
	item := h.data[n-1]
	var zero T
	h.data[n-1] = zero
	h.data = h.data[:n-1]
	return item
}

func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{items: &items[T]{less: less}}
}

func (pq *PriorityQueue[T]) Push(item T) {
	heap.Push(pq.items, item)
}

// Pop removes and returns the smallest item. It panics on an empty queue.
func (pq *PriorityQueue[T]) Pop() T {
	if pq.items.Len() == 0 {
		panic("pop from empty priority queue")
	}
	return heap.Pop(pq.items).(T)
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.items.Len()
}

func (pq *PriorityQueue[T]) Empty() bool {
	return pq.items.Len() == 0
}
