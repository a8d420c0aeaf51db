// Package container provides small generic data structures; the
// controller uses its priority queue to rank phase scores.
package container

import "container/heap"

// item is one element of the priority queue.
type item[T any] struct {
	Value    T
	Priority float64
	index    int
}

type innerQueue[T any] []*item[T]

func (pq innerQueue[T]) Len() int { return len(pq) }

// Less orders the smallest priority first, so Pop yields the minimum.
func (pq innerQueue[T]) Less(i, j int) bool { return pq[i].Priority < pq[j].Priority }

func (pq innerQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *innerQueue[T]) Push(x any) {
	it := x.(*item[T])
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *innerQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// PriorityQueue is a generic min-priority-queue. Callers that want the
// maximum value by some score should push with the negated score, the
// same convention the teacher's max-pressure phase picker uses.
type PriorityQueue[T any] struct {
	q innerQueue[T]
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{q: make(innerQueue[T], 0)}
}

// Len returns the number of queued elements.
func (q *PriorityQueue[T]) Len() int { return len(q.q) }

// Push adds value without maintaining heap order; call Heapify once
// after a batch of Push calls.
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	q.q = append(q.q, &item[T]{Value: value, Priority: priority})
}

// Heapify restores heap order after one or more plain Push calls.
func (q *PriorityQueue[T]) Heapify() {
	heap.Init(&q.q)
}

// HeapPush adds value maintaining heap order incrementally.
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.q, &item[T]{Value: value, Priority: priority})
}

// HeapPop removes and returns the minimum-priority element.
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	it := heap.Pop(&q.q).(*item[T])
	return it.Value, it.Priority
}
