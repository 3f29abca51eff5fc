package mcts

import "container/heap"

// PrioMove is one entry in a Trunk's moveq: a child position, its
// cumulative √-weighted visit count, and the priority it was last
// pushed with.
type PrioMove[G comparable] struct {
	Priority Value
	Subsims  Value
	Pmove    G
}

// prioQueue is a binary max-heap of PrioMove, keyed on Priority. The
// shape (an indexed slice type implementing container/heap.Interface)
// follows the only heap.Interface implementation found in the
// retrieval pack, astarHeap, generalized from *astarNode to a
// comparable position type.
type prioQueue[G comparable] struct {
	items []PrioMove[G]
}

func newPrioQueue[G comparable](capHint int) *prioQueue[G] {
	return &prioQueue[G]{items: make([]PrioMove[G], 0, capHint)}
}

func (q *prioQueue[G]) Len() int { return len(q.items) }

func (q *prioQueue[G]) Less(i, j int) bool {
	return q.items[i].Priority > q.items[j].Priority // max-heap
}

func (q *prioQueue[G]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *prioQueue[G]) Push(x any) {
	q.items = append(q.items, x.(PrioMove[G]))
}

func (q *prioQueue[G]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// PopMax removes and returns the highest-priority entry.
func (q *prioQueue[G]) PopMax() PrioMove[G] {
	return heap.Pop(q).(PrioMove[G])
}

// PushMove inserts pm, restoring the heap invariant.
func (q *prioQueue[G]) PushMove(pm PrioMove[G]) {
	heap.Push(q, pm)
}

// RemoveAt pulls out the entry at slice index i, restoring the heap
// invariant. Used only for the uniform (exploration-only) root
// selection, which picks an entry other than the heap max without
// disturbing the stored priorities of the rest.
func (q *prioQueue[G]) RemoveAt(i int) PrioMove[G] {
	return heap.Remove(q, i).(PrioMove[G])
}

// Items exposes the queue's entries in no particular order, for the
// root policy and multi-root aggregation, which need to see every
// child rather than just the max.
func (q *prioQueue[G]) Items() []PrioMove[G] {
	return q.items
}
