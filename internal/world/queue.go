package world

import (
	"container/heap"

	"voxelcore/internal/chunk"
)

// task is one entry in the world manager's work queue (spec §4.6:
// "FIFO of (chunk_pos, priority, is_regeneration)"). seq preserves
// insertion order so that equal-priority tasks break ties FIFO
// (spec §4.6 "Determinism note").
type task struct {
	pos            chunk.Pos
	priority       int
	isRegeneration bool
	seq            int64
}

// priorityQueue is a min-heap ordered by (priority, seq) — the lowest
// priority value and, among ties, the earliest-inserted task comes first.
type priorityQueue []task

func (q priorityQueue) Len() int { return len(q) }
func (q priorityQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q priorityQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x any)   { *q = append(*q, x.(task)) }
func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// workQueue is the FIFO-priority queue the dispatcher pops from. It holds
// no lock: push and pop are not safe for concurrent use, and every caller
// in this package reaches it from the manager's main sequence.
type workQueue struct {
	heap priorityQueue
	next int64
}

func newWorkQueue() *workQueue {
	q := &workQueue{}
	heap.Init(&q.heap)
	return q
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > 999 {
		return 999
	}
	return p
}

func (q *workQueue) push(pos chunk.Pos, priority int, isRegeneration bool) {
	heap.Push(&q.heap, task{pos: pos, priority: clampPriority(priority), isRegeneration: isRegeneration, seq: q.next})
	q.next++
}

func (q *workQueue) pop() (task, bool) {
	if q.heap.Len() == 0 {
		return task{}, false
	}
	return heap.Pop(&q.heap).(task), true
}

func (q *workQueue) len() int { return q.heap.Len() }
