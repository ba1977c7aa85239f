package queue

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// DeadlineQueue is the deadline-priority variant described alongside the
// FIFO outbound queue: the production path uses NewFIFO, this is the
// optional policy for callers that want to give some frames a response
// deadline (e.g. a heartbeat that must go out before the ack window closes).
type DeadlineQueue interface {
	Queue
	// PushDeadline enqueues a frame with an optional deadline. A nil
	// deadline sorts behind every frame that has one.
	PushDeadline(frame any, deadline *time.Time) error
}

type pqItem struct {
	frame    any
	deadline *time.Time
	seq      uint64
}

type pqHeap []*pqItem

func (h pqHeap) Len() int { return len(h) }

func (h pqHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	switch {
	case a.deadline != nil && b.deadline != nil:
		if !a.deadline.Equal(*b.deadline) {
			return a.deadline.Before(*b.deadline)
		}
	case a.deadline != nil && b.deadline == nil:
		return true
	case a.deadline == nil && b.deadline != nil:
		return false
	}
	// Same deadline (or both absent): earlier insertion wins.
	return a.seq < b.seq
}

func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pqHeap) Push(x any) { *h = append(*h, x.(*pqItem)) }

func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type priorityQueue struct {
	mu      sync.Mutex
	items   pqHeap
	seq     uint64
	wake    chan struct{}
	closeCh chan struct{}
	closed  bool
}

// NewPriorityQueue returns a Queue that pops the frame with the earliest
// deadline first, ported from the deadline comparator in discpp's original
// priority_message_queue.
func NewPriorityQueue() DeadlineQueue {
	return &priorityQueue{
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
}

func (q *priorityQueue) Push(frame any) error {
	return q.PushDeadline(frame, nil)
}

func (q *priorityQueue) PushDeadline(frame any, deadline *time.Time) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.seq++
	heap.Push(&q.items, &pqItem{frame: frame, deadline: deadline, seq: q.seq})
	q.mu.Unlock()
	q.signal()
	return nil
}

func (q *priorityQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *priorityQueue) Pop(ctx context.Context) (any, error) {
	for {
		if item, ok := q.tryPop(); ok {
			return item, nil
		}
		select {
		case <-q.wake:
		case <-q.closeCh:
			if item, ok := q.tryPop(); ok {
				return item, nil
			}
			return nil, ErrClosed
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (q *priorityQueue) tryPop() (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&q.items).(*pqItem)
	return item.frame, true
}

func (q *priorityQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	close(q.closeCh)
}
