package wlkit

import (
	"container/heap"
	"time"
)

// TimerToken is an opaque identifier correlating a fired timer with the
// request that scheduled it. Tokens are unique for the lifetime of a
// TimerQueue and never reused.
type TimerToken uint64

// TimerTokenInvalid is never returned by Schedule.
const TimerTokenInvalid TimerToken = 0

// Timer is a pending delayed callback owned by a window.
type Timer struct {
	deadline time.Time
	id       uint64
	token    TimerToken
}

// ID returns the surface id of the window that scheduled the timer.
func (t Timer) ID() uint64 { return t.id }

// Deadline returns the instant at which the timer is due.
func (t Timer) Deadline() time.Time { return t.deadline }

// Token returns the token handed back by Schedule.
func (t Timer) Token() TimerToken { return t.token }

// TimerQueue holds pending timers ordered by earliest deadline. It is a
// plain min-heap: the comparison looks at deadlines directly rather than
// inverting a max-heap ordering, so swapping the container cannot silently
// reverse delivery order.
//
// The queue is not safe for concurrent use; the driver owns it on a single
// thread. Reentrancy is fine: DrainExpired returns the expired timers
// before any callback runs, so callbacks may schedule new timers freely.
type TimerQueue struct {
	heap      timerHeap
	nextToken TimerToken
}

// NewTimerQueue returns an empty timer queue.
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{}
}

// Schedule inserts a timer for the window identified by id and returns its
// token. Deadlines need not be unique across timers.
func (q *TimerQueue) Schedule(id uint64, deadline time.Time) TimerToken {
	q.nextToken++
	t := Timer{deadline: deadline, id: id, token: q.nextToken}
	heap.Push(&q.heap, t)
	return t.token
}

// PeekEarliest returns the timer with the earliest deadline without
// removing it. The second return is false when the queue is empty.
func (q *TimerQueue) PeekEarliest() (Timer, bool) {
	if len(q.heap) == 0 {
		return Timer{}, false
	}
	return q.heap[0], true
}

// DrainExpired removes and returns every timer whose deadline is strictly
// before now, in increasing deadline order. The returned slice is detached
// from the queue: callers may invoke timer callbacks while holding it, and
// those callbacks may schedule new timers on the queue.
func (q *TimerQueue) DrainExpired(now time.Time) []Timer {
	var expired []Timer
	for len(q.heap) > 0 && q.heap[0].deadline.Before(now) {
		expired = append(expired, heap.Pop(&q.heap).(Timer))
	}
	return expired
}

// Cancel removes the timer identified by token. It reports whether a
// pending timer was found; cancelling an already-fired or unknown token is
// a no-op.
func (q *TimerQueue) Cancel(token TimerToken) bool {
	for i := range q.heap {
		if q.heap[i].token == token {
			heap.Remove(&q.heap, i)
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (q *TimerQueue) Len() int { return len(q.heap) }

// timerHeap implements heap.Interface with earliest deadline first.
type timerHeap []Timer

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)        { *h = append(*h, x.(Timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
