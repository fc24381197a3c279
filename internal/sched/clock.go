package sched

import (
	"container/heap"
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// Clock schedules delayed callbacks. The scheduler never reads wall time
// directly, which keeps every timer path deterministic under ManualClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules on the runtime's timers.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a test clock: callbacks fire only when Advance moves
// simulated time past their deadline, in deadline order, on the caller's
// goroutine.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Duration
	queue manualQueue
	seq   int
}

// NewManualClock creates a manual clock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current simulated time offset.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	t := &manualTimer{
		clock: c,
		at:    c.now + d,
		seq:   c.seq,
		f:     f,
	}
	c.seq++
	heap.Push(&c.queue, t)
	return t
}

// Advance moves simulated time forward, firing every callback whose
// deadline falls inside the window. Callbacks may schedule new timers;
// those fire too if they land inside the same window.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		if c.queue.Len() == 0 || c.queue[0].at > target {
			break
		}
		t := heap.Pop(&c.queue).(*manualTimer)
		if t.stopped {
			continue
		}
		c.now = t.at
		c.mu.Unlock()
		t.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	index   int
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	return true
}

// manualQueue orders timers by deadline, then insertion order.
type manualQueue []*manualTimer

func (q manualQueue) Len() int { return len(q) }

func (q manualQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q manualQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *manualQueue) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *manualQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	t.index = -1
	*q = old[:n-1]
	return t
}
